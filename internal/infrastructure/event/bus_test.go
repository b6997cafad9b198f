package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/kewps3/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "StockItem", uuid.New()),
	}
}

type recordingHandler struct {
	mu     sync.Mutex
	types  []string
	events []shared.DomainEvent
	err    error
	panics bool
}

func (h *recordingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("handler exploded")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func (h *recordingHandler) received() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shared.DomainEvent(nil), h.events...)
}

func TestInMemoryEventBus_PublishToSubscribedHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{"stockcard.stock.issued"}}
	bus.Subscribe(handler)

	err := bus.Publish(context.Background(), newTestEvent("stockcard.stock.issued"))
	require.NoError(t, err)

	events := handler.received()
	require.Len(t, events, 1)
	assert.Equal(t, "stockcard.stock.issued", events[0].EventType())
}

func TestInMemoryEventBus_IgnoresOtherEventTypes(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{"stockcard.stock.issued"}}
	bus.Subscribe(handler)

	err := bus.Publish(context.Background(), newTestEvent("stockcard.item.created"))
	require.NoError(t, err)

	assert.Empty(t, handler.received())
}

func TestInMemoryEventBus_WildcardHandlerReceivesAllEvents(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{}
	bus.Subscribe(handler)

	err := bus.Publish(context.Background(),
		newTestEvent("stockcard.item.created"),
		newTestEvent("stockcard.stock.received"),
	)
	require.NoError(t, err)

	assert.Len(t, handler.received(), 2)
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{"stockcard.stock.issued"}}
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	err := bus.Publish(context.Background(), newTestEvent("stockcard.stock.issued"))
	require.NoError(t, err)

	assert.Empty(t, handler.received())
}

func TestInMemoryEventBus_HandlerErrorDoesNotStopDispatch(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	failing := &recordingHandler{types: []string{"stockcard.stock.issued"}, err: errors.New("boom")}
	healthy := &recordingHandler{types: []string{"stockcard.stock.issued"}}
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), newTestEvent("stockcard.stock.issued"))
	require.NoError(t, err)

	assert.Len(t, healthy.received(), 1)
}

func TestInMemoryEventBus_RecoversFromHandlerPanic(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	panicking := &recordingHandler{types: []string{"stockcard.stock.issued"}, panics: true}
	healthy := &recordingHandler{types: []string{"stockcard.stock.issued"}}
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	require.NotPanics(t, func() {
		_ = bus.Publish(context.Background(), newTestEvent("stockcard.stock.issued"))
	})
	assert.Len(t, healthy.received(), 1)
}

func TestHandlerRegistry_GetHandlersCombinesWildcardAndTyped(t *testing.T) {
	registry := NewHandlerRegistry()
	typed := &recordingHandler{types: []string{"stockcard.stock.issued"}}
	wildcard := &recordingHandler{}

	registry.Register(typed, typed.EventTypes()...)
	registry.Register(wildcard)

	handlers := registry.GetHandlers("stockcard.stock.issued")
	assert.Len(t, handlers, 2)

	handlers = registry.GetHandlers("stockcard.item.created")
	assert.Len(t, handlers, 1)
}
