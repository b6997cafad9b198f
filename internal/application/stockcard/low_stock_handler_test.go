package stockcard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kewps3/backend/internal/domain/stockcard"
)

type capturingNotifier struct {
	alerts []LowStockAlert
	err    error
}

func (n *capturingNotifier) Notify(_ context.Context, alert LowStockAlert) error {
	n.alerts = append(n.alerts, alert)
	return n.err
}

func TestLowStockHandler_Handle(t *testing.T) {
	ctx := context.Background()

	newEvent := func(t *testing.T, balance int) *stockcard.StockBelowMinimumEvent {
		t.Helper()
		item := mustItem(t, 50)
		item.CurrentBalance = balance
		return stockcard.NewStockBelowMinimumEvent(item)
	}

	t.Run("notifies with low_stock alert type", func(t *testing.T) {
		notifier := &capturingNotifier{}
		handler := NewLowStockHandler(zap.NewNop()).WithNotifier(notifier)

		err := handler.Handle(ctx, newEvent(t, 8))

		require.NoError(t, err)
		require.Len(t, notifier.alerts, 1)
		assert.Equal(t, "low_stock", notifier.alerts[0].AlertType)
		assert.Equal(t, "001", notifier.alerts[0].CardNo)
		assert.Equal(t, 8, notifier.alerts[0].CurrentBalance)
	})

	t.Run("flags depleted cards as out_of_stock", func(t *testing.T) {
		notifier := &capturingNotifier{}
		handler := NewLowStockHandler(zap.NewNop()).WithNotifier(notifier)

		err := handler.Handle(ctx, newEvent(t, 0))

		require.NoError(t, err)
		require.Len(t, notifier.alerts, 1)
		assert.Equal(t, "out_of_stock", notifier.alerts[0].AlertType)
	})

	t.Run("notifier failure does not fail handling", func(t *testing.T) {
		notifier := &capturingNotifier{err: assert.AnError}
		handler := NewLowStockHandler(zap.NewNop()).WithNotifier(notifier)

		assert.NoError(t, handler.Handle(ctx, newEvent(t, 5)))
	})

	t.Run("rejects foreign event types", func(t *testing.T) {
		handler := NewLowStockHandler(zap.NewNop())
		item := mustItem(t, 10)

		err := handler.Handle(ctx, stockcard.NewStockReceivedEvent(item, 10))

		assert.Error(t, err)
	})

	t.Run("subscribes to below minimum events only", func(t *testing.T) {
		handler := NewLowStockHandler(zap.NewNop())
		assert.Equal(t, []string{stockcard.EventTypeStockBelowMinimum}, handler.EventTypes())
	})
}
