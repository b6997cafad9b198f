package stockcard

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kewps3/backend/internal/domain/shared"
	"github.com/kewps3/backend/internal/domain/stockcard"
)

// LowStockHandler handles StockBelowMinimum events and raises alerts when an
// issue drives a card to its minimum threshold
type LowStockHandler struct {
	logger   *zap.Logger
	notifier LowStockNotifier
}

// LowStockNotifier is the interface for delivering low stock alerts.
// Implementations can support different channels (in-app, email, etc.)
type LowStockNotifier interface {
	// Notify delivers a low stock alert
	Notify(ctx context.Context, alert LowStockAlert) error
}

// LowStockAlert describes a card that has reached its minimum threshold
type LowStockAlert struct {
	StockItemID    string `json:"stock_item_id"`
	CardNo         string `json:"card_no"`
	Description    string `json:"description"`
	CurrentBalance int    `json:"current_balance"`
	MinStock       int    `json:"min_stock"`
	AlertType      string `json:"alert_type"` // "low_stock", "out_of_stock"
}

// NewLowStockHandler creates a new handler for stock below minimum events
func NewLowStockHandler(logger *zap.Logger) *LowStockHandler {
	return &LowStockHandler{
		logger: logger,
	}
}

// WithNotifier sets the notifier for delivering alerts
func (h *LowStockHandler) WithNotifier(notifier LowStockNotifier) *LowStockHandler {
	h.notifier = notifier
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *LowStockHandler) EventTypes() []string {
	return []string{stockcard.EventTypeStockBelowMinimum}
}

// Handle processes a StockBelowMinimumEvent
func (h *LowStockHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	lowEvent, ok := event.(*stockcard.StockBelowMinimumEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", stockcard.EventTypeStockBelowMinimum),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			stockcard.EventTypeStockBelowMinimum, event.EventType())
	}

	h.logger.Warn("stock below minimum detected",
		zap.String("stock_item_id", event.AggregateID().String()),
		zap.String("card_no", lowEvent.CardNo),
		zap.String("description", lowEvent.Description),
		zap.Int("current_balance", lowEvent.CurrentBalance),
		zap.Int("min_stock", lowEvent.MinStock),
	)

	alertType := "low_stock"
	if lowEvent.CurrentBalance <= 0 {
		alertType = "out_of_stock"
	}

	if h.notifier != nil {
		alert := LowStockAlert{
			StockItemID:    event.AggregateID().String(),
			CardNo:         lowEvent.CardNo,
			Description:    lowEvent.Description,
			CurrentBalance: lowEvent.CurrentBalance,
			MinStock:       lowEvent.MinStock,
			AlertType:      alertType,
		}
		if err := h.notifier.Notify(ctx, alert); err != nil {
			// alert delivery is best effort
			h.logger.Error("failed to deliver low stock alert",
				zap.String("card_no", alert.CardNo),
				zap.Error(err),
			)
		}
	}

	return nil
}

// Ensure LowStockHandler implements shared.EventHandler
var _ shared.EventHandler = (*LowStockHandler)(nil)
