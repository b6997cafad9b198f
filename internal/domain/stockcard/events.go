package stockcard

import (
	"github.com/kewps3/backend/internal/domain/shared"
)

// Event types for the stockcard domain
const (
	EventTypeStockItemCreated    = "stockcard.item.created"
	EventTypeStockReceived       = "stockcard.stock.received"
	EventTypeStockIssued         = "stockcard.stock.issued"
	EventTypeTransactionReversed = "stockcard.transaction.reversed"
	EventTypeStockBelowMinimum   = "stockcard.stock.below_minimum"
)

const aggregateTypeStockItem = "StockItem"

// StockItemCreatedEvent is raised when a new stock card is opened
type StockItemCreatedEvent struct {
	shared.BaseDomainEvent
	CardNo       string `json:"card_no"`
	Description  string `json:"description"`
	InitialStock int    `json:"initial_stock"`
}

// NewStockItemCreatedEvent creates a new stock item created event
func NewStockItemCreatedEvent(item *StockItem) *StockItemCreatedEvent {
	return &StockItemCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockItemCreated, aggregateTypeStockItem, item.ID),
		CardNo:          item.CardNo,
		Description:     item.Description,
		InitialStock:    item.CurrentBalance,
	}
}

// StockReceivedEvent is raised when a receipt is applied to the card
type StockReceivedEvent struct {
	shared.BaseDomainEvent
	CardNo      string `json:"card_no"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	NewBalance  int    `json:"new_balance"`
}

// NewStockReceivedEvent creates a new stock received event
func NewStockReceivedEvent(item *StockItem, quantity int) *StockReceivedEvent {
	return &StockReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReceived, aggregateTypeStockItem, item.ID),
		CardNo:          item.CardNo,
		Description:     item.Description,
		Quantity:        quantity,
		NewBalance:      item.CurrentBalance,
	}
}

// StockIssuedEvent is raised when an issue is applied to the card
type StockIssuedEvent struct {
	shared.BaseDomainEvent
	CardNo      string `json:"card_no"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	NewBalance  int    `json:"new_balance"`
}

// NewStockIssuedEvent creates a new stock issued event
func NewStockIssuedEvent(item *StockItem, quantity int) *StockIssuedEvent {
	return &StockIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockIssued, aggregateTypeStockItem, item.ID),
		CardNo:          item.CardNo,
		Description:     item.Description,
		Quantity:        quantity,
		NewBalance:      item.CurrentBalance,
	}
}

// TransactionReversedEvent is raised when a ledger entry is backed out
type TransactionReversedEvent struct {
	shared.BaseDomainEvent
	CardNo     string          `json:"card_no"`
	Kind       TransactionKind `json:"kind"`
	Quantity   int             `json:"quantity"`
	NewBalance int             `json:"new_balance"`
}

// NewTransactionReversedEvent creates a new transaction reversed event
func NewTransactionReversedEvent(item *StockItem, kind TransactionKind, quantity int) *TransactionReversedEvent {
	return &TransactionReversedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransactionReversed, aggregateTypeStockItem, item.ID),
		CardNo:          item.CardNo,
		Kind:            kind,
		Quantity:        quantity,
		NewBalance:      item.CurrentBalance,
	}
}

// StockBelowMinimumEvent is raised when an issue drives the balance to or
// below the minimum threshold
type StockBelowMinimumEvent struct {
	shared.BaseDomainEvent
	CardNo         string `json:"card_no"`
	Description    string `json:"description"`
	CurrentBalance int    `json:"current_balance"`
	MinStock       int    `json:"min_stock"`
}

// NewStockBelowMinimumEvent creates a new stock below minimum event
func NewStockBelowMinimumEvent(item *StockItem) *StockBelowMinimumEvent {
	return &StockBelowMinimumEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowMinimum, aggregateTypeStockItem, item.ID),
		CardNo:          item.CardNo,
		Description:     item.Description,
		CurrentBalance:  item.CurrentBalance,
		MinStock:        item.MinStock,
	}
}
