package stockcard

import (
	"context"

	"github.com/google/uuid"
)

// StockItemRepository defines persistence for stock cards
type StockItemRepository interface {
	// FindByID retrieves a stock item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockItem, error)
	// FindByCardNo retrieves a stock item by its card number
	FindByCardNo(ctx context.Context, cardNo string) (*StockItem, error)
	// FindAll retrieves all stock items ordered by card number
	FindAll(ctx context.Context) ([]*StockItem, error)
	// Save persists a stock item (create or update)
	Save(ctx context.Context, item *StockItem) error
	// Delete removes a stock item
	Delete(ctx context.Context, id uuid.UUID) error
	// LastCardNumber returns the highest numeric card number in use, 0 when empty
	LastCardNumber(ctx context.Context) (int, error)
	// Count returns the total number of stock items
	Count(ctx context.Context) (int64, error)
	// CountLowStock returns the number of items at or below their minimum threshold
	CountLowStock(ctx context.Context) (int64, error)
}

// TransactionRepository defines persistence for ledger entries
type TransactionRepository interface {
	// FindByID retrieves a transaction by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	// FindAll retrieves all transactions, most recent first
	FindAll(ctx context.Context) ([]*Transaction, error)
	// FindByStockItem retrieves all transactions for one stock item, most recent first
	FindByStockItem(ctx context.Context, stockItemID uuid.UUID) ([]*Transaction, error)
	// Create persists a new transaction
	Create(ctx context.Context, tx *Transaction) error
	// Update persists changes to an existing transaction
	Update(ctx context.Context, tx *Transaction) error
	// Delete removes a transaction
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteByStockItem removes all transactions of a stock item
	DeleteByStockItem(ctx context.Context, stockItemID uuid.UUID) error
	// Count returns the total number of transactions
	Count(ctx context.Context) (int64, error)
	// CountByKind returns the number of transactions of the given kind
	CountByKind(ctx context.Context, kind TransactionKind) (int64, error)
}
