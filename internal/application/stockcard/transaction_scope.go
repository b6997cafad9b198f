package stockcard

import (
	"context"

	"github.com/kewps3/backend/internal/domain/stockcard"
)

// TransactionScope provides transactional access to the stock card
// repositories. When a function is executed within a transaction scope, all
// repository operations are part of the same database transaction and are
// committed or rolled back atomically. The ledger depends on this: a
// transaction record and its item balance update must land together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the stock card repositories
// within a transaction. Both repositories share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// ItemRepo returns the stock item repository scoped to the current transaction
	ItemRepo() stockcard.StockItemRepository
	// TxRepo returns the ledger transaction repository scoped to the current transaction
	TxRepo() stockcard.TransactionRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing or when transaction support is
// not required.
type NoOpTransactionScope struct {
	itemRepo stockcard.StockItemRepository
	txRepo   stockcard.TransactionRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(itemRepo stockcard.StockItemRepository, txRepo stockcard.TransactionRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		itemRepo: itemRepo,
		txRepo:   txRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ItemRepo returns the stock item repository.
func (s *NoOpTransactionScope) ItemRepo() stockcard.StockItemRepository {
	return s.itemRepo
}

// TxRepo returns the ledger transaction repository.
func (s *NoOpTransactionScope) TxRepo() stockcard.TransactionRepository {
	return s.txRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
