package persistence

import (
	"context"

	appstockcard "github.com/kewps3/backend/internal/application/stockcard"
	"github.com/kewps3/backend/internal/domain/stockcard"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appstockcard.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// ItemRepo returns the stock item repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ItemRepo() stockcard.StockItemRepository {
	return NewGormStockItemRepository(r.tx)
}

// TxRepo returns the transaction repository scoped to the current transaction.
func (r *gormTransactionalRepositories) TxRepo() stockcard.TransactionRepository {
	return NewGormTransactionRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appstockcard.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appstockcard.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
