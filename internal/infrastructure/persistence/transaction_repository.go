package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kewps3/backend/internal/domain/shared"
	"github.com/kewps3/backend/internal/domain/stockcard"
	"gorm.io/gorm"
)

// GormTransactionRepository implements TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// FindByID finds a transaction by its ID
func (r *GormTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*stockcard.Transaction, error) {
	var tx stockcard.Transaction
	if err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// FindAll returns all transactions, most recent first
func (r *GormTransactionRepository) FindAll(ctx context.Context) ([]*stockcard.Transaction, error) {
	var txs []*stockcard.Transaction
	if err := r.db.WithContext(ctx).
		Order("recorded_at DESC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// FindByStockItem returns all transactions for one stock item, most recent first
func (r *GormTransactionRepository) FindByStockItem(ctx context.Context, stockItemID uuid.UUID) ([]*stockcard.Transaction, error) {
	var txs []*stockcard.Transaction
	if err := r.db.WithContext(ctx).
		Where("stock_item_id = ?", stockItemID).
		Order("recorded_at DESC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// Create persists a new transaction
func (r *GormTransactionRepository) Create(ctx context.Context, tx *stockcard.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// Update persists changes to an existing transaction
func (r *GormTransactionRepository) Update(ctx context.Context, tx *stockcard.Transaction) error {
	return r.db.WithContext(ctx).Save(tx).Error
}

// Delete deletes a transaction
func (r *GormTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&stockcard.Transaction{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByStockItem deletes all transactions of a stock item
func (r *GormTransactionRepository) DeleteByStockItem(ctx context.Context, stockItemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&stockcard.Transaction{}, "stock_item_id = ?", stockItemID).Error
}

// Count returns the total number of transactions
func (r *GormTransactionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&stockcard.Transaction{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByKind returns the number of transactions of the given kind
func (r *GormTransactionRepository) CountByKind(ctx context.Context, kind stockcard.TransactionKind) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&stockcard.Transaction{}).
		Where("kind = ?", kind).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormTransactionRepository implements TransactionRepository
var _ stockcard.TransactionRepository = (*GormTransactionRepository)(nil)
