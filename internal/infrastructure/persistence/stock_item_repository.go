package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kewps3/backend/internal/domain/shared"
	"github.com/kewps3/backend/internal/domain/stockcard"
	"gorm.io/gorm"
)

// GormStockItemRepository implements StockItemRepository using GORM
type GormStockItemRepository struct {
	db *gorm.DB
}

// NewGormStockItemRepository creates a new GormStockItemRepository
func NewGormStockItemRepository(db *gorm.DB) *GormStockItemRepository {
	return &GormStockItemRepository{db: db}
}

// FindByID finds a stock item by its ID
func (r *GormStockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*stockcard.StockItem, error) {
	var item stockcard.StockItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByCardNo finds a stock item by its card number
func (r *GormStockItemRepository) FindByCardNo(ctx context.Context, cardNo string) (*stockcard.StockItem, error) {
	var item stockcard.StockItem
	if err := r.db.WithContext(ctx).First(&item, "card_no = ?", cardNo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAll returns all stock items ordered by card number
func (r *GormStockItemRepository) FindAll(ctx context.Context) ([]*stockcard.StockItem, error) {
	var items []*stockcard.StockItem
	if err := r.db.WithContext(ctx).
		Order("card_no ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates or updates a stock item
func (r *GormStockItemRepository) Save(ctx context.Context, item *stockcard.StockItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete deletes a stock item
func (r *GormStockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&stockcard.StockItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrItemNotFound
	}
	return nil
}

// LastCardNumber returns the highest numeric card number in use, 0 when empty
func (r *GormStockItemRepository) LastCardNumber(ctx context.Context) (int, error) {
	var result struct {
		Last int
	}
	if err := r.db.WithContext(ctx).
		Model(&stockcard.StockItem{}).
		Select("COALESCE(MAX(CAST(card_no AS INTEGER)), 0) as last").
		Scan(&result).Error; err != nil {
		return 0, err
	}
	return result.Last, nil
}

// Count returns the total number of stock items
func (r *GormStockItemRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&stockcard.StockItem{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountLowStock returns the number of items at or below their minimum threshold
func (r *GormStockItemRepository) CountLowStock(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&stockcard.StockItem{}).
		Where("current_balance <= min_stock").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormStockItemRepository implements StockItemRepository
var _ stockcard.StockItemRepository = (*GormStockItemRepository)(nil)
