package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	appstockcard "github.com/kewps3/backend/internal/application/stockcard"
	"github.com/kewps3/backend/internal/domain/shared"
	"github.com/kewps3/backend/internal/domain/stockcard"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with the full schema migrated
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&stockcard.StockItem{}, &stockcard.Transaction{}))
	return db
}

func newPersistedItem(t *testing.T, db *gorm.DB, cardNo string, initialStock int) *stockcard.StockItem {
	t.Helper()

	loc := stockcard.Location{Warehouse: "G1", Row: "B2", Rack: "R3", Level: "T1", Compartment: "P4"}
	item, err := stockcard.NewStockItem(cardNo, "Stor Utama", "Kertas A4", "KP-001", "Rim",
		stockcard.StockGroupA, stockcard.MovementActive, loc, 200, 50, 10, initialStock)
	require.NoError(t, err)

	require.NoError(t, NewGormStockItemRepository(db).Save(context.Background(), item))
	return item
}

func newPersistedTransaction(t *testing.T, db *gorm.DB, item *stockcard.StockItem, kind stockcard.TransactionKind, quantity int, recordedAt time.Time) *stockcard.Transaction {
	t.Helper()

	docType := stockcard.DocumentPK
	if kind == stockcard.KindIssue {
		docType = stockcard.DocumentBPSS
	}
	tx, err := stockcard.NewTransaction(item, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		docType, "DOC-123", kind, quantity, decimal.NewFromFloat(4.50), "Pembekal Sdn Bhd", "Ahmad")
	require.NoError(t, err)
	tx.RecordedAt = recordedAt

	require.NoError(t, NewGormTransactionRepository(db).Create(context.Background(), tx))
	return tx
}

func TestGormStockItemRepository_FindByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormStockItemRepository(db)
	item := newPersistedItem(t, db, "001", 100)

	t.Run("finds existing item", func(t *testing.T) {
		found, err := repo.FindByID(context.Background(), item.ID)
		require.NoError(t, err)
		assert.Equal(t, item.ID, found.ID)
		assert.Equal(t, "001", found.CardNo)
		assert.Equal(t, 100, found.CurrentBalance)
	})

	t.Run("returns ErrItemNotFound for unknown id", func(t *testing.T) {
		found, err := repo.FindByID(context.Background(), uuid.New())
		assert.Nil(t, found)
		assert.Equal(t, shared.ErrItemNotFound, err)
	})
}

func TestGormStockItemRepository_FindByCardNo(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormStockItemRepository(db)
	newPersistedItem(t, db, "007", 30)

	found, err := repo.FindByCardNo(context.Background(), "007")
	require.NoError(t, err)
	assert.Equal(t, "007", found.CardNo)

	_, err = repo.FindByCardNo(context.Background(), "099")
	assert.Equal(t, shared.ErrItemNotFound, err)
}

func TestGormStockItemRepository_FindAll_OrderedByCardNo(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormStockItemRepository(db)
	newPersistedItem(t, db, "003", 0)
	newPersistedItem(t, db, "001", 0)
	newPersistedItem(t, db, "002", 0)

	items, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "001", items[0].CardNo)
	assert.Equal(t, "002", items[1].CardNo)
	assert.Equal(t, "003", items[2].CardNo)
}

func TestGormStockItemRepository_SaveUpdatesExistingRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormStockItemRepository(db)
	item := newPersistedItem(t, db, "001", 100)

	require.NoError(t, item.ApplyIssue(40))
	require.NoError(t, repo.Save(context.Background(), item))

	found, err := repo.FindByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, found.CurrentBalance)
	assert.Equal(t, 40, found.TotalIssued)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormStockItemRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormStockItemRepository(db)
	item := newPersistedItem(t, db, "001", 0)

	require.NoError(t, repo.Delete(context.Background(), item.ID))

	_, err := repo.FindByID(context.Background(), item.ID)
	assert.Equal(t, shared.ErrItemNotFound, err)

	err = repo.Delete(context.Background(), uuid.New())
	assert.Equal(t, shared.ErrItemNotFound, err)
}

func TestGormStockItemRepository_LastCardNumber(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormStockItemRepository(db)

	last, err := repo.LastCardNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, last)

	newPersistedItem(t, db, "002", 0)
	newPersistedItem(t, db, "010", 0)

	last, err = repo.LastCardNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, last)
}

func TestGormStockItemRepository_CountLowStock(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormStockItemRepository(db)

	low := newPersistedItem(t, db, "001", 100)
	require.NoError(t, low.ApplyIssue(95))
	require.NoError(t, repo.Save(context.Background(), low))

	newPersistedItem(t, db, "002", 100)

	// An empty card with no configured minimum still counts: 0 <= 0
	empty, err := stockcard.NewStockItem("003", "Stor Utama", "Pen Merah", "", "Kotak",
		stockcard.StockGroupB, stockcard.MovementActive, stockcard.Location{}, 0, 0, 0, 0)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), empty))

	count, err := repo.CountLowStock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestGormTransactionRepository_FindByStockItem_MostRecentFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormTransactionRepository(db)
	item := newPersistedItem(t, db, "001", 100)
	other := newPersistedItem(t, db, "002", 100)

	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	older := newPersistedTransaction(t, db, item, stockcard.KindReceipt, 10, base)
	newer := newPersistedTransaction(t, db, item, stockcard.KindIssue, 5, base.Add(time.Hour))
	newPersistedTransaction(t, db, other, stockcard.KindReceipt, 7, base)

	txs, err := repo.FindByStockItem(context.Background(), item.ID)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, newer.ID, txs[0].ID)
	assert.Equal(t, older.ID, txs[1].ID)
}

func TestGormTransactionRepository_DeleteByStockItem(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormTransactionRepository(db)
	item := newPersistedItem(t, db, "001", 100)
	other := newPersistedItem(t, db, "002", 100)

	now := time.Now().UTC()
	newPersistedTransaction(t, db, item, stockcard.KindReceipt, 10, now)
	newPersistedTransaction(t, db, item, stockcard.KindIssue, 5, now)
	kept := newPersistedTransaction(t, db, other, stockcard.KindReceipt, 3, now)

	require.NoError(t, repo.DeleteByStockItem(context.Background(), item.ID))

	txs, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, kept.ID, txs[0].ID)
}

func TestGormTransactionRepository_CountByKind(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormTransactionRepository(db)
	item := newPersistedItem(t, db, "001", 100)

	now := time.Now().UTC()
	newPersistedTransaction(t, db, item, stockcard.KindReceipt, 10, now)
	newPersistedTransaction(t, db, item, stockcard.KindReceipt, 20, now)
	newPersistedTransaction(t, db, item, stockcard.KindIssue, 5, now)

	receipts, err := repo.CountByKind(context.Background(), stockcard.KindReceipt)
	require.NoError(t, err)
	assert.Equal(t, int64(2), receipts)

	issues, err := repo.CountByKind(context.Background(), stockcard.KindIssue)
	require.NoError(t, err)
	assert.Equal(t, int64(1), issues)
}

func TestGormTransactionRepository_FindByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormTransactionRepository(db)

	tx, err := repo.FindByID(context.Background(), uuid.New())
	assert.Nil(t, tx)
	assert.Equal(t, shared.ErrNotFound, err)
}

func TestGormTransactionScope_CommitsOnSuccess(t *testing.T) {
	db := newTestDB(t)
	scope := NewGormTransactionScope(db)
	item := newPersistedItem(t, db, "001", 100)

	err := scope.Execute(context.Background(), func(repos appstockcard.TransactionalRepositories) error {
		found, err := repos.ItemRepo().FindByID(context.Background(), item.ID)
		if err != nil {
			return err
		}
		if err := found.ApplyIssue(30); err != nil {
			return err
		}
		return repos.ItemRepo().Save(context.Background(), found)
	})
	require.NoError(t, err)

	found, err := NewGormStockItemRepository(db).FindByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 70, found.CurrentBalance)
}

func TestGormTransactionScope_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	scope := NewGormTransactionScope(db)
	item := newPersistedItem(t, db, "001", 100)

	err := scope.Execute(context.Background(), func(repos appstockcard.TransactionalRepositories) error {
		found, err := repos.ItemRepo().FindByID(context.Background(), item.ID)
		if err != nil {
			return err
		}
		if err := found.ApplyIssue(30); err != nil {
			return err
		}
		if err := repos.ItemRepo().Save(context.Background(), found); err != nil {
			return err
		}
		return shared.ErrInsufficientStock
	})
	assert.Equal(t, shared.ErrInsufficientStock, err)

	found, err := NewGormStockItemRepository(db).FindByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, found.CurrentBalance)
}
