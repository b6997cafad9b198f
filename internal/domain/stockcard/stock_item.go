package stockcard

import (
	"fmt"
	"strings"
	"time"

	"github.com/kewps3/backend/internal/domain/shared"
)

// StockGroup is the KEW.PS-3 group classification of a stock item
type StockGroup string

const (
	// StockGroupA covers items managed under group A (Kumpulan A)
	StockGroupA StockGroup = "A"
	// StockGroupB covers items managed under group B (Kumpulan B)
	StockGroupB StockGroup = "B"
)

// IsValid returns true if the stock group is valid
func (g StockGroup) IsValid() bool {
	return g == StockGroupA || g == StockGroupB
}

// Movement is the movement status of a stock item
type Movement string

const (
	// MovementActive marks an item with ongoing stock movement (Aktif)
	MovementActive Movement = "AKTIF"
	// MovementInactive marks an item without recent movement (Tidak Aktif)
	MovementInactive Movement = "TIDAK AKTIF"
)

// IsValid returns true if the movement status is valid
func (m Movement) IsValid() bool {
	return m == MovementActive || m == MovementInactive
}

// Location is the physical storage location of a stock item within the store
type Location struct {
	Warehouse   string `gorm:"type:varchar(100)"` // Gudang/Seksyen
	Row         string `gorm:"type:varchar(50)"`  // Baris
	Rack        string `gorm:"type:varchar(50)"`  // Rak
	Level       string `gorm:"type:varchar(50)"`  // Tingkat
	Compartment string `gorm:"type:varchar(50)"`  // Petak
}

// Code returns the combined location code printed on the stock card
func (l Location) Code() string {
	return fmt.Sprintf("%s-%s/%s/%s/%s", l.Warehouse, l.Row, l.Rack, l.Level, l.Compartment)
}

// StockItem represents one KEW.PS-3 stock card: a physical inventory line with
// its storage location, threshold levels, and running balance aggregates.
// It is the aggregate root for all ledger operations; CurrentBalance,
// TotalReceived, and TotalIssued are maintained exclusively through the
// Apply*/Reverse* methods so that CurrentBalance == TotalReceived - TotalIssued
// holds, unless an administrative override deliberately breaks it.
type StockItem struct {
	shared.BaseAggregateRoot
	CardNo         string     `gorm:"type:varchar(10);not null;uniqueIndex"`
	StoreName      string     `gorm:"type:varchar(200);not null"`
	Description    string     `gorm:"type:varchar(255);not null"` // Perihal stok
	CodeNo         string     `gorm:"type:varchar(50)"`
	Unit           string     `gorm:"type:varchar(30);not null"` // Unit pengukuran
	Group          StockGroup `gorm:"type:varchar(5);not null"`
	Movement       Movement   `gorm:"type:varchar(20);not null"`
	Location       Location   `gorm:"embedded"`
	MaxStock       int        `gorm:"not null;default:0"`
	ReorderStock   int        `gorm:"not null;default:0"`
	MinStock       int        `gorm:"not null;default:0"`
	CurrentBalance int        `gorm:"not null;default:0"`
	TotalReceived  int        `gorm:"not null;default:0"`
	TotalIssued    int        `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (StockItem) TableName() string {
	return "stock_items"
}

// NewStockItem creates a new stock item with the given card number.
// initialStock seeds both CurrentBalance and TotalReceived so the balance
// invariant holds from the first day of the card.
func NewStockItem(cardNo, storeName, description, codeNo, unit string, group StockGroup, movement Movement, loc Location, maxStock, reorderStock, minStock, initialStock int) (*StockItem, error) {
	if strings.TrimSpace(cardNo) == "" {
		return nil, shared.NewDomainError("INVALID_CARD_NO", "Card number cannot be empty")
	}
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Stock description cannot be empty")
	}
	if strings.TrimSpace(unit) == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit of measurement cannot be empty")
	}
	if !group.IsValid() {
		return nil, shared.NewDomainError("INVALID_GROUP", "Stock group must be A or B")
	}
	if !movement.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT", "Movement status must be AKTIF or TIDAK AKTIF")
	}
	if maxStock < 0 || reorderStock < 0 || minStock < 0 {
		return nil, shared.NewDomainError("INVALID_THRESHOLD", "Stock thresholds cannot be negative")
	}
	if initialStock < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Initial stock cannot be negative")
	}

	item := &StockItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CardNo:            cardNo,
		StoreName:         storeName,
		Description:       description,
		CodeNo:            codeNo,
		Unit:              unit,
		Group:             group,
		Movement:          movement,
		Location:          loc,
		MaxStock:          maxStock,
		ReorderStock:      reorderStock,
		MinStock:          minStock,
		CurrentBalance:    initialStock,
		TotalReceived:     initialStock,
	}

	item.AddDomainEvent(NewStockItemCreatedEvent(item))
	return item, nil
}

// ApplyReceipt increases the balance for a receipt (terimaan) of the given quantity
func (i *StockItem) ApplyReceipt(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Receipt quantity must be positive")
	}

	i.CurrentBalance += quantity
	i.TotalReceived += quantity
	i.UpdatedAt = time.Now()

	i.AddDomainEvent(NewStockReceivedEvent(i, quantity))
	return nil
}

// ApplyIssue decreases the balance for an issue (keluaran) of the given quantity.
// Issuing more than the current balance is the one hard business rule of the
// ledger and fails with ErrInsufficientStock, leaving the item untouched.
func (i *StockItem) ApplyIssue(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Issue quantity must be positive")
	}
	if quantity > i.CurrentBalance {
		return shared.ErrInsufficientStock
	}

	i.CurrentBalance -= quantity
	i.TotalIssued += quantity
	i.UpdatedAt = time.Now()

	i.AddDomainEvent(NewStockIssuedEvent(i, quantity))
	if i.IsLowStock() {
		i.AddDomainEvent(NewStockBelowMinimumEvent(i))
	}
	return nil
}

// ReverseReceipt undoes a previously applied receipt before its record is
// deleted. No floor check is applied: reversing out of causal order can drive
// the aggregates negative, which mirrors the stock card's paper semantics.
func (i *StockItem) ReverseReceipt(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Reversal quantity must be positive")
	}

	i.CurrentBalance -= quantity
	i.TotalReceived -= quantity
	i.UpdatedAt = time.Now()

	i.AddDomainEvent(NewTransactionReversedEvent(i, KindReceipt, quantity))
	return nil
}

// ReverseIssue undoes a previously applied issue before its record is deleted
func (i *StockItem) ReverseIssue(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Reversal quantity must be positive")
	}

	i.CurrentBalance += quantity
	i.TotalIssued -= quantity
	i.UpdatedAt = time.Now()

	i.AddDomainEvent(NewTransactionReversedEvent(i, KindIssue, quantity))
	return nil
}

// IsLowStock returns true if the balance has reached the minimum threshold.
// The boundary is inclusive, so a card with an unset minimum reads as low
// once its balance hits zero.
func (i *StockItem) IsLowStock() bool {
	return i.CurrentBalance <= i.MinStock
}

// BalanceConsistent returns true if the running balance still matches the
// lifetime aggregates. A false result indicates an administrative override
// or an out-of-order reversal.
func (i *StockItem) BalanceConsistent() bool {
	return i.CurrentBalance == i.TotalReceived-i.TotalIssued
}
