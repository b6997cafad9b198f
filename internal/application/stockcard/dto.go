package stockcard

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kewps3/backend/internal/domain/stockcard"
)

// StockItemResponse represents a stock card in API responses
type StockItemResponse struct {
	ID             uuid.UUID                `json:"id"`
	CardNo         string                   `json:"card_no"`
	StoreName      string                   `json:"store_name"`
	Description    string                   `json:"description"`
	CodeNo         string                   `json:"code_no"`
	Unit           string                   `json:"unit"`
	Group          stockcard.StockGroup     `json:"group"`
	Movement       stockcard.Movement       `json:"movement"`
	Warehouse      string                   `json:"warehouse"`
	Row            string                   `json:"row"`
	Rack           string                   `json:"rack"`
	Level          string                   `json:"level"`
	Compartment    string                   `json:"compartment"`
	LocationCode   string                   `json:"location_code"`
	MaxStock       int                      `json:"max_stock"`
	ReorderStock   int                      `json:"reorder_stock"`
	MinStock       int                      `json:"min_stock"`
	CurrentBalance int                      `json:"current_balance"`
	TotalReceived  int                      `json:"total_received"`
	TotalIssued    int                      `json:"total_issued"`
	IsLowStock     bool                     `json:"is_low_stock"`
	Status         string                   `json:"status"`
	StatusSeverity stockcard.StatusSeverity `json:"status_severity"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
}

// ToStockItemResponse converts a domain stock item to a response DTO
func ToStockItemResponse(item *stockcard.StockItem) StockItemResponse {
	status := stockcard.Classify(item)
	return StockItemResponse{
		ID:             item.ID,
		CardNo:         item.CardNo,
		StoreName:      item.StoreName,
		Description:    item.Description,
		CodeNo:         item.CodeNo,
		Unit:           item.Unit,
		Group:          item.Group,
		Movement:       item.Movement,
		Warehouse:      item.Location.Warehouse,
		Row:            item.Location.Row,
		Rack:           item.Location.Rack,
		Level:          item.Location.Level,
		Compartment:    item.Location.Compartment,
		LocationCode:   item.Location.Code(),
		MaxStock:       item.MaxStock,
		ReorderStock:   item.ReorderStock,
		MinStock:       item.MinStock,
		CurrentBalance: item.CurrentBalance,
		TotalReceived:  item.TotalReceived,
		TotalIssued:    item.TotalIssued,
		IsLowStock:     item.IsLowStock(),
		Status:         status.Label,
		StatusSeverity: status.Severity,
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
}

// CreateStockItemRequest represents a request to open a new stock card
type CreateStockItemRequest struct {
	StoreName    string `json:"store_name" binding:"required,max=200"`
	Description  string `json:"description" binding:"required,max=255"`
	CodeNo       string `json:"code_no" binding:"max=50"`
	Unit         string `json:"unit" binding:"required,max=30"`
	Group        string `json:"group" binding:"required,oneof=A B"`
	Movement     string `json:"movement" binding:"required,oneof='AKTIF' 'TIDAK AKTIF'"`
	Warehouse    string `json:"warehouse" binding:"max=100"`
	Row          string `json:"row" binding:"max=50"`
	Rack         string `json:"rack" binding:"max=50"`
	Level        string `json:"level" binding:"max=50"`
	Compartment  string `json:"compartment" binding:"max=50"`
	MaxStock     int    `json:"max_stock" binding:"min=0"`
	ReorderStock int    `json:"reorder_stock" binding:"min=0"`
	MinStock     int    `json:"min_stock" binding:"min=0"`
	InitialStock int    `json:"initial_stock" binding:"min=0"`
}

// UpdateStockItemRequest represents an edit of a stock card. The balance
// fields are optional administrative overrides: when set, they replace the
// ledger-maintained values directly and may break the balance invariant on
// purpose.
type UpdateStockItemRequest struct {
	StoreName      string `json:"store_name" binding:"required,max=200"`
	Description    string `json:"description" binding:"required,max=255"`
	CodeNo         string `json:"code_no" binding:"max=50"`
	Unit           string `json:"unit" binding:"required,max=30"`
	Group          string `json:"group" binding:"required,oneof=A B"`
	Movement       string `json:"movement" binding:"required,oneof='AKTIF' 'TIDAK AKTIF'"`
	Warehouse      string `json:"warehouse" binding:"max=100"`
	Row            string `json:"row" binding:"max=50"`
	Rack           string `json:"rack" binding:"max=50"`
	Level          string `json:"level" binding:"max=50"`
	Compartment    string `json:"compartment" binding:"max=50"`
	MaxStock       int    `json:"max_stock" binding:"min=0"`
	ReorderStock   int    `json:"reorder_stock" binding:"min=0"`
	MinStock       int    `json:"min_stock" binding:"min=0"`
	CurrentBalance *int   `json:"current_balance"`
	TotalReceived  *int   `json:"total_received"`
	TotalIssued    *int   `json:"total_issued"`
}

// TransactionResponse represents a ledger entry in API responses
type TransactionResponse struct {
	ID           uuid.UUID                 `json:"id"`
	StockItemID  uuid.UUID                 `json:"stock_item_id"`
	Description  string                    `json:"description"`
	Date         time.Time                 `json:"date"`
	DocumentType stockcard.DocumentType    `json:"document_type"`
	DocumentNo   string                    `json:"document_no"`
	Kind         stockcard.TransactionKind `json:"kind"`
	KindLabel    string                    `json:"kind_label"`
	Quantity     int                       `json:"quantity"`
	UnitPrice    decimal.Decimal           `json:"unit_price"`
	TotalPrice   decimal.Decimal           `json:"total_price"`
	Counterparty string                    `json:"counterparty"`
	OfficerName  string                    `json:"officer_name"`
	RecordedAt   time.Time                 `json:"recorded_at"`
}

// ToTransactionResponse converts a domain transaction to a response DTO
func ToTransactionResponse(tx *stockcard.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           tx.ID,
		StockItemID:  tx.StockItemID,
		Description:  tx.Description,
		Date:         tx.Date,
		DocumentType: tx.DocumentType,
		DocumentNo:   tx.DocumentNo,
		Kind:         tx.Kind,
		KindLabel:    tx.Kind.Label(),
		Quantity:     tx.Quantity,
		UnitPrice:    tx.UnitPrice,
		TotalPrice:   tx.TotalPrice,
		Counterparty: tx.Counterparty(),
		OfficerName:  tx.OfficerName,
		RecordedAt:   tx.RecordedAt,
	}
}

// RecordTransactionRequest represents a request to record a ledger entry
type RecordTransactionRequest struct {
	StockItemID  uuid.UUID       `json:"stock_item_id" binding:"required"`
	Date         time.Time       `json:"date" binding:"required"`
	DocumentType string          `json:"document_type" binding:"required,oneof=PK BTB BPSS BPSI BPIN"`
	DocumentNo   string          `json:"document_no" binding:"required,max=50"`
	Kind         string          `json:"kind" binding:"required,oneof=RECEIPT ISSUE"`
	Quantity     int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Counterparty string          `json:"counterparty" binding:"max=200"`
	OfficerName  string          `json:"officer_name" binding:"required,max=200"`
}

// EditTransactionRequest represents a correction of an existing ledger entry.
// The stock item of the entry cannot change; everything else can.
type EditTransactionRequest struct {
	Date         time.Time       `json:"date" binding:"required"`
	DocumentType string          `json:"document_type" binding:"required,oneof=PK BTB BPSS BPSI BPIN"`
	DocumentNo   string          `json:"document_no" binding:"required,max=50"`
	Kind         string          `json:"kind" binding:"required,oneof=RECEIPT ISSUE"`
	Quantity     int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Counterparty string          `json:"counterparty" binding:"max=200"`
	OfficerName  string          `json:"officer_name" binding:"required,max=200"`
}

// DashboardStats summarises the whole store for the dashboard screen
type DashboardStats struct {
	TotalItems        int64 `json:"total_items"`
	TotalTransactions int64 `json:"total_transactions"`
	ReceiptCount      int64 `json:"receipt_count"`
	IssueCount        int64 `json:"issue_count"`
	LowStockCount     int64 `json:"low_stock_count"`
}
