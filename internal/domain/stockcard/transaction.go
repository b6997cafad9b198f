package stockcard

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kewps3/backend/internal/domain/shared"
)

// TransactionKind distinguishes receipts from issues on the stock card
type TransactionKind string

const (
	// KindReceipt is stock coming into the store (Terimaan)
	KindReceipt TransactionKind = "RECEIPT"
	// KindIssue is stock going out of the store (Keluaran)
	KindIssue TransactionKind = "ISSUE"
)

// IsValid returns true if the transaction kind is valid
func (k TransactionKind) IsValid() bool {
	return k == KindReceipt || k == KindIssue
}

// Label returns the Malay ledger label for the kind
func (k TransactionKind) Label() string {
	if k == KindReceipt {
		return "Terimaan"
	}
	return "Keluaran"
}

// DocumentType is the source document backing a ledger entry
type DocumentType string

const (
	DocumentPK   DocumentType = "PK"   // Pesanan Kerajaan
	DocumentBTB  DocumentType = "BTB"  // Borang Terimaan Barang-barang
	DocumentBPSS DocumentType = "BPSS" // Borang Permohonan Stok (KEW.PS-7)
	DocumentBPSI DocumentType = "BPSI" // Borang Permohonan Stok (KEW.PS-8)
	DocumentBPIN DocumentType = "BPIN" // Borang Pindahan Stok (KEW.PS-17)
)

// IsValid returns true if the document type is valid
func (d DocumentType) IsValid() bool {
	switch d {
	case DocumentPK, DocumentBTB, DocumentBPSS, DocumentBPSI, DocumentBPIN:
		return true
	}
	return false
}

// Description returns the full Malay name of the document type
func (d DocumentType) Description() string {
	switch d {
	case DocumentPK:
		return "Pesanan Kerajaan"
	case DocumentBTB:
		return "Borang Terimaan Barang-barang"
	case DocumentBPSS:
		return "Borang Permohonan Stok (KEW.PS-7)"
	case DocumentBPSI:
		return "Borang Permohonan Stok (KEW.PS-8)"
	case DocumentBPIN:
		return "Borang Pindahan Stok (KEW.PS-17)"
	}
	return string(d)
}

// Transaction is one ledger entry on a stock card. The item description is
// denormalized onto the record so transaction listings and exports survive
// later edits to the item. RecordedAt is the system timestamp used for
// recency ordering; Date is the user-entered document date.
type Transaction struct {
	shared.BaseEntity
	StockItemID  uuid.UUID       `gorm:"type:varchar(36);not null;index"`
	Description  string          `gorm:"type:varchar(255);not null"`
	Date         time.Time       `gorm:"not null"`
	DocumentType DocumentType    `gorm:"type:varchar(10);not null"`
	DocumentNo   string          `gorm:"type:varchar(50);not null"`
	Kind         TransactionKind `gorm:"type:varchar(10);not null;index"`
	Quantity     int             `gorm:"not null"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalPrice   decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	ReceivedFrom string          `gorm:"type:varchar(200)"`
	IssuedTo     string          `gorm:"type:varchar(200)"`
	OfficerName  string          `gorm:"type:varchar(200);not null"`
	RecordedAt   time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Transaction) TableName() string {
	return "transactions"
}

// NewTransaction creates a validated ledger entry for the given stock item.
// The total price is always derived from quantity and unit price.
func NewTransaction(item *StockItem, date time.Time, docType DocumentType, docNo string, kind TransactionKind, quantity int, unitPrice decimal.Decimal, counterparty, officerName string) (*Transaction, error) {
	if item == nil {
		return nil, shared.ErrItemNotFound
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Transaction date is required")
	}
	if !docType.IsValid() {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_TYPE", "Document type must be PK, BTB, BPSS, BPSI or BPIN")
	}
	if strings.TrimSpace(docNo) == "" {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_NO", "Document number cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Transaction kind must be RECEIPT or ISSUE")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if strings.TrimSpace(officerName) == "" {
		return nil, shared.NewDomainError("INVALID_OFFICER", "Officer name cannot be empty")
	}

	tx := &Transaction{
		BaseEntity:   shared.NewBaseEntity(),
		StockItemID:  item.ID,
		Description:  item.Description,
		Date:         date,
		DocumentType: docType,
		DocumentNo:   docNo,
		Kind:         kind,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		OfficerName:  officerName,
		RecordedAt:   time.Now(),
	}
	if kind == KindReceipt {
		tx.ReceivedFrom = counterparty
	} else {
		tx.IssuedTo = counterparty
	}
	tx.RecomputeTotal()
	return tx, nil
}

// RecomputeTotal rederives the total price from quantity and unit price
func (t *Transaction) RecomputeTotal() {
	t.TotalPrice = t.UnitPrice.Mul(decimal.NewFromInt(int64(t.Quantity)))
}

// Counterparty returns the party on the other side of the entry:
// the supplier for a receipt, the recipient for an issue.
func (t *Transaction) Counterparty() string {
	if t.Kind == KindReceipt {
		return t.ReceivedFrom
	}
	return t.IssuedTo
}
