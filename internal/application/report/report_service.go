// Package report exposes the stock card reporting operations: on-screen
// previews, the official KEW.PS-3 document text, quarterly summaries, and
// spreadsheet export.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainreport "github.com/kewps3/backend/internal/domain/report"
	"github.com/kewps3/backend/internal/domain/stockcard"
)

// WorkbookExporter renders one stock card and its ledger into a KEW.PS-3
// spreadsheet. Implemented by the excelize exporter in infrastructure.
type WorkbookExporter interface {
	// Render produces the workbook bytes for the given card
	Render(item *stockcard.StockItem, transactions []*stockcard.Transaction, generatedAt time.Time) ([]byte, error)
}

// PreviewResponse carries the rendered on-screen summary of a card
type PreviewResponse struct {
	CardNo      string    `json:"card_no"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	GeneratedAt time.Time `json:"generated_at"`
}

// DocumentResponse carries the official KEW.PS-3 document text
type DocumentResponse struct {
	CardNo      string    `json:"card_no"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	GeneratedAt time.Time `json:"generated_at"`
}

// QuarterlyResponse carries one year's quarterly movement of a card
type QuarterlyResponse struct {
	CardNo   string                        `json:"card_no"`
	Year     int                           `json:"year"`
	Quarters []domainreport.QuarterSummary `json:"quarters"`
}

// WorkbookResponse carries the exported spreadsheet and its filename
type WorkbookResponse struct {
	Filename string `json:"filename"`
	Data     []byte `json:"-"`
}

// Service renders reports for stock cards
type Service struct {
	itemRepo stockcard.StockItemRepository
	txRepo   stockcard.TransactionRepository
	exporter WorkbookExporter
	now      func() time.Time
}

// NewService creates a new report Service
func NewService(itemRepo stockcard.StockItemRepository, txRepo stockcard.TransactionRepository, exporter WorkbookExporter) *Service {
	return &Service{
		itemRepo: itemRepo,
		txRepo:   txRepo,
		exporter: exporter,
		now:      time.Now,
	}
}

func (s *Service) load(ctx context.Context, itemID uuid.UUID) (*stockcard.StockItem, []*stockcard.Transaction, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	txs, err := s.txRepo.FindByStockItem(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	return item, txs, nil
}

// Preview renders the on-screen stock card summary
func (s *Service) Preview(ctx context.Context, itemID uuid.UUID) (*PreviewResponse, error) {
	item, txs, err := s.load(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return &PreviewResponse{
		CardNo:      item.CardNo,
		Description: item.Description,
		Content:     domainreport.GenerateStockCard(item, txs),
		GeneratedAt: s.now(),
	}, nil
}

// Document renders the official KEW.PS-3 document text for a card
func (s *Service) Document(ctx context.Context, itemID uuid.UUID) (*DocumentResponse, error) {
	item, txs, err := s.load(ctx, itemID)
	if err != nil {
		return nil, err
	}
	generatedAt := s.now()
	return &DocumentResponse{
		CardNo:      item.CardNo,
		Description: item.Description,
		Content:     domainreport.GenerateDocumentContent(item, txs, generatedAt),
		GeneratedAt: generatedAt,
	}, nil
}

// Quarterly returns the four quarter summaries of a card for the given year.
// A zero year means the current year.
func (s *Service) Quarterly(ctx context.Context, itemID uuid.UUID, year int) (*QuarterlyResponse, error) {
	item, txs, err := s.load(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if year <= 0 {
		year = s.now().Year()
	}
	return &QuarterlyResponse{
		CardNo:   item.CardNo,
		Year:     year,
		Quarters: domainreport.QuarterlyBreakdown(txs, year),
	}, nil
}

// ExportWorkbook renders the card into a KEW.PS-3 spreadsheet
func (s *Service) ExportWorkbook(ctx context.Context, itemID uuid.UUID) (*WorkbookResponse, error) {
	item, txs, err := s.load(ctx, itemID)
	if err != nil {
		return nil, err
	}
	generatedAt := s.now()
	data, err := s.exporter.Render(item, txs, generatedAt)
	if err != nil {
		return nil, err
	}
	return &WorkbookResponse{
		Filename: fmt.Sprintf("KEW.PS-3_%s_%s.xlsx", item.CardNo, generatedAt.Format("02-01-2006")),
		Data:     data,
	}, nil
}
