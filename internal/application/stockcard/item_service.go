package stockcard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kewps3/backend/internal/domain/shared"
	"github.com/kewps3/backend/internal/domain/stockcard"
)

// ItemService handles stock card lifecycle operations: opening cards,
// editing master data, and closing cards together with their ledger.
type ItemService struct {
	itemRepo       stockcard.StockItemRepository
	txRepo         stockcard.TransactionRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo stockcard.StockItemRepository, txRepo stockcard.TransactionRepository, txScope TransactionScope) *ItemService {
	return &ItemService{
		itemRepo: itemRepo,
		txRepo:   txRepo,
		txScope:  txScope,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ItemService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *ItemService) publishDomainEvents(ctx context.Context, item *stockcard.StockItem) {
	if s.eventPublisher == nil {
		return
	}
	events := item.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	// Publish events (errors are logged by the event bus, not propagated)
	_ = s.eventPublisher.Publish(ctx, events...)
	item.ClearDomainEvents()
}

// Create opens a new stock card. The card number is assigned automatically:
// one past the highest number in use, zero padded to three digits.
func (s *ItemService) Create(ctx context.Context, req CreateStockItemRequest) (*StockItemResponse, error) {
	var item *stockcard.StockItem

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		last, err := repos.ItemRepo().LastCardNumber(ctx)
		if err != nil {
			return err
		}

		item, err = stockcard.NewStockItem(
			fmt.Sprintf("%03d", last+1),
			req.StoreName,
			req.Description,
			req.CodeNo,
			req.Unit,
			stockcard.StockGroup(req.Group),
			stockcard.Movement(req.Movement),
			stockcard.Location{
				Warehouse:   req.Warehouse,
				Row:         req.Row,
				Rack:        req.Rack,
				Level:       req.Level,
				Compartment: req.Compartment,
			},
			req.MaxStock,
			req.ReorderStock,
			req.MinStock,
			req.InitialStock,
		)
		if err != nil {
			return err
		}

		return repos.ItemRepo().Save(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, item)

	response := ToStockItemResponse(item)
	return &response, nil
}

// GetByID retrieves a stock card by ID
func (s *ItemService) GetByID(ctx context.Context, id uuid.UUID) (*StockItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToStockItemResponse(item)
	return &response, nil
}

// GetByCardNo retrieves a stock card by its card number
func (s *ItemService) GetByCardNo(ctx context.Context, cardNo string) (*StockItemResponse, error) {
	item, err := s.itemRepo.FindByCardNo(ctx, cardNo)
	if err != nil {
		return nil, err
	}
	response := ToStockItemResponse(item)
	return &response, nil
}

// List retrieves all stock cards in card number order
func (s *ItemService) List(ctx context.Context) ([]StockItemResponse, error) {
	items, err := s.itemRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]StockItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, ToStockItemResponse(item))
	}
	return responses, nil
}

// Update edits the master data of a stock card. When the request carries
// balance overrides they are written as-is: the store keeper takes
// responsibility for the resulting figures, typically after a physical
// count.
func (s *ItemService) Update(ctx context.Context, id uuid.UUID, req UpdateStockItemRequest) (*StockItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	group := stockcard.StockGroup(req.Group)
	if !group.IsValid() {
		return nil, shared.NewDomainError("INVALID_GROUP", "Stock group must be A or B")
	}
	movement := stockcard.Movement(req.Movement)
	if !movement.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT", "Movement status must be AKTIF or TIDAK AKTIF")
	}
	if req.MaxStock < 0 || req.ReorderStock < 0 || req.MinStock < 0 {
		return nil, shared.NewDomainError("INVALID_THRESHOLD", "Stock thresholds cannot be negative")
	}

	item.StoreName = req.StoreName
	item.Description = req.Description
	item.CodeNo = req.CodeNo
	item.Unit = req.Unit
	item.Group = group
	item.Movement = movement
	item.Location = stockcard.Location{
		Warehouse:   req.Warehouse,
		Row:         req.Row,
		Rack:        req.Rack,
		Level:       req.Level,
		Compartment: req.Compartment,
	}
	item.MaxStock = req.MaxStock
	item.ReorderStock = req.ReorderStock
	item.MinStock = req.MinStock

	if req.CurrentBalance != nil {
		item.CurrentBalance = *req.CurrentBalance
	}
	if req.TotalReceived != nil {
		item.TotalReceived = *req.TotalReceived
	}
	if req.TotalIssued != nil {
		item.TotalIssued = *req.TotalIssued
	}
	item.UpdatedAt = time.Now()

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToStockItemResponse(item)
	return &response, nil
}

// Delete closes a stock card and removes its entire ledger with it.
// Transactions never outlive their card.
func (s *ItemService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.ItemRepo().FindByID(ctx, id); err != nil {
			return err
		}
		if err := repos.TxRepo().DeleteByStockItem(ctx, id); err != nil {
			return err
		}
		return repos.ItemRepo().Delete(ctx, id)
	})
}

// Dashboard returns the store-wide counters for the dashboard screen
func (s *ItemService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	totalItems, err := s.itemRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.itemRepo.CountLowStock(ctx)
	if err != nil {
		return nil, err
	}
	totalTx, err := s.txRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	receipts, err := s.txRepo.CountByKind(ctx, stockcard.KindReceipt)
	if err != nil {
		return nil, err
	}
	issues, err := s.txRepo.CountByKind(ctx, stockcard.KindIssue)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalItems:        totalItems,
		TotalTransactions: totalTx,
		ReceiptCount:      receipts,
		IssueCount:        issues,
		LowStockCount:     lowStock,
	}, nil
}
