package stockcard

import (
	"context"

	"github.com/google/uuid"

	"github.com/kewps3/backend/internal/domain/shared"
	"github.com/kewps3/backend/internal/domain/stockcard"
)

// LedgerService records, corrects, and reverses ledger entries. Every
// mutation runs inside a transaction scope so the entry and the item's
// balance land atomically: a failed balance update never leaves an orphan
// record behind.
type LedgerService struct {
	itemRepo       stockcard.StockItemRepository
	txRepo         stockcard.TransactionRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(itemRepo stockcard.StockItemRepository, txRepo stockcard.TransactionRepository, txScope TransactionScope) *LedgerService {
	return &LedgerService{
		itemRepo: itemRepo,
		txRepo:   txRepo,
		txScope:  txScope,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *LedgerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *LedgerService) publishDomainEvents(ctx context.Context, item *stockcard.StockItem) {
	if s.eventPublisher == nil {
		return
	}
	events := item.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	item.ClearDomainEvents()
}

// Record applies a new ledger entry to its stock card. Receipts always
// succeed; issues fail with INSUFFICIENT_STOCK when the quantity exceeds the
// current balance, and in that case nothing is persisted.
func (s *LedgerService) Record(ctx context.Context, req RecordTransactionRequest) (*TransactionResponse, error) {
	var (
		item *stockcard.StockItem
		tx   *stockcard.Transaction
	)

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		item, err = repos.ItemRepo().FindByID(ctx, req.StockItemID)
		if err != nil {
			return err
		}

		tx, err = stockcard.NewTransaction(
			item,
			req.Date,
			stockcard.DocumentType(req.DocumentType),
			req.DocumentNo,
			stockcard.TransactionKind(req.Kind),
			req.Quantity,
			req.UnitPrice,
			req.Counterparty,
			req.OfficerName,
		)
		if err != nil {
			return err
		}

		if tx.Kind == stockcard.KindReceipt {
			err = item.ApplyReceipt(tx.Quantity)
		} else {
			err = item.ApplyIssue(tx.Quantity)
		}
		if err != nil {
			return err
		}

		if err := repos.TxRepo().Create(ctx, tx); err != nil {
			return err
		}
		return repos.ItemRepo().Save(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, item)

	response := ToTransactionResponse(tx)
	return &response, nil
}

// Reverse backs an entry out of the ledger and deletes its record. The
// balance adjustment is the mirror image of the original entry and carries
// no floor check: deleting old receipts after later issues can leave
// negative aggregates, which the status classifier surfaces as Habis Stok.
func (s *LedgerService) Reverse(ctx context.Context, txID uuid.UUID) error {
	var item *stockcard.StockItem

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		tx, err := repos.TxRepo().FindByID(ctx, txID)
		if err != nil {
			return err
		}

		item, err = repos.ItemRepo().FindByID(ctx, tx.StockItemID)
		if err != nil {
			return err
		}

		if tx.Kind == stockcard.KindReceipt {
			err = item.ReverseReceipt(tx.Quantity)
		} else {
			err = item.ReverseIssue(tx.Quantity)
		}
		if err != nil {
			return err
		}

		if err := repos.TxRepo().Delete(ctx, txID); err != nil {
			return err
		}
		return repos.ItemRepo().Save(ctx, item)
	})
	if err != nil {
		return err
	}

	s.publishDomainEvents(ctx, item)
	return nil
}

// Edit corrects an existing entry by reversing its old effect and applying
// the new one in a single transaction. An edit that would overdraw the
// balance rolls the whole correction back, original entry included.
func (s *LedgerService) Edit(ctx context.Context, txID uuid.UUID, req EditTransactionRequest) (*TransactionResponse, error) {
	var (
		item *stockcard.StockItem
		tx   *stockcard.Transaction
	)

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		tx, err = repos.TxRepo().FindByID(ctx, txID)
		if err != nil {
			return err
		}

		item, err = repos.ItemRepo().FindByID(ctx, tx.StockItemID)
		if err != nil {
			return err
		}

		newKind := stockcard.TransactionKind(req.Kind)
		newDocType := stockcard.DocumentType(req.DocumentType)

		// Validate the replacement entry before touching the balance
		replacement, err := stockcard.NewTransaction(item, req.Date, newDocType, req.DocumentNo,
			newKind, req.Quantity, req.UnitPrice, req.Counterparty, req.OfficerName)
		if err != nil {
			return err
		}

		if tx.Kind == stockcard.KindReceipt {
			err = item.ReverseReceipt(tx.Quantity)
		} else {
			err = item.ReverseIssue(tx.Quantity)
		}
		if err != nil {
			return err
		}

		if newKind == stockcard.KindReceipt {
			err = item.ApplyReceipt(req.Quantity)
		} else {
			err = item.ApplyIssue(req.Quantity)
		}
		if err != nil {
			return err
		}

		tx.Date = replacement.Date
		tx.DocumentType = replacement.DocumentType
		tx.DocumentNo = replacement.DocumentNo
		tx.Kind = replacement.Kind
		tx.Quantity = replacement.Quantity
		tx.UnitPrice = replacement.UnitPrice
		tx.ReceivedFrom = replacement.ReceivedFrom
		tx.IssuedTo = replacement.IssuedTo
		tx.OfficerName = replacement.OfficerName
		tx.RecomputeTotal()

		if err := repos.TxRepo().Update(ctx, tx); err != nil {
			return err
		}
		return repos.ItemRepo().Save(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, item)

	response := ToTransactionResponse(tx)
	return &response, nil
}

// GetByID retrieves a single ledger entry
func (s *LedgerService) GetByID(ctx context.Context, id uuid.UUID) (*TransactionResponse, error) {
	tx, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToTransactionResponse(tx)
	return &response, nil
}

// List retrieves all ledger entries, most recently recorded first
func (s *LedgerService) List(ctx context.Context) ([]TransactionResponse, error) {
	txs, err := s.txRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toTransactionResponses(txs), nil
}

// ListByItem retrieves the ledger of one stock card, most recently recorded first
func (s *LedgerService) ListByItem(ctx context.Context, stockItemID uuid.UUID) ([]TransactionResponse, error) {
	if _, err := s.itemRepo.FindByID(ctx, stockItemID); err != nil {
		return nil, err
	}
	txs, err := s.txRepo.FindByStockItem(ctx, stockItemID)
	if err != nil {
		return nil, err
	}
	return toTransactionResponses(txs), nil
}

func toTransactionResponses(txs []*stockcard.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		responses = append(responses, ToTransactionResponse(tx))
	}
	return responses
}
