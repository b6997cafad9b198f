package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	stockcardapp "github.com/kewps3/backend/internal/application/stockcard"
)

// TransactionHandler handles ledger API endpoints
type TransactionHandler struct {
	BaseHandler
	ledgerService *stockcardapp.LedgerService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(ledgerService *stockcardapp.LedgerService) *TransactionHandler {
	return &TransactionHandler{ledgerService: ledgerService}
}

// RegisterRoutes registers the ledger routes
func (h *TransactionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	txs := rg.Group("/transactions")
	{
		txs.GET("", h.List)
		txs.POST("", h.Record)
		txs.GET("/:id", h.Get)
		txs.PUT("/:id", h.Edit)
		txs.DELETE("/:id", h.Reverse)
	}
	rg.GET("/items/:id/transactions", h.ListByItem)
}

// List returns all ledger entries, most recent first
func (h *TransactionHandler) List(c *gin.Context) {
	txs, err := h.ledgerService.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, txs)
}

// ListByItem returns the ledger of one stock card, most recent first
func (h *TransactionHandler) ListByItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid stock item ID")
		return
	}

	txs, err := h.ledgerService.ListByItem(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, txs)
}

// Get returns one ledger entry
func (h *TransactionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID")
		return
	}

	tx, err := h.ledgerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, tx)
}

// Record books a receipt or issue against a stock card
func (h *TransactionHandler) Record(c *gin.Context) {
	var req stockcardapp.RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tx, err := h.ledgerService.Record(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, tx)
}

// Edit corrects an existing ledger entry. The old movement is backed out
// of the card balance before the new one is applied.
func (h *TransactionHandler) Edit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID")
		return
	}

	var req stockcardapp.EditTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tx, err := h.ledgerService.Edit(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, tx)
}

// Reverse deletes a ledger entry and backs its movement out of the card
func (h *TransactionHandler) Reverse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID")
		return
	}

	if err := h.ledgerService.Reverse(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
