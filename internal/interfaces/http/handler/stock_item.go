package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	stockcardapp "github.com/kewps3/backend/internal/application/stockcard"
)

// StockItemHandler handles stock card API endpoints
type StockItemHandler struct {
	BaseHandler
	itemService *stockcardapp.ItemService
}

// NewStockItemHandler creates a new StockItemHandler
func NewStockItemHandler(itemService *stockcardapp.ItemService) *StockItemHandler {
	return &StockItemHandler{itemService: itemService}
}

// RegisterRoutes registers the stock card routes
func (h *StockItemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/items")
	{
		items.GET("", h.List)
		items.POST("", h.Create)
		items.GET("/:id", h.Get)
		items.PUT("/:id", h.Update)
		items.DELETE("/:id", h.Delete)
	}
	rg.GET("/cards/:cardNo", h.GetByCardNo)
	rg.GET("/dashboard", h.Dashboard)
}

// List returns all stock cards ordered by card number
func (h *StockItemHandler) List(c *gin.Context) {
	items, err := h.itemService.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, items)
}

// Get returns one stock card by ID
func (h *StockItemHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid stock item ID")
		return
	}

	item, err := h.itemService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, item)
}

// GetByCardNo returns one stock card by its card number
func (h *StockItemHandler) GetByCardNo(c *gin.Context) {
	item, err := h.itemService.GetByCardNo(c.Request.Context(), c.Param("cardNo"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, item)
}

// Create opens a new stock card
func (h *StockItemHandler) Create(c *gin.Context) {
	var req stockcardapp.CreateStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.itemService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, item)
}

// Update edits a stock card's master data, including the administrative
// balance overrides
func (h *StockItemHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid stock item ID")
		return
	}

	var req stockcardapp.UpdateStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.itemService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete removes a stock card together with its ledger
func (h *StockItemHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid stock item ID")
		return
	}

	if err := h.itemService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Dashboard returns store-wide counters
func (h *StockItemHandler) Dashboard(c *gin.Context) {
	stats, err := h.itemService.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, stats)
}
