package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	reportapp "github.com/kewps3/backend/internal/application/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles report and export API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.Service
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes registers the report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/items/:id")
	{
		reports.GET("/preview", h.Preview)
		reports.GET("/document", h.Document)
		reports.GET("/quarterly", h.Quarterly)
		reports.GET("/export", h.Export)
	}
}

// Preview returns the on-screen stock card summary
func (h *ReportHandler) Preview(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid stock item ID")
		return
	}

	preview, err := h.reportService.Preview(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, preview)
}

// Document returns the official KEW.PS-3 document text
func (h *ReportHandler) Document(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid stock item ID")
		return
	}

	doc, err := h.reportService.Document(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, doc)
}

// Quarterly returns the quarterly movement summary for one year.
// The year query parameter defaults to the current year.
func (h *ReportHandler) Quarterly(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid stock item ID")
		return
	}

	year := 0
	if raw := c.Query("year"); raw != "" {
		year, err = strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "Invalid year")
			return
		}
	}

	summary, err := h.reportService.Quarterly(c.Request.Context(), id, year)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, summary)
}

// Export streams the KEW.PS-3 spreadsheet for download
func (h *ReportHandler) Export(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid stock item ID")
		return
	}

	workbook, err := h.reportService.ExportWorkbook(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", workbook.Filename))
	c.Data(http.StatusOK, xlsxContentType, workbook.Data)
}
