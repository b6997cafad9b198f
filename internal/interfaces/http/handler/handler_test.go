package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	reportapp "github.com/kewps3/backend/internal/application/report"
	stockcardapp "github.com/kewps3/backend/internal/application/stockcard"
	"github.com/kewps3/backend/internal/domain/stockcard"
	"github.com/kewps3/backend/internal/infrastructure/export"
	"github.com/kewps3/backend/internal/infrastructure/persistence"
	"github.com/kewps3/backend/internal/interfaces/http/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&stockcard.StockItem{}, &stockcard.Transaction{}))

	itemRepo := persistence.NewGormStockItemRepository(db)
	txRepo := persistence.NewGormTransactionRepository(db)
	scope := persistence.NewGormTransactionScope(db)

	itemService := stockcardapp.NewItemService(itemRepo, txRepo, scope)
	ledgerService := stockcardapp.NewLedgerService(itemRepo, txRepo, scope)
	reportService := reportapp.NewService(itemRepo, txRepo, export.NewExcelWorkbookExporter())

	engine := gin.New()
	router.NewRouter(engine).
		Register(NewStockItemHandler(itemService)).
		Register(NewTransactionHandler(ledgerService)).
		Register(NewReportHandler(reportService)).
		Register(NewSystemHandler(nil)).
		Setup()

	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var resp struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	return resp.Data
}

func createItem(t *testing.T, engine *gin.Engine) map[string]any {
	t.Helper()

	w := doJSON(t, engine, http.MethodPost, "/api/v1/items", gin.H{
		"store_name":    "Stor Utama",
		"description":   "Kertas A4",
		"code_no":       "KP-001",
		"unit":          "Rim",
		"group":         "A",
		"movement":      "AKTIF",
		"warehouse":     "G1",
		"row":           "B2",
		"rack":          "R3",
		"level":         "T1",
		"compartment":   "P4",
		"max_stock":     200,
		"reorder_stock": 50,
		"min_stock":     10,
		"initial_stock": 100,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeData(t, w)
}

func TestStockItemHandler_CreateAndGet(t *testing.T) {
	engine := newTestServer(t)

	created := createItem(t, engine)
	assert.Equal(t, "001", created["card_no"])
	assert.Equal(t, float64(100), created["current_balance"])

	w := doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/items/%s", created["id"]), nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeData(t, w)
	assert.Equal(t, "Kertas A4", got["description"])
	assert.Equal(t, "G1-B2/R3/T1/P4", got["location_code"])
}

func TestStockItemHandler_GetUnknownID(t *testing.T) {
	engine := newTestServer(t)

	w := doJSON(t, engine, http.MethodGet, "/api/v1/items/9f4e1a8e-0000-0000-0000-000000000000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "ITEM_NOT_FOUND", resp.Error.Code)
}

func TestStockItemHandler_CreateValidation(t *testing.T) {
	engine := newTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/items", gin.H{
		"store_name": "Stor Utama",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransactionHandler_RecordReceiptAndIssue(t *testing.T) {
	engine := newTestServer(t)
	item := createItem(t, engine)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/transactions", gin.H{
		"stock_item_id": item["id"],
		"date":          "2025-03-10T00:00:00Z",
		"document_type": "PK",
		"document_no":   "PK-2025-001",
		"kind":          "RECEIPT",
		"quantity":      40,
		"unit_price":    "3.50",
		"counterparty":  "Pembekal Sdn Bhd",
		"officer_name":  "Ahmad",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	tx := decodeData(t, w)
	assert.Equal(t, "140", tx["total_price"])

	w = doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/items/%s", item["id"]), nil)
	got := decodeData(t, w)
	assert.Equal(t, float64(140), got["current_balance"])
}

func TestTransactionHandler_InsufficientStock(t *testing.T) {
	engine := newTestServer(t)
	item := createItem(t, engine)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/transactions", gin.H{
		"stock_item_id": item["id"],
		"date":          "2025-03-10T00:00:00Z",
		"document_type": "BPSS",
		"document_no":   "BPSS-77",
		"kind":          "ISSUE",
		"quantity":      500,
		"unit_price":    "3.50",
		"counterparty":  "Unit Pentadbiran",
		"officer_name":  "Ahmad",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INSUFFICIENT_STOCK", resp.Error.Code)
	assert.Equal(t, "Kuantiti keluaran melebihi stok yang ada", resp.Error.Message)

	// Nothing was written to the ledger
	w = doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/items/%s/transactions", item["id"]), nil)
	var list struct {
		Data []any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Empty(t, list.Data)
}

func TestReportHandler_Preview(t *testing.T) {
	engine := newTestServer(t)
	item := createItem(t, engine)

	w := doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/items/%s/preview", item["id"]), nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Contains(t, data["content"], "MAKLUMAT ASAS")
	assert.Contains(t, data["content"], "Kertas A4")
}

func TestReportHandler_Export(t *testing.T) {
	engine := newTestServer(t)
	item := createItem(t, engine)

	w := doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/v1/items/%s/export", item["id"]), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "KEW.PS-3_001_")
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestSystemHandler_Info(t *testing.T) {
	engine := newTestServer(t)

	w := doJSON(t, engine, http.MethodGet, "/api/v1/system/info", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "KEW.PS-3 Backend API", data["name"])
}
