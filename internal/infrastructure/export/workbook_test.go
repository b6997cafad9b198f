package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/kewps3/backend/internal/domain/stockcard"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testItem(t *testing.T) *stockcard.StockItem {
	t.Helper()

	loc := stockcard.Location{Warehouse: "G1", Row: "B2", Rack: "R3", Level: "T1", Compartment: "P4"}
	item, err := stockcard.NewStockItem("003", "Stor Utama", "Kertas A4", "KP-001", "Rim",
		stockcard.StockGroupA, stockcard.MovementActive, loc, 200, 50, 10, 0)
	require.NoError(t, err)
	return item
}

func testTransaction(t *testing.T, item *stockcard.StockItem, kind stockcard.TransactionKind, date time.Time, quantity int, unitPrice float64) *stockcard.Transaction {
	t.Helper()

	docType := stockcard.DocumentPK
	counterparty := "Pembekal Sdn Bhd"
	if kind == stockcard.KindIssue {
		docType = stockcard.DocumentBPSS
		counterparty = "Unit Pentadbiran"
	}
	tx, err := stockcard.NewTransaction(item, date, docType, "DOC-9", kind, quantity,
		decimal.NewFromFloat(unitPrice), counterparty, "Ahmad")
	require.NoError(t, err)
	return tx
}

func TestExcelWorkbookExporter_Render(t *testing.T) {
	item := testItem(t)
	// Deliberately out of date order; the ledger must be written oldest first
	txs := []*stockcard.Transaction{
		testTransaction(t, item, stockcard.KindIssue, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), 30, 4.50),
		testTransaction(t, item, stockcard.KindReceipt, time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), 120, 4.50),
	}
	generatedAt := time.Date(2025, 8, 15, 10, 30, 0, 0, time.UTC)

	data, err := NewExcelWorkbookExporter().Render(item, txs, generatedAt)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	cell := func(ref string) string {
		v, err := f.GetCellValue(sheetName, ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "DAFTAR STOK", cell("A1"))
	assert.Equal(t, "Nama Stor: Stor Utama", cell("A2"))
	assert.Equal(t, "KEW.PS-3 No.Kad: 003", cell("K4"))

	// Section A master data
	assert.Equal(t, "KP-001", cell("A6"))
	assert.Equal(t, "Rim", cell("B6"))
	assert.Equal(t, "G1-B2/R3/T1/P4", cell("F10"))
	assert.Equal(t, "200", cell("B13"))
	assert.Equal(t, "50", cell("C13"))
	assert.Equal(t, "10", cell("D13"))

	// Ledger headers and balance-forward row
	assert.Equal(t, "TERIMAAN", cell("D17"))
	assert.Equal(t, "KELUARAN", cell("G17"))
	assert.Equal(t, "BAKI", cell("I17"))
	assert.Equal(t, "Baki dibawa ke hadapan...........................", cell("A19"))

	// Oldest transaction first: the February receipt
	assert.Equal(t, "10/02/2025", cell("A20"))
	assert.Equal(t, "PK-DOC-9", cell("B20"))
	assert.Equal(t, "Pembekal Sdn Bhd", cell("C20"))
	assert.Equal(t, "120", cell("D20"))
	assert.Equal(t, "4.50", cell("E20"))
	assert.Equal(t, "540.00", cell("F20"))
	assert.Equal(t, "120", cell("I20"))

	// Then the March issue with the running balance carried down
	assert.Equal(t, "05/03/2025", cell("A21"))
	assert.Equal(t, "BPSS-DOC-9", cell("B21"))
	assert.Equal(t, "Unit Pentadbiran", cell("C21"))
	assert.Equal(t, "30", cell("G21"))
	assert.Equal(t, "135.00", cell("H21"))
	assert.Equal(t, "90", cell("I21"))
	assert.Equal(t, "405.00", cell("J21"))
	assert.Equal(t, "Ahmad", cell("K21"))

	// Notes block follows the ledger
	assert.Equal(t, "Nota:", cell("A23"))
	assert.Equal(t, "PK = Pesanan Kerajaan", cell("A24"))
	assert.Equal(t, "BPIN = Borang Pindahan Stok (KEW.PS-17)", cell("A28"))
	assert.Equal(t, "Dijana oleh Sistem KEW.PS-3 pada 15/08/2025 10:30:00", cell("A30"))
}

func TestExcelWorkbookExporter_Render_NoTransactions(t *testing.T) {
	item := testItem(t)

	data, err := NewExcelWorkbookExporter().Render(item, nil, time.Now())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(sheetName, "A21")
	require.NoError(t, err)
	assert.Equal(t, "Nota:", v)
}
