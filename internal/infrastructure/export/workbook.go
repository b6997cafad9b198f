// Package export renders stock cards into KEW.PS-3 spreadsheets.
package export

import (
	"fmt"
	"sort"
	"time"

	appreport "github.com/kewps3/backend/internal/application/report"
	"github.com/kewps3/backend/internal/domain/stockcard"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const sheetName = "KEW.PS-3"

const (
	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006 15:04:05"
)

// ExcelWorkbookExporter renders the official KEW.PS-3 register layout
// using excelize. Section A carries the card master data, section B the
// ledger with a running balance.
type ExcelWorkbookExporter struct{}

// NewExcelWorkbookExporter creates a new ExcelWorkbookExporter
func NewExcelWorkbookExporter() *ExcelWorkbookExporter {
	return &ExcelWorkbookExporter{}
}

// Render produces the workbook bytes for the given card
func (e *ExcelWorkbookExporter) Render(item *stockcard.StockItem, transactions []*stockcard.Transaction, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    boxBorder(),
	})
	if err != nil {
		return nil, err
	}
	cellStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    boxBorder(),
	})
	if err != nil {
		return nil, err
	}

	widths := []float64{12, 14, 22, 10, 12, 12, 10, 12, 10, 12, 18}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheetName, col, col, w); err != nil {
			return nil, err
		}
	}

	// Document header
	if err := f.MergeCell(sheetName, "A1", "K1"); err != nil {
		return nil, err
	}
	setCell(f, "A1", "DAFTAR STOK", titleStyle)
	setCell(f, "A2", fmt.Sprintf("Nama Stor: %s", item.StoreName), 0)
	setCell(f, "F2", fmt.Sprintf("Perihal Stok: %s", item.Description), 0)

	// Section A
	setCell(f, "A4", "BAHAGIAN A", titleStyle)
	setCell(f, "K4", fmt.Sprintf("KEW.PS-3 No.Kad: %s", item.CardNo), 0)

	writeRow(f, 5, []string{"No. Kod", "Unit Pengukuran", "Kumpulan", "Pergerakan"}, headerStyle)
	writeRow(f, 6, []string{item.CodeNo, item.Unit, string(item.Group), string(item.Movement)}, cellStyle)

	if err := f.MergeCell(sheetName, "A8", "F8"); err != nil {
		return nil, err
	}
	setCell(f, "A8", "Lokasi Penyimpanan Stok", headerStyle)
	writeRow(f, 9, []string{"Gudang/Seksyen", "Baris", "Rak", "Tingkat", "Petak", "Kod Lokasi Penuh"}, headerStyle)
	writeRow(f, 10, []string{
		item.Location.Warehouse, item.Location.Row, item.Location.Rack,
		item.Location.Level, item.Location.Compartment, item.Location.Code(),
	}, cellStyle)

	writeRow(f, 12, []string{"PARAS STOK", "MAKSIMUM\n(Kuantiti)", "MENOKOK\n(Kuantiti)", "MINIMUM\n(Kuantiti)"}, headerStyle)
	writeRow(f, 13, []string{"", fmt.Sprint(item.MaxStock), fmt.Sprint(item.ReorderStock), fmt.Sprint(item.MinStock)}, cellStyle)

	// Section B
	setCell(f, "A15", "BAHAGIAN B", titleStyle)
	setCell(f, "A16", "Transaksi Stok", 0)

	lastRow, err := e.writeLedger(f, transactions, headerStyle, cellStyle)
	if err != nil {
		return nil, err
	}

	footer, err := excelize.CoordinatesToCellName(1, lastRow+2)
	if err != nil {
		return nil, err
	}
	setCell(f, footer, fmt.Sprintf("Dijana oleh Sistem KEW.PS-3 pada %s", generatedAt.Format(dateTimeLayout)), 0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeLedger writes the 11-column transaction table starting at row 17
// and returns the last row written
func (e *ExcelWorkbookExporter) writeLedger(f *excelize.File, transactions []*stockcard.Transaction, headerStyle, cellStyle int) (int, error) {
	merges := [][2]string{
		{"A17", "A18"}, {"B17", "B18"}, {"C17", "C18"},
		{"D17", "F17"}, {"G17", "H17"}, {"I17", "J17"}, {"K17", "K18"},
	}
	for _, m := range merges {
		if err := f.MergeCell(sheetName, m[0], m[1]); err != nil {
			return 0, err
		}
	}

	setCell(f, "A17", "Tarikh", headerStyle)
	setCell(f, "B17", "No. PK/\nBTB/\nBPSS/\nBPSI/\nBPIN", headerStyle)
	setCell(f, "C17", "Terima Daripada/\nKeluar Kepada", headerStyle)
	setCell(f, "D17", "TERIMAAN", headerStyle)
	setCell(f, "G17", "KELUARAN", headerStyle)
	setCell(f, "I17", "BAKI", headerStyle)
	setCell(f, "K17", "Nama Pegawai", headerStyle)

	setCell(f, "D18", "Kuantiti", headerStyle)
	setCell(f, "E18", "Seunit (RM)", headerStyle)
	setCell(f, "F18", "Jumlah (RM)", headerStyle)
	setCell(f, "G18", "Kuantiti", headerStyle)
	setCell(f, "H18", "Jumlah (RM)", headerStyle)
	setCell(f, "I18", "Kuantiti", headerStyle)
	setCell(f, "J18", "Jumlah (RM)", headerStyle)

	writeRow(f, 19, []string{
		"Baki dibawa ke hadapan...........................",
		"", "", "", "", "", "", "", "", "", "",
	}, cellStyle)

	ordered := make([]*stockcard.Transaction, len(transactions))
	copy(ordered, transactions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	runningBalance := 0
	for i, tx := range ordered {
		row := 20 + i
		cells := make([]string, 11)
		cells[0] = tx.Date.Format(dateLayout)
		cells[1] = fmt.Sprintf("%s-%s", tx.DocumentType, tx.DocumentNo)
		cells[2] = tx.Counterparty()

		if tx.Kind == stockcard.KindReceipt {
			cells[3] = fmt.Sprint(tx.Quantity)
			cells[4] = tx.UnitPrice.StringFixed(2)
			cells[5] = tx.TotalPrice.StringFixed(2)
			runningBalance += tx.Quantity
		} else {
			cells[6] = fmt.Sprint(tx.Quantity)
			cells[7] = tx.TotalPrice.StringFixed(2)
			runningBalance -= tx.Quantity
		}

		cells[8] = fmt.Sprint(runningBalance)
		cells[9] = decimal.NewFromInt(int64(runningBalance)).Mul(tx.UnitPrice).StringFixed(2)
		cells[10] = tx.OfficerName

		writeRow(f, row, cells, cellStyle)
	}

	notesRow := 20 + len(ordered) + 1
	notes := []string{
		"Nota:",
		"PK = Pesanan Kerajaan",
		"BTB = Borang Terimaan Barang-barang",
		"BPSS = Borang Permohonan Stok (KEW.PS-7)",
		"BPSI = Borang Permohonan Stok (KEW.PS-8)",
		"BPIN = Borang Pindahan Stok (KEW.PS-17)",
	}
	for i, note := range notes {
		cell, err := excelize.CoordinatesToCellName(1, notesRow+i)
		if err != nil {
			return 0, err
		}
		setCell(f, cell, note, 0)
	}

	return notesRow + len(notes) - 1, nil
}

func setCell(f *excelize.File, cell, value string, style int) {
	_ = f.SetCellValue(sheetName, cell, value)
	if style != 0 {
		_ = f.SetCellStyle(sheetName, cell, cell, style)
	}
}

func writeRow(f *excelize.File, row int, values []string, style int) {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			continue
		}
		setCell(f, cell, value, style)
	}
}

func boxBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}

// Ensure ExcelWorkbookExporter implements WorkbookExporter
var _ appreport.WorkbookExporter = (*ExcelWorkbookExporter)(nil)
