// Package report renders KEW.PS-3 stock cards into the text formats used by
// the preview screen and the official document export. The layouts follow
// Pekeliling Perbendaharaan Malaysia AM 6.3.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kewps3/backend/internal/domain/stockcard"
)

const (
	previewRule = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
	heavyRule   = "================================================================"
	sectionRule = "==================================="
	lightRule   = "----------------------------------------------------------------"

	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006 15:04:05"
)

// QuarterSummary aggregates one calendar quarter of ledger movement
type QuarterSummary struct {
	Quarter      string          `json:"quarter"`
	ReceiptQty   int             `json:"receipt_qty"`
	ReceiptValue decimal.Decimal `json:"receipt_value"`
	IssueQty     int             `json:"issue_qty"`
	IssueValue   decimal.Decimal `json:"issue_value"`
}

// QuarterlyBreakdown splits the given year's transactions into the four
// calendar quarters (Suku 1 to Suku 4). Quarters without movement stay at
// zero; transactions from other years are ignored. The document date of the
// transaction decides its quarter, not the recording timestamp.
func QuarterlyBreakdown(transactions []*stockcard.Transaction, year int) []QuarterSummary {
	quarters := make([]QuarterSummary, 4)
	for i := range quarters {
		quarters[i] = QuarterSummary{
			Quarter:      fmt.Sprintf("Suku %d", i+1),
			ReceiptValue: decimal.Zero,
			IssueValue:   decimal.Zero,
		}
	}

	for _, tx := range transactions {
		if tx.Date.Year() != year {
			continue
		}
		q := (int(tx.Date.Month()) - 1) / 3
		if tx.Kind == stockcard.KindReceipt {
			quarters[q].ReceiptQty += tx.Quantity
			quarters[q].ReceiptValue = quarters[q].ReceiptValue.Add(tx.TotalPrice)
		} else {
			quarters[q].IssueQty += tx.Quantity
			quarters[q].IssueValue = quarters[q].IssueValue.Add(tx.TotalPrice)
		}
	}

	return quarters
}

// GenerateStockCard renders the on-screen summary of one stock card: item
// details, stock levels, transaction value analysis, and the five most
// recently recorded entries.
func GenerateStockCard(item *stockcard.StockItem, transactions []*stockcard.Transaction) string {
	var sb strings.Builder

	sb.WriteString("📋 MAKLUMAT ASAS\n")
	sb.WriteString(previewRule + "\n")
	writeField(&sb, 15, "No. Kad", item.CardNo)
	writeField(&sb, 15, "Perihal Stok", item.Description)
	writeField(&sb, 15, "Kod Barang", item.CodeNo)
	writeField(&sb, 15, "Unit Ukuran", item.Unit)
	writeField(&sb, 15, "Stor/Jabatan", item.StoreName)
	writeField(&sb, 15, "Kumpulan", string(item.Group))
	writeField(&sb, 15, "Status", string(item.Movement))
	sb.WriteString("\n")

	sb.WriteString("📍 LOKASI PENYIMPANAN\n")
	sb.WriteString(previewRule + "\n")
	writeField(&sb, 15, "Gudang", item.Location.Warehouse)
	writeField(&sb, 15, "Baris", item.Location.Row)
	writeField(&sb, 15, "Rak", item.Location.Rack)
	writeField(&sb, 15, "Aras", item.Location.Level)
	writeField(&sb, 15, "Petak", item.Location.Compartment)
	sb.WriteString("\n")

	sb.WriteString("📊 TAHAP STOK\n")
	sb.WriteString(previewRule + "\n")
	writeField(&sb, 15, "Stok Semasa", fmt.Sprintf("%d %s", item.CurrentBalance, item.Unit))
	writeField(&sb, 15, "Stok Maksimum", fmt.Sprintf("%d %s", item.MaxStock, item.Unit))
	writeField(&sb, 15, "Tahap Reorder", fmt.Sprintf("%d %s", item.ReorderStock, item.Unit))
	writeField(&sb, 15, "Stok Minimum", fmt.Sprintf("%d %s", item.MinStock, item.Unit))
	writeField(&sb, 15, "Jumlah Diterima", fmt.Sprintf("%d %s", item.TotalReceived, item.Unit))
	writeField(&sb, 15, "Jumlah Keluaran", fmt.Sprintf("%d %s", item.TotalIssued, item.Unit))
	sb.WriteString("\n")

	if len(transactions) == 0 {
		sb.WriteString("💼 ANALISA TRANSAKSI\n")
		sb.WriteString(previewRule + "\n")
		sb.WriteString("Belum ada transaksi direkodkan untuk item ini.\n")
		return sb.String()
	}

	receipts := filterByKind(transactions, stockcard.KindReceipt)
	issues := filterByKind(transactions, stockcard.KindIssue)

	sb.WriteString("💼 ANALISA TRANSAKSI\n")
	sb.WriteString(previewRule + "\n")
	writeField(&sb, 15, "Jumlah Rekod", fmt.Sprintf("%d transaksi", len(transactions)))
	writeField(&sb, 15, "Terimaan", fmt.Sprintf("%d rekod", len(receipts)))
	writeField(&sb, 15, "Keluaran", fmt.Sprintf("%d rekod", len(issues)))
	writeField(&sb, 15, "Nilai Keseluruhan", ringgit(sumValue(transactions)))
	writeField(&sb, 15, "Nilai Terimaan", ringgit(sumValue(receipts)))
	writeField(&sb, 15, "Nilai Keluaran", ringgit(sumValue(issues)))

	sb.WriteString("\n")
	sb.WriteString("📅 TRANSAKSI TERKINI (5 Terbaru)\n")
	sb.WriteString(previewRule + "\n")
	for _, tx := range mostRecent(transactions, 5) {
		emoji := "📤"
		if tx.Kind == stockcard.KindReceipt {
			emoji = "📥"
		}
		sb.WriteString(fmt.Sprintf("%s %s | %s | %d unit | %s\n",
			emoji, tx.Date.Format(dateLayout), strings.ToUpper(tx.Kind.Label()), tx.Quantity, ringgit(tx.TotalPrice)))
	}

	return sb.String()
}

// GenerateDocumentContent renders the official KEW.PS-3 document text:
// BAHAGIAN A with the item master data, BAHAGIAN B with the full transaction
// list in document date order plus the quarterly summary for the year of
// generatedAt.
func GenerateDocumentContent(item *stockcard.StockItem, transactions []*stockcard.Transaction, generatedAt time.Time) string {
	var sb strings.Builder

	sb.WriteString("DOKUMEN KEW.PS-3\n")
	sb.WriteString("SISTEM PENGURUSAN STOK\n")
	sb.WriteString("Pekeliling Perbendaharaan Malaysia AM 6.3\n")
	sb.WriteString(heavyRule + "\n\n")

	sb.WriteString("BAHAGIAN A - MAKLUMAT STOK\n")
	sb.WriteString(sectionRule + "\n\n")

	sb.WriteString("MAKLUMAT ASAS:\n")
	writeField(&sb, 20, "No. Kad Stok", item.CardNo)
	writeField(&sb, 20, "Nama Stor", item.StoreName)
	writeField(&sb, 20, "Perihal Stok", item.Description)
	writeField(&sb, 20, "No. Kod", item.CodeNo)
	writeField(&sb, 20, "Unit Pengukuran", item.Unit)
	writeField(&sb, 20, "Kumpulan", string(item.Group))
	writeField(&sb, 20, "Status Pergerakan", string(item.Movement))
	sb.WriteString("\n")

	sb.WriteString("LOKASI PENYIMPANAN:\n")
	writeField(&sb, 20, "Gudang", item.Location.Warehouse)
	writeField(&sb, 20, "Baris", item.Location.Row)
	writeField(&sb, 20, "Rak", item.Location.Rack)
	writeField(&sb, 20, "Tingkat", item.Location.Level)
	writeField(&sb, 20, "Petak", item.Location.Compartment)
	sb.WriteString("\n")

	sb.WriteString("PARAS STOK:\n")
	writeField(&sb, 20, "Stok Maksimum", fmt.Sprintf("%d %s", item.MaxStock, item.Unit))
	writeField(&sb, 20, "Stok Reorder", fmt.Sprintf("%d %s", item.ReorderStock, item.Unit))
	writeField(&sb, 20, "Stok Minimum", fmt.Sprintf("%d %s", item.MinStock, item.Unit))
	writeField(&sb, 20, "Baki Semasa", fmt.Sprintf("%d %s", item.CurrentBalance, item.Unit))
	writeField(&sb, 20, "Jumlah Diterima", fmt.Sprintf("%d %s", item.TotalReceived, item.Unit))
	writeField(&sb, 20, "Jumlah Dikeluarkan", fmt.Sprintf("%d %s", item.TotalIssued, item.Unit))
	sb.WriteString("\n")

	if len(transactions) > 0 {
		writeTransactionSection(&sb, item, transactions, generatedAt.Year())
	}

	sb.WriteString(heavyRule + "\n")
	writeField(&sb, 15, "Dihasilkan oleh", "Sistem KEW.PS-3")
	writeField(&sb, 15, "Tarikh Dijana", generatedAt.Format(dateTimeLayout))
	writeField(&sb, 15, "Referens", "M.S. 6/13")
	sb.WriteString("\n")
	sb.WriteString("NOTA: Dokumen ini dijana secara automatik.\n")
	sb.WriteString("Sila semak ketepatan data sebelum kegunaan rasmi.\n")

	return sb.String()
}

func writeTransactionSection(sb *strings.Builder, item *stockcard.StockItem, transactions []*stockcard.Transaction, year int) {
	sb.WriteString("BAHAGIAN B - TRANSAKSI STOK\n")
	sb.WriteString(sectionRule + "\n\n")

	receiptQty := 0
	issueQty := 0
	for _, tx := range transactions {
		if tx.Kind == stockcard.KindReceipt {
			receiptQty += tx.Quantity
		} else {
			issueQty += tx.Quantity
		}
	}

	sb.WriteString("RINGKASAN TRANSAKSI:\n")
	writeField(sb, 20, "Jumlah Terimaan", fmt.Sprintf("%d %s", receiptQty, item.Unit))
	writeField(sb, 20, "Jumlah Keluaran", fmt.Sprintf("%d %s", issueQty, item.Unit))
	writeField(sb, 20, "Jumlah Nilai", ringgit(sumValue(transactions)))
	writeField(sb, 20, "Bilangan Transaksi", fmt.Sprintf("%d", len(transactions)))
	sb.WriteString("\n")

	sb.WriteString("SENARAI TRANSAKSI:\n")
	sb.WriteString(heavyRule + "\n")

	ordered := make([]*stockcard.Transaction, len(transactions))
	copy(ordered, transactions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	for _, tx := range ordered {
		writeField(sb, 11, "Tarikh", tx.Date.Format(dateLayout))
		writeField(sb, 11, "Jenis", strings.ToUpper(tx.Kind.Label()))
		writeField(sb, 11, "No. Dokumen", fmt.Sprintf("%s - %s", tx.DocumentType, tx.DocumentNo))
		writeField(sb, 11, "Kuantiti", fmt.Sprintf("%d %s", tx.Quantity, item.Unit))
		writeField(sb, 11, "Harga/Unit", ringgit(tx.UnitPrice))
		writeField(sb, 11, "Jumlah", ringgit(tx.TotalPrice))
		writeField(sb, 11, "Pihak", tx.Counterparty())
		writeField(sb, 11, "Pegawai", tx.OfficerName)
		sb.WriteString(lightRule + "\n")
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("RINGKASAN SUKU TAHUNAN (%d):\n", year))
	sb.WriteString(heavyRule + "\n")
	for _, q := range QuarterlyBreakdown(transactions, year) {
		sb.WriteString(q.Quarter + ":\n")
		sb.WriteString(fmt.Sprintf("  %-10s: %d unit (%s)\n", "Terimaan", q.ReceiptQty, ringgit(q.ReceiptValue)))
		sb.WriteString(fmt.Sprintf("  %-10s: %d unit (%s)\n", "Keluaran", q.IssueQty, ringgit(q.IssueValue)))
		sb.WriteString("\n")
	}
}

func writeField(sb *strings.Builder, width int, label, value string) {
	sb.WriteString(fmt.Sprintf("%-*s: %s\n", width, label, value))
}

func ringgit(v decimal.Decimal) string {
	return "RM " + v.StringFixed(2)
}

func sumValue(transactions []*stockcard.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range transactions {
		total = total.Add(tx.TotalPrice)
	}
	return total
}

func filterByKind(transactions []*stockcard.Transaction, kind stockcard.TransactionKind) []*stockcard.Transaction {
	out := make([]*stockcard.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if tx.Kind == kind {
			out = append(out, tx)
		}
	}
	return out
}

func mostRecent(transactions []*stockcard.Transaction, n int) []*stockcard.Transaction {
	ordered := make([]*stockcard.Transaction, len(transactions))
	copy(ordered, transactions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].RecordedAt.After(ordered[j].RecordedAt)
	})
	if len(ordered) > n {
		ordered = ordered[:n]
	}
	return ordered
}
