package stockcard

// StatusSeverity buckets status labels for UI colouring and filtering
type StatusSeverity string

const (
	SeverityOK          StatusSeverity = "OK"
	SeverityInfo        StatusSeverity = "INFO"
	SeverityWarning     StatusSeverity = "WARNING"
	SeverityHighWarning StatusSeverity = "HIGH_WARNING"
	SeverityCritical    StatusSeverity = "CRITICAL"
	SeverityAttention   StatusSeverity = "ATTENTION"
)

// Status is the classification of a stock card at its current balance
type Status struct {
	Label    string         `json:"label"`
	Severity StatusSeverity `json:"severity"`
}

// Classify derives the stock status of an item from its balance and
// thresholds. The rules are evaluated strictly in order; the first match
// wins. Items whose thresholds were never configured (minimum and reorder
// both zero) fall back to absolute balance bands instead of threshold
// ratios.
func Classify(item *StockItem) Status {
	balance := item.CurrentBalance

	if balance <= 0 {
		if item.TotalReceived == 0 && item.TotalIssued == 0 {
			return Status{Label: "Item Baru", Severity: SeverityInfo}
		}
		return Status{Label: "Habis Stok", Severity: SeverityCritical}
	}

	if item.MinStock <= 0 && item.ReorderStock <= 0 {
		switch {
		case balance >= 100:
			return Status{Label: "Stok Mencukupi", Severity: SeverityOK}
		case balance >= 50:
			return Status{Label: "Stok Sederhana", Severity: SeverityWarning}
		case balance >= 20:
			return Status{Label: "Perlu Pantauan", Severity: SeverityInfo}
		default:
			return Status{Label: "Perlu Audit", Severity: SeverityAttention}
		}
	}

	if balance <= item.MinStock {
		return Status{Label: "Stok Rendah", Severity: SeverityCritical}
	}

	if balance <= item.ReorderStock {
		pct := float64(balance) / float64(item.ReorderStock) * 100
		switch {
		case pct <= 25:
			return Status{Label: "Kritikal", Severity: SeverityHighWarning}
		case pct <= 50:
			return Status{Label: "Perlu Reorder", Severity: SeverityWarning}
		default:
			return Status{Label: "Hampir Reorder", Severity: SeverityInfo}
		}
	}

	if balance >= item.MaxStock {
		return Status{Label: "Stok Berlebihan", Severity: SeverityInfo}
	}
	if balance >= int(float64(item.MaxStock)*0.8) {
		return Status{Label: "Stok Optimal", Severity: SeverityOK}
	}
	if balance >= int(float64(item.ReorderStock)*1.5) {
		return Status{Label: "Stok Baik", Severity: SeverityOK}
	}

	return Status{Label: "Normal", Severity: SeverityOK}
}
