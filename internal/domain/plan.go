package domain

import "github.com/shopspring/decimal"

// PlanTarget holds the monthly revenue targets: one per market plus the CZ
// per-salesperson breakdown. Loaded from static configuration, keyed by
// "YYYY-MM".
type PlanTarget struct {
	Month       string                     `json:"month"`
	TotalCZ     decimal.Decimal            `json:"total_cz"`
	TotalSK     decimal.Decimal            `json:"total_sk"`
	Salespeople map[string]decimal.Decimal `json:"salespeople,omitempty"`
}

// SalespersonTarget returns the CZ target for a salesperson, zero when the
// plan has no row for them.
func (p PlanTarget) SalespersonTarget(name string) decimal.Decimal {
	if p.Salespeople == nil {
		return decimal.Zero
	}
	return p.Salespeople[name]
}
