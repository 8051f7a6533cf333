// Package classifying derives categorical statuses from numeric thresholds:
// days-of-supply buckets for stock items and days-overdue buckets for unpaid
// invoices.
package classifying

import (
	"math"
	"time"

	"github.com/vitarsport/sales-analytics-api/internal/domain"
	"github.com/vitarsport/sales-analytics-api/pkg/utils"
)

// Stock supply statuses.
const (
	StockNoSales  = "no_sales"
	StockCritical = "critical"
	StockLow      = "low"
	StockOK       = "ok"
	StockHigh     = "high"
)

// Invoice overdue statuses.
const (
	OverdueOK       = "ok"
	OverdueWarning  = "warning"
	OverdueDanger   = "danger"
	OverdueCritical = "critical"
)

// ClassifyStock buckets a days-of-supply figure. The boundaries are half-open
// on the low end and inclusive at 120 days.
func ClassifyStock(daysRemaining float64) string {
	switch {
	case daysRemaining == domain.NoSalesHistory:
		return StockNoSales
	case daysRemaining < 30:
		return StockCritical
	case daysRemaining < 60:
		return StockLow
	case daysRemaining <= 120:
		return StockOK
	default:
		return StockHigh
	}
}

// DaysOverdue computes how many days past due an invoice is as of today.
// Paid invoices and invoices not yet due are 0. Invoices without a parseable
// due date cannot be overdue.
func DaysOverdue(r domain.SalesRecord, today time.Time) int {
	if r.IsPaid || r.DateDue == "" {
		return 0
	}

	due, err := utils.ParseDate(r.DateDue)
	if err != nil {
		return 0
	}

	days := int(math.Ceil(today.Sub(*due).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// ClassifyOverdue buckets a days-overdue figure. The 16-30 and 31-90 ranges
// both map to "danger"; the split mirrors the dashboard legend and is kept as
// two branches on purpose.
func ClassifyOverdue(daysOverdue int) string {
	switch {
	case daysOverdue <= 0:
		return OverdueOK
	case daysOverdue <= 15:
		return OverdueWarning
	case daysOverdue <= 30:
		return OverdueDanger
	case daysOverdue <= 90:
		return OverdueDanger
	default:
		return OverdueCritical
	}
}

// StockRow is one classified row of the stock aging view.
type StockRow struct {
	domain.StockItem
	DaysRemaining float64 `json:"days_remaining"`
	Status        string  `json:"status"`
}

// ClassifyStockItems derives the days-of-supply status for every item,
// preserving input order.
func ClassifyStockItems(items []domain.StockItem) []StockRow {
	rows := make([]StockRow, 0, len(items))
	for _, item := range items {
		days := item.DaysRemaining()
		rows = append(rows, StockRow{
			StockItem:     item,
			DaysRemaining: days,
			Status:        ClassifyStock(days),
		})
	}
	return rows
}

// OverdueRow is one classified row of the overdue invoices view.
type OverdueRow struct {
	domain.SalesRecord
	DaysOverdue int    `json:"days_overdue"`
	Status      string `json:"status"`
}

// ClassifyOverdueInvoices derives the overdue status of every invoice as of
// today, preserving input order.
func ClassifyOverdueInvoices(invoices []domain.SalesRecord, today time.Time) []OverdueRow {
	rows := make([]OverdueRow, 0, len(invoices))
	for _, invoice := range invoices {
		days := DaysOverdue(invoice, today)
		rows = append(rows, OverdueRow{
			SalesRecord: invoice,
			DaysOverdue: days,
			Status:      ClassifyOverdue(days),
		})
	}
	return rows
}
