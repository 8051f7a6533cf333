package classifying

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vitarsport/sales-analytics-api/internal/domain"
)

func TestClassifyStockBoundaries(t *testing.T) {
	tests := []struct {
		daysRemaining float64
		want          string
	}{
		{-1, StockNoSales},
		{0, StockCritical},
		{29, StockCritical},
		{29.9, StockCritical},
		{30, StockLow},
		{59, StockLow},
		{60, StockOK},
		{120, StockOK},
		{121, StockHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyStock(tt.daysRemaining), "days_remaining=%v", tt.daysRemaining)
	}
}

func TestClassifyOverdueBoundaries(t *testing.T) {
	tests := []struct {
		daysOverdue int
		want        string
	}{
		{0, OverdueOK},
		{1, OverdueWarning},
		{15, OverdueWarning},
		{16, OverdueDanger},
		{30, OverdueDanger},
		{31, OverdueDanger},
		{90, OverdueDanger},
		{91, OverdueCritical},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyOverdue(tt.daysOverdue), "days_overdue=%d", tt.daysOverdue)
	}
}

func TestDaysOverdue(t *testing.T) {
	today := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		invoice domain.SalesRecord
		want    int
	}{
		{
			name:    "unpaid past due",
			invoice: domain.SalesRecord{DateDue: "2025-03-31"},
			want:    10,
		},
		{
			name:    "due today",
			invoice: domain.SalesRecord{DateDue: "2025-04-10"},
			want:    0,
		},
		{
			name:    "not yet due",
			invoice: domain.SalesRecord{DateDue: "2025-05-01"},
			want:    0,
		},
		{
			name:    "paid invoices are never overdue",
			invoice: domain.SalesRecord{DateDue: "2025-01-01", IsPaid: true},
			want:    0,
		},
		{
			name:    "missing due date",
			invoice: domain.SalesRecord{},
			want:    0,
		},
		{
			name:    "malformed due date",
			invoice: domain.SalesRecord{DateDue: "31.03.2025"},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysOverdue(tt.invoice, today))
		})
	}
}

func TestClassifyStockItems(t *testing.T) {
	items := []domain.StockItem{
		{Code: "EN001", Count: 100, AvgDailySale: 10},
		{Code: "RB002", Count: 500, AvgDailySale: 1},
		{Code: "VS003", Count: 50, AvgDailySale: 0},
	}

	rows := ClassifyStockItems(items)

	assert.Len(t, rows, 3)
	assert.Equal(t, "EN001", rows[0].Code)
	assert.Equal(t, 10.0, rows[0].DaysRemaining)
	assert.Equal(t, StockCritical, rows[0].Status)

	assert.Equal(t, StockHigh, rows[1].Status)

	assert.Equal(t, -1.0, rows[2].DaysRemaining)
	assert.Equal(t, StockNoSales, rows[2].Status)
}

func TestClassifyOverdueInvoices(t *testing.T) {
	today := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	invoices := []domain.SalesRecord{
		{ID: "1", DateDue: "2025-04-05"},
		{ID: "2", DateDue: "2025-01-01"},
		{ID: "3", DateDue: "2025-04-05", IsPaid: true},
	}

	rows := ClassifyOverdueInvoices(invoices, today)

	assert.Len(t, rows, 3)
	assert.Equal(t, 5, rows[0].DaysOverdue)
	assert.Equal(t, OverdueWarning, rows[0].Status)

	assert.Equal(t, 99, rows[1].DaysOverdue)
	assert.Equal(t, OverdueCritical, rows[1].Status)

	assert.Equal(t, 0, rows[2].DaysOverdue)
	assert.Equal(t, OverdueOK, rows[2].Status)
}
