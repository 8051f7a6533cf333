package filtering

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vitarsport/sales-analytics-api/internal/domain"
)

func makeRecords() []domain.SalesRecord {
	return []domain.SalesRecord{
		{ID: "1", Date: "2025-03-15", Currency: domain.CurrencyCZK, Channel: domain.ChannelB2B, Salesperson: "Karolina", PaymentType: "převodem", City: "Brno"},
		{ID: "2", Date: "2025-03-20", Currency: domain.CurrencyEUR, Channel: domain.ChannelEshopEnervitSK},
		{ID: "3", Date: "2025-04-01", Currency: domain.CurrencyCZK, Channel: domain.ChannelEshopEnervitCZ, PaymentType: "dobírkou", City: "Praha"},
		{ID: "4", Date: "2025-03-02", Currency: domain.CurrencyCZK, Channel: domain.ChannelEshopRoyalbayCZ, City: "Brno"},
		{ID: "5", Date: "2025-03-09", Currency: domain.CurrencyEUR, Channel: domain.ChannelB2B, Salesperson: "Jirka"},
	}
}

func TestRecords(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		wantIDs  []string
	}{
		{
			name:     "no criteria keeps everything in order",
			criteria: Criteria{},
			wantIDs:  []string{"1", "2", "3", "4", "5"},
		},
		{
			name:     "all values keep everything",
			criteria: Criteria{Month: "all", Market: "all", Channel: "all"},
			wantIDs:  []string{"1", "2", "3", "4", "5"},
		},
		{
			name:     "month matches the YYYY-MM prefix",
			criteria: Criteria{Month: "2025-03"},
			wantIDs:  []string{"1", "2", "4", "5"},
		},
		{
			name:     "market CZ keeps non-EUR records",
			criteria: Criteria{Market: "CZ"},
			wantIDs:  []string{"1", "3", "4"},
		},
		{
			name:     "market SK keeps EUR records",
			criteria: Criteria{Market: "SK"},
			wantIDs:  []string{"2", "5"},
		},
		{
			name:     "channel group matches both storefront variants",
			criteria: Criteria{Channel: "ESHOP_ENERVIT"},
			wantIDs:  []string{"2", "3"},
		},
		{
			name:     "channel B2B is an exact match",
			criteria: Criteria{Channel: "B2B"},
			wantIDs:  []string{"1", "5"},
		},
		{
			name:     "salesperson is an exact match",
			criteria: Criteria{Salesperson: "Karolina"},
			wantIDs:  []string{"1"},
		},
		{
			name:     "payment type applies to records",
			criteria: Criteria{PaymentType: "převodem"},
			wantIDs:  []string{"1"},
		},
		{
			name:     "city applies to records",
			criteria: Criteria{City: "Brno"},
			wantIDs:  []string{"1", "4"},
		},
		{
			name:     "criteria combine with AND",
			criteria: Criteria{Month: "2025-03", Market: "CZ", Channel: "B2B"},
			wantIDs:  []string{"1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Records(makeRecords(), tt.criteria)

			gotIDs := make([]string, 0, len(got))
			for _, r := range got {
				gotIDs = append(gotIDs, r.ID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestRecordsIsIdempotent(t *testing.T) {
	criteria := Criteria{Month: "2025-03", Channel: "ESHOP_ROYALBAY"}

	once := Records(makeRecords(), criteria)
	twice := Records(once, criteria)

	assert.Equal(t, once, twice)
}

func TestLineItemsIgnorePaymentAndCity(t *testing.T) {
	items := []domain.LineItem{
		{ProductCode: "EN001", Date: "2025-03-15", Currency: domain.CurrencyCZK, Channel: domain.ChannelB2B, Salesperson: "Karolina"},
		{ProductCode: "RB002", Date: "2025-03-20", Currency: domain.CurrencyEUR, Channel: domain.ChannelEshopRoyalbaySK},
	}

	// Payment and city are document-level fields, items must pass through.
	got := LineItems(items, Criteria{PaymentType: "převodem", City: "Brno"})
	assert.Len(t, got, 2)

	got = LineItems(items, Criteria{Market: "SK"})
	assert.Len(t, got, 1)
	assert.Equal(t, "RB002", got[0].ProductCode)
}

func TestCriteriaValidate(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		wantErr  bool
	}{
		{name: "empty criteria are valid", criteria: Criteria{}},
		{name: "valid enumerations", criteria: Criteria{Month: "2025-03", Market: "SK", Channel: "B2B", Valuation: "net"}},
		{name: "unknown market", criteria: Criteria{Market: "DE"}, wantErr: true},
		{name: "unknown channel", criteria: Criteria{Channel: "RETAIL"}, wantErr: true},
		{name: "malformed month", criteria: Criteria{Month: "2025"}, wantErr: true},
		{name: "unknown valuation", criteria: Criteria{Valuation: "vat"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.criteria.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValuationOrDefault(t *testing.T) {
	assert.Equal(t, domain.ValuationGross, Criteria{}.ValuationOrDefault())
	assert.Equal(t, domain.ValuationGross, Criteria{Valuation: "gross"}.ValuationOrDefault())
	assert.Equal(t, domain.ValuationNet, Criteria{Valuation: "net"}.ValuationOrDefault())
}
