// Package filtering narrows the in-memory record collections by the dashboard
// filter controls. Filters are pure and stable: the relative order of the
// input is preserved and the input slices are never mutated.
package filtering

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vitarsport/sales-analytics-api/internal/domain"
)

// ValueAll disables a single criterion, same as leaving it empty.
const ValueAll = "all"

// Channel groups selectable in the dashboard. ESHOP selections match both the
// CZ and SK storefront variants of the brand.
const (
	ChannelGroupEshopEnervit  = "ESHOP_ENERVIT"
	ChannelGroupEshopRoyalbay = "ESHOP_ROYALBAY"
	ChannelGroupB2B           = "B2B"
)

var validate = validator.New()

// Criteria is the filter configuration coming from the dashboard controls.
// Every field is optional; "all" or the empty string means unconstrained.
// All active criteria AND together.
type Criteria struct {
	Month       string `json:"month" validate:"omitempty,eq=all|len=7"`
	Market      string `json:"market" validate:"omitempty,oneof=all CZ SK"`
	Channel     string `json:"channel" validate:"omitempty,oneof=all ESHOP_ENERVIT ESHOP_ROYALBAY B2B"`
	Salesperson string `json:"salesperson"`
	PaymentType string `json:"payment_type"`
	City        string `json:"city"`
	Valuation   string `json:"valuation" validate:"omitempty,oneof=gross net"`
}

// Validate checks the criteria values against the allowed enumerations.
func (c Criteria) Validate() error {
	return validate.Struct(c)
}

// ValuationOrDefault resolves the VAT mode, defaulting to gross.
func (c Criteria) ValuationOrDefault() domain.Valuation {
	if c.Valuation == string(domain.ValuationNet) {
		return domain.ValuationNet
	}
	return domain.ValuationGross
}

func active(value string) bool {
	return value != "" && value != ValueAll
}

func matchMonth(month, date string) bool {
	return len(date) >= 7 && date[:7] == month
}

func matchMarket(market string, currency domain.Currency) bool {
	if market == string(domain.MarketSK) {
		return currency == domain.CurrencyEUR
	}
	return currency != domain.CurrencyEUR
}

// matchChannel uses substring semantics for the e-shop groups so both the CZ
// and SK storefront variants match, and an exact match for B2B.
func matchChannel(group string, channel domain.Channel) bool {
	switch group {
	case ChannelGroupEshopEnervit:
		return strings.Contains(string(channel), "ENERVIT")
	case ChannelGroupEshopRoyalbay:
		return strings.Contains(string(channel), "ROYALBAY")
	default:
		return string(channel) == group
	}
}

// Records filters sales records by all active criteria.
func Records(records []domain.SalesRecord, c Criteria) []domain.SalesRecord {
	result := make([]domain.SalesRecord, 0, len(records))
	for _, r := range records {
		if active(c.Month) && !matchMonth(c.Month, r.Date) {
			continue
		}
		if active(c.Market) && !matchMarket(c.Market, r.Currency) {
			continue
		}
		if active(c.Channel) && !matchChannel(c.Channel, r.Channel) {
			continue
		}
		if active(c.Salesperson) && r.Salesperson != c.Salesperson {
			continue
		}
		if active(c.PaymentType) && r.PaymentType != c.PaymentType {
			continue
		}
		if active(c.City) && r.City != c.City {
			continue
		}
		result = append(result, r)
	}
	return result
}

// LineItems filters line items by the active criteria. Payment type and city
// never apply to items: the exports do not carry them on the line level, so
// the item collection is filtered on the shared document fields only.
func LineItems(items []domain.LineItem, c Criteria) []domain.LineItem {
	result := make([]domain.LineItem, 0, len(items))
	for _, i := range items {
		if active(c.Month) && !matchMonth(c.Month, i.Date) {
			continue
		}
		if active(c.Market) && !matchMarket(c.Market, i.Currency) {
			continue
		}
		if active(c.Channel) && !matchChannel(c.Channel, i.Channel) {
			continue
		}
		if active(c.Salesperson) && i.Salesperson != c.Salesperson {
			continue
		}
		result = append(result, i)
	}
	return result
}
