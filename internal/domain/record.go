package domain

import "github.com/shopspring/decimal"

// Currency of a sales document. The Pohoda exports carry CZK as the home
// currency and EUR as the only foreign currency.
type Currency string

const (
	CurrencyCZK Currency = "CZK"
	CurrencyEUR Currency = "EUR"
)

// Market is derived from the currency: EUR documents belong to the SK market,
// everything else to CZ.
type Market string

const (
	MarketCZ Market = "CZ"
	MarketSK Market = "SK"
)

// Valuation selects which pair of totals a computation reads: gross (s DPH)
// or net of VAT (bez DPH).
type Valuation string

const (
	ValuationGross Valuation = "gross"
	ValuationNet   Valuation = "net"
)

// SalesRecord is a single order, invoice or sponsoring invoice. Records are
// immutable once loaded; the pipeline only derives aggregates from them.
//
// Exactly one of TotalCZK/TotalEUR is the active amount, selected by Currency;
// the other is zero. Gross and net totals are parallel fields taken from the
// export, never derived from each other.
type SalesRecord struct {
	ID            string          `json:"id"`
	OrderNumber   string          `json:"order_number"`
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	Date          string          `json:"date"`     // "YYYY-MM-DD"
	DateDue       string          `json:"date_due,omitempty"`
	Company       string          `json:"company"`
	CustomerName  string          `json:"customer_name,omitempty"`
	City          string          `json:"city,omitempty"`
	Zip           string          `json:"zip,omitempty"`
	Country       string          `json:"country,omitempty"`
	Currency      Currency        `json:"currency"`
	Centre        string          `json:"centre,omitempty"`
	Channel       Channel         `json:"channel"`
	Salesperson   string          `json:"salesperson,omitempty"`
	Market        Market          `json:"market"`
	Supplier      Supplier        `json:"supplier"`
	PaymentType   string          `json:"payment_type,omitempty"`
	PriceLevel    string          `json:"price_level,omitempty"`
	IsExecuted    bool            `json:"is_executed"`
	IsDelivered   bool            `json:"is_delivered"`
	IsPaid        bool            `json:"is_paid"`
	TotalCZK      decimal.Decimal `json:"total_czk"`
	TotalCZKNet   decimal.Decimal `json:"total_czk_bez_dph"`
	TotalEUR      decimal.Decimal `json:"total_eur"`
	TotalEURNet   decimal.Decimal `json:"total_eur_bez_dph"`
}

// Month returns the "YYYY-MM" prefix of the record date, or "" when the date
// is missing or malformed.
func (r SalesRecord) Month() string {
	return monthOf(r.Date)
}

// AmountCZK returns the CZK total for the given valuation.
func (r SalesRecord) AmountCZK(v Valuation) decimal.Decimal {
	if v == ValuationNet {
		return r.TotalCZKNet
	}
	return r.TotalCZK
}

// AmountEUR returns the EUR total for the given valuation.
func (r SalesRecord) AmountEUR(v Valuation) decimal.Decimal {
	if v == ValuationNet {
		return r.TotalEURNet
	}
	return r.TotalEUR
}

// AmountCZKEquivalent converts the record to a single CZK figure using the
// configured approximate EUR→CZK rate. The rate is an aggregation constant,
// not a live FX rate.
func (r SalesRecord) AmountCZKEquivalent(v Valuation, rate decimal.Decimal) decimal.Decimal {
	return r.AmountCZK(v).Add(r.AmountEUR(v).Mul(rate))
}

// LineItem is a denormalized line of an order or invoice. Items carry a copy
// of the parent's date, channel and salesperson, so the filter engine applies
// the same predicates to both collections independently.
type LineItem struct {
	OrderNumber     string          `json:"order_number"`
	InvoiceNumber   string          `json:"invoice_number,omitempty"`
	Date            string          `json:"date"`
	Company         string          `json:"company"`
	Currency        Currency        `json:"currency"`
	Channel         Channel         `json:"channel"`
	Salesperson     string          `json:"salesperson,omitempty"`
	Market          Market          `json:"market"`
	Supplier        Supplier        `json:"supplier"`
	ProductCode     string          `json:"product_code"`
	ProductName     string          `json:"product_name"`
	EAN             string          `json:"ean,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	Delivered       decimal.Decimal `json:"delivered,omitempty"`
	Unit            string          `json:"unit,omitempty"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TotalCZK        decimal.Decimal `json:"total_czk"`
	TotalCZKNet     decimal.Decimal `json:"total_czk_bez_dph"`
	TotalEUR        decimal.Decimal `json:"total_eur"`
	TotalEURNet     decimal.Decimal `json:"total_eur_bez_dph"`
}

// Month returns the "YYYY-MM" prefix of the item date.
func (i LineItem) Month() string {
	return monthOf(i.Date)
}

// AmountCZK returns the CZK total for the given valuation.
func (i LineItem) AmountCZK(v Valuation) decimal.Decimal {
	if v == ValuationNet {
		return i.TotalCZKNet
	}
	return i.TotalCZK
}

// AmountEUR returns the EUR total for the given valuation.
func (i LineItem) AmountEUR(v Valuation) decimal.Decimal {
	if v == ValuationNet {
		return i.TotalEURNet
	}
	return i.TotalEUR
}

// AmountCZKEquivalent converts the item to a single CZK figure using the
// approximate EUR→CZK rate.
func (i LineItem) AmountCZKEquivalent(v Valuation, rate decimal.Decimal) decimal.Decimal {
	return i.AmountCZK(v).Add(i.AmountEUR(v).Mul(rate))
}

func monthOf(date string) string {
	if len(date) < 7 {
		return ""
	}
	return date[:7]
}
