// Package aggregating groups filtered records by month, channel, salesperson,
// brand and customer, accumulating sums and counts for the dashboard tables.
package aggregating

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/vitarsport/sales-analytics-api/internal/domain"
)

// UnknownCompany labels records without a company name in the top-customer
// ranking.
const UnknownCompany = "Neznámý"

// DefaultTopN is the ranking size of the top-customer and top-product tables.
const DefaultTopN = 10

// MonthUnknown buckets records whose date is missing or malformed. Keeping
// them under a sentinel key means the monthly buckets always reconcile with
// the flat summary.
const MonthUnknown = "unknown"

// Bucket accumulates a monetary sum and a record count.
type Bucket struct {
	Sum   decimal.Decimal `json:"sum"`
	Count int             `json:"count"`
}

func (b *Bucket) add(amount decimal.Decimal) {
	b.Sum = b.Sum.Add(amount)
	b.Count++
}

// ChannelTotals holds the six channel/currency buckets of one month. The CZ
// buckets accumulate CZK, the SK buckets EUR. B2B records are split purely by
// currency: a B2B record in EUR always lands in B2BSK regardless of the
// customer's actual market.
type ChannelTotals struct {
	EshopEnervitCZ  Bucket `json:"eshop_enervit_cz"`
	EshopEnervitSK  Bucket `json:"eshop_enervit_sk"`
	EshopRoyalbayCZ Bucket `json:"eshop_royalbay_cz"`
	EshopRoyalbaySK Bucket `json:"eshop_royalbay_sk"`
	B2BCZ           Bucket `json:"b2b_cz"`
	B2BSK           Bucket `json:"b2b_sk"`
	Count           int    `json:"count"`
}

// SalespersonTotals holds the per-salesperson CZK sums of one month.
type SalespersonTotals struct {
	ByName map[string]decimal.Decimal `json:"by_name"`
	Total  decimal.Decimal            `json:"total"`
}

// BrandTotals holds the per-brand CZK-equivalent sums of one month.
type BrandTotals struct {
	ByBrand map[domain.Brand]decimal.Decimal `json:"by_brand"`
	Total   decimal.Decimal                  `json:"total"`
}

// RankedEntry is one row of a top-N table.
type RankedEntry struct {
	Key   string          `json:"key"`
	Sum   decimal.Decimal `json:"sum"`
	Count int             `json:"count"`
}

// Summary is the flat rollup of a record collection.
type Summary struct {
	Count            int             `json:"count"`
	SumCZK           decimal.Decimal `json:"sum_czk"`
	SumEUR           decimal.Decimal `json:"sum_eur"`
	SumCZKEquivalent decimal.Decimal `json:"sum_czk_equivalent"`
}

// Aggregator runs the grouping reducers. The EUR→CZK rate is the approximate
// conversion used for combined rollups, injected from configuration.
type Aggregator struct {
	rate decimal.Decimal
}

func New(eurToCZK float64) *Aggregator {
	return &Aggregator{rate: decimal.NewFromFloat(eurToCZK)}
}

// Rate exposes the conversion constant for the report composition layer.
func (a *Aggregator) Rate() decimal.Decimal {
	return a.rate
}

// ByMonth groups records into the six channel/currency buckets per month.
// Records without a usable date land under MonthUnknown.
func (a *Aggregator) ByMonth(records []domain.SalesRecord, v domain.Valuation) map[string]*ChannelTotals {
	result := make(map[string]*ChannelTotals)
	for _, r := range records {
		month := r.Month()
		if month == "" {
			month = MonthUnknown
		}

		totals, ok := result[month]
		if !ok {
			totals = &ChannelTotals{}
			result[month] = totals
		}
		totals.Count++

		switch r.Channel {
		case domain.ChannelEshopEnervitCZ:
			totals.EshopEnervitCZ.add(r.AmountCZK(v))
		case domain.ChannelEshopEnervitSK:
			totals.EshopEnervitSK.add(r.AmountEUR(v))
		case domain.ChannelEshopRoyalbayCZ:
			totals.EshopRoyalbayCZ.add(r.AmountCZK(v))
		case domain.ChannelEshopRoyalbaySK:
			totals.EshopRoyalbaySK.add(r.AmountEUR(v))
		case domain.ChannelB2B:
			if r.Currency == domain.CurrencyEUR {
				totals.B2BSK.add(r.AmountEUR(v))
			} else {
				totals.B2BCZ.add(r.AmountCZK(v))
			}
		}
	}
	return result
}

// B2BBySalesperson sums CZK B2B revenue per salesperson and month. EUR B2B
// documents are excluded: per-salesperson plans exist only for the CZ market.
// Records without a salesperson fall back to the "VITAR Sport" label.
func (a *Aggregator) B2BBySalesperson(records []domain.SalesRecord, v domain.Valuation) map[string]*SalespersonTotals {
	result := make(map[string]*SalespersonTotals)
	for _, r := range records {
		if r.Channel != domain.ChannelB2B || r.Currency == domain.CurrencyEUR {
			continue
		}
		month := r.Month()
		if month == "" {
			continue
		}

		totals, ok := result[month]
		if !ok {
			totals = &SalespersonTotals{ByName: make(map[string]decimal.Decimal)}
			result[month] = totals
		}

		name := r.Salesperson
		if name == "" {
			name = domain.SalespersonFallback
		}

		amount := r.AmountCZK(v)
		totals.ByName[name] = totals.ByName[name].Add(amount)
		totals.Total = totals.Total.Add(amount)
	}
	return result
}

// ByBrand sums line items per brand and month in CZK equivalent.
func (a *Aggregator) ByBrand(items []domain.LineItem, v domain.Valuation) map[string]*BrandTotals {
	result := make(map[string]*BrandTotals)
	for _, i := range items {
		month := i.Month()
		if month == "" {
			continue
		}

		totals, ok := result[month]
		if !ok {
			totals = &BrandTotals{ByBrand: make(map[domain.Brand]decimal.Decimal)}
			result[month] = totals
		}

		brand := domain.BrandOf(i.ProductName)
		amount := i.AmountCZKEquivalent(v, a.rate)
		totals.ByBrand[brand] = totals.ByBrand[brand].Add(amount)
		totals.Total = totals.Total.Add(amount)
	}
	return result
}

// TopCustomers ranks companies by CZK-equivalent revenue, descending. Ties
// keep the original encounter order.
func (a *Aggregator) TopCustomers(records []domain.SalesRecord, n int, v domain.Valuation) []RankedEntry {
	keys := make([]string, 0)
	totals := make(map[string]*RankedEntry)

	for _, r := range records {
		key := r.Company
		if key == "" {
			key = UnknownCompany
		}

		entry, ok := totals[key]
		if !ok {
			entry = &RankedEntry{Key: key}
			totals[key] = entry
			keys = append(keys, key)
		}
		entry.Sum = entry.Sum.Add(r.AmountCZKEquivalent(v, a.rate))
		entry.Count++
	}

	return rank(keys, totals, n)
}

// TopProducts ranks line items by CZK-equivalent revenue, keyed by product
// code with the product name as fallback key.
func (a *Aggregator) TopProducts(items []domain.LineItem, n int, v domain.Valuation) []RankedEntry {
	keys := make([]string, 0)
	totals := make(map[string]*RankedEntry)

	for _, i := range items {
		key := i.ProductCode
		if key == "" {
			key = i.ProductName
		}

		entry, ok := totals[key]
		if !ok {
			entry = &RankedEntry{Key: key}
			totals[key] = entry
			keys = append(keys, key)
		}
		entry.Sum = entry.Sum.Add(i.AmountCZKEquivalent(v, a.rate))
		entry.Count++
	}

	return rank(keys, totals, n)
}

// rank materializes the entries in encounter order, sorts them by sum
// descending with a stable sort and cuts the list at n.
func rank(keys []string, totals map[string]*RankedEntry, n int) []RankedEntry {
	entries := make([]RankedEntry, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, *totals[key])
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Sum.GreaterThan(entries[j].Sum)
	})

	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Summarize computes the flat rollup of a record collection. The channel
// buckets of ByMonth reconcile against this total.
func (a *Aggregator) Summarize(records []domain.SalesRecord, v domain.Valuation) Summary {
	summary := Summary{}
	for _, r := range records {
		summary.Count++
		summary.SumCZK = summary.SumCZK.Add(r.AmountCZK(v))
		summary.SumEUR = summary.SumEUR.Add(r.AmountEUR(v))
		summary.SumCZKEquivalent = summary.SumCZKEquivalent.Add(r.AmountCZKEquivalent(v, a.rate))
	}
	return summary
}
