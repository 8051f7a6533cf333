package reporting

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vitarsport/sales-analytics-api/internal/domain"
	"github.com/vitarsport/sales-analytics-api/internal/usecases/filtering"
	"github.com/vitarsport/sales-analytics-api/internal/usecases/summarizing"
	"github.com/vitarsport/sales-analytics-api/pkg/utils"
)

// Summary builds the executive narrative for one month. Without an explicit
// month criterion the latest month present in the source is summarized.
// Revenue figures come from the selected source; the payment rate always comes
// from the invoice store.
func (s *service) Summary(source string, criteria filtering.Criteria) (*SummaryReport, error) {
	snapshot, err := s.provider.Current()
	if err != nil {
		return nil, err
	}
	all, items, err := records(snapshot, source)
	if err != nil {
		return nil, err
	}

	month := criteria.Month
	if month == "" || month == filtering.ValueAll {
		month = latestMonth(all)
	}

	valuation := criteria.ValuationOrDefault()
	monthCriteria := criteria
	monthCriteria.Month = month

	filtered := filtering.Records(all, monthCriteria)
	total := s.aggregator.Summarize(filtered, valuation).SumCZKEquivalent

	input := summarizing.Input{Month: month}

	// Plan fulfillment per market, both sides in CZK.
	actualCZ := decimal.Zero
	actualSK := decimal.Zero
	b2bTotal := decimal.Zero
	for _, r := range filtered {
		if r.Currency == domain.CurrencyEUR {
			actualSK = actualSK.Add(r.AmountEUR(valuation).Mul(s.aggregator.Rate()))
		} else {
			actualCZ = actualCZ.Add(r.AmountCZK(valuation))
		}
		if r.Channel == domain.ChannelB2B {
			b2bTotal = b2bTotal.Add(r.AmountCZKEquivalent(valuation, s.aggregator.Rate()))
		}
	}
	if target, ok := snapshot.Plan[month]; ok {
		input.FulfillmentCZ = utils.Percent(actualCZ, target.TotalCZ)
		input.FulfillmentSK = utils.Percent(actualSK, target.TotalSK)
	}

	// Month-over-month change of the CZK-equivalent total.
	if previous := previousMonth(month); previous != "" {
		previousCriteria := criteria
		previousCriteria.Month = previous
		previousTotal := s.aggregator.Summarize(
			filtering.Records(all, previousCriteria), valuation,
		).SumCZKEquivalent

		if previousTotal.Sign() > 0 {
			input.HasPreviousMonth = true
			change, _ := total.Sub(previousTotal).Div(previousTotal).Float64()
			input.MoMChangePercent = utils.RoundWithTwoDecimalPlace(change * 100)
		}
	}

	input.B2BShare = utils.Percent(b2bTotal, total)
	input.EshopShare = utils.Percent(total.Sub(b2bTotal), total)

	// Brand leader over the month's line items.
	if brands := s.aggregator.ByBrand(filtering.LineItems(items, monthCriteria), valuation); brands[month] != nil {
		totals := brands[month]
		var best domain.Brand
		bestSum := decimal.Zero
		for _, brand := range domain.Brands {
			if sum, ok := totals.ByBrand[brand]; ok && sum.GreaterThan(bestSum) {
				best, bestSum = brand, sum
			}
		}
		if best != "" {
			input.TopBrand = string(best)
			input.TopBrandShare = utils.Percent(bestSum, totals.Total)
		}
	}

	// Best B2B salesperson of the month.
	if salespeople := s.aggregator.B2BBySalesperson(filtered, valuation); salespeople[month] != nil {
		totals := salespeople[month]
		bestSum := decimal.Zero
		for _, name := range sortedKeys(totals.ByName) {
			if totals.ByName[name].GreaterThan(bestSum) {
				input.TopSalesperson, bestSum = name, totals.ByName[name]
			}
		}
		input.TopSalespersonShare = utils.Percent(bestSum, totals.Total)
	}

	// Top customer concentration.
	if top := s.aggregator.TopCustomers(filtered, 1, valuation); len(top) > 0 {
		input.TopCustomer = top[0].Key
		input.TopCustomerShare = utils.Percent(top[0].Sum, total)
	}

	// Payment discipline from the invoice store.
	invoices := filtering.Records(snapshot.Invoices, monthCriteria)
	if len(invoices) > 0 {
		paid := 0
		for _, invoice := range invoices {
			if invoice.IsPaid {
				paid++
			}
		}
		input.PaymentRate = utils.RoundWithTwoDecimalPlace(float64(paid) / float64(len(invoices)) * 100)
	}

	return &SummaryReport{
		Narrative: summarizing.Generate(input),
		Figures: SummaryFigures{
			Month:            month,
			TotalCZK:         total,
			FulfillmentCZ:    input.FulfillmentCZ,
			FulfillmentSK:    input.FulfillmentSK,
			MoMChangePercent: input.MoMChangePercent,
			B2BShare:         input.B2BShare,
			EshopShare:       input.EshopShare,
			PaymentRate:      input.PaymentRate,
		},
	}, nil
}

func latestMonth(all []domain.SalesRecord) string {
	latest := ""
	for _, r := range all {
		if month := r.Month(); month > latest {
			latest = month
		}
	}
	return latest
}

func previousMonth(month string) string {
	parsed, err := time.Parse("2006-01", month)
	if err != nil {
		return ""
	}
	return parsed.AddDate(0, -1, 0).Format("2006-01")
}
