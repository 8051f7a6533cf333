// Package planning joins aggregated actuals against the monthly plan table
// and computes variance and fulfillment per month.
package planning

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/vitarsport/sales-analytics-api/pkg/utils"
)

// Progress tiers by fulfillment percentage.
const (
	TierGood    = "good"
	TierWarning = "warning"
	TierBad     = "bad"
)

// Variance sign classification.
const (
	SignPositive = "positive"
	SignNegative = "negative"
	SignNeutral  = "neutral"
)

// Row is the plan-vs-actual comparison of one month.
type Row struct {
	Month   string          `json:"month,omitempty"`
	Plan    decimal.Decimal `json:"plan"`
	Actual  decimal.Decimal `json:"actual"`
	Diff    decimal.Decimal `json:"diff"`
	Percent float64         `json:"percent"`
	Tier    string          `json:"tier"`
	Sign    string          `json:"sign"`
}

// Result holds the per-month rows, ascending by month, and a totals row
// computed from the summed figures rather than averaged percentages.
type Result struct {
	Rows  []Row `json:"rows"`
	Total Row   `json:"total"`
}

// Compare joins actuals against the plan over the union of their months.
// Months present only on one side still get a row, with the missing figure
// defaulting to zero.
func Compare(actual, plan map[string]decimal.Decimal) Result {
	months := make(map[string]bool, len(actual)+len(plan))
	for month := range actual {
		months[month] = true
	}
	for month := range plan {
		months[month] = true
	}

	ordered := make([]string, 0, len(months))
	for month := range months {
		ordered = append(ordered, month)
	}
	sort.Strings(ordered)

	result := Result{Rows: make([]Row, 0, len(ordered))}
	planTotal := decimal.Zero
	actualTotal := decimal.Zero

	for _, month := range ordered {
		row := makeRow(actual[month], plan[month])
		row.Month = month
		result.Rows = append(result.Rows, row)

		planTotal = planTotal.Add(plan[month])
		actualTotal = actualTotal.Add(actual[month])
	}

	result.Total = makeRow(actualTotal, planTotal)
	return result
}

func makeRow(actual, plan decimal.Decimal) Row {
	percent := utils.Percent(actual, plan)
	diff := actual.Sub(plan)

	return Row{
		Plan:    plan,
		Actual:  actual,
		Diff:    diff,
		Percent: percent,
		Tier:    Tier(percent),
		Sign:    sign(diff),
	}
}

// Tier classifies a fulfillment percentage into the dashboard progress tiers.
func Tier(percent float64) string {
	switch {
	case percent >= 90:
		return TierGood
	case percent >= 70:
		return TierWarning
	default:
		return TierBad
	}
}

func sign(diff decimal.Decimal) string {
	switch diff.Sign() {
	case 1:
		return SignPositive
	case -1:
		return SignNegative
	default:
		return SignNeutral
	}
}
