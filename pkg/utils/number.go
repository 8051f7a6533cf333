package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// Percent computes part/whole*100 rounded to two decimals, 0 when the whole
// is zero.
func Percent(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}

	ratio, _ := part.Div(whole).Float64()
	return RoundWithTwoDecimalPlace(ratio * 100)
}
