package domain

// NoSalesHistory is the sentinel DaysRemaining value for items that have no
// recorded average daily sales.
const NoSalesHistory = -1

// StockItem is one warehouse position with its 90-day sales velocity.
type StockItem struct {
	Code         string  `json:"code"`
	FullName     string  `json:"full_name"`
	Brand        Brand   `json:"brand"`
	Count        float64 `json:"count"`
	Unit         string  `json:"unit,omitempty"`
	AvgDailySale float64 `json:"avg_daily_sales"`
	TotalSold90d float64 `json:"total_sold_90d"`
}

// DaysRemaining estimates how many days of supply are left at the current
// average sales velocity. Returns NoSalesHistory when there is no velocity to
// divide by.
func (s StockItem) DaysRemaining() float64 {
	if s.AvgDailySale == 0 {
		return NoSalesHistory
	}
	return s.Count / s.AvgDailySale
}
