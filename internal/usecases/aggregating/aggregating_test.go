package aggregating

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/vitarsport/sales-analytics-api/internal/domain"
)

func czk(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestByMonth(t *testing.T) {
	records := []domain.SalesRecord{
		{Date: "2025-03-15", Currency: domain.CurrencyCZK, Channel: domain.ChannelEshopEnervitCZ, TotalCZK: czk(1000)},
		{Date: "2025-03-16", Currency: domain.CurrencyEUR, Channel: domain.ChannelEshopEnervitSK, TotalEUR: czk(40)},
		{Date: "2025-03-17", Currency: domain.CurrencyCZK, Channel: domain.ChannelEshopRoyalbayCZ, TotalCZK: czk(500)},
		{Date: "2025-03-18", Currency: domain.CurrencyEUR, Channel: domain.ChannelEshopRoyalbaySK, TotalEUR: czk(20)},
		{Date: "2025-03-19", Currency: domain.CurrencyCZK, Channel: domain.ChannelB2B, TotalCZK: czk(10000)},
		{Date: "2025-03-20", Currency: domain.CurrencyEUR, Channel: domain.ChannelB2B, TotalEUR: czk(300)},
		{Date: "2025-04-01", Currency: domain.CurrencyCZK, Channel: domain.ChannelB2B, TotalCZK: czk(7000)},
	}

	result := New(25).ByMonth(records, domain.ValuationGross)

	assert.Len(t, result, 2)

	march := result["2025-03"]
	assert.Equal(t, 6, march.Count)
	assert.True(t, march.EshopEnervitCZ.Sum.Equal(czk(1000)))
	assert.True(t, march.EshopEnervitSK.Sum.Equal(czk(40)))
	assert.True(t, march.EshopRoyalbayCZ.Sum.Equal(czk(500)))
	assert.True(t, march.EshopRoyalbaySK.Sum.Equal(czk(20)))
	assert.True(t, march.B2BCZ.Sum.Equal(czk(10000)))
	assert.Equal(t, 1, march.B2BCZ.Count)

	// EUR B2B lands in the SK bucket purely by currency.
	assert.True(t, march.B2BSK.Sum.Equal(czk(300)))
	assert.Equal(t, 1, march.B2BSK.Count)

	april := result["2025-04"]
	assert.Equal(t, 1, april.Count)
	assert.True(t, april.B2BCZ.Sum.Equal(czk(7000)))
}

func TestByMonthReconcilesWithSummary(t *testing.T) {
	agg := New(25)
	records := []domain.SalesRecord{
		{Date: "2025-03-15", Currency: domain.CurrencyCZK, Channel: domain.ChannelEshopEnervitCZ, TotalCZK: czk(1000)},
		{Date: "2025-03-16", Currency: domain.CurrencyEUR, Channel: domain.ChannelB2B, TotalEUR: czk(40)},
		{Date: "2025-05-01", Currency: domain.CurrencyCZK, Channel: domain.ChannelB2B, TotalCZK: czk(250)},
	}

	byMonth := agg.ByMonth(records, domain.ValuationGross)

	sumCZK := decimal.Zero
	sumEUR := decimal.Zero
	count := 0
	for _, totals := range byMonth {
		sumCZK = sumCZK.Add(totals.EshopEnervitCZ.Sum).Add(totals.EshopRoyalbayCZ.Sum).Add(totals.B2BCZ.Sum)
		sumEUR = sumEUR.Add(totals.EshopEnervitSK.Sum).Add(totals.EshopRoyalbaySK.Sum).Add(totals.B2BSK.Sum)
		count += totals.Count
	}

	summary := agg.Summarize(records, domain.ValuationGross)
	assert.Equal(t, summary.Count, count)
	assert.True(t, summary.SumCZK.Equal(sumCZK))
	assert.True(t, summary.SumEUR.Equal(sumEUR))
}

func TestByMonthBucketsDatelessRecords(t *testing.T) {
	agg := New(25)
	records := []domain.SalesRecord{
		{Date: "2025-03-15", Currency: domain.CurrencyCZK, Channel: domain.ChannelB2B, TotalCZK: czk(1000)},
		{Date: "", Currency: domain.CurrencyCZK, Channel: domain.ChannelB2B, TotalCZK: czk(500)},
		{Date: "2025", Currency: domain.CurrencyCZK, Channel: domain.ChannelEshopEnervitCZ, TotalCZK: czk(200)},
	}

	byMonth := agg.ByMonth(records, domain.ValuationGross)

	assert.Len(t, byMonth, 2)
	unknown := byMonth[MonthUnknown]
	assert.Equal(t, 2, unknown.Count)
	assert.True(t, unknown.B2BCZ.Sum.Equal(czk(500)))
	assert.True(t, unknown.EshopEnervitCZ.Sum.Equal(czk(200)))

	// Dateless records still reconcile with the flat summary.
	sumCZK := decimal.Zero
	count := 0
	for _, totals := range byMonth {
		sumCZK = sumCZK.Add(totals.EshopEnervitCZ.Sum).Add(totals.EshopRoyalbayCZ.Sum).Add(totals.B2BCZ.Sum)
		count += totals.Count
	}
	summary := agg.Summarize(records, domain.ValuationGross)
	assert.Equal(t, summary.Count, count)
	assert.True(t, summary.SumCZK.Equal(sumCZK))
}

func TestB2BBySalesperson(t *testing.T) {
	records := []domain.SalesRecord{
		{Date: "2025-03-15", Currency: domain.CurrencyCZK, Channel: domain.ChannelB2B, Salesperson: "Karolina", TotalCZK: czk(10000)},
		{Date: "2025-03-16", Currency: domain.CurrencyCZK, Channel: domain.ChannelB2B, Salesperson: "Jirka", TotalCZK: czk(4000)},
		{Date: "2025-03-17", Currency: domain.CurrencyCZK, Channel: domain.ChannelB2B, TotalCZK: czk(600)},
		// EUR B2B and e-shop records must not contribute.
		{Date: "2025-03-18", Currency: domain.CurrencyEUR, Channel: domain.ChannelB2B, Salesperson: "Karolina", TotalEUR: czk(99)},
		{Date: "2025-03-19", Currency: domain.CurrencyCZK, Channel: domain.ChannelEshopEnervitCZ, TotalCZK: czk(123)},
	}

	result := New(25).B2BBySalesperson(records, domain.ValuationGross)

	assert.Len(t, result, 1)
	march := result["2025-03"]
	assert.True(t, march.ByName["Karolina"].Equal(czk(10000)))
	assert.True(t, march.ByName["Jirka"].Equal(czk(4000)))
	assert.True(t, march.ByName["VITAR Sport"].Equal(czk(600)))
	assert.True(t, march.Total.Equal(czk(14600)))
}

func TestB2BBySalespersonSingleOrderExample(t *testing.T) {
	records := []domain.SalesRecord{
		{Date: "2025-03-15", Currency: domain.CurrencyCZK, Channel: domain.ChannelB2B, Salesperson: "Karolina", TotalCZK: czk(10000)},
	}

	result := New(25).B2BBySalesperson(records, domain.ValuationGross)

	march := result["2025-03"]
	assert.True(t, march.ByName["Karolina"].Equal(czk(10000)))
	assert.True(t, march.Total.Equal(czk(10000)))
}

func TestByBrand(t *testing.T) {
	items := []domain.LineItem{
		{Date: "2025-03-01", ProductName: "Enervit Isotonic Sport Drink", TotalCZK: czk(1000)},
		{Date: "2025-03-02", ProductName: "Royal Bay Compression Socks", TotalEUR: czk(10)},
		{Date: "2025-03-03", ProductName: "Generic Shaker", TotalCZK: czk(200)},
	}

	result := New(25).ByBrand(items, domain.ValuationGross)

	march := result["2025-03"]
	assert.True(t, march.ByBrand[domain.BrandEnervit].Equal(czk(1000)))
	// EUR items convert at the fixed 25 CZK/EUR rate.
	assert.True(t, march.ByBrand[domain.BrandRoyalbay].Equal(czk(250)))
	assert.True(t, march.ByBrand[domain.BrandVitar].Equal(czk(200)))
	assert.True(t, march.Total.Equal(czk(1450)))
}

func TestTopCustomers(t *testing.T) {
	records := []domain.SalesRecord{
		{Company: "Alfa", TotalCZK: czk(100)},
		{Company: "Beta", TotalCZK: czk(500)},
		{Company: "Alfa", TotalCZK: czk(300)},
		{TotalCZK: czk(50)},
	}

	result := New(25).TopCustomers(records, DefaultTopN, domain.ValuationGross)

	assert.Len(t, result, 3)
	assert.Equal(t, "Beta", result[0].Key)
	assert.Equal(t, "Alfa", result[1].Key)
	assert.Equal(t, 2, result[1].Count)
	assert.True(t, result[1].Sum.Equal(czk(400)))
	assert.Equal(t, UnknownCompany, result[2].Key)
}

func TestTopCustomersStableTiesAndLimit(t *testing.T) {
	records := []domain.SalesRecord{
		{Company: "First", TotalCZK: czk(100)},
		{Company: "Second", TotalCZK: czk(100)},
		{Company: "Third", TotalCZK: czk(100)},
	}

	result := New(25).TopCustomers(records, 2, domain.ValuationGross)

	// Equal totals keep the original encounter order, cut at n.
	assert.Len(t, result, 2)
	assert.Equal(t, "First", result[0].Key)
	assert.Equal(t, "Second", result[1].Key)
}

func TestTopProducts(t *testing.T) {
	items := []domain.LineItem{
		{ProductCode: "EN001", ProductName: "Enervit Gel", TotalCZK: czk(100)},
		{ProductName: "Unlabeled sample", TotalCZK: czk(900)},
		{ProductCode: "EN001", ProductName: "Enervit Gel", TotalEUR: czk(4)},
	}

	result := New(25).TopProducts(items, DefaultTopN, domain.ValuationGross)

	assert.Len(t, result, 2)
	assert.Equal(t, "Unlabeled sample", result[0].Key)
	assert.Equal(t, "EN001", result[1].Key)
	assert.True(t, result[1].Sum.Equal(czk(200)))
}

func TestSummarizeNetValuation(t *testing.T) {
	records := []domain.SalesRecord{
		{Currency: domain.CurrencyCZK, TotalCZK: czk(121), TotalCZKNet: czk(100)},
		{Currency: domain.CurrencyEUR, TotalEUR: czk(12), TotalEURNet: czk(10)},
	}

	summary := New(25).Summarize(records, domain.ValuationNet)

	assert.Equal(t, 2, summary.Count)
	assert.True(t, summary.SumCZK.Equal(czk(100)))
	assert.True(t, summary.SumEUR.Equal(czk(10)))
	assert.True(t, summary.SumCZKEquivalent.Equal(czk(350)))
}
