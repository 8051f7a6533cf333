// Package reporting composes the pipeline behind the dashboard endpoints:
// filter → aggregate → compare/classify → summarize over the current dataset
// snapshot.
package reporting

import (
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/vitarsport/sales-analytics-api/infrastructure/dataset"
	"github.com/vitarsport/sales-analytics-api/internal/domain"
	"github.com/vitarsport/sales-analytics-api/internal/usecases/aggregating"
	"github.com/vitarsport/sales-analytics-api/internal/usecases/classifying"
	"github.com/vitarsport/sales-analytics-api/internal/usecases/filtering"
	"github.com/vitarsport/sales-analytics-api/internal/usecases/planning"
	"github.com/vitarsport/sales-analytics-api/internal/usecases/summarizing"
)

// Record store views selectable on the report endpoints.
const (
	SourceOrders     = "orders"
	SourceInvoices   = "invoices"
	SourceSponsoring = "sponsoring"
)

// ErrUnknownSource is returned for a source outside the known views.
var ErrUnknownSource = errors.New("unknown record source")

// Service runs the report pipeline over the active snapshot.
type Service interface {
	Monthly(source string, criteria filtering.Criteria) (*MonthlyReport, error)
	Salespeople(source string, criteria filtering.Criteria) (*SalespeopleReport, error)
	Brands(source string, criteria filtering.Criteria) (*BrandsReport, error)
	Plan(source string, criteria filtering.Criteria) (*PlanReport, error)
	TopCustomers(source string, criteria filtering.Criteria, n int) ([]aggregating.RankedEntry, error)
	TopProducts(source string, criteria filtering.Criteria, n int) ([]aggregating.RankedEntry, error)
	Stock() (*StockReport, error)
	Overdue(criteria filtering.Criteria) (*OverdueReport, error)
	Summary(source string, criteria filtering.Criteria) (*SummaryReport, error)
	Periods() ([]string, error)
	View(source string, criteria filtering.Criteria) (*ViewReport, error)
}

type service struct {
	provider   dataset.Provider
	aggregator *aggregating.Aggregator
	now        func() time.Time
}

func NewService(provider dataset.Provider, aggregator *aggregating.Aggregator, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{
		provider:   provider,
		aggregator: aggregator,
		now:        now,
	}
}

// MonthlyMonth is one month of the channel breakdown.
type MonthlyMonth struct {
	Month string `json:"month"`
	aggregating.ChannelTotals
}

type MonthlyReport struct {
	Months  []MonthlyMonth      `json:"months"`
	Summary aggregating.Summary `json:"summary"`
}

type SalespersonMonth struct {
	Month string `json:"month"`
	aggregating.SalespersonTotals
}

type SalespeopleReport struct {
	Months []SalespersonMonth         `json:"months"`
	Plan   map[string]planning.Result `json:"plan"`
}

type BrandMonth struct {
	Month string `json:"month"`
	aggregating.BrandTotals
}

type BrandsReport struct {
	Months []BrandMonth `json:"months"`
}

type PlanReport struct {
	CZ          planning.Result            `json:"cz"`
	SK          planning.Result            `json:"sk"`
	Salespeople map[string]planning.Result `json:"salespeople"`
}

type StockReport struct {
	Items    []classifying.StockRow `json:"items"`
	ByStatus map[string]int         `json:"by_status"`
}

type OverdueReport struct {
	Invoices []classifying.OverdueRow `json:"invoices"`
	ByStatus map[string]int           `json:"by_status"`
}

type SummaryReport struct {
	Narrative summarizing.Narrative `json:"narrative"`
	Figures   SummaryFigures        `json:"figures"`
}

// SummaryFigures are the headline numbers the narrative was generated from.
type SummaryFigures struct {
	Month            string          `json:"month"`
	TotalCZK         decimal.Decimal `json:"total_czk_equivalent"`
	FulfillmentCZ    float64         `json:"fulfillment_cz"`
	FulfillmentSK    float64         `json:"fulfillment_sk"`
	MoMChangePercent float64         `json:"mom_change_percent"`
	B2BShare         float64         `json:"b2b_share"`
	EshopShare       float64         `json:"eshop_share"`
	PaymentRate      float64         `json:"payment_rate"`
}

type ViewReport struct {
	Records []domain.SalesRecord `json:"records"`
	Summary aggregating.Summary  `json:"summary"`
}

// records resolves a source name to its snapshot collections.
func records(snapshot *dataset.Snapshot, source string) ([]domain.SalesRecord, []domain.LineItem, error) {
	switch source {
	case SourceOrders, "":
		return snapshot.Orders, snapshot.OrderItems, nil
	case SourceInvoices:
		return snapshot.Invoices, snapshot.InvoiceItems, nil
	case SourceSponsoring:
		return snapshot.Sponsoring, snapshot.SponsoringItems, nil
	default:
		return nil, nil, errors.Wrap(ErrUnknownSource, source)
	}
}

func (s *service) Monthly(source string, criteria filtering.Criteria) (*MonthlyReport, error) {
	snapshot, err := s.provider.Current()
	if err != nil {
		return nil, err
	}
	all, _, err := records(snapshot, source)
	if err != nil {
		return nil, err
	}

	valuation := criteria.ValuationOrDefault()
	filtered := filtering.Records(all, criteria)
	byMonth := s.aggregator.ByMonth(filtered, valuation)

	report := &MonthlyReport{
		Months:  make([]MonthlyMonth, 0, len(byMonth)),
		Summary: s.aggregator.Summarize(filtered, valuation),
	}
	for _, month := range sortedKeys(byMonth) {
		report.Months = append(report.Months, MonthlyMonth{Month: month, ChannelTotals: *byMonth[month]})
	}
	return report, nil
}

func (s *service) Salespeople(source string, criteria filtering.Criteria) (*SalespeopleReport, error) {
	snapshot, err := s.provider.Current()
	if err != nil {
		return nil, err
	}
	return s.salespeople(snapshot, source, criteria)
}

func (s *service) salespeople(snapshot *dataset.Snapshot, source string, criteria filtering.Criteria) (*SalespeopleReport, error) {
	all, _, err := records(snapshot, source)
	if err != nil {
		return nil, err
	}

	valuation := criteria.ValuationOrDefault()
	filtered := filtering.Records(all, criteria)
	byMonth := s.aggregator.B2BBySalesperson(filtered, valuation)

	report := &SalespeopleReport{
		Months: make([]SalespersonMonth, 0, len(byMonth)),
		Plan:   make(map[string]planning.Result),
	}

	// Per-salesperson actuals per month feed the plan comparison.
	actuals := make(map[string]map[string]decimal.Decimal)
	for _, month := range sortedKeys(byMonth) {
		totals := byMonth[month]
		report.Months = append(report.Months, SalespersonMonth{Month: month, SalespersonTotals: *totals})

		for name, sum := range totals.ByName {
			if actuals[name] == nil {
				actuals[name] = make(map[string]decimal.Decimal)
			}
			actuals[name][month] = sum
		}
	}

	// The comparison covers everyone with sales or a target: a planned month
	// without sales still yields a row, and a salesperson with a target but
	// no sales at all still appears against it.
	names := make(map[string]bool)
	for name := range actuals {
		names[name] = true
	}
	for month, target := range snapshot.Plan {
		if !monthMatches(criteria, month) {
			continue
		}
		for name := range target.Salespeople {
			names[name] = true
		}
	}

	for name := range names {
		plan := make(map[string]decimal.Decimal)
		for month, target := range snapshot.Plan {
			if !monthMatches(criteria, month) {
				continue
			}
			if t, ok := target.Salespeople[name]; ok {
				plan[month] = t
			}
		}
		report.Plan[name] = planning.Compare(actuals[name], plan)
	}

	return report, nil
}

func (s *service) Brands(source string, criteria filtering.Criteria) (*BrandsReport, error) {
	snapshot, err := s.provider.Current()
	if err != nil {
		return nil, err
	}
	_, items, err := records(snapshot, source)
	if err != nil {
		return nil, err
	}

	filtered := filtering.LineItems(items, criteria)
	byMonth := s.aggregator.ByBrand(filtered, criteria.ValuationOrDefault())

	report := &BrandsReport{Months: make([]BrandMonth, 0, len(byMonth))}
	for _, month := range sortedKeys(byMonth) {
		report.Months = append(report.Months, BrandMonth{Month: month, BrandTotals: *byMonth[month]})
	}
	return report, nil
}

// Plan compares market actuals against the plan table. CZ actuals are the CZK
// totals of non-EUR records; SK actuals are EUR totals converted at the fixed
// rate, so both sides of the comparison are CZK figures.
func (s *service) Plan(source string, criteria filtering.Criteria) (*PlanReport, error) {
	snapshot, err := s.provider.Current()
	if err != nil {
		return nil, err
	}
	all, _, err := records(snapshot, source)
	if err != nil {
		return nil, err
	}

	valuation := criteria.ValuationOrDefault()
	filtered := filtering.Records(all, criteria)

	actualCZ := make(map[string]decimal.Decimal)
	actualSK := make(map[string]decimal.Decimal)
	for _, r := range filtered {
		month := r.Month()
		if month == "" {
			continue
		}
		if r.Currency == domain.CurrencyEUR {
			actualSK[month] = actualSK[month].Add(r.AmountEUR(valuation).Mul(s.aggregator.Rate()))
		} else {
			actualCZ[month] = actualCZ[month].Add(r.AmountCZK(valuation))
		}
	}

	planCZ := make(map[string]decimal.Decimal)
	planSK := make(map[string]decimal.Decimal)
	for month, target := range snapshot.Plan {
		if !monthMatches(criteria, month) {
			continue
		}
		planCZ[month] = target.TotalCZ
		planSK[month] = target.TotalSK
	}

	report := &PlanReport{
		CZ:          planning.Compare(actualCZ, planCZ),
		SK:          planning.Compare(actualSK, planSK),
		Salespeople: make(map[string]planning.Result),
	}

	// Reuses the snapshot already in hand so all sections of one response
	// describe the same dataset even across a concurrent reload.
	salespeople, err := s.salespeople(snapshot, source, criteria)
	if err != nil {
		return nil, err
	}
	report.Salespeople = salespeople.Plan

	return report, nil
}

func (s *service) TopCustomers(source string, criteria filtering.Criteria, n int) ([]aggregating.RankedEntry, error) {
	snapshot, err := s.provider.Current()
	if err != nil {
		return nil, err
	}
	all, _, err := records(snapshot, source)
	if err != nil {
		return nil, err
	}

	filtered := filtering.Records(all, criteria)
	return s.aggregator.TopCustomers(filtered, n, criteria.ValuationOrDefault()), nil
}

func (s *service) TopProducts(source string, criteria filtering.Criteria, n int) ([]aggregating.RankedEntry, error) {
	snapshot, err := s.provider.Current()
	if err != nil {
		return nil, err
	}
	_, items, err := records(snapshot, source)
	if err != nil {
		return nil, err
	}

	filtered := filtering.LineItems(items, criteria)
	return s.aggregator.TopProducts(filtered, n, criteria.ValuationOrDefault()), nil
}

func (s *service) Stock() (*StockReport, error) {
	snapshot, err := s.provider.Current()
	if err != nil {
		return nil, err
	}

	rows := classifying.ClassifyStockItems(snapshot.Stock)
	report := &StockReport{Items: rows, ByStatus: make(map[string]int)}
	for _, row := range rows {
		report.ByStatus[row.Status]++
	}
	return report, nil
}

func (s *service) Overdue(criteria filtering.Criteria) (*OverdueReport, error) {
	snapshot, err := s.provider.Current()
	if err != nil {
		return nil, err
	}

	filtered := filtering.Records(snapshot.Invoices, criteria)
	rows := classifying.ClassifyOverdueInvoices(filtered, s.now())

	report := &OverdueReport{Invoices: rows, ByStatus: make(map[string]int)}
	for _, row := range rows {
		report.ByStatus[row.Status]++
	}
	return report, nil
}

func (s *service) Periods() ([]string, error) {
	snapshot, err := s.provider.Current()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, collection := range [][]domain.SalesRecord{snapshot.Orders, snapshot.Invoices, snapshot.Sponsoring} {
		for _, r := range collection {
			if month := r.Month(); month != "" {
				seen[month] = true
			}
		}
	}

	periods := make([]string, 0, len(seen))
	for month := range seen {
		periods = append(periods, month)
	}
	sort.Strings(periods)
	return periods, nil
}

func (s *service) View(source string, criteria filtering.Criteria) (*ViewReport, error) {
	snapshot, err := s.provider.Current()
	if err != nil {
		return nil, err
	}
	all, _, err := records(snapshot, source)
	if err != nil {
		return nil, err
	}

	filtered := filtering.Records(all, criteria)
	return &ViewReport{
		Records: filtered,
		Summary: s.aggregator.Summarize(filtered, criteria.ValuationOrDefault()),
	}, nil
}

// monthMatches applies the month criterion to plan table rows with the same
// semantics as the record filter ("all" or empty means unconstrained).
func monthMatches(criteria filtering.Criteria, month string) bool {
	return criteria.Month == "" || criteria.Month == filtering.ValueAll || criteria.Month == month
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
