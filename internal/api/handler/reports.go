package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vitarsport/sales-analytics-api/infrastructure/dataset"
	"github.com/vitarsport/sales-analytics-api/internal/usecases/aggregating"
	"github.com/vitarsport/sales-analytics-api/internal/usecases/filtering"
	"github.com/vitarsport/sales-analytics-api/internal/usecases/reporting"
	"github.com/vitarsport/sales-analytics-api/pkg/apiErrors"
)

// criteriaFromQuery maps the dashboard filter controls onto report criteria.
// Missing parameters leave the criterion unconstrained.
func criteriaFromQuery(r *http.Request) filtering.Criteria {
	query := r.URL.Query()
	return filtering.Criteria{
		Month:       query.Get("month"),
		Market:      query.Get("market"),
		Channel:     query.Get("channel"),
		Salesperson: query.Get("salesperson"),
		PaymentType: query.Get("payment_type"),
		City:        query.Get("city"),
		Valuation:   query.Get("valuation"),
	}
}

func limitFromQuery(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return aggregating.DefaultTopN, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, errors.Errorf("invalid limit %q", raw)
	}
	return limit, nil
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("error writing response")
	}
}

// handleReportError maps pipeline errors onto the standardized error body.
func handleReportError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dataset.ErrNotLoaded):
		apiErrors.WriteError(w, apiErrors.ErrDatasetNotLoaded, "dataset is not loaded yet", nil)

	case errors.Is(err, reporting.ErrUnknownSource):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "unknown record source", nil)

	default:
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "error building report", nil)
	}
}

// reportHandler wraps the shared source/criteria plumbing around one report.
func reportHandler(build func(source string, criteria filtering.Criteria) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		criteria := criteriaFromQuery(r)
		if err := criteria.Validate(); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid filter criteria", err.Error())
			return
		}

		payload, err := build(r.URL.Query().Get("source"), criteria)
		if err != nil {
			handleReportError(w, err)
			return
		}

		writeJSON(w, payload)
	}
}

func GetMonthlyReport(service reporting.Service) http.HandlerFunc {
	return reportHandler(func(source string, criteria filtering.Criteria) (any, error) {
		return service.Monthly(source, criteria)
	})
}

func GetSalespeopleReport(service reporting.Service) http.HandlerFunc {
	return reportHandler(func(source string, criteria filtering.Criteria) (any, error) {
		return service.Salespeople(source, criteria)
	})
}

func GetBrandsReport(service reporting.Service) http.HandlerFunc {
	return reportHandler(func(source string, criteria filtering.Criteria) (any, error) {
		return service.Brands(source, criteria)
	})
}

func GetPlanReport(service reporting.Service) http.HandlerFunc {
	return reportHandler(func(source string, criteria filtering.Criteria) (any, error) {
		return service.Plan(source, criteria)
	})
}

func GetTopCustomers(service reporting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		criteria := criteriaFromQuery(r)
		if err := criteria.Validate(); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid filter criteria", err.Error())
			return
		}

		limit, err := limitFromQuery(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		entries, err := service.TopCustomers(r.URL.Query().Get("source"), criteria, limit)
		if err != nil {
			handleReportError(w, err)
			return
		}

		writeJSON(w, entries)
	}
}

func GetTopProducts(service reporting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		criteria := criteriaFromQuery(r)
		if err := criteria.Validate(); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid filter criteria", err.Error())
			return
		}

		limit, err := limitFromQuery(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		entries, err := service.TopProducts(r.URL.Query().Get("source"), criteria, limit)
		if err != nil {
			handleReportError(w, err)
			return
		}

		writeJSON(w, entries)
	}
}

func GetStockReport(service reporting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := service.Stock()
		if err != nil {
			handleReportError(w, err)
			return
		}

		writeJSON(w, report)
	}
}

func GetOverdueReport(service reporting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		criteria := criteriaFromQuery(r)
		if err := criteria.Validate(); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid filter criteria", err.Error())
			return
		}

		report, err := service.Overdue(criteria)
		if err != nil {
			handleReportError(w, err)
			return
		}

		writeJSON(w, report)
	}
}

func GetSummaryReport(service reporting.Service) http.HandlerFunc {
	return reportHandler(func(source string, criteria filtering.Criteria) (any, error) {
		return service.Summary(source, criteria)
	})
}

func GetAvailablePeriods(service reporting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		periods, err := service.Periods()
		if err != nil {
			handleReportError(w, err)
			return
		}

		writeJSON(w, map[string][]string{"periods": periods})
	}
}
