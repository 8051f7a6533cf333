package handler

import (
	"net/http"

	"github.com/vitarsport/sales-analytics-api/internal/usecases/filtering"
	"github.com/vitarsport/sales-analytics-api/internal/usecases/reporting"
)

// GetView returns the filtered record list with its totals, the raw table
// behind the dashboard drill-down.
func GetView(service reporting.Service) http.HandlerFunc {
	return reportHandler(func(source string, criteria filtering.Criteria) (any, error) {
		return service.View(source, criteria)
	})
}
