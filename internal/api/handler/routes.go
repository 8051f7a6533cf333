package handler

import (
	"net/http"

	"github.com/vitarsport/sales-analytics-api/internal/api/handler/router"
	"github.com/vitarsport/sales-analytics-api/internal/scheduler"
	"github.com/vitarsport/sales-analytics-api/internal/usecases/authenticating"
	"github.com/vitarsport/sales-analytics-api/internal/usecases/reporting"
	"github.com/vitarsport/sales-analytics-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Reports(service reporting.Service) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/reports/monthly",
			Method:      http.MethodGet,
			Handler:     GetMonthlyReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/salespeople",
			Method:      http.MethodGet,
			Handler:     GetSalespeopleReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/brands",
			Method:      http.MethodGet,
			Handler:     GetBrandsReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/plan",
			Method:      http.MethodGet,
			Handler:     GetPlanReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/top-customers",
			Method:      http.MethodGet,
			Handler:     GetTopCustomers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/top-products",
			Method:      http.MethodGet,
			Handler:     GetTopProducts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/stock",
			Method:      http.MethodGet,
			Handler:     GetStockReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/overdue",
			Method:      http.MethodGet,
			Handler:     GetOverdueReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/summary",
			Method:      http.MethodGet,
			Handler:     GetSummaryReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/periods",
			Method:      http.MethodGet,
			Handler:     GetAvailablePeriods(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Views(service reporting.Service) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/views",
			Method:      http.MethodGet,
			Handler:     GetView(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Dataset(service *scheduler.DatasetReloadService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dataset/reload",
			Method:      http.MethodPost,
			Handler:     TriggerDatasetReload(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/dataset/status",
			Method:      http.MethodGet,
			Handler:     GetDatasetStatus(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
