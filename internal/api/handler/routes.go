package handler

import (
	"net/http"

	"github.com/agromarket/analytics-api/infrastructure/repository"
	"github.com/agromarket/analytics-api/internal/api/handler/router"
	"github.com/agromarket/analytics-api/internal/usecases/reporting"
	"github.com/agromarket/analytics-api/pkg/middleware"
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

func Dashboard(service reporting.Reporter, snapshotRepo repository.ReportSnapshotRepository) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard/report",
			Method:      http.MethodGet,
			Handler:     GetDashboardReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/report/latest-snapshot",
			Method:      http.MethodGet,
			Handler:     GetLatestSnapshot(snapshotRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}
