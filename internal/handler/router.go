package handler

import (
	"net/http"

	"github.com/boddenberg/botshop-admin-bfa/internal/infra/observability"
	"github.com/boddenberg/botshop-admin-bfa/internal/port"
	"github.com/boddenberg/botshop-admin-bfa/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(dash *service.Dashboard, snapshots port.SnapshotReader, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(snapshots))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- HTML dashboard ---
	r.Get("/", dashboardPageHandler(dash, snapshots, logger))
	r.Post("/refresh", refreshFormHandler(dash, logger))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {
		r.Get("/dashboard", getDashboardHandler(dash, snapshots))
		r.Post("/dashboard/refresh", refreshDashboardHandler(dash, snapshots, logger))
		r.Get("/metrics/dashboard", dashboardMetricsHandler(metrics))
	})

	return r
}
