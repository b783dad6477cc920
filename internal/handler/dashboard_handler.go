package handler

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/boddenberg/botshop-admin-bfa/internal/domain"
	"github.com/boddenberg/botshop-admin-bfa/internal/infra/observability"
	"github.com/boddenberg/botshop-admin-bfa/internal/port"
	"github.com/boddenberg/botshop-admin-bfa/internal/service"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Dashboard Handlers
// ============================================================

//go:embed templates/*.gohtml
var templateFS embed.FS

var dashboardTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.gohtml"))

// statusOptions feeds the filter select of the HTML page.
var statusOptions = []string{
	domain.StatusFilterAll,
	domain.PaymentStatusPending,
	domain.PaymentStatusApproved,
	domain.PaymentStatusRejected,
}

type dashboardPage struct {
	StatusFilter  string
	StatusOptions []string
	Snapshot      domain.DashboardSnapshot
	Columns       []string
	ColumnCount   int
}

var paymentColumns = []string{
	"ID", "user_id", "username", "pay_method", "status",
	"amount", "reserve_amount", "net_amount", "created_at",
}

func dashboardPageHandler(dash *service.Dashboard, snapshots port.SnapshotReader, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "GET /")
		defer span.End()

		page := dashboardPage{
			StatusFilter:  dash.StatusFilter(),
			StatusOptions: statusOptions,
			Snapshot:      snapshots.Snapshot(),
			Columns:       paymentColumns,
			ColumnCount:   domain.PaymentColumns,
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := dashboardTemplate.Execute(w, page); err != nil {
			logger.Error("failed rendering dashboard page", zap.Error(err))
		}
	}
}

func refreshFormHandler(dash *service.Dashboard, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /refresh")
		defer span.End()

		if err := r.ParseForm(); err != nil {
			handleServiceError(w, &domain.ErrValidation{Field: "form", Message: err.Error()}, logger)
			return
		}
		status, ok, err := parseStatus(r.PostForm.Get("status"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if ok {
			dash.SetStatusFilter(status)
		}

		// Failures are already on the surface; the page shows what loaded.
		if err := dash.Refresh(ctx); err != nil {
			span.SetAttributes(attribute.Bool("refresh.partial", true))
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func getDashboardHandler(dash *service.Dashboard, snapshots port.SnapshotReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "GET /v1/dashboard")
		defer span.End()

		writeJSON(w, http.StatusOK, domain.DashboardResponse{
			StatusFilter:      dash.StatusFilter(),
			DashboardSnapshot: snapshots.Snapshot(),
		})
	}
}

func refreshDashboardHandler(dash *service.Dashboard, snapshots port.SnapshotReader, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/dashboard/refresh")
		defer span.End()

		status, ok, err := parseStatus(r.URL.Query().Get("status"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if ok {
			dash.SetStatusFilter(status)
		}

		start := time.Now()
		if err := dash.Refresh(ctx); err != nil {
			span.SetAttributes(attribute.Bool("refresh.partial", true))
			logger.Warn("dashboard refresh incomplete",
				zap.Duration("latency", time.Since(start)),
				zap.Error(err),
			)
		}

		writeJSON(w, http.StatusOK, domain.DashboardResponse{
			StatusFilter:      dash.StatusFilter(),
			DashboardSnapshot: snapshots.Snapshot(),
		})
	}
}

func dashboardMetricsHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.Snapshot())
	}
}

// ============================================================
// Health
// ============================================================

func healthzHandler(snapshots port.SnapshotReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().Format(time.RFC3339)
		snap := snapshots.Snapshot()

		services := []domain.ServiceHealth{
			{Name: "admin-bfa", Status: "healthy", LastChecked: now},
		}
		for _, view := range []string{domain.ViewFinanceSummary, domain.ViewPayments} {
			status := "healthy"
			lastErr, failed := snap.Errors[view]
			if failed {
				status = "degraded"
			}
			services = append(services, domain.ServiceHealth{
				Name:        view,
				Status:      status,
				LastError:   lastErr,
				LastChecked: now,
			})
		}

		overallStatus := "healthy"
		for _, s := range services {
			if s.Status == "degraded" {
				overallStatus = "degraded"
			}
		}

		writeJSON(w, http.StatusOK, domain.HealthStatus{
			Status:   overallStatus,
			Services: services,
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
