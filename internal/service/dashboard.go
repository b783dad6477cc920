package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/boddenberg/botshop-admin-bfa/internal/domain"
	"github.com/boddenberg/botshop-admin-bfa/internal/infra/observability"
	"github.com/boddenberg/botshop-admin-bfa/internal/port"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("service/dashboard")

// PaymentsLimit is the fixed page size sent with every payments load.
const PaymentsLimit = 200

// Dashboard orchestrates the finance summary and payments loaders and
// applies their results to the presentation surface.
//
// Loads may overlap. Each loader stamps its requests with a generation
// number and only the latest issued generation reaches the surface; older
// responses, failures included, are dropped whatever order they arrive in.
type Dashboard struct {
	api     port.AdminAPI
	surface port.Surface
	labels  domain.Labels
	loc     *time.Location
	metrics *observability.Metrics
	logger  *zap.Logger

	mu           sync.RWMutex
	statusFilter string

	// applyMu makes "is this still the latest generation" and the surface
	// write one step.
	applyMu     sync.Mutex
	summaryGen  atomic.Uint64
	paymentsGen atomic.Uint64
}

// NewDashboard creates the dashboard controller with all dependencies injected.
func NewDashboard(
	api port.AdminAPI,
	surface port.Surface,
	labels domain.Labels,
	loc *time.Location,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *Dashboard {
	if loc == nil {
		loc = time.UTC
	}
	return &Dashboard{
		api:          api,
		surface:      surface,
		labels:       labels,
		loc:          loc,
		metrics:      metrics,
		logger:       logger,
		statusFilter: domain.StatusFilterAll,
	}
}

// SetStatusFilter changes the status forwarded, as given, by subsequent
// payments loads. An empty value resets it to "all".
func (d *Dashboard) SetStatusFilter(status string) {
	if status == "" {
		status = domain.StatusFilterAll
	}
	d.mu.Lock()
	d.statusFilter = status
	d.mu.Unlock()
}

// StatusFilter returns the current status filter.
func (d *Dashboard) StatusFilter() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.statusFilter
}

// Refresh runs both loaders concurrently and waits for them. A failure in
// one never stops the other; the first error is returned.
func (d *Dashboard) Refresh(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Dashboard.Refresh")
	defer span.End()

	refreshID := uuid.New().String()
	span.SetAttributes(attribute.String("refresh.id", refreshID))
	ctx = observability.WithRefreshID(ctx, refreshID)
	d.logger.Debug("dashboard refresh", observability.CorrelationFields(ctx)...)

	var g errgroup.Group
	g.Go(func() error { return d.LoadFinanceSummary(ctx) })
	g.Go(func() error { return d.LoadPayments(ctx) })
	return g.Wait()
}

// LoadFinanceSummary fetches the finance summary and applies it. On failure
// the metrics panel keeps its previous content.
func (d *Dashboard) LoadFinanceSummary(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Dashboard.LoadFinanceSummary")
	defer span.End()

	gen := d.summaryGen.Add(1)
	start := time.Now()
	defer func() {
		d.metrics.RecordLoadDuration(domain.ViewFinanceSummary, time.Since(start))
	}()

	summary, err := d.api.GetFinanceSummary(ctx)
	if err != nil {
		return d.fail(ctx, domain.ViewFinanceSummary, gen, &d.summaryGen, err)
	}

	view := RenderSummary(summary, d.labels)
	d.apply(domain.ViewFinanceSummary, gen, &d.summaryGen, func() {
		d.surface.ApplySummary(view)
	})
	return nil
}

// LoadPayments fetches payments for the current filter and applies the
// derived views. On failure the payments regions keep their previous content.
func (d *Dashboard) LoadPayments(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Dashboard.LoadPayments")
	defer span.End()

	status := d.StatusFilter()
	if status == domain.StatusFilterAll {
		status = ""
	}
	span.SetAttributes(attribute.String("payments.status", status))

	gen := d.paymentsGen.Add(1)
	start := time.Now()
	defer func() {
		d.metrics.RecordLoadDuration(domain.ViewPayments, time.Since(start))
	}()

	payments, err := d.api.ListPayments(ctx, PaymentsLimit, status)
	if err != nil {
		return d.fail(ctx, domain.ViewPayments, gen, &d.paymentsGen, err)
	}

	view := RenderPayments(payments, d.labels, d.loc)
	d.apply(domain.ViewPayments, gen, &d.paymentsGen, func() {
		d.surface.ApplyPayments(view)
	})
	return nil
}

// apply runs write only if gen is still the latest generation for view.
func (d *Dashboard) apply(view string, gen uint64, latest *atomic.Uint64, write func()) {
	d.applyMu.Lock()
	defer d.applyMu.Unlock()

	if d.superseded(view, gen, latest) {
		return
	}

	write()
	d.metrics.IncrLoad(view, observability.ResultOK)
}

// fail records err for view unless a newer load was issued meanwhile; a
// superseded failure is counted as stale and reported as nil.
func (d *Dashboard) fail(ctx context.Context, view string, gen uint64, latest *atomic.Uint64, err error) error {
	d.applyMu.Lock()
	defer d.applyMu.Unlock()

	if d.superseded(view, gen, latest) {
		return nil
	}

	d.metrics.IncrLoad(view, observability.ResultError)
	fields := append([]zap.Field{
		zap.String("view", view),
		zap.Error(err),
	}, observability.CorrelationFields(ctx)...)
	d.logger.Error("failed loading "+strings.ReplaceAll(view, "_", " "), fields...)
	d.surface.RecordFailure(view, err)
	return fmt.Errorf("load %s: %w", view, err)
}

// superseded reports, and counts, a response whose generation is no longer
// the latest. Callers hold applyMu.
func (d *Dashboard) superseded(view string, gen uint64, latest *atomic.Uint64) bool {
	current := latest.Load()
	if gen == current {
		return false
	}
	d.metrics.IncrStale(view)
	d.logger.Debug("discarding stale response",
		zap.String("view", view),
		zap.Uint64("generation", gen),
		zap.Uint64("latest", current),
	)
	return true
}
