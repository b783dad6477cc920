package observability

import (
	"strconv"
	"time"

	"github.com/boddenberg/botshop-admin-bfa/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Load results used as the "result" label.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics holds all Prometheus metrics for the dashboard.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	loadDuration      *prometheus.HistogramVec
	loadsTotal        *prometheus.CounterVec
	staleResponses    *prometheus.CounterVec
	upstreamResponses *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		loadDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "admindash_load_duration_seconds",
				Help:    "Duration of dashboard loads by view.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"view"},
		),
		loadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "admindash_loads_total",
				Help: "Total dashboard loads by view and result.",
			},
			[]string{"view", "result"},
		),
		staleResponses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "admindash_stale_responses_total",
				Help: "Responses discarded because a newer load was issued.",
			},
			[]string{"view"},
		),
		upstreamResponses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "admindash_upstream_responses_total",
				Help: "Admin API responses by endpoint and status code.",
			},
			[]string{"endpoint", "code"},
		),
	}
}

// RecordLoadDuration records how long a load of view took.
func (m *Metrics) RecordLoadDuration(view string, d time.Duration) {
	m.loadDuration.WithLabelValues(view).Observe(d.Seconds())
}

// IncrLoad counts a finished load.
func (m *Metrics) IncrLoad(view, result string) {
	m.loadsTotal.WithLabelValues(view, result).Inc()
}

// IncrStale counts a discarded stale response.
func (m *Metrics) IncrStale(view string) {
	m.staleResponses.WithLabelValues(view).Inc()
}

// IncrUpstream counts an upstream response. Status 0 means no response.
func (m *Metrics) IncrUpstream(endpoint string, status int) {
	code := "none"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	m.upstreamResponses.WithLabelValues(endpoint, code).Inc()
}

// Snapshot returns load counters suitable for GET /v1/metrics/dashboard.
func (m *Metrics) Snapshot() *domain.LoadStats {
	summaryOK := getCounterValue(m.loadsTotal, domain.ViewFinanceSummary, ResultOK)
	summaryErr := getCounterValue(m.loadsTotal, domain.ViewFinanceSummary, ResultError)
	paymentsOK := getCounterValue(m.loadsTotal, domain.ViewPayments, ResultOK)
	paymentsErr := getCounterValue(m.loadsTotal, domain.ViewPayments, ResultError)
	stale := getCounterValue(m.staleResponses, domain.ViewFinanceSummary) +
		getCounterValue(m.staleResponses, domain.ViewPayments)

	total := summaryOK + summaryErr + paymentsOK + paymentsErr
	errorRate := float64(0)
	if total > 0 {
		errorRate = (summaryErr + paymentsErr) / total
	}

	return &domain.LoadStats{
		SummaryLoads:     int64(summaryOK + summaryErr),
		SummaryFailures:  int64(summaryErr),
		PaymentsLoads:    int64(paymentsOK + paymentsErr),
		PaymentsFailures: int64(paymentsErr),
		StaleResponses:   int64(stale),
		ErrorRate:        errorRate,
		Period:           "all_time",
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for the given labels.
func getCounterValue(cv *prometheus.CounterVec, labels ...string) float64 {
	counter := cv.WithLabelValues(labels...)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
