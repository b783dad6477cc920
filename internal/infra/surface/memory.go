// Package surface contains the presentation adapters that show dashboard
// view models: an in-memory snapshot served over HTTP and a terminal printer.
package surface

import (
	"sync"
	"time"

	"github.com/boddenberg/botshop-admin-bfa/internal/domain"
)

// Memory keeps the latest applied views for the HTTP handlers.
type Memory struct {
	mu       sync.RWMutex
	summary  *domain.SummaryView
	payments *domain.PaymentsView

	summaryAt  time.Time
	paymentsAt time.Time
	errors     map[string]string

	now func() time.Time
}

// NewMemory creates an empty surface. Until the first payments load the
// table shows nothing, not the "no data" placeholder.
func NewMemory() *Memory {
	return &Memory{
		errors: make(map[string]string),
		now:    time.Now,
	}
}

// ApplySummary replaces the metrics panel.
func (m *Memory) ApplySummary(view domain.SummaryView) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summary = &view
	m.summaryAt = m.now()
	delete(m.errors, domain.ViewFinanceSummary)
}

// ApplyPayments replaces the table, pending list and approved users.
func (m *Memory) ApplyPayments(view domain.PaymentsView) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments = &view
	m.paymentsAt = m.now()
	delete(m.errors, domain.ViewPayments)
}

// RecordFailure remembers the last error of a view. Displayed content stays.
func (m *Memory) RecordFailure(view string, err error) {
	if err == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[view] = err.Error()
}

// Snapshot returns a copy of what is currently displayed.
func (m *Memory) Snapshot() domain.DashboardSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := domain.DashboardSnapshot{}
	if m.summary != nil {
		s := *m.summary
		at := m.summaryAt
		snap.Summary = &s
		snap.SummaryUpdatedAt = &at
	}
	if m.payments != nil {
		p := *m.payments
		at := m.paymentsAt
		snap.Payments = &p
		snap.PaymentsUpdatedAt = &at
	}
	if len(m.errors) > 0 {
		snap.Errors = make(map[string]string, len(m.errors))
		for k, v := range m.errors {
			snap.Errors[k] = v
		}
	}
	return snap
}
