package service_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/boddenberg/botshop-admin-bfa/internal/domain"
	"github.com/boddenberg/botshop-admin-bfa/internal/infra/observability"
	"github.com/boddenberg/botshop-admin-bfa/internal/service"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// --- Mocks ---

type paymentsCall struct {
	limit  int
	status string
}

type mockAdminAPI struct {
	mu          sync.Mutex
	summary     *domain.FinanceSummary
	summaryErr  error
	payments    []domain.PaymentRecord
	paymentsErr error
	calls       []paymentsCall

	// byStatus overrides payments for a given status.
	byStatus map[string][]domain.PaymentRecord
	// errByStatus overrides paymentsErr for a given status.
	errByStatus map[string]error
	// gates blocks ListPayments for a status until the channel is closed.
	gates map[string]chan struct{}
	// started is signalled when ListPayments is entered.
	started chan string
}

func (m *mockAdminAPI) GetFinanceSummary(_ context.Context) (*domain.FinanceSummary, error) {
	return m.summary, m.summaryErr
}

func (m *mockAdminAPI) ListPayments(_ context.Context, limit int, status string) ([]domain.PaymentRecord, error) {
	m.mu.Lock()
	m.calls = append(m.calls, paymentsCall{limit: limit, status: status})
	gate := m.gates[status]
	payments := m.payments
	if p, ok := m.byStatus[status]; ok {
		payments = p
	}
	err := m.paymentsErr
	if e, ok := m.errByStatus[status]; ok {
		err = e
	}
	m.mu.Unlock()

	if m.started != nil {
		m.started <- status
	}
	if gate != nil {
		<-gate
	}
	return payments, err
}

func (m *mockAdminAPI) paymentsCalls() []paymentsCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]paymentsCall(nil), m.calls...)
}

type mockSurface struct {
	mu           sync.Mutex
	summaries    []domain.SummaryView
	paymentViews []domain.PaymentsView
	failures     map[string]error
}

func newMockSurface() *mockSurface {
	return &mockSurface{failures: make(map[string]error)}
}

func (s *mockSurface) ApplySummary(view domain.SummaryView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries = append(s.summaries, view)
}

func (s *mockSurface) ApplyPayments(view domain.PaymentsView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paymentViews = append(s.paymentViews, view)
}

func (s *mockSurface) RecordFailure(view string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[view] = err
}

func newDashboard(api *mockAdminAPI, surf *mockSurface) (*service.Dashboard, *observability.Metrics) {
	metrics := observability.NewMetrics()
	return service.NewDashboard(api, surf, domain.DefaultLabels(), time.UTC, metrics, zap.NewNop()), metrics
}

func (s *mockSurface) failure(view string) (error, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err, ok := s.failures[view]
	return err, ok
}

// --- Tests ---

func TestRefresh_AppliesBothViews(t *testing.T) {
	api := &mockAdminAPI{
		summary: &domain.FinanceSummary{Approvals: &domain.ApprovalCounts{Pending: 1}},
		payments: []domain.PaymentRecord{
			{ID: domain.NumericID(1), UserID: domain.NumericID(5), Status: domain.PaymentStatusApproved, Amount: 100},
			{ID: domain.NumericID(2), UserID: domain.NumericID(5), Status: domain.PaymentStatusApproved, Amount: 200},
		},
	}
	surf := newMockSurface()
	dash, metrics := newDashboard(api, surf)

	if err := dash.Refresh(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(surf.summaries) != 1 || surf.summaries[0].Approvals[0].Value != "1" {
		t.Errorf("unexpected summaries applied: %+v", surf.summaries)
	}
	if len(surf.paymentViews) != 1 {
		t.Fatalf("expected one payments view, got %d", len(surf.paymentViews))
	}
	view := surf.paymentViews[0]
	if len(view.Rows) != 2 || len(view.ApprovedUsers) != 1 || view.ApprovedUsers[0].PaymentID != domain.NumericID(1) {
		t.Errorf("unexpected payments view: %+v", view)
	}

	stats := metrics.Snapshot()
	if stats.SummaryLoads != 1 || stats.PaymentsLoads != 1 || stats.ErrorRate != 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestLoadPayments_Parameters(t *testing.T) {
	api := &mockAdminAPI{}
	dash, _ := newDashboard(api, newMockSurface())

	_ = dash.LoadPayments(context.Background())
	dash.SetStatusFilter(domain.PaymentStatusPending)
	_ = dash.LoadPayments(context.Background())
	dash.SetStatusFilter("")
	_ = dash.LoadPayments(context.Background())

	calls := api.paymentsCalls()
	want := []paymentsCall{
		{limit: service.PaymentsLimit, status: ""},
		{limit: service.PaymentsLimit, status: "pending"},
		{limit: service.PaymentsLimit, status: ""},
	}
	if len(calls) != len(want) {
		t.Fatalf("expected %d calls, got %d", len(want), len(calls))
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d: expected %+v, got %+v", i, want[i], calls[i])
		}
	}
	if dash.StatusFilter() != domain.StatusFilterAll {
		t.Errorf("expected filter reset to all, got %q", dash.StatusFilter())
	}
}

func TestSetStatusFilter_ForwardedVerbatim(t *testing.T) {
	api := &mockAdminAPI{}
	dash, _ := newDashboard(api, newMockSurface())

	dash.SetStatusFilter(" Pending")
	_ = dash.LoadPayments(context.Background())

	if calls := api.paymentsCalls(); len(calls) != 1 || calls[0].status != " Pending" {
		t.Errorf("expected status forwarded as given, got %+v", calls)
	}
}

func TestRefresh_FailureLogsRefreshID(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	api := &mockAdminAPI{
		summaryErr:  &domain.ErrRequest{Path: "/api/admin/finance-summary", Status: http.StatusUnauthorized},
		paymentsErr: &domain.ErrRequest{Path: "/api/admin/payments", Status: http.StatusUnauthorized},
	}
	dash := service.NewDashboard(api, newMockSurface(), domain.DefaultLabels(), time.UTC, observability.NewMetrics(), zap.New(core))

	if err := dash.Refresh(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected one error per loader, got %d", len(entries))
	}
	first, _ := entries[0].ContextMap()["refresh_id"].(string)
	second, _ := entries[1].ContextMap()["refresh_id"].(string)
	if first == "" || first != second {
		t.Errorf("expected both loader errors to share a refresh id, got %q and %q", first, second)
	}
}

func TestLoadPayments_FailureLeavesSurfaceUnchanged(t *testing.T) {
	api := &mockAdminAPI{
		summary:     &domain.FinanceSummary{},
		paymentsErr: &domain.ErrRequest{Path: "/api/admin/payments", Status: http.StatusForbidden},
	}
	surf := newMockSurface()
	dash, metrics := newDashboard(api, surf)

	err := dash.Refresh(context.Background())

	var reqErr *domain.ErrRequest
	if !errors.As(err, &reqErr) || reqErr.Status != http.StatusForbidden {
		t.Fatalf("expected ErrRequest 403, got %v", err)
	}
	if len(surf.paymentViews) != 0 {
		t.Errorf("expected payments untouched, got %d applies", len(surf.paymentViews))
	}
	if len(surf.summaries) != 1 {
		t.Errorf("expected summary to load independently, got %d applies", len(surf.summaries))
	}
	if _, ok := surf.failures[domain.ViewPayments]; !ok {
		t.Error("expected payments failure recorded")
	}
	if stats := metrics.Snapshot(); stats.PaymentsFailures != 1 {
		t.Errorf("expected 1 payments failure, got %+v", stats)
	}
}

func TestLoadFinanceSummary_FailureIsolated(t *testing.T) {
	api := &mockAdminAPI{
		summaryErr: &domain.ErrExternalService{Service: "botshop-admin", Err: errors.New("connection refused")},
		payments:   []domain.PaymentRecord{{ID: domain.NumericID(1), UserID: domain.NumericID(2), Status: domain.PaymentStatusPending}},
	}
	surf := newMockSurface()
	dash, _ := newDashboard(api, surf)

	if err := dash.Refresh(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	if len(surf.summaries) != 0 {
		t.Error("expected metrics panel untouched")
	}
	if len(surf.paymentViews) != 1 || len(surf.paymentViews[0].Pending) != 1 {
		t.Errorf("expected payments view applied, got %+v", surf.paymentViews)
	}
	if _, ok := surf.failures[domain.ViewFinanceSummary]; !ok {
		t.Error("expected summary failure recorded")
	}
}

func TestLoadPayments_DiscardsStaleResponse(t *testing.T) {
	slowGate := make(chan struct{})
	api := &mockAdminAPI{
		byStatus: map[string][]domain.PaymentRecord{
			"pending":  {{ID: domain.NumericID(1), UserID: domain.NumericID(1), Status: domain.PaymentStatusPending}},
			"approved": {{ID: domain.NumericID(2), UserID: domain.NumericID(2), Status: domain.PaymentStatusApproved}},
		},
		gates:   map[string]chan struct{}{"pending": slowGate},
		started: make(chan string, 2),
	}
	surf := newMockSurface()
	dash, metrics := newDashboard(api, surf)

	// First load is issued and stalls.
	dash.SetStatusFilter("pending")
	slowDone := make(chan error, 1)
	go func() { slowDone <- dash.LoadPayments(context.Background()) }()
	<-api.started

	// A newer load completes while the first is in flight.
	dash.SetStatusFilter("approved")
	if err := dash.LoadPayments(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	<-api.started

	// The stale response arrives last and must not be applied.
	close(slowGate)
	if err := <-slowDone; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(surf.paymentViews) != 1 {
		t.Fatalf("expected exactly one applied view, got %d", len(surf.paymentViews))
	}
	if got := surf.paymentViews[0]; len(got.ApprovedUsers) != 1 || got.ApprovedUsers[0].UserID != domain.NumericID(2) {
		t.Errorf("expected the newer view to be shown, got %+v", got)
	}
	if stats := metrics.Snapshot(); stats.StaleResponses != 1 {
		t.Errorf("expected 1 stale response, got %+v", stats)
	}
}

func TestLoadPayments_DiscardsStaleFailure(t *testing.T) {
	slowGate := make(chan struct{})
	api := &mockAdminAPI{
		byStatus: map[string][]domain.PaymentRecord{
			"approved": {{ID: domain.NumericID(2), UserID: domain.NumericID(2), Status: domain.PaymentStatusApproved}},
		},
		errByStatus: map[string]error{
			"pending": &domain.ErrRequest{Path: "/api/admin/payments", Status: http.StatusBadGateway},
		},
		gates:   map[string]chan struct{}{"pending": slowGate},
		started: make(chan string, 2),
	}
	surf := newMockSurface()
	dash, metrics := newDashboard(api, surf)

	dash.SetStatusFilter("pending")
	slowDone := make(chan error, 1)
	go func() { slowDone <- dash.LoadPayments(context.Background()) }()
	<-api.started

	dash.SetStatusFilter("approved")
	if err := dash.LoadPayments(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	<-api.started

	// The older load fails after the newer one was applied.
	close(slowGate)
	if err := <-slowDone; err != nil {
		t.Errorf("expected superseded failure to be dropped, got %v", err)
	}

	if _, ok := surf.failure(domain.ViewPayments); ok {
		t.Error("expected no failure recorded next to the current view")
	}
	if len(surf.paymentViews) != 1 {
		t.Errorf("expected the newer view to stay applied, got %d applies", len(surf.paymentViews))
	}
	stats := metrics.Snapshot()
	if stats.StaleResponses != 1 || stats.PaymentsFailures != 0 {
		t.Errorf("expected 1 stale response and no failures, got %+v", stats)
	}
}

func TestRefresh_Concurrent(t *testing.T) {
	api := &mockAdminAPI{
		summary:  &domain.FinanceSummary{},
		payments: []domain.PaymentRecord{{ID: domain.NumericID(1), UserID: domain.NumericID(1), Status: domain.PaymentStatusApproved}},
	}
	surf := newMockSurface()
	dash, metrics := newDashboard(api, surf)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = dash.Refresh(context.Background())
		}()
	}
	wg.Wait()

	stats := metrics.Snapshot()
	applied := int64(len(surf.summaries) + len(surf.paymentViews))
	if applied+stats.StaleResponses != 16 {
		t.Errorf("expected every response applied or discarded, applied=%d stale=%d", applied, stats.StaleResponses)
	}
	if len(surf.summaries) == 0 || len(surf.paymentViews) == 0 {
		t.Error("expected the latest load of each view to be applied")
	}
}
