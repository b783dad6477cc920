package resilience_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/boddenberg/botshop-admin-bfa/internal/domain"
	"github.com/boddenberg/botshop-admin-bfa/internal/infra/resilience"

	"github.com/sony/gobreaker"
)

func TestIsUpstreamAnswer(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, true},
		{"status error", &domain.ErrRequest{Path: "/x", Status: 403}, true},
		{"wrapped status error", fmt.Errorf("load: %w", &domain.ErrRequest{Status: 500}), true},
		{"decode error", &domain.ErrDecode{Path: "/x", Err: errors.New("bad")}, true},
		{"transport error", errors.New("connection refused"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resilience.IsUpstreamAnswer(tc.err); got != tc.want {
				t.Errorf("IsUpstreamAnswer(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestCircuitBreaker_IgnoresStatusErrors(t *testing.T) {
	cb := resilience.NewCircuitBreaker("test-status")

	for i := 0; i < 10; i++ {
		_, err := cb.Execute(func() (any, error) {
			return nil, &domain.ErrRequest{Path: "/api/admin/payments", Status: 403}
		})
		var reqErr *domain.ErrRequest
		if !errors.As(err, &reqErr) {
			t.Fatalf("call %d: expected ErrRequest, got %v", i, err)
		}
	}

	if cb.State() != gobreaker.StateClosed {
		t.Errorf("expected breaker closed, got %s", cb.State())
	}
}

func TestCircuitBreaker_TripsOnTransportErrors(t *testing.T) {
	cb := resilience.NewCircuitBreaker("test-transport")

	for i := 0; i < 5; i++ {
		_, _ = cb.Execute(func() (any, error) {
			return nil, errors.New("connection refused")
		})
	}

	_, err := cb.Execute(func() (any, error) { return nil, nil })
	if !resilience.IsOpen(err) {
		t.Fatalf("expected open breaker error, got %v", err)
	}
}

func TestBulkhead_AcquireRelease(t *testing.T) {
	bh := resilience.NewBulkhead(2)

	if err := bh.Acquire(context.Background()); err != nil {
		t.Fatalf("expected acquire, got %v", err)
	}
	if err := bh.Acquire(context.Background()); err != nil {
		t.Fatalf("expected acquire, got %v", err)
	}

	// Third acquire should block; test with timeout context
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := bh.Acquire(ctx)
	if err == nil {
		t.Fatal("expected timeout on third acquire")
	}

	// Release one slot
	bh.Release()

	if err := bh.Acquire(context.Background()); err != nil {
		t.Fatalf("expected acquire after release, got %v", err)
	}
}

func TestBulkhead_MinimumOneSlot(t *testing.T) {
	bh := resilience.NewBulkhead(0)

	if err := bh.Acquire(context.Background()); err != nil {
		t.Fatalf("expected one slot, got %v", err)
	}
	bh.Release()
}
