// Package resilience provides fault-tolerance patterns for upstream calls:
// circuit breaker and bulkhead. Upstream calls are never retried.
package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/boddenberg/botshop-admin-bfa/internal/domain"

	"github.com/sony/gobreaker"
)

// Config holds resilience parameters.
type Config struct {
	MaxConcurrency int
}

// NewCircuitBreaker creates a circuit breaker with sensible defaults.
// Only transport failures count against the breaker: an HTTP status or a
// bad body is an answer from a live server.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,                // half-open: allow 3 requests
		Interval:    30 * time.Second, // closed: reset counters every 30s
		Timeout:     10 * time.Second, // open -> half-open after 10s
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
		IsSuccessful: IsUpstreamAnswer,
	})
}

// IsUpstreamAnswer reports whether err still proves the upstream answered.
func IsUpstreamAnswer(err error) bool {
	if err == nil {
		return true
	}
	var reqErr *domain.ErrRequest
	var decErr *domain.ErrDecode
	return errors.As(err, &reqErr) || errors.As(err, &decErr) || errors.Is(err, context.Canceled)
}

// IsOpen reports whether err was produced by a breaker refusing the call.
func IsOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// Bulkhead limits concurrent access to a resource.
type Bulkhead struct {
	sem chan struct{}
}

// NewBulkhead creates a bulkhead with the given max concurrency.
// Values below 1 are treated as 1.
func NewBulkhead(maxConcurrency int) *Bulkhead {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &Bulkhead{sem: make(chan struct{}, maxConcurrency)}
}

// Acquire blocks until a slot is available or context is cancelled.
func (b *Bulkhead) Acquire(ctx context.Context) error {
	select {
	case b.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees a slot.
func (b *Bulkhead) Release() {
	<-b.sem
}
