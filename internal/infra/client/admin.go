package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"time"

	"github.com/boddenberg/botshop-admin-bfa/internal/domain"
	"github.com/boddenberg/botshop-admin-bfa/internal/infra/observability"
	"github.com/boddenberg/botshop-admin-bfa/internal/infra/resilience"
	"github.com/boddenberg/botshop-admin-bfa/internal/infra/session"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("client")

// AdminTokenHeader carries the admin credential on every request.
const AdminTokenHeader = "X-Admin-Token"

const serviceName = "botshop-admin"

// Admin API paths.
const (
	FinanceSummaryPath = "/api/admin/finance-summary"
	PaymentsPath       = "/api/admin/payments"
)

// AdminClient talks to the Botshop admin API with the session credential.
type AdminClient struct {
	httpClient *http.Client
	session    *session.Session
	cb         *gobreaker.CircuitBreaker
	bulkhead   *resilience.Bulkhead
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewHTTPClient returns an http.Client whose transport propagates trace
// context to the admin API. A zero timeout means no timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// NewAdminClient creates a new AdminClient.
func NewAdminClient(
	httpClient *http.Client,
	sess *session.Session,
	cb *gobreaker.CircuitBreaker,
	cfg resilience.Config,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *AdminClient {
	return &AdminClient{
		httpClient: httpClient,
		session:    sess,
		cb:         cb,
		bulkhead:   resilience.NewBulkhead(cfg.MaxConcurrency),
		metrics:    metrics,
		logger:     logger,
	}
}

// BuildURL resolves path against the session base URL and appends params.
// Nil values (including typed nil pointers) and empty strings are omitted.
func (c *AdminClient) BuildURL(path string, params map[string]any) (string, error) {
	u, err := url.Parse(c.session.BaseURL + path)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", c.session.BaseURL+path, err)
	}

	q := u.Query()
	for k, v := range params {
		s, ok := paramValue(v)
		if !ok {
			continue
		}
		q.Set(k, s)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func paramValue(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		v = rv.Elem().Interface()
	}
	s := fmt.Sprint(v)
	if s == "" {
		return "", false
	}
	return s, true
}

// FetchJSON issues GET {base}{path}?params with the admin credential and
// decodes a 2xx JSON body into out. Non-2xx answers return *domain.ErrRequest,
// undecodable bodies *domain.ErrDecode. Nothing is retried.
func (c *AdminClient) FetchJSON(ctx context.Context, path string, params map[string]any, out any) error {
	ctx, span := tracer.Start(ctx, "AdminClient.FetchJSON")
	defer span.End()
	span.SetAttributes(attribute.String("http.path", path))

	target, err := c.BuildURL(path, params)
	if err != nil {
		return err
	}

	if err := c.bulkhead.Acquire(ctx); err != nil {
		return err
	}
	defer c.bulkhead.Release()

	_, err = c.cb.Execute(func() (any, error) {
		return nil, c.do(ctx, path, target, out)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if resilience.IsOpen(err) {
			return &domain.ErrCircuitOpen{Service: serviceName}
		}
		return err
	}
	return nil
}

func (c *AdminClient) do(ctx context.Context, path, target string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	req.Header.Set(AdminTokenHeader, string(c.session.Credential))
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.IncrUpstream(path, 0)
		c.logger.Error("admin API: request failed", append([]zap.Field{
			zap.String("path", path),
			zap.Error(err),
		}, observability.CorrelationFields(ctx)...)...)
		return &domain.ErrExternalService{Service: serviceName, Err: err}
	}
	defer resp.Body.Close()

	c.metrics.IncrUpstream(path, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		c.logger.Warn("admin API: non-2xx response",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return &domain.ErrRequest{Path: path, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.ErrDecode{Path: path, Err: err}
	}

	c.logger.Debug("admin API: request OK",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)
	return nil
}
