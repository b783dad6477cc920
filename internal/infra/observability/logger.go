package observability

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the process logger, tagged with service.
// "debug" switches to a colorized console encoder; any other level name
// zap understands ("warn", "error") is honoured; unknown names fall back to info.
func NewLogger(level, service string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.InitialFields = map[string]interface{}{"service": service}

	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	if lvl == zapcore.DebugLevel {
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := cfg.Build()
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	return logger
}

// quietPaths are polled by health checkers and scrapers; their hits are logged at debug.
var quietPaths = map[string]bool{
	"/ping":    true,
	"/healthz": true,
	"/readyz":  true,
	"/metrics": true,
}

// ZapLoggerMiddleware writes one line per request: 5xx at error, 4xx at
// warn, the rest at info. Health and metrics endpoints drop to debug.
func ZapLoggerMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				status := ww.Status()
				fields := append([]zap.Field{
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", status),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("latency", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())),
				}, CorrelationFields(r.Context())...)
				if filter := r.URL.Query().Get("status"); filter != "" {
					fields = append(fields, zap.String("status_filter", filter))
				}

				switch {
				case status >= 500:
					logger.Error("http request", fields...)
				case status >= 400:
					logger.Warn("http request", fields...)
				case quietPaths[r.URL.Path]:
					logger.Debug("http request", fields...)
				default:
					logger.Info("http request", fields...)
				}
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

type refreshIDKey struct{}

// WithRefreshID tags ctx with the id of the dashboard refresh it belongs to.
func WithRefreshID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, refreshIDKey{}, id)
}

// RefreshID returns the refresh id carried by ctx, if any.
func RefreshID(ctx context.Context) string {
	id, _ := ctx.Value(refreshIDKey{}).(string)
	return id
}

// CorrelationFields returns the refresh id and the trace/span ids carried
// by ctx as log fields. Absent values are left out; a bare context yields nil.
func CorrelationFields(ctx context.Context) []zap.Field {
	var fields []zap.Field
	if id := RefreshID(ctx); id != "" {
		fields = append(fields, zap.String("refresh_id", id))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields,
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
	}
	return fields
}

// TracingMiddleware continues an incoming W3C trace, if the caller sent one.
func TracingMiddleware(next http.Handler) http.Handler {
	propagator := propagation.NewCompositeTextMapPropagator(
		otel.GetTextMapPropagator(),
		propagation.TraceContext{},
	)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
