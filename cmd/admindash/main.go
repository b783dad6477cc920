package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/boddenberg/botshop-admin-bfa/internal/config"
	"github.com/boddenberg/botshop-admin-bfa/internal/handler"
	"github.com/boddenberg/botshop-admin-bfa/internal/infra/client"
	"github.com/boddenberg/botshop-admin-bfa/internal/infra/observability"
	"github.com/boddenberg/botshop-admin-bfa/internal/infra/prompt"
	"github.com/boddenberg/botshop-admin-bfa/internal/infra/resilience"
	"github.com/boddenberg/botshop-admin-bfa/internal/infra/session"
	"github.com/boddenberg/botshop-admin-bfa/internal/infra/surface"
	"github.com/boddenberg/botshop-admin-bfa/internal/service"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel, "admindash")
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("api_base", cfg.APIBaseURL),
		zap.Bool("token_preseeded", cfg.AdminToken != ""),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Int("max_concurrency", cfg.MaxConcurrency),
		zap.String("timezone", cfg.Timezone),
	)

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal("invalid timezone", zap.Error(err))
	}
	labels, err := config.LoadLabels(cfg.LabelsFile)
	if err != nil {
		logger.Fatal("failed to load labels", zap.Error(err))
	}

	// --- Session ---
	cred, err := session.Acquire(cfg.AdminToken, prompt.NewStdio())
	if err != nil {
		logger.Fatal("admin credential not provided", zap.Error(err))
	}
	sess := session.New(cfg.APIBaseURL, cred)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "botshop-admin-bfa")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Client ---
	httpClient := client.NewHTTPClient(cfg.HTTPTimeout)
	cb := resilience.NewCircuitBreaker("botshop-admin-api")
	adminClient := client.NewAdminClient(
		httpClient,
		sess,
		cb,
		resilience.Config{MaxConcurrency: cfg.MaxConcurrency},
		metrics,
		logger,
	)

	// --- Dashboard ---
	mem := surface.NewMemory()
	dash := service.NewDashboard(adminClient, mem, labels, loc, metrics, logger)

	// --- Router ---
	router := handler.NewRouter(dash, mem, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.HTTPTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Both loaders run once at startup, like opening the page.
	go func() {
		if err := dash.Refresh(context.Background()); err != nil {
			logger.Warn("initial dashboard load incomplete", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
