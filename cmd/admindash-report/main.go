// Command admindash-report loads the admin dashboard once and prints it to
// stdout. It exits non-zero when either view failed to load.
package main

import (
	"context"
	"flag"
	"os"
	_ "time/tzdata"

	"github.com/boddenberg/botshop-admin-bfa/internal/config"
	"github.com/boddenberg/botshop-admin-bfa/internal/domain"
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
	status := flag.String("status", domain.StatusFilterAll, "payment status filter (all, pending, approved, rejected)")
	envFile := flag.String("env", ".env", "dotenv file to load")
	flag.Parse()

	_ = config.LoadDotEnv(*envFile)
	cfg := config.Load()

	logger := observability.NewLogger(cfg.LogLevel, "admindash-report")
	defer logger.Sync()

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal("invalid timezone", zap.Error(err))
	}
	labels, err := config.LoadLabels(cfg.LabelsFile)
	if err != nil {
		logger.Fatal("failed to load labels", zap.Error(err))
	}

	cred, err := session.Acquire(cfg.AdminToken, prompt.NewStdio())
	if err != nil {
		logger.Fatal("admin credential not provided", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	adminClient := client.NewAdminClient(
		client.NewHTTPClient(cfg.HTTPTimeout),
		session.New(cfg.APIBaseURL, cred),
		resilience.NewCircuitBreaker("botshop-admin-api"),
		resilience.Config{MaxConcurrency: cfg.MaxConcurrency},
		metrics,
		logger,
	)

	dash := service.NewDashboard(adminClient, surface.NewTerminal(os.Stdout), labels, loc, metrics, logger)
	dash.SetStatusFilter(*status)

	if err := dash.Refresh(context.Background()); err != nil {
		logger.Sync()
		os.Exit(1)
	}
}
