package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/primex/opportunity-dashboard/internal/adapter/httpadapter"
	"github.com/primex/opportunity-dashboard/internal/auth"
	"github.com/primex/opportunity-dashboard/internal/config"
	"github.com/primex/opportunity-dashboard/internal/dashboard"
	"github.com/primex/opportunity-dashboard/internal/geocode"
	"github.com/primex/opportunity-dashboard/internal/observability"
	"github.com/primex/opportunity-dashboard/internal/sample"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	creds, err := auth.NewStaticCredentials(cfg.DashboardUsername, cfg.DashboardPassword)
	if err != nil {
		logger.Error("failed to set up credentials", "error", err)
		os.Exit(1)
	}
	sessions, err := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL, logger)
	if err != nil {
		logger.Error("failed to set up sessions", "error", err)
		os.Exit(1)
	}

	resolver := geocode.NewFromConfig(cfg, clock, metrics, logger)
	svc := dashboard.NewService(sample.NewProvider(), resolver, clock, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, httpadapter.Deps{
		Dashboard:     svc,
		Ready:         svc,
		Authenticator: creds,
		Sessions:      sessions,
		Metrics:       metrics,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
