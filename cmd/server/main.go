// Package main implements the entry point for the knowledge-base gateway,
// which exposes the vendor Resource Management API to platform tenants as a
// JSON:API service.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/kb-gateway/internal/config"
	"github.com/phrazzld/kb-gateway/internal/platform/logger"
	"github.com/phrazzld/kb-gateway/internal/platform/metrics"
	"github.com/phrazzld/kb-gateway/internal/platform/okapi"
	"github.com/phrazzld/kb-gateway/internal/platform/rmapi"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("kb-gateway: %v", err)
		stop()
		os.Exit(1)
	}
}

// run loads configuration, builds the application and serves until ctx is
// canceled.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	l.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("rmapi_base_url", cfg.RMAPI.BaseURL),
		slog.Bool("metrics_enabled", cfg.Metrics.Enabled))

	collector := metrics.NewCollector()

	api, err := rmapi.NewClient(cfg.RMAPI.BaseURL, cfg.RMAPI.Timeout(), l, rmapi.WithObserver(collector))
	if err != nil {
		return fmt.Errorf("failed to create RM API client: %w", err)
	}
	resolver := okapi.NewClient(cfg.Okapi.Timeout(), l)

	app := newApplication(cfg, l, api, resolver, collector)
	return app.Run(ctx)
}
