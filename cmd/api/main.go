package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fkhayef/fairsplit/internal/config"
	"github.com/fkhayef/fairsplit/internal/metrics"
	"github.com/fkhayef/fairsplit/internal/server"
	"github.com/fkhayef/fairsplit/pkg/logging"
)

// @title                       FairSplit API
// @version                     1.0
// @description                 Group expense splitting with balances and minimal settlement plans.
// @host                        localhost:8080
// @BasePath                    /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration (.env, optional TOML file, environment)
	cfg, err := config.Load("")
	if err != nil {
		return err
	}
	logging.Setup(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := server.OpenStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	slog.Info("Store initialized", "driver", cfg.Store.Driver)

	var m *metrics.Metrics
	if cfg.Server.MetricsEnabled {
		m = metrics.New()
	}

	return server.Run(ctx, cfg.Server.Port, server.NewRouter(cfg, store, m))
}
