// Command alerts runs the low-stock sweep once and emails the report when any
// part is at or below the configured threshold. Intended to be scheduled with
// cron or a Kubernetes CronJob.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/ghuser/autospares/pkg/config"
	"github.com/ghuser/autospares/pkg/database"
	"github.com/ghuser/autospares/pkg/logger"
	"github.com/ghuser/autospares/pkg/mailer"
	appsvcs "github.com/ghuser/autospares/services/inventory/application/services"
	"github.com/ghuser/autospares/services/inventory/infrastructure/persistence/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Read-only sweep; no event bus needed.
	repo := postgres.NewPartRepository(pool, nil)
	scanner := appsvcs.NewStockReportService(repo, cfg.LowStockThreshold)
	alert := appsvcs.NewStockAlertService(scanner, mailer.New(cfg, log), log)

	if err := alert.Check(ctx); err != nil {
		log.Error("low stock check failed", "error", err)
		os.Exit(1) //nolint:gocritic
	}
}
