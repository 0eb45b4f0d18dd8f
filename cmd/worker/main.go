package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/autospares/pkg/app"
	"github.com/ghuser/autospares/pkg/cache"
	"github.com/ghuser/autospares/pkg/config"
	"github.com/ghuser/autospares/pkg/database"
	"github.com/ghuser/autospares/pkg/events"
	"github.com/ghuser/autospares/pkg/logger"
	"github.com/ghuser/autospares/pkg/mailer"
	"github.com/ghuser/autospares/pkg/telemetry"
	inventorysvcs "github.com/ghuser/autospares/services/inventory/application/services"
	inventoryevents "github.com/ghuser/autospares/services/inventory/domain/events"
	salesevents "github.com/ghuser/autospares/services/sales/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Cfg:      cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
		Mailer:   mailer.New(cfg, log),
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	svcs := inventorysvcs.New(a)

	topics := map[string]func(context.Context, *message.Message) error{
		inventoryevents.TopicPartCreated: handlePartCreated(a, svcs),
		salesevents.TopicSaleRecorded:    handleSaleRecorded(a, svcs),
	}

	registered := make([]string, 0, len(topics))
	for topic, handler := range topics {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
		if err != nil {
			return err
		}
		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}(topic)
		registered = append(registered, topic)
	}

	a.Logger.Info("event subscribers registered", "topics", registered)
	return nil
}

// handlePartCreated returns a handler for part.created events.
// Handlers must be idempotent — EventBus retries up to 3× on failure.
// Warms the Redis read-model cache so subsequent GetByID calls are served from cache.
func handlePartCreated(a *app.Application, svcs *inventorysvcs.Services) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt inventoryevents.PartCreatedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		// GetByID populates the cache on a miss; the event payload alone is
		// too thin (no prices) to build the full read model.
		if _, err := svcs.Part.GetByID(ctx, evt.PartID); err != nil {
			// Cache warming is best-effort; log but do not fail the handler.
			a.Logger.WarnContext(ctx, "cache warm failed for part.created",
				"part_id", evt.PartID, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "cache warmed", "part_id", evt.PartID)
		}

		return nil
	}
}

// handleSaleRecorded returns a handler for sale.recorded events.
// Every sold part's cached quantity is now stale, so the entries are dropped;
// the next read repopulates them. The handler then runs the low-stock check so
// an alert goes out as soon as a sale pushes a part below the threshold.
func handleSaleRecorded(a *app.Application, svcs *inventorysvcs.Services) func(context.Context, *message.Message) error {
	partCache := cache.NewPartCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt salesevents.SaleRecordedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		for _, item := range evt.Items {
			if err := partCache.Delete(ctx, item.PartID); err != nil {
				a.Logger.WarnContext(ctx, "cache invalidation failed for sale.recorded",
					"sale_id", evt.SaleID, "part_id", item.PartID, "error", err)
			}
		}
		a.Logger.InfoContext(ctx, "sale processed",
			"sale_id", evt.SaleID, "items", len(evt.Items), "total", evt.Total)

		return svcs.StockAlert.Check(ctx)
	}
}
