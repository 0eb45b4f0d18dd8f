package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/autospares/pkg/cache"
	"github.com/ghuser/autospares/pkg/config"
	"github.com/ghuser/autospares/pkg/database"
	"github.com/ghuser/autospares/pkg/events"
	"github.com/ghuser/autospares/pkg/logger"
	"github.com/ghuser/autospares/pkg/mailer"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to each bounded context's route registration during server startup.
//
// Logging: app.Logger is backed by a trace-aware handler — use slog's context
// methods and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "committing sale", "sale_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Cfg          *config.Config
	Db           *database.Database
	Logger       logger.Logger
	EventBus     *events.EventBus
	Redis        *cache.RedisClient
	Mailer       mailer.Notifier
	SessionStore sessions.Store // Redis-backed session store; nil in worker and alert processes
}
