package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/summerday/core/bootstrap"
	"github.com/m3rciful/summerday/core/health"
	"github.com/m3rciful/summerday/core/logger"
	tg "github.com/m3rciful/summerday/core/telegram"
	"github.com/m3rciful/summerday/internal/bot"
	"github.com/m3rciful/summerday/internal/summer"
	"github.com/m3rciful/summerday/internal/timezone"
	"github.com/m3rciful/summerday/migrations"
)

var inlineUpdates = []string{"message", "inline_query", "callback_query"}

// App is the inline bot with its storage opened and schema applied.
type App struct {
	cfg      *Config
	db       *sqlx.DB
	table    *summer.Table
	zones    *timezone.Service
	handlers *bot.Handlers
}

// Bootstrap initializes logging, opens the database, applies migrations and
// loads the sticker table.
func Bootstrap(cfg *Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: nil config")
	}
	if err := cfg.validateServe(); err != nil {
		return nil, err
	}

	res, err := bootstrap.Run(bootstrap.Options{
		Config:       &cfg.Config,
		Database:     cfg.Database,
		Migrations:   migrations.FS,
		SkipDatabase: cfg.MemoryStore,
	})
	if err != nil {
		return nil, err
	}

	table, err := summer.LoadTable(cfg.Stickers.Path)
	if err != nil {
		closeDB(res.DB)
		return nil, err
	}
	logger.SVCStickers.Info("sticker table loaded",
		slog.String("event", "table.load"),
		slog.String("path", cfg.Stickers.Path),
		slog.Int("stickers", table.Len()),
	)

	var store timezone.Store = timezone.NewMemStore()
	kind := "memory"
	if res.DB != nil {
		store, kind = timezone.NewSQLStore(res.DB), res.DB.DriverName()
	}
	zones := timezone.NewService(store)
	users, err := zones.Users(context.Background())
	if err != nil {
		_ = zones.Close()
		return nil, fmt.Errorf("app: timezones: %w", err)
	}
	logger.SVCTimezones.Info("timezones ready",
		slog.String("event", "store.open"),
		slog.String("store", kind),
		slog.Int("users", users),
	)

	return &App{
		cfg:      cfg,
		db:       res.DB,
		table:    table,
		zones:    zones,
		handlers: bot.NewHandlers(zones, table),
	}, nil
}

func closeDB(db *sqlx.DB) {
	if db != nil {
		_ = db.Close()
	}
}

// TelegramRunOptions wires the inline bot into a fresh registry.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	reg := tg.NewRegistry()
	routes, err := bot.Wire(reg, a.handlers)
	if err != nil {
		return tg.RunOptions{}, fmt.Errorf("app: wire: %w", err)
	}
	return tg.RunOptions{
		Config:         &a.cfg.Config,
		Registry:       reg,
		Middlewares:    tg.DefaultMiddlewares(&a.cfg.Config, nil),
		Routes:         routes,
		AllowedUpdates: inlineUpdates,
		OnStart: func(_ context.Context, rt tg.Runtime) error {
			a.handlers.SetUsername(rt.Username())
			if !a.handlers.Ready() {
				logger.TG.Warn("bot username unknown; inline queries are ignored",
					slog.String("event", "ready"),
					slog.String("status", "skip"),
				)
			}
			return nil
		},
		OnStop: func(context.Context, tg.Runtime) error {
			return a.Close()
		},
	}, nil
}

// HealthChecks reports the database as a /healthz dependency. Memory mode
// has none.
func (a *App) HealthChecks() map[string]health.Check {
	if a.db == nil {
		return nil
	}
	return map[string]health.Check{"db": a.db.PingContext}
}

// Close releases the timezone store and its database.
func (a *App) Close() error {
	return a.zones.Close()
}
