package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/m3rciful/summerday/core/logger"
	tg "github.com/m3rciful/summerday/core/telegram"
	"github.com/m3rciful/summerday/core/telegram/state"
	"github.com/m3rciful/summerday/internal/bot"
)

var collectUpdates = []string{"message", "callback_query"}

// CollectApp runs the sticker collector until the table is written.
type CollectApp struct {
	cfg *Config
	out string

	collector *bot.Collector
	done      chan struct{}
	doneOnce  sync.Once
}

// Collect prepares collector mode writing to out, or to
// stickers.collect_out when out is empty. No database is opened.
func Collect(cfg *Config, out string) (*CollectApp, error) {
	if cfg == nil {
		return nil, errors.New("app: nil config")
	}
	if out = strings.TrimSpace(out); out == "" {
		out = cfg.Stickers.CollectOut
	}
	if out == "" {
		out = defaultCollectOut
	}
	if err := logger.InitLogger(&cfg.Config); err != nil {
		return nil, fmt.Errorf("app: logger init failed: %w", err)
	}

	a := &CollectApp{cfg: cfg, out: out, done: make(chan struct{})}
	a.collector = bot.NewCollector(state.NewMemoryManager(), out, cfg.Telegram.AdminID, a.finish)
	return a, nil
}

// Done is closed once the table has been saved.
func (a *CollectApp) Done() <-chan struct{} { return a.done }

func (a *CollectApp) finish(path string) {
	a.doneOnce.Do(func() {
		logger.Collector.Info("sticker table written",
			slog.String("event", "collect.done"),
			slog.String("path", path),
		)
		close(a.done)
	})
}

// TelegramRunOptions wires the collector; the bot stops after the save.
func (a *CollectApp) TelegramRunOptions() (tg.RunOptions, error) {
	reg := tg.NewRegistry()
	routes, err := bot.WireCollector(reg, a.collector)
	if err != nil {
		return tg.RunOptions{}, fmt.Errorf("app: wire collector: %w", err)
	}
	return tg.RunOptions{
		Config:         &a.cfg.Config,
		Registry:       reg,
		Middlewares:    tg.DefaultMiddlewares(&a.cfg.Config, nil),
		Routes:         routes,
		AllowedUpdates: collectUpdates,
		Stop:           a.done,
		OnStart: func(_ context.Context, rt tg.Runtime) error {
			logger.Collector.Info("send any message to the bot to start",
				slog.String("event", "collect.ready"),
				slog.String("username", rt.Username()),
				slog.String("path", a.out),
			)
			return nil
		},
	}, nil
}
