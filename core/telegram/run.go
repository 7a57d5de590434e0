package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/m3rciful/summerday/core/config"
	"github.com/m3rciful/summerday/core/logger"
	tghelpers "github.com/m3rciful/summerday/core/telegram/helpers"
	tgsender "github.com/m3rciful/summerday/core/telegram/sender"
)

// Middleware is a named global middleware passed to bot.Use.
type Middleware struct {
	Name string
	Use  func(next tele.HandlerFunc) tele.HandlerFunc
}

// Route binds a handler to a telebot endpoint (command, tele.OnQuery, ...).
type Route struct {
	Endpoint any
	Handler  tele.HandlerFunc
}

// RunOptions controls RunTelegram.
type RunOptions struct {
	Config   *coreconfig.Config
	Registry *Registry

	DispatcherOptions tgsender.Options
	Dispatcher        *tgsender.Dispatcher

	Middlewares []Middleware
	Routes      []Route

	// AllowedUpdates narrows the long poller, e.g. collector mode only needs messages.
	AllowedUpdates []string

	DisableWebhookCleanup   bool
	DisableHelperDispatcher bool

	// Offline builds the bot without calling getMe. Tests only.
	Offline bool

	// Stop ends the run like a cancelled ctx when closed.
	Stop <-chan struct{}

	OnStart func(ctx context.Context, rt Runtime) error
	OnStop  func(ctx context.Context, rt Runtime) error
}

// Runtime is handed to lifecycle hooks.
type Runtime struct {
	Bot        *tele.Bot
	Dispatcher *tgsender.Dispatcher
	Registry   *Registry
}

// Username returns the bot's @username without the at sign.
func (rt Runtime) Username() string {
	if rt.Bot == nil || rt.Bot.Me == nil {
		return ""
	}
	return rt.Bot.Me.Username
}

// RunTelegram builds the bot, wires routes and blocks until ctx is done or
// the bot stops on its own.
func RunTelegram(ctx context.Context, opts RunOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Config == nil {
		return fmt.Errorf("telegram: nil config provided")
	}

	cfg := opts.Config
	reg := opts.Registry
	if reg == nil {
		reg = NewRegistry()
	}

	poller := BuildPoller(PollerOptions{
		RunMode:                cfg.Telegram.RunMode,
		LongPollTimeoutSeconds: cfg.Telegram.LongPollTimeoutSeconds,
		AllowedUpdates:         opts.AllowedUpdates,
		Webhook: WebhookOptions{
			Listen: cfg.Webhook.Listen,
			Port:   cfg.Webhook.Port,
			URL:    cfg.Webhook.URL,
		},
	})

	buildStart := time.Now()
	bot, err := tele.NewBot(tele.Settings{
		Token:   cfg.Telegram.Token,
		Poller:  poller,
		Client:  BuildHTTPClient(),
		Offline: opts.Offline,
		OnError: onError,
	})
	if err != nil {
		return fmt.Errorf("telegram: bot initialization failed: %w", err)
	}
	buildTook := time.Since(buildStart)

	dispatcher := opts.Dispatcher
	if dispatcher == nil {
		dispatcher = tgsender.NewDispatcher(opts.DispatcherOptions)
	}
	shared := !opts.DisableHelperDispatcher
	if shared {
		tghelpers.SetDispatcher(dispatcher)
	}
	release := func() {
		dispatcher.Close()
		if shared {
			tghelpers.SetDispatcher(nil)
		}
	}

	rt := Runtime{Bot: bot, Dispatcher: dispatcher, Registry: reg}

	switch p := poller.(type) {
	case *tele.Webhook:
		logger.TG.LogAttrs(ctx, slog.LevelInfo, "webhook mode",
			slog.String("event", "mode"),
			slog.String("mode", coreconfig.RunModeWebhook),
			slog.String("listen", p.Listen),
			slog.String("public_url", p.Endpoint.PublicURL),
			slog.String("username", rt.Username()),
			slog.Duration("duration", logger.RoundMS(buildTook)),
		)
	case *tele.LongPoller:
		logger.TG.Info("polling mode",
			slog.String("event", "mode"),
			slog.String("mode", "polling"),
			slog.Int("timeout_seconds", int(p.Timeout/time.Second)),
			slog.String("username", rt.Username()),
			slog.Duration("duration", logger.RoundMS(buildTook)),
		)
		if !opts.DisableWebhookCleanup && !opts.Offline && strings.EqualFold(cfg.Telegram.RunMode, coreconfig.RunModeLongpoll) {
			cleanupWebhook(bot)
		}
	}

	for _, mw := range opts.Middlewares {
		if mw.Use != nil {
			bot.Use(mw.Use)
		}
	}
	for _, route := range opts.Routes {
		if route.Endpoint != nil && route.Handler != nil {
			bot.Handle(route.Endpoint, route.Handler)
		}
	}
	if !opts.Offline {
		InitBotCommands(bot, reg)
	}

	if opts.OnStart != nil {
		if err := opts.OnStart(ctx, rt); err != nil {
			release()
			return err
		}
	}

	done := make(chan struct{})
	go func() {
		bot.Start()
		close(done)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		bot.Stop()
		<-done
		runErr = ctx.Err()
	case <-opts.Stop:
		bot.Stop()
		<-done
	case <-done:
	}

	var stopErr error
	if opts.OnStop != nil {
		stopErr = opts.OnStop(context.WithoutCancel(ctx), rt)
	}
	release()

	if stopErr != nil {
		return stopErr
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}

func cleanupWebhook(bot *tele.Bot) {
	if err := bot.RemoveWebhook(false); err != nil {
		logger.TG.Warn("failed to delete webhook",
			slog.String("event", "delete_webhook"),
			slog.String("mode", "polling"),
			slog.String("err", err.Error()),
		)
		return
	}
	logger.TG.Info("webhook deleted",
		slog.String("event", "delete_webhook"),
		slog.String("mode", "polling"),
	)
}

func onError(err error, c tele.Context) {
	if err == nil {
		return
	}
	ctx := context.Background()
	if c != nil {
		ctx = tghelpers.BuildContext(c)
	}
	logger.Error(ctx, "tg", "handler.error",
		slog.String("status", "fail"),
		slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
	)
}
