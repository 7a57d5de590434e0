package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	coreconfig "github.com/m3rciful/summerday/core/config"
	"github.com/m3rciful/summerday/core/health"
	"github.com/m3rciful/summerday/core/logger"
	coretelegram "github.com/m3rciful/summerday/core/telegram"
)

// ConfigCarrier exposes access to the embedded core configuration.
type ConfigCarrier interface {
	CoreConfig() *coreconfig.Config
}

// TelegramApp is the minimal interface required to run a Telegram bot.
type TelegramApp interface {
	TelegramRunOptions() (coretelegram.RunOptions, error)
}

// HealthReporter is implemented by apps that contribute /healthz checks.
type HealthReporter interface {
	HealthChecks() map[string]health.Check
}

// Options describe how to load configuration, bootstrap the app, and run the bot.
type Options struct {
	// ConfigPath wins over ConfigEnvVar and DefaultConfigPath. No path at all
	// means environment-only configuration.
	ConfigPath        string
	ConfigEnvVar      string
	DefaultConfigPath string

	LoadConfig func(path string) (ConfigCarrier, error)
	Bootstrap  func(cfg ConfigCarrier) (TelegramApp, error)

	ShutdownLogger func() error
	RunTelegram    func(ctx context.Context, opts coretelegram.RunOptions) error

	// Context is the parent of the signal context; Background when nil.
	Context context.Context
}

// ConfigPathFrom resolves the config file path the way Run does.
func ConfigPathFrom(opts Options) string {
	if p := strings.TrimSpace(opts.ConfigPath); p != "" {
		return p
	}
	env := opts.ConfigEnvVar
	if env == "" {
		env = "CONFIG_PATH"
	}
	if p := strings.TrimSpace(os.Getenv(env)); p != "" {
		return p
	}
	return opts.DefaultConfigPath
}

// Run loads configuration, bootstraps the Telegram app, and runs the bot
// next to the optional health server until a signal arrives or the bot stops.
func Run(opts Options) error {
	if opts.LoadConfig == nil {
		return fmt.Errorf("cmd: LoadConfig is required")
	}
	if opts.Bootstrap == nil {
		return fmt.Errorf("cmd: Bootstrap is required")
	}

	cfgPath := ConfigPathFrom(opts)
	if cfgPath != "" {
		log.Printf("loading config: %s", cfgPath)
	}
	cfg, err := opts.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("cmd: failed to load config: %w", err)
	}
	core := cfg.CoreConfig()
	if core == nil {
		return fmt.Errorf("cmd: loaded config is missing core configuration")
	}

	shutdownLogger := opts.ShutdownLogger
	if shutdownLogger == nil {
		shutdownLogger = logger.Shutdown
	}
	defer func() {
		if err := shutdownLogger(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()

	startedAt := time.Now()
	application, err := opts.Bootstrap(cfg)
	if err != nil {
		return fmt.Errorf("cmd: bootstrap failed: %w", err)
	}

	runOpts, err := application.TelegramRunOptions()
	if err != nil {
		return fmt.Errorf("cmd: telegram options build failed: %w", err)
	}

	var hs *health.Server
	if core.Health.Addr != "" {
		hs = health.New(core.Health.Addr)
		if rep, ok := application.(HealthReporter); ok {
			for name, check := range rep.HealthChecks() {
				hs.AddCheck(name, check)
			}
		}
	}

	appLog := logger.Component("app")
	prevStart := runOpts.OnStart
	runOpts.OnStart = func(ctx context.Context, rt coretelegram.Runtime) error {
		if prevStart != nil {
			if err := prevStart(ctx, rt); err != nil {
				return err
			}
		}
		if hs != nil {
			hs.MarkReady(true)
		}
		appLog.Info("app ready",
			slog.String("event", "ready"),
			slog.String("username", rt.Username()),
			slog.Duration("startup_duration", logger.Took(startedAt)),
		)
		return nil
	}

	prevStop := runOpts.OnStop
	runOpts.OnStop = func(ctx context.Context, rt coretelegram.Runtime) error {
		if hs != nil {
			hs.MarkReady(false)
		}
		appLog.Info("shutting down...",
			slog.String("event", "shutdown"),
		)
		if prevStop != nil {
			return prevStop(ctx, rt)
		}
		return nil
	}

	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	sigCtx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := opts.RunTelegram
	if run == nil {
		run = coretelegram.RunTelegram
	}

	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// the bot may stop on its own; take the health server down with it
		defer cancel()
		return run(gctx, runOpts)
	})
	if hs != nil {
		g.Go(func() error {
			if err := hs.Run(gctx); err != nil {
				return fmt.Errorf("cmd: health server: %w", err)
			}
			return nil
		})
	}
	return g.Wait()
}
