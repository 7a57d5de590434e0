// Package logger provides the process-wide structured logger.
//
// Records are emitted through log/slog with a custom handler that writes one
// flat JSON or key=value line per event, with a stable key order and the
// Telegram correlation id (rid) pulled from the context.
package logger

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/m3rciful/summerday/core/buildinfo"
	coreconfig "github.com/m3rciful/summerday/core/config"
)

var (
	initOnce   sync.Once
	shutdownMu sync.Mutex
	shutdown   bool

	out     *asyncWriter
	closers []io.Closer

	levelVar slog.LevelVar

	debugSampler = newRatioSampler(1, 50)
	trace        bool

	// L is the root logger. It is nil until InitLogger runs.
	L *slog.Logger

	// Component loggers, wired by InitLogger.
	DB           *slog.Logger
	MIG          *slog.Logger
	TG           *slog.Logger
	TWire        *slog.Logger
	SVCTimezones *slog.Logger
	SVCStickers  *slog.Logger
	Collector    *slog.Logger
)

// InitLogger configures the global logger. Only the first call has effect.
func InitLogger(cfg *coreconfig.Config) error {
	initOnce.Do(func() {
		var lc coreconfig.LoggingConfig
		if cfg != nil {
			lc = cfg.Logging
		}
		levelVar.Set(parseLevel(lc.Level))
		debugSampler.Set(debugRatio(lc.DebugSample))
		trace = truthy(os.Getenv("TRACE")) || truthy(os.Getenv("LOG_TRACE"))

		writers, cl := outputs(lc)
		closers = cl
		out = newAsyncWriter(writers, 64*1024)

		L = slog.New(newStructuredHandler(handlerConfig{
			level:    &levelVar,
			writer:   out,
			format:   pickFormat(lc),
			keyOrder: keyOrder(lc.KeysOrder),
		}))
		slog.SetDefault(L)
		wireComponents()

		L.LogAttrs(context.Background(), slog.LevelInfo, "startup",
			slog.String("component", "app"),
			slog.String("event", "startup"),
			slog.String("go_version", runtime.Version()),
			slog.String("version", buildinfo.Version),
			slog.String("build_commit", buildinfo.Commit),
			slog.String("build_time", buildinfo.Date),
			slog.String("cfg_profile", profile(lc)),
		)
	})
	return nil
}

// component loggers discard output until InitLogger replaces them
func init() { wireComponents() }

func wireComponents() {
	DB = Component("db")
	MIG = Component("db.migrate")
	TG = Component("tg")
	TWire = Component("tg.wire")
	SVCTimezones = Component("service.timezones")
	SVCStickers = Component("service.stickers")
	Collector = Component("collector")
}

// Shutdown flushes pending lines and closes log files. It is idempotent.
func Shutdown() error {
	shutdownMu.Lock()
	defer shutdownMu.Unlock()
	if shutdown {
		return nil
	}
	shutdown = true

	var errs []error
	if out != nil {
		errs = append(errs, out.Flush(), out.Close())
	}
	for _, c := range closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

func pickFormat(lc coreconfig.LoggingConfig) logFormat {
	switch strings.ToLower(strings.TrimSpace(lc.Format)) {
	case "kv", "text", "pretty":
		return formatKV
	case "json":
		return formatJSON
	}
	switch profile(lc) {
	case "debug", "dev":
		return formatKV
	}
	return formatJSON
}

func keyOrder(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "default" {
		return slices.Clone(defaultKeyOrder)
	}
	var order []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			order = append(order, k)
		}
	}
	if len(order) == 0 {
		return slices.Clone(defaultKeyOrder)
	}
	return order
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// outputs always includes stdout; a log file is added when dir and file are set.
func outputs(lc coreconfig.LoggingConfig) ([]io.Writer, []io.Closer) {
	writers := []io.Writer{os.Stdout}
	dir, file := strings.TrimSpace(lc.Dir), strings.TrimSpace(lc.File)
	if dir == "" || file == "" {
		return writers, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("logger: create log dir %s: %v", dir, err)
		return writers, nil
	}
	path := filepath.Join(dir, file)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Printf("logger: open log file %s: %v", path, err)
		return writers, nil
	}
	return append(writers, f), []io.Closer{f}
}

func profile(lc coreconfig.LoggingConfig) string {
	if p := strings.TrimSpace(lc.Profile); p != "" {
		return strings.ToLower(p)
	}
	return "prod"
}

func debugRatio(spec string) (int, int) {
	if strings.TrimSpace(spec) == "" {
		return 1, 50
	}
	return parseRatio(spec)
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// ShouldSampleDebug reports whether a high-volume debug event should be logged.
func ShouldSampleDebug() bool {
	return trace || debugSampler.Allow()
}

// Component returns L scoped with a component attribute, or a discarding
// logger before InitLogger so callers never need nil checks.
func Component(name string) *slog.Logger {
	base := L
	if base == nil {
		base = discard
	}
	if name = strings.TrimSpace(name); name == "" {
		return base
	}
	return base.With("component", name)
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// LogEvent writes an event line with attrs through logg, or the context
// logger when logg is nil.
func LogEvent(ctx context.Context, logg *slog.Logger, level slog.Level, event string, attrs ...slog.Attr) {
	if logg == nil {
		logg = FromContext(ctx)
	}
	if logg == nil {
		return
	}
	if event != "" {
		attrs = append([]slog.Attr{slog.String("event", event)}, attrs...)
	}
	logg.LogAttrs(ctx, level, "", attrs...)
}

// Event logs at level under the given component.
func Event(ctx context.Context, component string, level slog.Level, event string, attrs ...slog.Attr) {
	LogEvent(ctx, Component(component), level, event, attrs...)
}

// Debug logs a debug event for component.
func Debug(ctx context.Context, component, event string, attrs ...slog.Attr) {
	Event(ctx, component, slog.LevelDebug, event, attrs...)
}

// Info logs an info event for component.
func Info(ctx context.Context, component, event string, attrs ...slog.Attr) {
	Event(ctx, component, slog.LevelInfo, event, attrs...)
}

// Warn logs a warning event for component.
func Warn(ctx context.Context, component, event string, attrs ...slog.Attr) {
	Event(ctx, component, slog.LevelWarn, event, attrs...)
}

// Error logs an error event for component.
func Error(ctx context.Context, component, event string, attrs ...slog.Attr) {
	Event(ctx, component, slog.LevelError, event, attrs...)
}
