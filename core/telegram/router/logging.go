package router

import (
	"errors"
	"log/slog"
	"reflect"
	"strconv"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/summerday/core/logger"
	tghelpers "github.com/m3rciful/summerday/core/telegram/helpers"
	"github.com/m3rciful/summerday/core/telegram/middleware"
)

// OutcomeIgnored marks updates a handler chose not to act on.
const OutcomeIgnored = "ignored"

// ErrIgnored lets a handler report that it deliberately did nothing. The
// summary logs outcome=ignored and the error is not propagated.
var ErrIgnored = errors.New("update ignored")

// handle runs fn under handlerName and logs one handler.handled line.
func handle(c tele.Context, handlerName string, fn func() error, extras ...slog.Attr) error {
	start := time.Now()
	tghelpers.WithHandler(c, handlerName)
	err := fn()
	outcome := ""
	if errors.Is(err, ErrIgnored) {
		outcome, err = OutcomeIgnored, nil
	}
	summarize(c, handlerName, start, outcome, err, extras...)
	return err
}

func summarize(c tele.Context, handlerName string, start time.Time, outcome string, err error, extras ...slog.Attr) {
	ctx := tghelpers.WithHandler(c, handlerName)
	counters := middleware.GetCounters(c)

	if outcome == "" {
		outcome = logger.Status(err)
	}
	attrs := []slog.Attr{
		slog.String("status", logger.Status(err)),
		slog.String("handler", handlerName),
		slog.String("outcome", outcome),
		slog.Int("messages", counters.Messages),
		slog.Int("answers", counters.Answers),
		slog.Bool("kb", counters.Keyboard),
		slog.Duration("duration", logger.Took(start)),
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
			slog.String("err_code", errorCode(err)),
		)
	}
	attrs = append(attrs, extras...)

	level := slog.LevelInfo
	if err != nil {
		level = slog.LevelError
	}
	logger.LogEvent(ctx, logger.Component("tg"), level, "handler.handled", attrs...)
}

func handlerName(prefix, key string) string {
	key = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(key), "/"))
	if key == "" {
		key = "unknown"
	}
	key = strings.ReplaceAll(key, " ", "_")
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// errorCode names err by its Telegram code or, failing that, its Go type.
func errorCode(err error) string {
	var apiErr *tele.Error
	if errors.As(err, &apiErr) && apiErr.Code != 0 {
		return "TG_" + strconv.Itoa(apiErr.Code)
	}
	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Name() == "" {
		return "UNKNOWN_ERROR"
	}
	return strings.ToUpper(t.Name())
}
