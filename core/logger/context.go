package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode"
)

type ctxKey int

const (
	keyRID ctxKey = iota
	keyUpdateID
	keyUserID
	keyChatID
	keyLogger
	keyHandler
)

// WithLogger stores log in ctx so lower layers log with the same scope.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if log == nil {
		return ctx
	}
	return context.WithValue(ctx, keyLogger, log)
}

// FromContext returns the logger stored in ctx, falling back to L.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(keyLogger).(*slog.Logger); ok {
			return l
		}
	}
	return L
}

// WithRID attaches the request correlation id.
func WithRID(ctx context.Context, rid string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, keyRID, rid)
}

// RIDFrom extracts the correlation id, if any.
func RIDFrom(ctx context.Context) string {
	return stringValue(ctx, keyRID)
}

// WithUpdateMeta attaches Telegram update identifiers.
func WithUpdateMeta(ctx context.Context, updateID int, userID, chatID int64) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, keyUpdateID, updateID)
	ctx = context.WithValue(ctx, keyUserID, userID)
	return context.WithValue(ctx, keyChatID, chatID)
}

// WithHandler records which handler is processing the update.
func WithHandler(ctx context.Context, handler string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if handler == "" {
		return ctx
	}
	return context.WithValue(ctx, keyHandler, handler)
}

// HandlerFrom returns the handler name stored by WithHandler.
func HandlerFrom(ctx context.Context) string {
	return stringValue(ctx, keyHandler)
}

// UserIDFrom extracts the Telegram user id.
func UserIDFrom(ctx context.Context) int64 {
	return int64Value(ctx, keyUserID)
}

// ChatIDFrom extracts the Telegram chat id.
func ChatIDFrom(ctx context.Context) int64 {
	return int64Value(ctx, keyChatID)
}

// UpdateIDFrom extracts the Telegram update id.
func UpdateIDFrom(ctx context.Context) int {
	return int(int64Value(ctx, keyUpdateID))
}

func stringValue(ctx context.Context, key ctxKey) string {
	if ctx == nil {
		return ""
	}
	s, _ := ctx.Value(key).(string)
	return s
}

func int64Value(ctx context.Context, key ctxKey) int64 {
	if ctx == nil {
		return 0
	}
	switch v := ctx.Value(key).(type) {
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}

// Sanitize drops control and format runes except tab and newline.
func Sanitize(s string) string {
	if s == "" {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case unicode.IsControl(r), unicode.Is(unicode.Cf, r):
			return -1
		}
		return r
	}, s)
}

// SanitizeLimit sanitizes s and truncates it to max runes.
func SanitizeLimit(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(Sanitize(s))
	if len(r) <= max {
		return string(r)
	}
	return string(r[:max])
}

// BuildRID formats a correlation id as updateID:chatID:userID.
func BuildRID(updateID int, chatID, userID int64) string {
	return fmt.Sprintf("%d:%d:%d", updateID, chatID, userID)
}

// CompactRID re-encodes each numeric RID segment in base36 and joins them
// with dots. Anything that is not a three-part numeric RID is returned as is.
func CompactRID(rid string) string {
	rid = strings.TrimSpace(rid)
	parts := strings.Split(rid, ":")
	if len(parts) != 3 {
		return rid
	}
	for i, part := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return rid
		}
		parts[i] = strconv.FormatInt(n, 36)
	}
	return strings.Join(parts, ".")
}
