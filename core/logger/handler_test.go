package logger

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func emit(t *testing.T, format logFormat, ctx context.Context, component string, level slog.Level, event string, attrs ...slog.Attr) string {
	t.Helper()
	buf := &bytes.Buffer{}
	aw := newAsyncWriter([]io.Writer{buf}, 1024)
	h := newStructuredHandler(handlerConfig{
		level:  slog.LevelDebug,
		writer: aw,
		format: format,
	})
	LogEvent(ctx, slog.New(h).With("component", component), level, event, attrs...)
	require.NoError(t, aw.Flush())
	require.NoError(t, aw.Close())
	return strings.TrimSpace(buf.String())
}

func TestStructuredHandlerKVOrder(t *testing.T) {
	ctx := WithRID(context.Background(), "rid-123")
	ctx = WithUpdateMeta(ctx, 42, 7, 9)

	line := emit(t, formatKV, ctx, "app", slog.LevelInfo, "test.event",
		slog.String("status", "ok"),
		slog.String("cause", "unit"),
	)
	tokens := strings.Split(line, " ")
	require.GreaterOrEqual(t, len(tokens), 6, line)
	for i, prefix := range []string{"ts=", "level=INFO", "component=app", "event=test.event", "status=ok", "rid=rid-123"} {
		assert.True(t, strings.HasPrefix(tokens[i], prefix), "token %d = %s, want prefix %s", i, tokens[i], prefix)
	}
	assert.Contains(t, line, "update_id=42")
	assert.Contains(t, line, "user_id=7")
	assert.Contains(t, line, "chat_id=9")
}

func TestStructuredHandlerJSONOrder(t *testing.T) {
	ctx := WithRID(context.Background(), "rid-json")
	line := emit(t, formatJSON, ctx, "service.timezones", slog.LevelError, "zone.set",
		slog.String("status", "fail"),
		slog.Int("zone", 15),
		slog.String("err", "out of range"),
	)
	require.True(t, strings.HasPrefix(line, "{"), line)
	pos := -1
	for _, p := range []string{`{"ts":`, `"level":"ERROR"`, `"component":"service.timezones"`, `"event":"zone.set"`, `"status":"fail"`, `"rid":"rid-json"`, `"zone":15`, `"err":"out of range"`} {
		idx := strings.Index(line, p)
		require.Greater(t, idx, pos, "%s out of order in %s", p, line)
		pos = idx
	}
}

func TestStructuredHandlerCompactRID(t *testing.T) {
	raw := "123:456:789"
	ctx := WithRID(context.Background(), raw)

	kv := emit(t, formatKV, ctx, "app", slog.LevelInfo, "rid.test")
	assert.Contains(t, kv, "rid="+CompactRID(raw))
	assert.NotContains(t, kv, "rid_full=")

	js := emit(t, formatJSON, ctx, "app", slog.LevelInfo, "rid.test")
	assert.Contains(t, js, `"rid":"`+CompactRID(raw)+`"`)
	assert.Contains(t, js, `"rid_full":"`+raw+`"`)
	assert.Contains(t, js, `"ts_unix_nano"`)
}

func TestStructuredHandlerDurationsAndEnums(t *testing.T) {
	line := emit(t, formatKV, context.Background(), "tg", slog.LevelInfo, "handler.handled",
		slog.Duration("duration", 1499*time.Microsecond),
		slog.Duration("backoff", 2*time.Second),
		slog.String("outcome", "exploded"),
		slog.String("status", "OK"),
		slog.String("payload", ""),
	)
	assert.Contains(t, line, "duration_ms=1")
	assert.Contains(t, line, "backoff_ms=2000")
	assert.Contains(t, line, "status=ok")
	assert.NotContains(t, line, "outcome=")
	assert.NotContains(t, line, "payload=")
}

func TestStructuredHandlerLevelFilter(t *testing.T) {
	buf := &bytes.Buffer{}
	aw := newAsyncWriter([]io.Writer{buf}, 0)
	h := newStructuredHandler(handlerConfig{level: slog.LevelWarn, writer: aw, format: formatKV})
	log := slog.New(h)
	log.Info("dropped")
	log.Warn("kept")
	require.NoError(t, aw.Close())
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "event=kept")
}

func TestAsyncWriterCloseStopsGoroutine(t *testing.T) {
	defer goleak.VerifyNone(t)
	aw := newAsyncWriter([]io.Writer{io.Discard}, 16)
	require.NoError(t, aw.Put([]byte("line\n")))
	require.NoError(t, aw.Close())
	require.NoError(t, aw.Close())
	assert.ErrorIs(t, aw.Put([]byte("late\n")), errWriterClosed)
}

func TestCompactRID(t *testing.T) {
	assert.Equal(t, "z.10.0", CompactRID("35:36:0"))
	assert.Equal(t, "not-a-rid", CompactRID("not-a-rid"))
	assert.Equal(t, "1:x:3", CompactRID("1:x:3"))
}

func TestRatioSampler(t *testing.T) {
	s := newRatioSampler(1, 3)
	var got []bool
	for i := 0; i < 6; i++ {
		got = append(got, s.Allow())
	}
	assert.Equal(t, []bool{true, false, false, true, false, false}, got)

	s.Set(0, 0)
	assert.True(t, s.Allow())

	assert.Equal(t, [2]int{1, 10}, pair(parseRatio("10")))
	assert.Equal(t, [2]int{2, 5}, pair(parseRatio(" 2 / 5 ")))
	assert.Equal(t, [2]int{0, 0}, pair(parseRatio("junk")))
}

func pair(a, b int) [2]int { return [2]int{a, b} }

func TestSanitizeLimit(t *testing.T) {
	assert.Equal(t, "ab\tc", SanitizeLimit("a\x00b\tc\u200b", 10))
	assert.Equal(t, "жар", SanitizeLimit("жара", 3))
	assert.Equal(t, "", SanitizeLimit("x", 0))
}
