package logger

import "strings"

// Level names written to the "level" field.
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

var levelNames = map[string]string{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

// closed vocabularies; unknown outcome values are dropped, unknown status
// values pass through unchanged
var (
	knownStatus  = set("ok", "fail", "skip", "retry", "rate_limited", "cancelled")
	knownOutcome = set("ok", "fail", "cancelled", "rate_limited", "ignored")
)

func set(values ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}

func normalizeLevel(level string) string {
	if level == "" {
		return LevelInfo
	}
	if name, ok := levelNames[strings.ToLower(level)]; ok {
		return name
	}
	return strings.ToUpper(level)
}

func normalizeEnum(value string, known map[string]struct{}) (string, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return "", false
	}
	_, ok := known[value]
	return value, ok
}

// defaultKeyOrder fixes the position of well-known keys; everything else
// follows in lexical order.
var defaultKeyOrder = []string{
	"ts",
	"level",
	"component",
	"event",
	"status",
	"rid",
	"rid_full",
	"ts_unix_nano",
	"update_id",
	"user_id",
	"chat_id",
	"chat_type",
	"handler",
	"cb_key",
	"outcome",
	"duration_ms",
	"messages",
	"kb",
	"answers",
	"zone",
	"zone_prev",
	"day",
	"sticker_index",
	"stickers",
	"collected",
	"payload",
	"lang",
	"username",
	"mode",
	"listen",
	"public_url",
	"driver",
	"db",
	"host",
	"port",
	"path",
	"err",
	"err_code",
	"cause",
	"attempts",
	"backoff_ms",
}
