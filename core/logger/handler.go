package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

type logFormat string

const (
	formatJSON logFormat = "json"
	formatKV   logFormat = "kv"

	tsLayout = "2006-01-02T15:04:05.000Z07:00"
)

type handlerConfig struct {
	level    slog.Leveler
	writer   *asyncWriter
	format   logFormat
	keyOrder []string
}

// structuredHandler renders every record as one flat line. Keys listed in
// keyOrder come first; durations are converted to integer *_ms fields.
type structuredHandler struct {
	cfg    handlerConfig
	attrs  []slog.Attr
	groups []string
}

func newStructuredHandler(cfg handlerConfig) *structuredHandler {
	if cfg.level == nil {
		cfg.level = slog.LevelInfo
	}
	if cfg.keyOrder == nil {
		cfg.keyOrder = slices.Clone(defaultKeyOrder)
	}
	return &structuredHandler{cfg: cfg}
}

func (h *structuredHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.cfg.level.Level()
}

func (h *structuredHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg.writer == nil {
		return fmt.Errorf("logger: writer not initialized")
	}
	jsonOut := h.cfg.format == formatJSON

	fields := make(map[string]any, 16)
	ts := r.Time.UTC()
	fields["ts"] = ts.Truncate(time.Millisecond).Format(tsLayout)
	fields["level"] = normalizeLevel(r.Level.String())
	if jsonOut {
		fields["ts_unix_nano"] = ts.UnixNano()
	}

	prefix := strings.Join(h.groups, ".")
	for _, a := range h.attrs {
		collect(fields, prefix, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		collect(fields, prefix, a)
		return true
	})
	fromContext(ctx, fields)

	if rid, _ := fields["rid"].(string); rid != "" {
		if short := CompactRID(rid); short != rid {
			if _, ok := fields["rid_full"]; jsonOut && !ok {
				fields["rid_full"] = rid
			}
			fields["rid"] = short
		}
	}
	if ev, _ := fields["event"].(string); ev == "" {
		fields["event"] = cmpOr(r.Message, "unknown")
	}
	if comp, _ := fields["component"].(string); comp == "" {
		fields["component"] = "app"
	}
	cleanup(fields)

	var line []byte
	if jsonOut {
		var err error
		if line, err = renderJSON(fields, h.cfg.keyOrder); err != nil {
			return err
		}
	} else {
		line = renderKV(fields, h.cfg.keyOrder)
	}
	return h.cfg.writer.Put(append(line, '\n'))
}

func (h *structuredHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(slices.Clone(h.attrs), attrs...)
	return &clone
}

func (h *structuredHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(slices.Clone(h.groups), name)
	return &clone
}

func cmpOr(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// collect flattens groups into dotted keys.
func collect(fields map[string]any, prefix string, a slog.Attr) {
	key := a.Key
	if prefix != "" {
		key = strings.TrimSuffix(prefix+"."+key, ".")
	}
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		for _, child := range v.Group() {
			collect(fields, key, child)
		}
		return
	}
	if key == "" {
		return
	}
	if k, val, ok := normalize(key, v); ok {
		fields[k] = val
	}
}

func msKey(key string) string {
	switch {
	case key == "duration":
		return "duration_ms"
	case strings.HasSuffix(key, "_ms"):
		return key
	default:
		return key + "_ms"
	}
}

func normalize(key string, v slog.Value) (string, any, bool) {
	switch v.Kind() {
	case slog.KindString:
		return key, strings.TrimSpace(v.String()), true
	case slog.KindBool:
		return key, v.Bool(), true
	case slog.KindInt64:
		return key, v.Int64(), true
	case slog.KindUint64:
		if u := v.Uint64(); u <= math.MaxInt64 {
			return key, int64(u), true
		}
		return key, v.Uint64(), true
	case slog.KindFloat64:
		return key, v.Float64(), true
	case slog.KindDuration:
		return msKey(key), RoundMS(v.Duration()).Milliseconds(), true
	case slog.KindTime:
		return key, v.Time().UTC().Format(time.RFC3339Nano), true
	}
	switch x := v.Any().(type) {
	case nil:
		return key, nil, false
	case error:
		return key, x.Error(), true
	case time.Duration:
		return msKey(key), RoundMS(x).Milliseconds(), true
	case fmt.Stringer:
		return key, x.String(), true
	default:
		return key, fmt.Sprint(x), true
	}
}

func cleanup(fields map[string]any) {
	if s, ok := fields["status"].(string); ok && s != "" {
		fields["status"], _ = normalizeEnum(s, knownStatus)
	}
	if o, ok := fields["outcome"].(string); ok && o != "" {
		if v, known := normalizeEnum(o, knownOutcome); known {
			fields["outcome"] = v
		} else {
			delete(fields, "outcome")
		}
	}
	for k, v := range fields {
		if s, ok := v.(string); ok && s == "" {
			delete(fields, k)
		}
	}
}

func orderedKeys(fields map[string]any, order []string) []string {
	keys := make([]string, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, k := range order {
		if _, ok := fields[k]; ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	rest := make([]string, 0, len(fields)-len(keys))
	for k := range fields {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)
	return append(keys, rest...)
}

func renderJSON(fields map[string]any, order []string) ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range orderedKeys(fields, order) {
		data, err := json.Marshal(fields[k])
		if err != nil {
			return nil, err
		}
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(k))
		b.WriteByte(':')
		b.Write(data)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

func renderKV(fields map[string]any, order []string) []byte {
	var b strings.Builder
	for i, k := range orderedKeys(fields, order) {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		b.WriteByte('=')
		s := fmt.Sprint(fields[k])
		if strings.ContainsFunc(s, needsQuote) {
			s = strconv.Quote(s)
		}
		b.WriteString(s)
	}
	return []byte(b.String())
}

func needsQuote(r rune) bool {
	return r <= ' ' || r == '=' || r == '"'
}

// fromContext copies correlation metadata unless the record already set it.
func fromContext(ctx context.Context, fields map[string]any) {
	if ctx == nil {
		return
	}
	put := func(k string, v any, empty bool) {
		if _, ok := fields[k]; !ok && !empty {
			fields[k] = v
		}
	}
	rid := RIDFrom(ctx)
	put("rid", rid, rid == "")
	uid := UserIDFrom(ctx)
	put("user_id", uid, uid == 0)
	upd := UpdateIDFrom(ctx)
	put("update_id", upd, upd == 0)
	cid := ChatIDFrom(ctx)
	put("chat_id", cid, cid == 0)
	hn := HandlerFrom(ctx)
	put("handler", hn, hn == "")
}
