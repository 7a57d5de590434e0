package middleware

import (
	"context"
	"log/slog"
	"sync"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/summerday/core/logger"
	"github.com/m3rciful/summerday/core/telegram/callbacks"
	tghelpers "github.com/m3rciful/summerday/core/telegram/helpers"
)

// seenUpdates remembers recently logged update ids so a route wrapped in
// LoggerMiddleware twice logs the receipt once.
type seenUpdates struct {
	mu   sync.Mutex
	ids  map[int]time.Time
	keep time.Duration
}

var receipts = &seenUpdates{ids: make(map[int]time.Time), keep: 10 * time.Second}

func (s *seenUpdates) first(id int, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, ts := range s.ids {
		if now.Sub(ts) > s.keep {
			delete(s.ids, k)
		}
	}
	if _, ok := s.ids[id]; ok {
		return false
	}
	s.ids[id] = now
	return true
}

// LoggerMiddleware assigns the update rid, stores the logging context on c
// and emits a sampled update.received debug line.
func LoggerMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		upd := c.Update()
		var chatID, userID int64
		if chat := c.Chat(); chat != nil {
			chatID = chat.ID
		}
		user := c.Sender()
		if user != nil {
			userID = user.ID
		}
		rid := logger.BuildRID(upd.ID, chatID, userID)
		c.Set("rid", rid)

		ctx := logger.WithRID(context.Background(), rid)
		ctx = logger.WithUpdateMeta(ctx, upd.ID, userID, chatID)
		ctx = logger.WithLogger(ctx, logger.Component("tg"))
		tghelpers.StoreContext(c, ctx)

		if logger.ShouldSampleDebug() && receipts.first(upd.ID, time.Now()) {
			attrs := []slog.Attr{
				slog.String("status", "ok"),
				slog.String("kind", UpdateKind(upd)),
			}
			if user != nil && user.Username != "" {
				attrs = append(attrs, slog.String("username", logger.SanitizeLimit(user.Username, 64)))
			}
			if user != nil && user.LanguageCode != "" {
				attrs = append(attrs, slog.String("lang", user.LanguageCode))
			}
			switch {
			case upd.Callback != nil:
				key, payload := callbacks.Parse(upd.Callback)
				attrs = append(attrs,
					slog.String("cb_key", logger.SanitizeLimit(key, 128)),
					slog.String("payload", logger.SanitizeLimit(payload, 256)),
				)
			case upd.Query != nil:
				attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(upd.Query.Text, 256)))
			case upd.Message != nil && upd.Message.Sticker != nil:
				attrs = append(attrs, slog.String("payload", "sticker"))
			case upd.Message != nil:
				attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(upd.Message.Text, 256)))
			}
			logger.LogEvent(ctx, nil, slog.LevelDebug, "update.received", attrs...)
		}

		return next(c)
	}
}
