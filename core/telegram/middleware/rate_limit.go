package middleware

import (
	"log/slog"
	"sync"
	"time"

	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/m3rciful/summerday/core/config"
	"github.com/m3rciful/summerday/core/logger"
	tghelpers "github.com/m3rciful/summerday/core/telegram/helpers"
)

// RateLimitOptions configures RateLimitMiddleware.
type RateLimitOptions struct {
	Interval time.Duration
	// Exclude lists update kinds (coreconfig.Update*) that bypass the limit.
	Exclude   map[string]struct{}
	OnLimited tele.HandlerFunc
	// Now overrides the clock in tests.
	Now func() time.Time
}

// UpdateKind classifies an update for rate limiting and logging.
func UpdateKind(u tele.Update) string {
	switch {
	case u.Callback != nil:
		return coreconfig.UpdateCallback
	case u.Query != nil:
		return coreconfig.UpdateInlineQuery
	case u.Message != nil:
		return coreconfig.UpdateMessage
	}
	return "other"
}

// RateLimitMiddleware drops updates arriving from the same user faster than
// opts.Interval.
func RateLimitMiddleware(opts RateLimitOptions) tele.MiddlewareFunc {
	var (
		mu   sync.Mutex
		seen = make(map[int64]time.Time)
	)
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil || opts.Interval <= 0 {
				return next(c)
			}
			kind := UpdateKind(c.Update())
			if _, skip := opts.Exclude[kind]; skip {
				return next(c)
			}

			t := now()
			mu.Lock()
			last, ok := seen[user.ID]
			limited := ok && t.Sub(last) < opts.Interval
			if !limited {
				seen[user.ID] = t
			}
			mu.Unlock()

			if !limited {
				return next(c)
			}
			logger.Warn(tghelpers.BuildContext(c), "tg", "tg.rate_limit",
				slog.String("outcome", "ignored"),
				slog.String("kind", kind),
			)
			if opts.OnLimited != nil {
				_ = opts.OnLimited(c)
			}
			return nil
		}
	}
}
