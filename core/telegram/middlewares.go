package telegram

import (
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/m3rciful/summerday/core/config"
	"github.com/m3rciful/summerday/core/telegram/middleware"
)

// DefaultMiddlewares builds the global chain: recover, optional rate limit,
// update logging, reply counters.
func DefaultMiddlewares(cfg *coreconfig.Config, onLimited tele.HandlerFunc) []Middleware {
	mws := []Middleware{{Name: "recover", Use: middleware.RecoverMiddleware}}

	if cfg != nil && cfg.RateLimit.IntervalMS > 0 {
		exclude := make(map[string]struct{}, len(cfg.RateLimit.ExcludeUpdates))
		for _, kind := range cfg.RateLimit.ExcludeUpdates {
			exclude[strings.ToLower(kind)] = struct{}{}
		}
		mws = append(mws, Middleware{
			Name: "rate_limit",
			Use: middleware.RateLimitMiddleware(middleware.RateLimitOptions{
				Interval:  time.Duration(cfg.RateLimit.IntervalMS) * time.Millisecond,
				Exclude:   exclude,
				OnLimited: onLimited,
			}),
		})
	}

	return append(mws,
		Middleware{Name: "logger", Use: middleware.LoggerMiddleware},
		Middleware{Name: "metrics", Use: middleware.MessageMetricsMiddleware},
	)
}
