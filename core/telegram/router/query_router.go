package router

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/summerday/core/logger"
	tg "github.com/m3rciful/summerday/core/telegram"
	"github.com/m3rciful/summerday/core/telegram/middleware"
)

// QueryRoute routes inline queries to h with the usual logging wrappers.
func QueryRoute(h tele.HandlerFunc) tg.Route {
	wrapped := func(c tele.Context) error {
		q := c.Query()
		if q == nil || h == nil {
			return nil
		}
		return handle(c, "inline", func() error { return h(c) },
			slog.Int("query_len", len(q.Text)),
			slog.String("payload", logger.SanitizeLimit(q.Text, 64)),
		)
	}
	return tg.Route{
		Endpoint: tele.OnQuery,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(wrapped)),
	}
}
