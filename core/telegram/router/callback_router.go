package router

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	tg "github.com/m3rciful/summerday/core/telegram"
	"github.com/m3rciful/summerday/core/telegram/callbacks"
	"github.com/m3rciful/summerday/core/telegram/middleware"
)

// CallbackRoute answers every callback query at once (clearing the client
// spinner) and dispatches it to the registry handler for its unique.
func CallbackRoute(reg *tg.Registry) tg.Route {
	h := func(c tele.Context) error {
		cb := c.Callback()
		if cb == nil {
			return nil
		}
		key, _ := callbacks.Parse(cb)
		extras := []slog.Attr{slog.String("cb_key", key)}
		_ = c.Respond()

		fn, ok := reg.Callback(key)
		if !ok {
			fn = reg.CallbackNotFound()
			extras = append(extras, slog.String("reason", "not_found"))
		}
		return handle(c, handlerName("callback", key), func() error {
			if fn == nil {
				return ErrIgnored
			}
			return fn(c)
		}, extras...)
	}
	return tg.Route{
		Endpoint: tele.OnCallback,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(h)),
	}
}
