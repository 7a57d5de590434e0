package router

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/summerday/core/logger"
	tg "github.com/m3rciful/summerday/core/telegram"
	"github.com/m3rciful/summerday/core/telegram/middleware"
)

// CommandRouteOptions configures CommandRoutes.
type CommandRouteOptions struct {
	AdminID       int64
	OnAdminReject tele.HandlerFunc
}

// CommandRoutes turns every registered command into a route wrapped with
// panic recovery, update logging, the handler summary and, for admin-only
// commands, the admin check.
func CommandRoutes(reg *tg.Registry, opts CommandRouteOptions) []tg.Route {
	if reg == nil {
		return nil
	}
	admin := middleware.AdminOnlyMiddleware(middleware.AdminOptions{
		AdminID:  opts.AdminID,
		OnReject: opts.OnAdminReject,
	})

	cmds := reg.Commands()
	routes := make([]tg.Route, 0, len(cmds))
	for name, def := range cmds {
		name, run := name, def.Handler
		h := func(c tele.Context) error {
			return handle(c, handlerName("", name), func() error { return run(c) })
		}
		if def.AdminOnly {
			h = admin(h)
		}
		routes = append(routes, tg.Route{
			Endpoint: name,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(h)),
		})
	}

	logger.TWire.Info("tg.wire",
		slog.String("event", "complete"),
		slog.Int("commands", len(cmds)),
		slog.Int("callbacks", len(reg.CallbackKeys())),
	)
	return routes
}
