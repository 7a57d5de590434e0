package bot

import (
	"log/slog"

	"github.com/m3rciful/summerday/core/logger"
	tg "github.com/m3rciful/summerday/core/telegram"
	"github.com/m3rciful/summerday/core/telegram/commands"
	"github.com/m3rciful/summerday/core/telegram/router"
)

// Wire registers the inline bot's commands and callbacks in reg and returns
// its routes: inline queries, /start, callbacks, and every other message.
func Wire(reg *tg.Registry, h *Handlers) ([]tg.Route, error) {
	if err := reg.RegisterCommand("/start", commands.Command{
		Handler:     h.Start,
		Description: "Choose your timezone",
	}); err != nil {
		return nil, err
	}
	if err := reg.RegisterCallback(CallbackTimezone, h.SetZone); err != nil {
		return nil, err
	}
	reg.SetCallbackNotFound(h.LegacyCallback)
	reg.SetTextFallback(h.InlineOnly)

	routes := []tg.Route{router.QueryRoute(h.Inline), router.CallbackRoute(reg)}
	routes = append(routes, router.CommandRoutes(reg, router.CommandRouteOptions{})...)
	routes = append(routes, router.MessageRoutes(nil, reg, router.MessageOptions{})...)
	logRoutes("inline", routes)
	return routes, nil
}

// WireCollector registers the sticker collector. Every message is routed to
// it; /start begins a fresh collection.
func WireCollector(reg *tg.Registry, col *Collector) ([]tg.Route, error) {
	if err := reg.RegisterCommand("/start", commands.Command{
		Handler:     col.Entry,
		Description: "Collect sticker file ids",
	}); err != nil {
		return nil, err
	}
	if err := reg.RegisterCallback(CallbackCollect, col.Cancel); err != nil {
		return nil, err
	}
	reg.SetTextFallback(col.Entry)

	routes := []tg.Route{router.CallbackRoute(reg)}
	routes = append(routes, router.CommandRoutes(reg, router.CommandRouteOptions{})...)
	routes = append(routes, router.MessageRoutes(col.FSM(), reg, router.MessageOptions{})...)
	logRoutes("collect", routes)
	return routes, nil
}

func logRoutes(mode string, routes []tg.Route) {
	logger.TWire.Info("routes wired",
		slog.String("event", "routes"),
		slog.String("mode", mode),
		slog.Int("routes", len(routes)),
	)
}
