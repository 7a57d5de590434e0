package router

import (
	tele "gopkg.in/telebot.v4"

	tg "github.com/m3rciful/summerday/core/telegram"
	tghelpers "github.com/m3rciful/summerday/core/telegram/helpers"
	"github.com/m3rciful/summerday/core/telegram/middleware"
)

// FSM is the part of a state manager the message router needs.
type FSM interface {
	InProgress(userID int64) bool
	ManagerHandler(c tele.Context) error
}

// MessageOptions sets handlers for messages no dialog or command claims.
// When unset the registry text fallback is used for both.
type MessageOptions struct {
	UnknownText  tele.HandlerFunc
	UnknownMedia tele.HandlerFunc
}

// MessageRoutes routes plain text (tele.OnText) and every other message
// kind: media with stickers included, locations, contacts, dice, polls and
// venues. Users inside a dialog go to the FSM first; text
// that looks like a registered command goes to that command.
func MessageRoutes(fsm FSM, reg *tg.Registry, opts MessageOptions) []tg.Route {
	fallback := func(preferred tele.HandlerFunc) tele.HandlerFunc {
		if preferred != nil {
			return preferred
		}
		if reg != nil {
			return reg.TextFallback()
		}
		return nil
	}
	unknownText := fallback(opts.UnknownText)
	unknownMedia := fallback(opts.UnknownMedia)

	text := func(c tele.Context) error {
		if fsm != nil && fsm.InProgress(tghelpers.SenderID(c)) {
			return handle(c, "fsm", func() error { return fsm.ManagerHandler(c) })
		}
		if reg != nil {
			if name, cmd, ok := reg.LookupCommand(c.Text()); ok && cmd.Handler != nil && !cmd.AdminOnly {
				return handle(c, handlerName("", name), func() error { return cmd.Handler(c) })
			}
		}
		return handle(c, "unknown_text", func() error {
			if unknownText == nil {
				return ErrIgnored
			}
			return unknownText(c)
		})
	}

	media := func(c tele.Context) error {
		if fsm != nil && fsm.InProgress(tghelpers.SenderID(c)) {
			return handle(c, "fsm_media", func() error { return fsm.ManagerHandler(c) })
		}
		return handle(c, "unknown_media", func() error {
			if unknownMedia == nil {
				return ErrIgnored
			}
			return unknownMedia(c)
		})
	}

	wrap := func(h tele.HandlerFunc) tele.HandlerFunc {
		return middleware.RecoverMiddleware(middleware.LoggerMiddleware(h))
	}
	routes := []tg.Route{{Endpoint: tele.OnText, Handler: wrap(text)}}
	for _, endpoint := range otherMessages {
		routes = append(routes, tg.Route{Endpoint: endpoint, Handler: wrap(media)})
	}
	return routes
}

// otherMessages are the non-text endpoints a message can land on; telebot
// does not fall back to OnMedia for the ones after it.
var otherMessages = []string{
	tele.OnMedia,
	tele.OnLocation,
	tele.OnContact,
	tele.OnDice,
	tele.OnPoll,
	tele.OnVenue,
}
