package middleware

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/summerday/core/logger"
	tghelpers "github.com/m3rciful/summerday/core/telegram/helpers"
)

// AdminOptions configures AdminOnlyMiddleware.
type AdminOptions struct {
	// AdminID of 0 disables the check.
	AdminID  int64
	OnReject tele.HandlerFunc
}

// IsAdmin reports whether the sender of c passes the admin check.
func (o AdminOptions) IsAdmin(c tele.Context) bool {
	if o.AdminID == 0 {
		return true
	}
	u := c.Sender()
	return u != nil && u.ID == o.AdminID
}

// AdminOnlyMiddleware lets only the configured admin reach next.
func AdminOnlyMiddleware(opts AdminOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if opts.IsAdmin(c) {
				return next(c)
			}
			logger.Warn(tghelpers.BuildContext(c), "tg", "access.denied",
				slog.String("outcome", "ignored"),
			)
			if opts.OnReject != nil {
				return opts.OnReject(c)
			}
			return nil
		}
	}
}
