// Package callbacks decodes telebot inline-button callback data.
package callbacks

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// Parse splits callback data of the form "\f<unique>|<payload>" produced by
// telebot data buttons. Data without the prefix is treated as a bare payload
// under an empty unique.
func Parse(cb *tele.Callback) (unique, payload string) {
	if cb == nil {
		return "", ""
	}
	raw := cb.Data
	if !strings.HasPrefix(raw, "\f") {
		if cb.Unique != "" {
			return cb.Unique, raw
		}
		return "", raw
	}
	unique, payload, _ = strings.Cut(strings.TrimPrefix(raw, "\f"), "|")
	return strings.TrimSpace(unique), payload
}

// Key returns the callback unique of the current update.
func Key(c tele.Context) string {
	k, _ := Parse(c.Callback())
	return k
}

// Payload returns the callback payload of the current update.
func Payload(c tele.Context) string {
	_, p := Parse(c.Callback())
	return p
}
