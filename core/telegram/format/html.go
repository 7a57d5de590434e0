// Package format renders text for Telegram's HTML parse mode.
package format

import (
	"html"
	"strings"
)

// EscapeHTML escapes the three characters Telegram HTML treats specially.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}

// Code wraps s in <code> after escaping it.
func Code(s string) string {
	return "<code>" + EscapeHTML(s) + "</code>"
}

// Mention returns "@username", adding the at sign only when it is missing.
func Mention(username string) string {
	username = strings.TrimSpace(username)
	if username == "" || strings.HasPrefix(username, "@") {
		return username
	}
	return "@" + username
}
