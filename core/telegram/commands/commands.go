// Package commands describes slash commands kept in the telegram registry.
package commands

import tele "gopkg.in/telebot.v4"

// Command is a slash command with its menu metadata.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	// AdminOnly commands are rejected for everyone but telegram.admin_id.
	AdminOnly bool
	// Hidden commands are routed but not published in the menu.
	Hidden bool
}

// Visible reports whether the command belongs in the public command menu.
func (c Command) Visible() bool {
	return !c.Hidden && !c.AdminOnly
}
