// Package keyboard builds telebot inline keyboards from plain descriptions.
package keyboard

import tele "gopkg.in/telebot.v4"

// InlineBtn describes one data button. Unique selects the callback handler,
// Data is the payload it receives.
type InlineBtn struct {
	Text   string
	Unique string
	Data   string
}

const defaultCancelText = "❌ Cancel"

// InlineButtonsRows builds an inline keyboard with the given rows.
func InlineButtonsRows(rows ...[]InlineBtn) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	keyboard := make([][]tele.InlineButton, 0, len(rows))
	for _, row := range rows {
		line := make([]tele.InlineButton, 0, len(row))
		for _, b := range row {
			line = append(line, *markup.Data(b.Text, b.Unique, b.Data).Inline())
		}
		keyboard = append(keyboard, line)
	}
	markup.InlineKeyboard = keyboard
	return markup
}

// InlineButtonsNPerRow lays buttons out left to right, n per row. The last
// row may be shorter. n <= 1 puts every button on its own row.
func InlineButtonsNPerRow(buttons []InlineBtn, n int) *tele.ReplyMarkup {
	if n < 1 {
		n = 1
	}
	rows := make([][]InlineBtn, 0, (len(buttons)+n-1)/n)
	for start := 0; start < len(buttons); start += n {
		rows = append(rows, buttons[start:min(start+n, len(buttons))])
	}
	return InlineButtonsRows(rows...)
}

// SingleCancelMarkup is a one-button keyboard whose button fires unique
// with payload "cancel". text overrides the label.
func SingleCancelMarkup(unique string, text ...string) *tele.ReplyMarkup {
	label := defaultCancelText
	if len(text) > 0 && text[0] != "" {
		label = text[0]
	}
	return InlineButtonsRows([]InlineBtn{{Text: label, Unique: unique, Data: "cancel"}})
}
