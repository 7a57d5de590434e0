package bot

import (
	"strconv"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/summerday/core/telegram/keyboard"
	"github.com/m3rciful/summerday/internal/timezone"
)

const (
	// CallbackTimezone is the unique of the timezone buttons; the payload is
	// the offset.
	CallbackTimezone = "tz"

	keyboardColumns = 3
	selectedMark    = " ✅"
)

// Keyboard lists GMT-12 through GMT+14, three per row, with current checked.
func Keyboard(current int) *tele.ReplyMarkup {
	zones := timezone.All()
	btns := make([]keyboard.InlineBtn, 0, len(zones))
	for _, z := range zones {
		label := timezone.Label(z)
		if z == current {
			label += selectedMark
		}
		btns = append(btns, keyboard.InlineBtn{
			Text:   label,
			Unique: CallbackTimezone,
			Data:   strconv.Itoa(z),
		})
	}
	return keyboard.InlineButtonsNPerRow(btns, keyboardColumns)
}
