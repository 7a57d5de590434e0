package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInlineButtonsNPerRow(t *testing.T) {
	btns := []InlineBtn{
		{Text: "a", Unique: "k", Data: "1"},
		{Text: "b", Unique: "k", Data: "2"},
		{Text: "c", Unique: "k", Data: "3"},
		{Text: "d", Unique: "k", Data: "4"},
	}
	m := InlineButtonsNPerRow(btns, 3)
	require.Len(t, m.InlineKeyboard, 2)
	assert.Len(t, m.InlineKeyboard[0], 3)
	assert.Len(t, m.InlineKeyboard[1], 1)
	assert.Equal(t, "d", m.InlineKeyboard[1][0].Text)
	assert.Equal(t, "k", m.InlineKeyboard[1][0].Unique)
	assert.Equal(t, "4", m.InlineKeyboard[1][0].Data)

	single := InlineButtonsNPerRow(btns, 0)
	assert.Len(t, single.InlineKeyboard, 4)

	assert.Empty(t, InlineButtonsNPerRow(nil, 3).InlineKeyboard)
}

func TestSingleCancelMarkup(t *testing.T) {
	m := SingleCancelMarkup("collect")
	require.Len(t, m.InlineKeyboard, 1)
	assert.Equal(t, "❌ Cancel", m.InlineKeyboard[0][0].Text)
	assert.Equal(t, "collect", m.InlineKeyboard[0][0].Unique)
	assert.Equal(t, "cancel", m.InlineKeyboard[0][0].Data)

	assert.Equal(t, "Stop", SingleCancelMarkup("collect", "Stop").InlineKeyboard[0][0].Text)
}
