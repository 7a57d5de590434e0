// Package ui builds inline-mode answers.
package ui

import tele "gopkg.in/telebot.v4"

// NewStickerResult returns a cached-sticker inline result for fileID.
func NewStickerResult(id, fileID string) *tele.StickerResult {
	r := &tele.StickerResult{Cache: fileID}
	r.SetResultID(id)
	return r
}

// StartButton is the button shown above inline results that opens a private
// chat with the bot and sends /start with param.
func StartButton(text, param string) *tele.QueryResponseButton {
	return &tele.QueryResponseButton{Text: text, Start: param}
}

// PersonalResponse wraps results in an answer that Telegram must not share
// between users. cacheSeconds below 1 is raised to 1, the smallest value
// the API accepts from this client.
func PersonalResponse(cacheSeconds int, button *tele.QueryResponseButton, results ...tele.Result) *tele.QueryResponse {
	return &tele.QueryResponse{
		Results:    tele.Results(results),
		CacheTime:  max(cacheSeconds, 1),
		IsPersonal: true,
		Button:     button,
	}
}
