package helpers

import (
	"errors"
	"log/slog"
	"sync/atomic"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/summerday/core/logger"
	"github.com/m3rciful/summerday/core/telegram/sender"
)

var globalDispatcher atomic.Pointer[sender.Dispatcher]

// SetDispatcher wires the asynchronous sender used by the Send helpers.
// nil makes them synchronous.
func SetDispatcher(d *sender.Dispatcher) {
	globalDispatcher.Store(d)
}

func sendAsync(c tele.Context, action, endpoint string, run func() error) error {
	disp := globalDispatcher.Load()
	if disp == nil {
		return run()
	}
	ctx := BuildContext(c)
	err := disp.Enqueue(ctx, action, endpoint, run)
	if errors.Is(err, sender.ErrQueueFull) || errors.Is(err, sender.ErrQueueClosed) {
		logger.Warn(ctx, "tg.sender", "queue.fallback",
			slog.String("action", action),
			slog.String("endpoint", endpoint),
			slog.String("err", err.Error()),
		)
		return run()
	}
	return err
}

// SendText sends text to the current chat with optional send options.
func SendText(c tele.Context, text string, opts ...*tele.SendOptions) error {
	return sendAsync(c, "send.text", "sendMessage", func() error {
		if len(opts) > 0 && opts[0] != nil {
			return c.Send(text, opts[0])
		}
		return c.Send(text)
	})
}

// SendHTML sends text in HTML parse mode with an optional keyboard.
func SendHTML(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	opts := &tele.SendOptions{ParseMode: tele.ModeHTML}
	if len(markup) > 0 {
		opts.ReplyMarkup = markup[0]
	}
	return SendText(c, text, opts)
}

// EditMarkup replaces the inline keyboard of the callback's message in place.
// Telegram's "message is not modified" reply counts as success.
func EditMarkup(c tele.Context, markup *tele.ReplyMarkup) error {
	err := c.Edit(markup)
	if IsNotModified(err) {
		return nil
	}
	return err
}

// IsNotModified reports whether err is Telegram refusing an edit that would
// not change the message.
func IsNotModified(err error) bool {
	return errors.Is(err, tele.ErrMessageNotModified) || errors.Is(err, tele.ErrSameMessageContent)
}
