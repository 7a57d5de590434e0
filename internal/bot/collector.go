package bot

import (
	"fmt"
	"log/slog"
	"sync"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/summerday/core/logger"
	tghelpers "github.com/m3rciful/summerday/core/telegram/helpers"
	"github.com/m3rciful/summerday/core/telegram/keyboard"
	"github.com/m3rciful/summerday/core/telegram/middleware"
	"github.com/m3rciful/summerday/core/telegram/router"
	"github.com/m3rciful/summerday/core/telegram/state"
	"github.com/m3rciful/summerday/internal/summer"
)

const (
	// CallbackCollect is the unique of the collector's cancel button.
	CallbackCollect = "collect"

	stateCollecting state.State = "collect.stickers"
	tempFileIDs                 = "file_ids"

	msgCollectDay      = "You should send sticker for day number %d"
	msgCollectOff      = "You should send a sticker for non-summer time"
	msgCollectReceived = "Sticker for day %d received!"
	msgCollectDone     = "All done! %d stickers saved to %s."
	msgCollectCanceled = "Collection cancelled. Send anything to start over."
	msgCollectNotOwner = "This bot is collecting stickers for its owner."
)

// Collector walks one user through sending the sticker of every summer day
// followed by the off-season sticker, then writes the table to disk.
type Collector struct {
	fsm   state.Manager
	out   string
	admin middleware.AdminOptions

	once   sync.Once
	onDone func(path string)
}

// NewCollector returns a Collector writing to out. adminID restricts who may
// run it; 0 allows anyone. onDone is called once after the file is written.
func NewCollector(fsm state.Manager, out string, adminID int64, onDone func(path string)) *Collector {
	c := &Collector{
		fsm:    fsm,
		out:    out,
		admin:  middleware.AdminOptions{AdminID: adminID},
		onDone: onDone,
	}
	fsm.Handle(stateCollecting, c.Receive)
	return c
}

// FSM exposes the state manager for message routing.
func (col *Collector) FSM() state.Manager { return col.fsm }

// Entry handles messages from users not yet collecting. A sticker counts as
// the day 1 sticker; anything else starts the dialog with a prompt.
func (col *Collector) Entry(c tele.Context) error {
	if !col.admin.IsAdmin(c) {
		return tghelpers.SendText(c, msgCollectNotOwner)
	}
	uid := tghelpers.SenderID(c)
	col.fsm.Clear(uid)
	col.fsm.SetState(uid, stateCollecting)
	col.fsm.SetTemp(uid, tempFileIDs, []string{})
	logger.LogEvent(tghelpers.BuildContext(c), logger.Collector, slog.LevelInfo, "collect.start",
		slog.String("path", col.out),
	)
	if msg := c.Message(); msg != nil && msg.Sticker != nil {
		return col.Receive(c)
	}
	return col.prompt(c, 0)
}

// Receive stores one sticker and asks for the next.
func (col *Collector) Receive(c tele.Context) error {
	uid := tghelpers.SenderID(c)
	ids := col.collected(uid)

	msg := c.Message()
	if msg == nil || msg.Sticker == nil || msg.Sticker.FileID == "" {
		return col.prompt(c, len(ids))
	}

	ids = append(ids, msg.Sticker.FileID)
	col.fsm.SetTemp(uid, tempFileIDs, ids)
	ctx := tghelpers.BuildContext(c)
	logger.LogEvent(ctx, logger.Collector, slog.LevelDebug, "collect.sticker",
		slog.Int("collected", len(ids)),
	)

	if len(ids) <= summer.SeasonDays {
		if err := tghelpers.SendText(c, fmt.Sprintf(msgCollectReceived, len(ids))); err != nil {
			return err
		}
	}
	if len(ids) < summer.TableSize {
		return col.prompt(c, len(ids))
	}
	return col.finish(c, ids)
}

// Cancel aborts the dialog from the inline cancel button.
func (col *Collector) Cancel(c tele.Context) error {
	uid := tghelpers.SenderID(c)
	if !col.fsm.InProgress(uid) {
		return router.ErrIgnored
	}
	n := len(col.collected(uid))
	col.fsm.Clear(uid)
	logger.LogEvent(tghelpers.BuildContext(c), logger.Collector, slog.LevelInfo, "collect.cancel",
		slog.String("outcome", "cancelled"),
		slog.Int("collected", n),
	)
	return tghelpers.SendText(c, msgCollectCanceled)
}

func (col *Collector) finish(c tele.Context, ids []string) error {
	uid := tghelpers.SenderID(c)
	ctx := tghelpers.BuildContext(c)
	table, err := summer.NewTable(ids)
	if err == nil {
		err = table.Save(col.out)
	}
	if err != nil {
		logger.LogEvent(ctx, logger.Collector, slog.LevelError, "collect.save",
			slog.String("status", "fail"),
			slog.String("path", col.out),
			slog.String("err", err.Error()),
		)
		// the last sticker is dropped so the user can resend it
		col.fsm.SetTemp(uid, tempFileIDs, ids[:len(ids)-1])
		return fmt.Errorf("collect: save %s: %w", col.out, err)
	}
	col.fsm.Clear(uid)
	logger.LogEvent(ctx, logger.Collector, slog.LevelInfo, "collect.save",
		slog.String("status", "ok"),
		slog.String("path", col.out),
		slog.Int("stickers", table.Len()),
	)
	if err := tghelpers.SendText(c, fmt.Sprintf(msgCollectDone, table.Len(), col.out)); err != nil {
		return err
	}
	if col.onDone != nil {
		col.once.Do(func() { col.onDone(col.out) })
	}
	return nil
}

func (col *Collector) prompt(c tele.Context, collected int) error {
	text := msgCollectOff
	if collected < summer.SeasonDays {
		text = fmt.Sprintf(msgCollectDay, collected+1)
	}
	return tghelpers.SendText(c, text, &tele.SendOptions{
		ReplyMarkup: keyboard.SingleCancelMarkup(CallbackCollect),
	})
}

func (col *Collector) collected(uid int64) []string {
	v, _ := col.fsm.GetTemp(uid, tempFileIDs)
	ids, _ := v.([]string)
	return ids
}
