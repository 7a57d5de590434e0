// Package bot implements the Telegram side of the summer day bot: the
// inline answer, the timezone keyboard and the sticker collector.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/summerday/core/logger"
	"github.com/m3rciful/summerday/core/telegram/callbacks"
	"github.com/m3rciful/summerday/core/telegram/format"
	tghelpers "github.com/m3rciful/summerday/core/telegram/helpers"
	"github.com/m3rciful/summerday/core/telegram/router"
	"github.com/m3rciful/summerday/core/telegram/ui"
	"github.com/m3rciful/summerday/internal/summer"
	"github.com/m3rciful/summerday/internal/timezone"
)

// StartChangeTimezone is the /start deep-link parameter carried by the
// button above inline results.
const StartChangeTimezone = "change_timezone"

const (
	inlineResultID  = "1"
	inlineCacheTime = 1

	msgChooseTimezone = "Choose your timezone"
	msgInlineOnly     = "I work only in inline mode! Type %s in any chat."
	msgZoneButton     = "Your timezone is: %s. Click to change!"
)

// Zones is the subset of timezone.Service the handlers use.
type Zones interface {
	Zone(ctx context.Context, userID int64) (int, error)
	SetZone(ctx context.Context, userID int64, offset int) error
}

// Handlers serves inline queries, /start and the timezone keyboard.
type Handlers struct {
	zones Zones
	table *summer.Table
	now   func() time.Time

	mu       sync.RWMutex
	username string
}

// Option customizes Handlers.
type Option func(*Handlers)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(h *Handlers) { h.now = now }
}

// WithUsername sets the bot username up front.
func WithUsername(name string) Option {
	return func(h *Handlers) { h.username = name }
}

// NewHandlers builds Handlers. The username is normally filled in later by
// SetUsername once the bot has called getMe.
func NewHandlers(zones Zones, table *summer.Table, opts ...Option) *Handlers {
	h := &Handlers{zones: zones, table: table, now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SetUsername records the bot's @username.
func (h *Handlers) SetUsername(name string) {
	h.mu.Lock()
	h.username = strings.TrimPrefix(strings.TrimSpace(name), "@")
	h.mu.Unlock()
}

// Username returns the recorded bot username.
func (h *Handlers) Username() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.username
}

// Ready reports whether inline queries can be answered.
func (h *Handlers) Ready() bool {
	return h.table != nil && h.zones != nil && h.Username() != ""
}

// Inline answers with the sticker for the user's current day of summer.
func (h *Handlers) Inline(c tele.Context) error {
	if !h.Ready() {
		return router.ErrIgnored
	}
	ctx := tghelpers.BuildContext(c)
	zone, err := h.zones.Zone(ctx, tghelpers.SenderID(c))
	if err != nil {
		return fmt.Errorf("inline: load timezone: %w", err)
	}

	day, fileID := h.table.ForTime(h.now(), zone)
	if logger.ShouldSampleDebug() {
		logger.LogEvent(ctx, logger.SVCStickers, slog.LevelDebug, "sticker.pick",
			slog.Int("zone", zone),
			slog.Int("day", day),
			slog.Int("sticker_index", summer.Index(day)),
		)
	}

	button := ui.StartButton(fmt.Sprintf(msgZoneButton, timezone.Label(zone)), StartChangeTimezone)
	return c.Answer(ui.PersonalResponse(inlineCacheTime, button, ui.NewStickerResult(inlineResultID, fileID)))
}

// Start opens the timezone keyboard for /start change_timezone and explains
// inline mode for any other /start.
func (h *Handlers) Start(c tele.Context) error {
	msg := c.Message()
	if msg == nil || strings.TrimSpace(msg.Payload) != StartChangeTimezone {
		return h.InlineOnly(c)
	}
	zone, err := h.zones.Zone(tghelpers.BuildContext(c), tghelpers.SenderID(c))
	if err != nil {
		return fmt.Errorf("start: load timezone: %w", err)
	}
	return tghelpers.SendText(c, msgChooseTimezone, &tele.SendOptions{ReplyMarkup: Keyboard(zone)})
}

// SetZone stores the offset from a keyboard button and re-renders the
// keyboard in place. Payloads that are not an offset in range are ignored.
func (h *Handlers) SetZone(c tele.Context) error {
	zone, err := timezone.Parse(callbacks.Payload(c))
	if err != nil {
		return router.ErrIgnored
	}
	ctx := tghelpers.BuildContext(c)
	if err := h.zones.SetZone(ctx, tghelpers.SenderID(c), zone); err != nil {
		return fmt.Errorf("set timezone: %w", err)
	}
	return tghelpers.EditMarkup(c, Keyboard(zone))
}

// LegacyCallback handles buttons whose data is a bare offset without a
// unique prefix; everything else is ignored.
func (h *Handlers) LegacyCallback(c tele.Context) error {
	if callbacks.Key(c) != "" {
		return router.ErrIgnored
	}
	return h.SetZone(c)
}

// InlineOnly tells the user to call the bot from any chat's input field.
func (h *Handlers) InlineOnly(c tele.Context) error {
	name := h.Username()
	if name == "" {
		return router.ErrIgnored
	}
	return tghelpers.SendHTML(c, fmt.Sprintf(msgInlineOnly, format.Code(format.Mention(name))))
}
