package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/summerday/core/logger"
	"github.com/m3rciful/summerday/core/telegram/commands"
)

// ErrInvalidRegistration is returned for empty keys or nil handlers.
var ErrInvalidRegistration = errors.New("telegram: invalid registration")

// Registry holds slash commands and callback handlers keyed by their unique.
type Registry struct {
	mu        sync.RWMutex
	commands  map[string]commands.Command
	callbacks map[string]tele.HandlerFunc

	callbackNotFound tele.HandlerFunc
	textFallback     tele.HandlerFunc
}

// NewRegistry creates an empty Registry. Unknown callbacks are answered
// with "Unsupported action".
func NewRegistry() *Registry {
	return &Registry{
		commands:  make(map[string]commands.Command),
		callbacks: make(map[string]tele.HandlerFunc),
		callbackNotFound: func(c tele.Context) error {
			return c.Respond(&tele.CallbackResponse{Text: "Unsupported action"})
		},
	}
}

// RegisterCommand adds cmd under name, which must start with a slash.
func (r *Registry) RegisterCommand(name string, cmd commands.Command) error {
	if name == "" || cmd.Handler == nil {
		skip("register.command.skip", slog.String("name", name), slog.String("reason", "invalid"))
		return ErrInvalidRegistration
	}
	if !strings.HasPrefix(name, "/") {
		skip("register.command.skip", slog.String("name", name), slog.String("reason", "no_slash_prefix"))
		return fmt.Errorf("%w: command %q has no slash prefix", ErrInvalidRegistration, name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.commands[name]; dup {
		skip("register.command.duplicate", slog.String("name", name))
		return fmt.Errorf("command already registered: %s", name)
	}
	r.commands[name] = cmd
	return nil
}

// LookupCommand finds a command by the first word of text, ignoring a
// trailing @botname.
func (r *Registry) LookupCommand(text string) (string, commands.Command, bool) {
	name, _, _ := strings.Cut(strings.TrimSpace(text), " ")
	name, _, _ = strings.Cut(name, "@")
	if name == "" {
		return "", commands.Command{}, false
	}
	if !strings.HasPrefix(name, "/") {
		name = "/" + name
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[name]
	return name, cmd, ok
}

// Commands returns a copy of all registered commands.
func (r *Registry) Commands() map[string]commands.Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]commands.Command, len(r.commands))
	for k, v := range r.commands {
		out[k] = v
	}
	return out
}

// MenuCommands lists the visible commands sorted by name.
func (r *Registry) MenuCommands() []tele.Command {
	var list []tele.Command
	for name, cmd := range r.Commands() {
		if cmd.Visible() && cmd.Description != "" {
			list = append(list, tele.Command{Text: name, Description: cmd.Description})
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Text < list[j].Text })
	return list
}

// RegisterCallback maps a callback unique to its handler.
func (r *Registry) RegisterCallback(key string, handler tele.HandlerFunc) error {
	if key == "" || handler == nil {
		skip("register.callback.skip", slog.String("key", key), slog.Bool("handler_nil", handler == nil))
		return ErrInvalidRegistration
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.callbacks[key]; dup {
		skip("register.callback.duplicate", slog.String("key", key))
		return fmt.Errorf("callback already registered: %s", key)
	}
	r.callbacks[key] = handler
	return nil
}

// Callback returns the handler registered for key.
func (r *Registry) Callback(key string) (tele.HandlerFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.callbacks[key]
	return h, ok
}

// CallbackKeys returns registered callback keys, sorted.
func (r *Registry) CallbackKeys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.callbacks))
	for k := range r.callbacks {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SetCallbackNotFound replaces the handler for unknown callbacks. nil is ignored.
func (r *Registry) SetCallbackNotFound(h tele.HandlerFunc) {
	if h == nil {
		return
	}
	r.mu.Lock()
	r.callbackNotFound = h
	r.mu.Unlock()
}

// CallbackNotFound returns the handler for unknown callbacks.
func (r *Registry) CallbackNotFound() tele.HandlerFunc {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.callbackNotFound
}

// SetTextFallback sets the handler for messages nothing else claims.
func (r *Registry) SetTextFallback(h tele.HandlerFunc) {
	r.mu.Lock()
	r.textFallback = h
	r.mu.Unlock()
}

// TextFallback returns the handler for unclaimed messages, if any.
func (r *Registry) TextFallback() tele.HandlerFunc {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.textFallback
}

// InitBotCommands publishes the menu commands via setMyCommands.
func InitBotCommands(bot *tele.Bot, reg *Registry) {
	menu := reg.MenuCommands()
	if len(menu) == 0 {
		return
	}
	if err := bot.SetCommands(menu); err != nil {
		logger.TWire.LogAttrs(context.Background(), slog.LevelError, "register.commands.set_failed",
			slog.String("err", err.Error()),
		)
	}
}

func skip(event string, attrs ...slog.Attr) {
	logger.TWire.LogAttrs(context.Background(), slog.LevelWarn, event, attrs...)
}
