package router

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	tg "github.com/m3rciful/summerday/core/telegram"
	"github.com/m3rciful/summerday/core/telegram/commands"
)

type routeContext struct {
	tele.Context
	update    tele.Update
	store     map[string]any
	responded int
}

func newRouteContext(u tele.Update) *routeContext {
	return &routeContext{update: u, store: map[string]any{}}
}

func (r *routeContext) Update() tele.Update { return r.update }
func (r *routeContext) Callback() *tele.Callback { return r.update.Callback }
func (r *routeContext) Query() *tele.Query { return r.update.Query }
func (r *routeContext) Get(k string) any { return r.store[k] }
func (r *routeContext) Set(k string, v any) { r.store[k] = v }
func (r *routeContext) Respond(...*tele.CallbackResponse) error {
	r.responded++
	return nil
}

func (r *routeContext) Text() string {
	if r.update.Message != nil {
		return r.update.Message.Text
	}
	return ""
}

func (r *routeContext) Sender() *tele.User {
	switch {
	case r.update.Callback != nil:
		return r.update.Callback.Sender
	case r.update.Query != nil:
		return r.update.Query.Sender
	case r.update.Message != nil:
		return r.update.Message.Sender
	}
	return nil
}

func (r *routeContext) Chat() *tele.Chat {
	if r.update.Message != nil {
		return r.update.Message.Chat
	}
	return nil
}

func textUpdate(user int64, text string) tele.Update {
	return tele.Update{ID: 3, Message: &tele.Message{
		Text:   text,
		Sender: &tele.User{ID: user},
		Chat:   &tele.Chat{ID: user},
	}}
}

type fakeFSM struct {
	active map[int64]bool
	calls  int
}

func (f *fakeFSM) InProgress(id int64) bool { return f.active[id] }
func (f *fakeFSM) ManagerHandler(tele.Context) error {
	f.calls++
	return nil
}

func TestCallbackRouteDispatchesByUnique(t *testing.T) {
	reg := tg.NewRegistry()
	var payload string
	require.NoError(t, reg.RegisterCallback("tz", func(c tele.Context) error {
		payload = c.Callback().Data
		return nil
	}))
	route := CallbackRoute(reg)
	assert.Equal(t, tele.OnCallback, route.Endpoint)

	c := newRouteContext(tele.Update{ID: 1, Callback: &tele.Callback{
		Data:   "\ftz|-5",
		Sender: &tele.User{ID: 8},
	}})
	require.NoError(t, route.Handler(c))
	assert.Equal(t, "\ftz|-5", payload)
	assert.Equal(t, 1, c.responded)
}

func TestCallbackRouteUnknownKeyUsesFallback(t *testing.T) {
	reg := tg.NewRegistry()
	var fell bool
	reg.SetCallbackNotFound(func(tele.Context) error { fell = true; return nil })
	c := newRouteContext(tele.Update{ID: 2, Callback: &tele.Callback{Data: "\fnope|1", Sender: &tele.User{ID: 8}}})
	require.NoError(t, CallbackRoute(reg).Handler(c))
	assert.True(t, fell)
}

func TestMessageRoutesPreferFSM(t *testing.T) {
	fsm := &fakeFSM{active: map[int64]bool{1: true}}
	reg := tg.NewRegistry()
	var fallback int
	reg.SetTextFallback(func(tele.Context) error { fallback++; return nil })

	routes := MessageRoutes(fsm, reg, MessageOptions{})
	require.Len(t, routes, 7)
	text, media := routes[0], routes[1]
	assert.Equal(t, tele.OnText, text.Endpoint)
	assert.Equal(t, tele.OnMedia, media.Endpoint)

	require.NoError(t, text.Handler(newRouteContext(textUpdate(1, "hello"))))
	require.NoError(t, media.Handler(newRouteContext(textUpdate(1, ""))))
	assert.Equal(t, 2, fsm.calls)

	require.NoError(t, text.Handler(newRouteContext(textUpdate(2, "hello"))))
	require.NoError(t, media.Handler(newRouteContext(textUpdate(2, ""))))
	assert.Equal(t, 2, fallback)
}

func TestMessageRoutesCoverNonTextMessages(t *testing.T) {
	reg := tg.NewRegistry()
	var fallback int
	reg.SetTextFallback(func(tele.Context) error { fallback++; return nil })

	routes := MessageRoutes(nil, reg, MessageOptions{})
	endpoints := map[any]tele.HandlerFunc{}
	for _, r := range routes {
		endpoints[r.Endpoint] = r.Handler
	}
	for _, ep := range []string{tele.OnText, tele.OnMedia, tele.OnLocation, tele.OnContact, tele.OnDice, tele.OnPoll, tele.OnVenue} {
		h, ok := endpoints[ep]
		require.True(t, ok, ep)
		require.NoError(t, h(newRouteContext(textUpdate(3, ""))))
	}
	assert.Equal(t, 7, fallback)
}

func TestMessageRoutesLookupCommand(t *testing.T) {
	reg := tg.NewRegistry()
	var started int
	require.NoError(t, reg.RegisterCommand("/start", commands.Command{
		Handler:     func(tele.Context) error { started++; return nil },
		Description: "start",
	}))
	routes := MessageRoutes(nil, reg, MessageOptions{})
	require.NoError(t, routes[0].Handler(newRouteContext(textUpdate(2, "/start@summer_bot"))))
	assert.Equal(t, 1, started)
}

func TestMessageRoutesIgnoredWithoutFallback(t *testing.T) {
	routes := MessageRoutes(nil, nil, MessageOptions{})
	assert.NoError(t, routes[0].Handler(newRouteContext(textUpdate(2, "x"))))
}

func TestQueryRoute(t *testing.T) {
	boom := errors.New("boom")
	var seen string
	route := QueryRoute(func(c tele.Context) error {
		seen = c.Query().Text
		return boom
	})
	assert.Equal(t, tele.OnQuery, route.Endpoint)
	c := newRouteContext(tele.Update{ID: 4, Query: &tele.Query{Text: "summer", Sender: &tele.User{ID: 1}}})
	assert.ErrorIs(t, route.Handler(c), boom)
	assert.Equal(t, "summer", seen)
}

func TestCommandRoutesAdminOnly(t *testing.T) {
	reg := tg.NewRegistry()
	var ran, rejected int
	require.NoError(t, reg.RegisterCommand("/collect", commands.Command{
		Handler:   func(tele.Context) error { ran++; return nil },
		AdminOnly: true,
	}))
	routes := CommandRoutes(reg, CommandRouteOptions{
		AdminID:       100,
		OnAdminReject: func(tele.Context) error { rejected++; return nil },
	})
	require.Len(t, routes, 1)
	assert.Equal(t, "/collect", routes[0].Endpoint)

	require.NoError(t, routes[0].Handler(newRouteContext(textUpdate(5, "/collect"))))
	require.NoError(t, routes[0].Handler(newRouteContext(textUpdate(100, "/collect"))))
	assert.Equal(t, 1, ran)
	assert.Equal(t, 1, rejected)
}

func TestHandleIgnored(t *testing.T) {
	c := newRouteContext(textUpdate(1, "x"))
	assert.NoError(t, handle(c, "noop", func() error { return ErrIgnored }))
	assert.Equal(t, "callback.tz", handlerName("callback", "TZ"))
	assert.Equal(t, "start", handlerName("", "/start"))
	assert.Equal(t, "TG_400", errorCode(tele.ErrMessageNotModified))
}
