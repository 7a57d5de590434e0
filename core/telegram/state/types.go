// Package state keeps per-user conversation state for multi-step dialogs.
package state

import tele "gopkg.in/telebot.v4"

// State names a dialog step.
type State string

// StateIdle means no dialog is in progress.
const StateIdle State = "idle"

// Session is one user's dialog state plus scratch data.
type Session struct {
	State    State
	TempData map[string]any
}

// Manager stores sessions and dispatches updates to the handler registered
// for the user's current state.
type Manager interface {
	SetState(userID int64, st State)
	GetState(userID int64) State
	InProgress(userID int64) bool

	SetTemp(userID int64, key string, value any)
	GetTemp(userID int64, key string) (any, bool)
	Clear(userID int64)

	Handle(st State, h tele.HandlerFunc)
	ManagerHandler(c tele.Context) error
}
