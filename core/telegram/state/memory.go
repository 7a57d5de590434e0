package state

import (
	"log/slog"
	"sync"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/summerday/core/logger"
	tghelpers "github.com/m3rciful/summerday/core/telegram/helpers"
)

type memoryManager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	handlers map[State]tele.HandlerFunc
}

// NewMemoryManager returns a Manager that keeps sessions in process memory.
func NewMemoryManager() Manager {
	return &memoryManager{
		sessions: make(map[int64]*Session),
		handlers: make(map[State]tele.HandlerFunc),
	}
}

// session returns the user's session, creating it. Callers hold mu.
func (m *memoryManager) session(userID int64) *Session {
	s, ok := m.sessions[userID]
	if !ok {
		s = &Session{State: StateIdle, TempData: make(map[string]any)}
		m.sessions[userID] = s
	}
	return s
}

func (m *memoryManager) SetState(userID int64, st State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session(userID).State = st
}

func (m *memoryManager) GetState(userID int64) State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[userID]; ok {
		return s.State
	}
	return StateIdle
}

func (m *memoryManager) InProgress(userID int64) bool {
	return m.GetState(userID) != StateIdle
}

func (m *memoryManager) SetTemp(userID int64, key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session(userID).TempData[key] = value
}

func (m *memoryManager) GetTemp(userID int64, key string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[userID]
	if !ok {
		return nil, false
	}
	v, ok := s.TempData[key]
	return v, ok
}

// Clear drops the whole session.
func (m *memoryManager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// Handle registers h for updates from users in state st. nil is ignored.
func (m *memoryManager) Handle(st State, h tele.HandlerFunc) {
	if h == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[st] = h
}

func (m *memoryManager) ManagerHandler(c tele.Context) error {
	userID := tghelpers.SenderID(c)
	current := m.GetState(userID)

	m.mu.RLock()
	h, ok := m.handlers[current]
	m.mu.RUnlock()

	logger.Debug(tghelpers.BuildContext(c), "tg", "fsm.dispatch",
		slog.String("state", string(current)),
		slog.Bool("handled", ok),
	)
	if !ok {
		return nil
	}
	return h(c)
}
