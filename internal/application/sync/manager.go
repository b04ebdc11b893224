package sync

import (
	"context"
	stdsync "sync"
	"time"

	"github.com/google/uuid"

	"github.com/weight-tracker/backend/internal/application/adapter"
)

// Session pairs the two controllers for one user. The controllers operate on
// independent keys and make no assumption about each other's completion
// order.
type Session struct {
	Goal    *GoalController
	Entries *EntryController
}

// WaitReady blocks until both controllers have settled or the context is
// done. Liveness is guaranteed by the goal controller's safety-net timer and
// the store's server-confirmation pass.
func (s *Session) WaitReady(ctx context.Context) error {
	if err := s.Goal.WaitReady(ctx); err != nil {
		return err
	}
	return s.Entries.WaitReady(ctx)
}

// Manager hands out per-user controller sessions, creating and activating
// them on demand and tearing them down on shutdown.
type Manager struct {
	store          adapter.DocumentStore
	safetyNetDelay time.Duration

	mu       stdsync.Mutex
	sessions map[uuid.UUID]*Session
}

// NewManager creates a session manager over the given store.
func NewManager(store adapter.DocumentStore, safetyNetDelay time.Duration) *Manager {
	return &Manager{
		store:          store,
		safetyNetDelay: safetyNetDelay,
		sessions:       make(map[uuid.UUID]*Session),
	}
}

// Session returns the session for the given user, activating controllers on
// first use.
func (m *Manager) Session(userID uuid.UUID) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[userID]; ok {
		return s
	}

	s := &Session{
		Goal:    NewGoalController(m.store, m.safetyNetDelay),
		Entries: NewEntryController(m.store),
	}
	s.Goal.Activate(userID)
	s.Entries.Activate(userID)
	m.sessions[userID] = s
	return s
}

// CloseUser tears down the session for one user, cancelling its
// subscriptions and timers.
func (m *Manager) CloseUser(userID uuid.UUID) {
	m.mu.Lock()
	s, ok := m.sessions[userID]
	if ok {
		delete(m.sessions, userID)
	}
	m.mu.Unlock()

	if ok {
		s.Goal.Close()
		s.Entries.Close()
	}
}

// Close tears down every session.
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[uuid.UUID]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Goal.Close()
		s.Entries.Close()
	}
}
