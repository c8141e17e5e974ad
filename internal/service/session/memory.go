package session

import (
	"context"
	"sync"
	"time"

	"github.com/I-am-Milind/backend-ai/internal/core"
)

type state struct {
	history []core.Message
	persona string
	touched time.Time
}

// Memory keeps sessions in process. Contents are lost on restart.
// With a TTL, sessions idle for longer than it are dropped.
type Memory struct {
	mu        sync.Mutex
	window    int
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
	sessions  map[string]*state
}

func NewMemory(window int) *Memory {
	return &Memory{
		window:   window,
		now:      time.Now,
		sessions: make(map[string]*state),
	}
}

// WithTTL sets the idle lifetime of a session; zero keeps sessions forever.
func (m *Memory) WithTTL(ttl time.Duration) *Memory {
	m.ttl = ttl
	return m
}

// WithClock replaces the time source used for expiry.
func (m *Memory) WithClock(now func() time.Time) *Memory {
	m.now = now
	return m
}

func (m *Memory) expired(s *state, now time.Time) bool {
	return m.ttl > 0 && now.Sub(s.touched) > m.ttl
}

// lookup returns a live session, dropping it if it has been idle too long.
func (m *Memory) lookup(sessionID string, now time.Time) (*state, bool) {
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, false
	}
	if m.expired(s, now) {
		delete(m.sessions, sessionID)
		return nil, false
	}
	return s, true
}

// sweep evicts idle sessions at most once per TTL period.
func (m *Memory) sweep(now time.Time) {
	if m.ttl <= 0 || now.Sub(m.lastSweep) < m.ttl {
		return
	}
	m.lastSweep = now
	for id, s := range m.sessions {
		if m.expired(s, now) {
			delete(m.sessions, id)
		}
	}
}

func (m *Memory) get(sessionID string) *state {
	now := m.now()
	m.sweep(now)

	s, ok := m.lookup(sessionID, now)
	if !ok {
		s = &state{}
		m.sessions[sessionID] = s
	}
	s.touched = now
	return s
}

func (m *Memory) History(_ context.Context, sessionID string) ([]core.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.lookup(sessionID, m.now())
	if !ok {
		return nil, nil
	}
	out := make([]core.Message, len(s.history))
	copy(out, s.history)
	return out, nil
}

func (m *Memory) Append(_ context.Context, sessionID string, msgs ...core.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.get(sessionID)
	s.history = append(s.history, msgs...)
	if m.window > 0 && len(s.history) > m.window {
		s.history = append([]core.Message(nil), s.history[len(s.history)-m.window:]...)
	}
	return nil
}

func (m *Memory) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.lookup(sessionID, m.now()); ok {
		s.history = nil
	}
	return nil
}

func (m *Memory) Persona(_ context.Context, sessionID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.lookup(sessionID, m.now()); ok {
		return s.persona, nil
	}
	return "", nil
}

func (m *Memory) SetPersona(_ context.Context, sessionID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.get(sessionID).persona = name
	return nil
}

// Len reports how many sessions are currently held.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Memory) Close() error { return nil }
