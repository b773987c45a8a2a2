package study

import (
	"fmt"
	"sync"
)

// Manager hosts the active study sessions, one per user and set. Starting
// a session for a pair that already has one replaces it.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

func key(userID, setID uint) string {
	return fmt.Sprintf("%d:%d", userID, setID)
}

func (m *Manager) Start(cfg Config) *Session {
	s := NewSession(cfg)
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.sessions[key(cfg.UserID, cfg.SetID)]; ok {
		old.Close()
	}
	m.sessions[key(cfg.UserID, cfg.SetID)] = s
	return s
}

func (m *Manager) Get(userID, setID uint) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[key(userID, setID)]
	return s, ok
}

func (m *Manager) Remove(userID, setID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[key(userID, setID)]; ok {
		s.Close()
		delete(m.sessions, key(userID, setID))
	}
}
