package session

import (
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown session IDs.
var ErrSessionNotFound = errors.New("session not found")

// Manager keeps the live sessions in memory. When the limit is reached the
// oldest session is evicted to make room.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	order    []string
	limit    int
}

// NewManager creates a Manager holding at most limit sessions (limit <= 0
// means unbounded).
func NewManager(limit int) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		limit:    limit,
	}
}

// Create starts a new session with a fresh ID.
func (m *Manager) Create() *Session {
	s := New(uuid.New().String())

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.limit > 0 && len(m.sessions) >= m.limit {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.sessions, oldest)
		log.Printf("Info: session limit %d reached, evicted session %s", m.limit, oldest)
	}
	m.sessions[s.ID] = s
	m.order = append(m.order, s.ID)
	return s
}

// Get returns the session with the given ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete ends a session.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
