package ordering

import (
	"sync"
	"time"
)

// Session ties a table to its checkout for the lifetime of a visit.
type Session struct {
	Table     string
	Checkout  *Checkout
	CreatedAt time.Time
	ExpiresAt time.Time
}

// SessionStore keeps one live session per table. Sessions expire after the
// configured ttl and are reaped in the background; an expired or abandoned
// session is replaced by a fresh one on the next table entry.
type SessionStore struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	ttl      time.Duration
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	store := &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}

	// Start cleanup goroutine
	go store.cleanup()

	return store
}

// Ensure returns the live session for a table, creating one with the given
// factory when none exists or the previous one expired or reached a
// terminal state.
func (s *SessionStore) Ensure(table string, create func() *Checkout) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[table]
	if ok && time.Now().Before(session.ExpiresAt) && !terminal(session.Checkout.State()) {
		return session
	}

	now := time.Now()
	session = &Session{
		Table:     table,
		Checkout:  create(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	s.sessions[table] = session
	return session
}

// Get returns the live session for a table, or nil when there is none.
func (s *SessionStore) Get(table string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[table]
	if !ok {
		return nil
	}
	if time.Now().After(session.ExpiresAt) {
		return nil
	}
	return session
}

func (s *SessionStore) Delete(table string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, table)
}

func (s *SessionStore) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		now := time.Now()
		for table, session := range s.sessions {
			if now.After(session.ExpiresAt) {
				session.Checkout.Abandon()
				delete(s.sessions, table)
			}
		}
		s.mu.Unlock()
	}
}

func terminal(state State) bool {
	return state == StateSettled || state == StateCancelled
}
