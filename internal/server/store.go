package server

import (
	"errors"
	"sync"

	"github.com/talentscout/screener/internal/interview"
)

// ErrSessionNotFound is returned when the requested session id is unknown.
var ErrSessionNotFound = errors.New("session not found")

// entry pairs a session with its turn lock. Turns of one session are strictly
// sequential; independent sessions share no mutable state.
type entry struct {
	mu      sync.Mutex
	session *interview.Session
}

// Store keeps live sessions in process memory, addressable by id. Candidate
// data is deliberately not persisted anywhere.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{entries: make(map[string]*entry)}
}

// Create registers a fresh session and returns it.
func (s *Store) Create() *interview.Session {
	session := interview.NewSession()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[session.ID] = &entry{session: session}

	return session
}

// Delete drops the session with the given id.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.entries, id)
	return nil
}

// WithSession runs fn while holding the session's lock. Turns of one session
// are strictly sequential, and reads take the same lock so a projection never
// observes a turn mid-mutation.
func (s *Store) WithSession(id string, fn func(*interview.Session)) error {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok {
		return ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.session)
	return nil
}
