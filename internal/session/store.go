// ABOUTME: In-memory concurrent session store
// ABOUTME: RWMutex-guarded map keyed by session id

package session

import (
	"errors"
	"sync"
)

// ErrNotFound is returned when a session id is not in the store.
var ErrNotFound = errors.New("session not found")

// Store holds sessions in memory, safe for concurrent use. Reads
// return copies so callers can mutate them freely before writing
// back through Update.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create adds a new session, seeded with a system message when
// systemPrompt is non-empty, and returns a copy of it.
func (s *Store) Create(systemPrompt string) *Session {
	return s.CreateWithTitle("", systemPrompt)
}

// CreateWithTitle adds a new session with the given title.
func (s *Store) CreateWithTitle(title, systemPrompt string) *Session {
	var sess *Session
	if systemPrompt != "" {
		sess = NewWithSystemPrompt(systemPrompt)
	} else {
		sess = New()
	}
	sess.Title = title

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess.clone()
}

// Get returns a copy of the session with the given id.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess.clone(), nil
}

// Update replaces an existing session. It never inserts: updating an
// id that is not present returns ErrNotFound.
func (s *Store) Update(sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sess.ID]; !ok {
		return ErrNotFound
	}
	s.sessions[sess.ID] = sess.clone()
	return nil
}

// Delete removes a session and returns its prior value.
func (s *Store) Delete(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(s.sessions, id)
	return sess, nil
}

// List returns copies of all sessions in unspecified order.
func (s *Store) List() []*Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess.clone())
	}
	return out
}

// AddMessage appends a turn to an existing session.
func (s *Store) AddMessage(id string, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	sess.AddMessage(msg)
	return nil
}

// GetOrCreate returns the session with the given id, or creates a new
// one when it is missing. The created session gets its own fresh id,
// not the requested one, so callers must use the returned session's
// id for later operations.
func (s *Store) GetOrCreate(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		return sess.clone()
	}
	sess := New()
	s.sessions[sess.ID] = sess
	return sess.clone()
}

// Exists reports whether the id is in the store.
func (s *Store) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.sessions[id]
	return ok
}

// Count returns the number of stored sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

// Clear removes all sessions.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = make(map[string]*Session)
}

func (s *Session) clone() *Session {
	out := *s
	if s.Messages != nil {
		out.Messages = make([]Message, len(s.Messages))
		copy(out.Messages, s.Messages)
	}
	if s.Metadata != nil {
		out.Metadata = make(map[string]any, len(s.Metadata))
		for k, v := range s.Metadata {
			out.Metadata[k] = v
		}
	}
	return &out
}
