package session

import (
	"errors"
	"sync"
	"time"

	"github.com/alexanderramin/incubator/internal/domain"
)

// ErrSessionNotFound indicates an operation referenced an id with no live session.
var ErrSessionNotFound = errors.New("session not found")

// Store is the in-memory table of active sessions keyed by student id.
// Contents are volatile and are lost when the process exits.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for creation timestamps and expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore creates an empty session store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		sessions: make(map[string]*domain.Session),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create inserts a fresh session in the default mode, replacing any session
// already stored under id.
func (s *Store) Create(id string) *domain.Session {
	return s.CreateWithMode(id, domain.DefaultMode)
}

// CreateWithMode is Create with an explicit mode.
func (s *Store) CreateWithMode(id string, mode domain.Mode) *domain.Session {
	if !mode.Valid() {
		mode = domain.DefaultMode
	}
	sess := &domain.Session{
		ID:        id,
		Mode:      mode,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	return sess.Clone()
}

// Get returns a copy of the session, or ErrSessionNotFound.
func (s *Store) Get(id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess.Clone(), nil
}

// GetOrCreate returns the session for id, creating it in mode when absent.
// The boolean reports whether a new session was created. An existing session
// keeps its mode.
func (s *Store) GetOrCreate(id string, mode domain.Mode) (*domain.Session, bool) {
	if !mode.Valid() {
		mode = domain.DefaultMode
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		return sess.Clone(), false
	}
	sess := &domain.Session{
		ID:        id,
		Mode:      mode,
		CreatedAt: s.now(),
	}
	s.sessions[id] = sess
	return sess.Clone(), true
}

// AppendTurn appends one turn to the session transcript.
func (s *Store) AppendTurn(id string, role domain.Role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	sess.Transcript = append(sess.Transcript, domain.Turn{Role: role, Content: content})
	return nil
}

// Advance moves the canvas cursor forward by one and returns the new value.
// The cursor is unbounded; readers apply the modulo.
func (s *Store) Advance(id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return 0, ErrSessionNotFound
	}
	sess.Progress++
	return sess.Progress, nil
}

// Delete removes a session. It reports whether one existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// SweepExpired removes every session created before now-ttl and returns how
// many were removed.
func (s *Store) SweepExpired(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.CreatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
