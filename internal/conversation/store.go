package conversation

import (
	"context"
	"sync"
)

// SessionStore is the keyed store mapping session ids to sessions. It is
// shared mutable state touched by many concurrent request handlers, so
// implementations must be safe for concurrent use. Turns for the same
// session id are not expected to overlap; if they do, last write wins.
type SessionStore interface {
	// Get returns the session and whether it exists.
	Get(ctx context.Context, id string) (Session, bool, error)
	// Put stores the session, replacing any previous value.
	Put(ctx context.Context, sess Session) error
}

// MemorySessionStore keeps sessions in process memory. Sessions live for
// the process lifetime; eviction is left to the deployment.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemorySessionStore creates an empty in-process session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]Session)}
}

// Get returns the stored session for the id.
func (s *MemorySessionStore) Get(ctx context.Context, id string) (Session, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	return sess, ok, nil
}

// Put stores the session.
func (s *MemorySessionStore) Put(ctx context.Context, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.ID] = sess
	return nil
}
