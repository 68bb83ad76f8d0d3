package conversation

import (
	"context"
	"sync"
	"time"
)

// MemorySessionStore keeps sessions in process memory, evicting entries
// that sit idle past the timeout.
type MemorySessionStore struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	idleTimeout time.Duration
	now         func() time.Time
}

// NewMemorySessionStore creates an in-memory session store.
func NewMemorySessionStore(idleTimeout time.Duration) *MemorySessionStore {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	return &MemorySessionStore{
		sessions:    make(map[string]*Session),
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

var _ SessionStore = (*MemorySessionStore)(nil)

func (s *MemorySessionStore) expired(sess *Session) bool {
	return s.now().Sub(sess.UpdatedAt) > s.idleTimeout
}

func (s *MemorySessionStore) Get(ctx context.Context, phone string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[phone]
	if !ok {
		return nil, nil
	}
	if s.expired(sess) {
		delete(s.sessions, phone)
		return nil, nil
	}
	cp := *sess
	return &cp, nil
}

func (s *MemorySessionStore) Save(ctx context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *session
	s.sessions[session.Phone] = &cp
	return nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, phone)
	return nil
}

func (s *MemorySessionStore) ActiveCount(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Sweep expired entries so the count reflects live sessions only.
	for phone, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, phone)
		}
	}
	return len(s.sessions), nil
}
