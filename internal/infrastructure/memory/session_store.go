// Package memory holds in-process adapters used when Redis is not
// configured. Good for local development and tests; state is lost on
// restart and not shared across replicas.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cloud4wi/signup-service/internal/domain"
)

type sessionEntry struct {
	sess      domain.Session
	expiresAt time.Time
}

type SessionStore struct {
	mu  sync.RWMutex
	ttl time.Duration
	// session id -> entry
	byID map[string]sessionEntry

	now func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionStore{
		ttl:  ttl,
		byID: make(map[string]sessionEntry),
		now:  time.Now,
	}
}

func (s *SessionStore) Create(ctx context.Context, sess domain.Session) error {
	return s.put(sess)
}

func (s *SessionStore) Get(ctx context.Context, id string) (domain.Session, error) {
	s.mu.RLock()
	entry, ok := s.byID[id]
	s.mu.RUnlock()

	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound()
	}
	if s.now().After(entry.expiresAt) {
		// lazy expiry; a sweep goroutine is not worth it at this scale
		s.mu.Lock()
		delete(s.byID, id)
		s.mu.Unlock()
		return domain.Session{}, domain.ErrSessionNotFound()
	}
	return entry.sess, nil
}

// Save refreshes the TTL: as long as the user keeps moving through the
// wizard, the session stays alive.
func (s *SessionStore) Save(ctx context.Context, sess domain.Session) error {
	return s.put(sess)
}

func (s *SessionStore) put(sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[sess.ID] = sessionEntry{
		sess:      sess,
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}
