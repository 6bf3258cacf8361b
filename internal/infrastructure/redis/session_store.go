// Package redis holds the Redis-backed adapters used in real deployments,
// where wizard sessions must survive restarts and be visible to every
// replica.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/cloud4wi/signup-service/internal/domain"
)

// SessionStore keeps one JSON document per wizard session:
// - signup:sess:<id> -> serialized domain.Session, with TTL
// Every Save rewrites the document and resets the TTL, so a session stays
// alive as long as the user keeps progressing.
type SessionStore struct {
	rdb *goredis.Client

	prefix string
	ttl    time.Duration
}

func NewSessionStore(c *Client, ttl time.Duration) *SessionStore {
	var rdb *goredis.Client
	if c != nil {
		rdb = c.rdb
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionStore{
		rdb:    rdb,
		prefix: "signup:sess:",
		ttl:    ttl,
	}
}

func (s *SessionStore) Create(ctx context.Context, sess domain.Session) error {
	return s.put(ctx, sess)
}

func (s *SessionStore) Get(ctx context.Context, id string) (domain.Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Session{}, domain.ErrSessionNotFound()
	}
	if s.rdb == nil {
		return domain.Session{}, domain.ErrSessionStoreUnavailable(errors.New("redis session store not configured"))
	}

	raw, err := s.rdb.Get(ctx, s.prefix+id).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return domain.Session{}, domain.ErrSessionNotFound()
		}
		return domain.Session{}, domain.ErrSessionStoreUnavailable(err)
	}

	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		// corrupted document; treat as expired rather than wedging the wizard
		_ = s.rdb.Del(ctx, s.prefix+id).Err()
		return domain.Session{}, domain.ErrSessionNotFound()
	}
	return sess, nil
}

func (s *SessionStore) Save(ctx context.Context, sess domain.Session) error {
	return s.put(ctx, sess)
}

func (s *SessionStore) put(ctx context.Context, sess domain.Session) error {
	if s.rdb == nil {
		return domain.ErrSessionStoreUnavailable(errors.New("redis session store not configured"))
	}

	raw, err := json.Marshal(sess)
	if err != nil {
		return domain.ErrSessionStoreUnavailable(err)
	}
	if err := s.rdb.Set(ctx, s.prefix+sess.ID, raw, s.ttl).Err(); err != nil {
		return domain.ErrSessionStoreUnavailable(err)
	}
	return nil
}
