package sessioncache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/yomogi/ghostboard/internal/domain"
	"github.com/yomogi/ghostboard/internal/usecase"
)

const keyPrefix = "session:"

// Store keeps anonymous sessions in memcached with a TTL. A missing entry
// is not an error condition for callers; they fall back to "Ghost".
type Store struct {
	mc *memcache.Client
}

func NewStore(mc *memcache.Client) *Store {
	return &Store{mc: mc}
}

func (s *Store) Put(ctx context.Context, session domain.Session, ttl time.Duration) error {
	value, err := json.Marshal(session)
	if err != nil {
		return err
	}

	return s.mc.Set(&memcache.Item{
		Key:        keyPrefix + session.UserID,
		Value:      value,
		Expiration: int32(ttl.Seconds()),
	})
}

func (s *Store) Get(ctx context.Context, userID string) (domain.Session, error) {
	item, err := s.mc.Get(keyPrefix + userID)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return domain.Session{}, domain.NotFoundError{Resource: "session"}
	}
	if err != nil {
		return domain.Session{}, err
	}

	var session domain.Session
	if err := json.Unmarshal(item.Value, &session); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

var _ usecase.SessionStore = (*Store)(nil)
