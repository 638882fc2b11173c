package sessioncache

import (
	"context"
	"sync"
	"time"

	"github.com/yomogi/ghostboard/internal/domain"
	"github.com/yomogi/ghostboard/internal/usecase"
)

// MemoryStore is the fallback session store for deployments without
// memcached. Entries expire lazily on read.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	session   domain.Session
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Put(ctx context.Context, session domain.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.UserID] = memoryEntry{
		session:   session,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, userID string) (domain.Session, error) {
	s.mu.RLock()
	entry, ok := s.sessions[userID]
	s.mu.RUnlock()

	if !ok {
		return domain.Session{}, domain.NotFoundError{Resource: "session"}
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, userID)
		s.mu.Unlock()
		return domain.Session{}, domain.NotFoundError{Resource: "session"}
	}

	return entry.session, nil
}

var _ usecase.SessionStore = (*MemoryStore)(nil)
