package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in a process-local map. Contents are lost on
// restart, which matches the single-instance deployment this serves.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

func (s *MemoryStore) Get(ctx context.Context, tokenHash string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[tokenHash]
	if !ok {
		return nil, nil
	}
	copied := *sess
	return &copied, nil
}

func (s *MemoryStore) Save(ctx context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *sess
	s.sessions[sess.TokenHash] = &copied
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, tokenHash)
	return nil
}

func (s *MemoryStore) DeleteByUsername(ctx context.Context, username string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for hash, sess := range s.sessions {
		if sess.Username == username {
			delete(s.sessions, hash)
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) DeleteExpired(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var count int64
	for hash, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, hash)
			count++
		}
	}
	return count, nil
}
