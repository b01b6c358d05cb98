package redis

import (
	"context"
	"sync"
	"time"

	"kanban-api/domain/ports"
)

// MemorySessionStore ใช้เมื่อไม่ได้ตั้ง REDIS_URL (instance เดียว / test)
type MemorySessionStore struct {
	mu      sync.Mutex
	states  map[string]time.Time
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		states:  make(map[string]time.Time),
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

var _ ports.SessionStore = (*MemorySessionStore)(nil)

func (s *MemorySessionStore) SaveOAuthState(_ context.Context, state string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state] = s.now().Add(ttl)
	return nil
}

func (s *MemorySessionStore) ConsumeOAuthState(_ context.Context, state string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.states[state]
	if !ok {
		return false, nil
	}
	delete(s.states, state)
	return s.now().Before(exp), nil
}

func (s *MemorySessionStore) RevokeToken(_ context.Context, token string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenKey(token)] = until
	s.sweep()
	return nil
}

func (s *MemorySessionStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.revoked[tokenKey(token)]
	return ok && s.now().Before(until), nil
}

// sweep ลบรายการที่หมดอายุแล้ว เรียกตอนถือ lock อยู่
func (s *MemorySessionStore) sweep() {
	now := s.now()
	for k, until := range s.revoked {
		if !now.Before(until) {
			delete(s.revoked, k)
		}
	}
	for k, exp := range s.states {
		if !now.Before(exp) {
			delete(s.states, k)
		}
	}
}
