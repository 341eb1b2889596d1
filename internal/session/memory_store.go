package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is the fallback when Redis is unavailable. Sessions live in
// process memory, which matches the single-process deployment model; they
// are lost on restart.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
}

type memorySession struct {
	ident     Identity
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memorySession)}
}

func (s *MemoryStore) Create(_ context.Context, ident Identity, ttl time.Duration) (string, error) {
	sid := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sid] = memorySession{ident: ident, expiresAt: time.Now().Add(ttl)}
	return sid, nil
}

func (s *MemoryStore) Get(_ context.Context, sid string) (Identity, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sid]
	if !ok {
		return Identity{}, false, nil
	}
	if time.Now().After(sess.expiresAt) {
		delete(s.sessions, sid)
		return Identity{}, false, nil
	}
	return sess.ident, true, nil
}

func (s *MemoryStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}
