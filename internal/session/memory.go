package session

import (
	"context"
	"sync"

	"mentora/internal/rag/schema"
)

// InMemoryStore is a thread-safe, in-memory ProfileStore. It backs tests
// and single-process deployments that run without Redis.
type InMemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]*schema.UserProfile
}

// NewInMemoryStore creates an empty InMemoryStore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{profiles: make(map[string]*schema.UserProfile)}
}

// Get returns the stored profile, or the default profile for a session
// that has none.
func (s *InMemoryStore) Get(ctx context.Context, sessionID string) (*schema.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if profile, ok := s.profiles[sessionID]; ok {
		clone := *profile
		clone.Difficulties = append([]string(nil), profile.Difficulties...)
		return &clone, nil
	}
	return schema.DefaultProfile(), nil
}

// Save stores the profile for the session.
func (s *InMemoryStore) Save(ctx context.Context, sessionID string, profile *schema.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *profile
	clone.Difficulties = append([]string(nil), profile.Difficulties...)
	s.profiles[sessionID] = &clone
	return nil
}

// Delete removes the session's profile.
func (s *InMemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.profiles, sessionID)
	return nil
}

var _ ProfileStore = (*InMemoryStore)(nil)
