package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mentora/internal/rag/schema"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "mentora:profile:"

// RedisStore keeps profiles in Redis with a TTL, so a profile disappears
// once its session has been idle long enough.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a RedisStore over an established connection.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Get returns the stored profile, or the default profile for a session
// that has none.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*schema.UserProfile, error) {
	raw, err := s.client.Get(ctx, keyPrefix+sessionID).Result()
	if err == redis.Nil {
		return schema.DefaultProfile(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read profile for session '%s': %w", sessionID, err)
	}

	var profile schema.UserProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, fmt.Errorf("cannot decode profile for session '%s': %w", sessionID, err)
	}
	return &profile, nil
}

// Save writes the profile and refreshes the session TTL.
func (s *RedisStore) Save(ctx context.Context, sessionID string, profile *schema.UserProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("cannot encode profile for session '%s': %w", sessionID, err)
	}
	if err := s.client.Set(ctx, keyPrefix+sessionID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("cannot save profile for session '%s': %w", sessionID, err)
	}
	return nil
}

// Delete removes the session's profile.
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("cannot delete profile for session '%s': %w", sessionID, err)
	}
	return nil
}

var _ ProfileStore = (*RedisStore)(nil)
