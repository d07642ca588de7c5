package redis

import (
	"context"
	"fmt"

	"mentora/internal/config"

	"github.com/go-redis/redis/v8"
)

// NewClient connects to the Redis instance described by cfg and verifies
// the connection with a ping.
func NewClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cannot connect to Redis: %w", err)
	}
	return rdb, nil
}

// HealthCheck verifies the Redis connection is alive.
func HealthCheck(ctx context.Context, client *redis.Client) error {
	if client == nil {
		return fmt.Errorf("redis client is not initialized")
	}
	return client.Ping(ctx).Err()
}
