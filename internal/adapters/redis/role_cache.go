// Package redis provides a Redis-backed cache so multiple service instances
// share derived role data.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RoleCache implements core.Cache on Redis. Expiry is handled by Redis TTLs;
// capacity is bounded by the server's eviction policy rather than a fixed
// entry count.
type RoleCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRoleCache creates a Redis-backed cache. All keys are stored under the
// given prefix and expire after ttl.
func NewRoleCache(client redis.UniversalClient, prefix string, ttl time.Duration) *RoleCache {
	if prefix == "" {
		prefix = "tobira-auth:"
	}
	return &RoleCache{client: client, prefix: prefix, ttl: ttl}
}

// Get retrieves a cached value. A missing or expired key is a plain miss.
func (c *RoleCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, errors.New("key cannot be empty")
	}

	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return data, true, nil
}

// Set stores a value with the cache TTL.
func (c *RoleCache) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	return c.client.Set(ctx, c.prefix+key, value, c.ttl).Err()
}

// Health checks the Redis connection.
func (c *RoleCache) Health(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
