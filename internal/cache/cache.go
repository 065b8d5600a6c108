package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrCacheNotAvailable = errors.New("cache not available")
	ErrCacheMiss         = errors.New("cache miss")
)

// UserCacheTTL bounds how stale a cached user record may get between writes.
const UserCacheTTL = 5 * time.Minute

// Helper wraps a redis client with JSON marshalling and a key prefix. A nil
// client degrades gracefully: writes become no-ops and reads miss.
type Helper struct {
	client *redis.Client
	prefix string
}

// NewHelper creates a cache helper; client may be nil when no cache is
// configured.
func NewHelper(client *redis.Client, prefix string) *Helper {
	return &Helper{client: client, prefix: prefix}
}

func (h *Helper) key(k string) string {
	return fmt.Sprintf("%s%s", h.prefix, k)
}

// Get retrieves and unmarshals a cached value into dest.
func (h *Helper) Get(ctx context.Context, key string, dest interface{}) error {
	if h.client == nil {
		return ErrCacheNotAvailable
	}

	data, err := h.client.Get(ctx, h.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("cache get: %w", err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("cache unmarshal: %w", err)
	}
	return nil
}

// Set marshals and stores a value with the given TTL.
func (h *Helper) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if h.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	return h.client.Set(ctx, h.key(key), data, ttl).Err()
}

// Delete removes one or more keys.
func (h *Helper) Delete(ctx context.Context, keys ...string) error {
	if h.client == nil || len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = h.key(k)
	}
	return h.client.Del(ctx, prefixed...).Err()
}
