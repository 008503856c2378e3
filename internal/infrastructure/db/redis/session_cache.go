package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// maxCacheTTL caps how long a verification result is served without
// re-reading the session store.
const maxCacheTTL = 5 * time.Minute

// SessionCache is the fast path for session verification, mapping a token
// to its user id. Entries never outlive the session itself.
// Key format: session:<token>
type SessionCache struct {
	client *redis.Client
}

// NewSessionCache creates a SessionCache wrapping the given Redis client.
func NewSessionCache(client *redis.Client) *SessionCache {
	return &SessionCache{client: client}
}

// Get returns the cached user id for a token, and whether it was present.
func (c *SessionCache) Get(ctx context.Context, token string) (int, bool, error) {
	val, err := c.client.Get(ctx, c.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("session cache get: %w", err)
	}

	id, err := strconv.Atoi(val)
	if err != nil {
		// Unreadable entry: treat as a miss so the store is re-consulted.
		return 0, false, nil
	}
	return id, true, nil
}

// Put caches a verified token. ttl is the session's remaining lifetime and
// bounds the entry; shorter of ttl and maxCacheTTL wins.
func (c *SessionCache) Put(ctx context.Context, token string, userID int, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if ttl > maxCacheTTL {
		ttl = maxCacheTTL
	}
	return c.client.Set(ctx, c.key(token), strconv.Itoa(userID), ttl).Err()
}

// Delete drops a token's cache entry. Used on logout so a revoked session
// cannot be served from the cache.
func (c *SessionCache) Delete(ctx context.Context, token string) error {
	return c.client.Del(ctx, c.key(token)).Err()
}

func (c *SessionCache) key(token string) string {
	return "session:" + token
}
