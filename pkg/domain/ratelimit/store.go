package ratelimit

import (
	"context"
	"time"
)

// Entry is a stored value together with the time it has left to live.
type Entry struct {
	Value string
	TTL   time.Duration
}

// Store is the shared keyed counter store every limiter instance talks to.
// All correctness under concurrency comes from the atomicity of
// IncrementWithTTL; implementations must not rely on callers for locking.
type Store interface {
	// IncrementWithTTL atomically adds one to key, (re)sets its TTL and
	// returns the post-increment value.
	IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	// GetWithTTL returns nil when the key is absent or expired.
	GetWithTTL(ctx context.Context, key string) (*Entry, error)
	PutIfAbsentWithTTL(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	Put(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
