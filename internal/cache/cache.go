package cache

import (
	"context"
	"time"
)

// Store is a TTL key-value store used for short-lived rate-limit state
// (robbery cooldowns, victim protection flags). Expiry is an explicit
// timestamp checked on read, never a fire-once timer, so state behaves the
// same whether it lives in memory or in Redis.
type Store interface {
	// Get retrieves a value by key. Returns ErrMiss if absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Exists reports whether a key is present and not expired.
	Exists(ctx context.Context, key string) (bool, error)

	// TTL returns the remaining lifetime of a key. Returns ErrMiss if the
	// key is absent or expired.
	TTL(ctx context.Context, key string) (time.Duration, error)

	// Close releases backend resources.
	Close() error
}

type storeError string

func (e storeError) Error() string { return string(e) }

// ErrMiss indicates the key was not found or has expired.
const ErrMiss storeError = "cache miss"
