package driven

import (
	"context"
	"time"
)

// CacheStore is a namespaced key/value cache with per-entry TTL.
// Values are opaque bytes; the core stores JSON.
type CacheStore interface {
	// Get returns the value stored under key in namespace.
	// The boolean is false when the key is absent or expired.
	Get(ctx context.Context, namespace, key string) ([]byte, bool, error)

	// Set stores value under key, replacing any existing entry.
	// The entry expires ttl after it is written.
	Set(ctx context.Context, namespace, key string, value []byte, ttl time.Duration) error

	// Invalidate deletes every key in namespace whose key matches the
	// regular expression pattern. An empty pattern matches every key.
	// Returns the number of deleted entries.
	Invalidate(ctx context.Context, namespace, pattern string) (int, error)

	// Close releases resources.
	Close() error
}
