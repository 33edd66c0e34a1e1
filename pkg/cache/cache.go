// Package cache provides pluggable byte caches for remote dataset
// fetches.
//
// Computed layouts are never cached; a layout is a cheap pure function
// of its records and options. Caching exists only to avoid re-fetching
// remote datasets over HTTP. Backends:
//   - file: directory of hashed entries for CLI usage
//   - redis: shared cache for multi-instance service deployments
//   - mongo: document-store cache with server-side TTL expiry
//   - null: disabled caching for tests and --no-cache runs
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads under string keys with per-entry
// TTL. Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss;
	// expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources (connections, handles).
	Close() error
}
