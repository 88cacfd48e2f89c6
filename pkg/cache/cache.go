// Package cache provides key-value caching for search and generation results.
//
// The Content Generator memoizes asset-search responses keyed by query
// string. Several backends are available:
//   - memory: Size-capped in-memory cache (default; evicts oldest entries)
//   - file: File-based cache for reuse across CLI invocations
//   - redis: Redis-backed cache for shared deployments
//   - null: No-op cache for tests or --no-cache runs
//
// All backends store opaque byte values with an optional TTL. Keys should be
// generated with [Key] so that arbitrary query strings map to safe,
// collision-resistant identifiers.
package cache

import (
	"context"
	"errors"
	"time"
)

// DefaultTTL is the cache lifetime used when no TTL is configured.
const DefaultTTL = 24 * time.Hour

// ErrNotFound is returned when a requested item does not exist.
var ErrNotFound = errors.New("not found")

// Cache is the interface implemented by all cache backends.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
