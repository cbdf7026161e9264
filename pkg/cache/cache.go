// Package cache provides pluggable caching of layout results.
//
// Layout computation is deterministic, so an enhanced spec can be cached
// under a hash of its input. Three backends exist: a file cache for CLI
// usage, a Redis cache for server deployments, and a null cache that
// disables caching entirely.
package cache

import (
	"context"
	"time"
)

// Cache is the minimal byte-oriented caching interface.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was found; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
