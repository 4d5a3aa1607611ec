// Package cache provides byte caches for fetched asset data.
//
// Remote item images are fetched over HTTP at render time. Caching the raw
// bytes keeps repeated renders of the same container off the network.
// Three backends implement [Cache]:
//
//   - [FileCache]: entries as JSON files under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (server deployments)
//   - [NullCache]: never stores anything (--no-cache)
//
// Keys are built with a [Keyer] so every backend sees the same key space.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values with a TTL.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// TTLAsset is the default lifetime of a fetched asset.
const TTLAsset = 24 * time.Hour
