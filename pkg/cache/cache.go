// Package cache stores parse results, layouts and rendered artifacts.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: JSON entry files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for API deployments
//   - [NewNullCache]: stores nothing, for --no-cache and tests
//
// Keys come from a [Keyer], so the same inputs map to the same key across
// processes and backends.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. Expired
	// entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Default entry lifetimes.
const (
	TTLParse    = 7 * 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// NewNullCache returns a Cache that stores nothing. Every Get misses.
func NewNullCache() Cache {
	return nullCache{}
}

type nullCache struct{}

func (nullCache) Get(context.Context, string) ([]byte, bool, error)          { return nil, false, nil }
func (nullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (nullCache) Delete(context.Context, string) error                      { return nil }
func (nullCache) Close() error                                              { return nil }

// Key types reported to cache hooks.
const (
	KeyTypeParse    = "parse"
	KeyTypeLayout   = "layout"
	KeyTypeArtifact = "artifact"
)
