// Package cache stores rendered artifacts between CLI runs.
//
// Rendering a hierarchy as text is cheap and never cached. Graphviz layout
// and rsvg-convert are not, so the pipeline keys their output by the hash of
// the DOT source plus the output options and stores it in a [Cache].
//
// Two implementations are provided: [FileCache] for the CLI, rooted in the
// user's cache directory, and [NullCache] for --no-cache and tests.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss is reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// NullCache misses on every Get and drops every Set. The CLI uses it for
// --no-cache and for commands that never render images.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error { return nil }
func (NullCache) Close() error { return nil }
