// Package cache memoizes expensive render results.
//
// Rendering a network through Graphviz is the slowest step of a conversion,
// and the DOT source fully determines its SVG output. The pipeline therefore
// keys SVG renders by a hash of their DOT source and stores them in a
// [Cache]. Three backends are provided:
//
//   - [NullCache]: stores nothing (caching disabled)
//   - [FileCache]: one JSON file per entry under a local directory
//   - [RedisCache]: a shared Redis instance, with retries on network errors
//
// Keys are built by a [Keyer]; wrap one in a [ScopedKeyer] to keep several
// projects apart in a shared backend.
package cache

import (
	"context"
	"time"
)

// Cache stores byte values under string keys with an optional TTL.
// A miss is reported as (nil, false, nil), never as an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
// Clear returns the number of entries removed.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}
