// Package cache stores generated edge lists so repeated runs with the same
// parameters skip generation.
//
// # Backends
//
//   - [FileCache]: one text file per entry under a directory (CLI default)
//   - [RedisCache]: shared cache for several processes or hosts
//   - [NullCache]: stores nothing, used for --no-cache
//
// # Keys
//
// A [Keyer] turns generation parameters into a key. Only fully seeded runs
// are cacheable; a random seed never repeats, so callers skip the cache for
// it.
//
//	key := cache.NewDefaultKeyer().GraphKey(cache.GraphKeyOpts{
//	    Vertices: 1000, Density: 0.02, Seed: 42, Strategy: "auto",
//	})
//
// # Errors
//
// Backend errors are returned to the caller, which is expected to log them
// and fall through to computing. Network failures are marked [Transient] and
// retried under a [Backoff] policy.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Default time-to-live values.
const (
	// TTLGraph is how long a generated edge list stays cached.
	TTLGraph = 24 * time.Hour
)

// Cache is a byte-blob key/value store with expiry.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// GraphKey returns the key for an edge list generated with opts.
	GraphKey(opts GraphKeyOpts) string
}

// GraphKeyOpts identifies one deterministic generation run.
type GraphKeyOpts struct {
	Vertices int     `json:"vertices"`
	Density  float64 `json:"density"`
	Seed     uint64  `json:"seed"`
	Strategy string  `json:"strategy"`
}

// DefaultKeyer hashes key options into "graph:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// GraphKey implements Keyer.
func (DefaultKeyer) GraphKey(opts GraphKeyOpts) string {
	data, _ := json.Marshal(opts)
	sum := sha256.Sum256(data)
	return "graph:" + hex.EncodeToString(sum[:])
}

// Scope prefixes every key inner produces so several front ends can share
// one backend; the HTTP server uses "serve:". A nil inner means
// DefaultKeyer.
func Scope(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return scopedKeyer{inner: inner, prefix: prefix}
}

type scopedKeyer struct {
	inner  Keyer
	prefix string
}

func (k scopedKeyer) GraphKey(opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(opts)
}

// NullCache stores nothing. Every Get is a miss.
type NullCache struct{}

// NewNullCache returns a Cache that never stores anything.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
