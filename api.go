package rescache

import (
	"context"
	"time"

	c "github.com/rescache/rescache/codec"
	gen "github.com/rescache/rescache/gensource"
	pr "github.com/rescache/rescache/provider"
)

// Cache is the high-level memoization API. V is the caller's value type;
// serialization is handled by a pluggable Codec[V].
//
// Get and Set are safe for concurrent use by arbitrarily many in-flight
// calls; the shared store handles are responsible for their own connection
// management.
type Cache[V any] interface {
	// Get returns the cached value for key. It fails with ErrNotFound on a
	// miss, ErrReadTimeout when the store does not answer within ReadTimeout,
	// *StoreError on a store-level read failure, and *CodecError when the
	// stored payload cannot be decoded.
	Get(ctx context.Context, key string) (V, error)

	// Set stores value under key with the given TTL (0 => DefaultTTL),
	// expressed to the store as expire-after-seconds. An absent value (see
	// Options.Absent) is a no-op success with no store interaction. Set is
	// not raced against a timeout; bound it with ctx if the caller needs one.
	Set(ctx context.Context, key string, value V, ttl time.Duration) error

	// Invalidate bumps the keyspace generation, making every previously
	// cached entry unreachable. Returns the new generation. Requires a
	// bumpable generation source (gensource.Static cannot be bumped).
	Invalidate(ctx context.Context) (int64, error)

	// Reader and Writer expose the underlying store handles so the host
	// application can subscribe to connection events. In non-split mode both
	// return the same provider.
	Reader() pr.Provider
	Writer() pr.Provider

	Close(ctx context.Context) error
}

// Options configure a Cache instance. Reader and Codec are required; the
// rest have defaults. Options are not consulted after New returns.
type Options[V any] struct {
	// Required
	Reader pr.Provider
	Codec  c.Codec[V]

	// Writer receives Set/Del traffic when the deployment splits reads from
	// writes (e.g. sentinel replica reads + primary writes). Nil => Reader
	// serves both paths.
	Writer pr.Provider

	Logger Logger // nil => NopLogger
	Events Sink   // nil => no lifecycle events

	DefaultTTL  time.Duration // 0 => 10m
	ReadTimeout time.Duration // bound on Get store wait; 0 => 500ms

	// Generation selects the keyspace epoch when GenSource is nil; 0 => 1.
	Generation int64
	// GenSource overrides Generation with a dynamic source (local counter or
	// Redis-shared), enabling whole-keyspace invalidation at runtime.
	GenSource gen.Source

	// Absent reports that value carries nothing worth caching; Set skips the
	// write entirely for such values. Nil => nil pointers, maps, slices,
	// functions, channels and interfaces count as absent.
	Absent func(V) bool
}

func New[V any](opts Options[V]) (Cache[V], error) {
	return newCache[V](opts)
}
