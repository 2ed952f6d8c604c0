// Package provider defines the backing-store capability consumed by
// rescache.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly
// the same []byte previously passed to Set for a key (no prepended/appended
// metadata, no re-encoding). Internal transforms such as compression must be
// fully reversed before bytes are handed back.
package provider

import (
	"context"
	"time"
)

// Provider is a minimal byte store with TTL expiry. Must be safe for
// concurrent use; the cache shares one handle across all in-flight calls.
type Provider interface {
	// Get returns (value, true, nil) on hit and (nil, false, nil) on miss.
	// IO/remote failures return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value and arranges for it to expire after ttl. ok=false
	// with a nil error is the backend's way of saying the write did not
	// take effect (pressure, admission refusal).
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) (ok bool, err error)

	// Del removes a key (best-effort).
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}
