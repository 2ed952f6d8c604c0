package rescache

import "time"

const (
	defaultTTL         = 10 * time.Minute
	defaultReadTimeout = 500 * time.Millisecond
	defaultGeneration  = 1
)

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
