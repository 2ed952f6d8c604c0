// Package gensource abstracts where the keyspace generation lives.
//
// The generation is an integer epoch folded into every storage key; bumping
// it is equivalent to atomically invalidating every previously cached entry
// without touching storage (old-generation keys become unreachable and
// expire via TTL). Use Static for a fixed, configuration-time generation,
// Local for in-process bumps, or Redis to share bumps across replicas.
package gensource

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrStatic is returned by Static.Bump: a fixed generation can only change
// through configuration.
var ErrStatic = errors.New("gensource: static generation cannot be bumped")

// Source supplies the current generation and supports bumping it.
type Source interface {
	// Current returns the generation in effect.
	Current(ctx context.Context) (int64, error)
	// Bump atomically increments the generation and returns the new value.
	Bump(ctx context.Context) (int64, error)
}

// Static is a fixed generation.
type Static int64

var _ Source = Static(0)

func (s Static) Current(context.Context) (int64, error) { return int64(s), nil }
func (s Static) Bump(context.Context) (int64, error)    { return 0, ErrStatic }

// Local keeps the generation in-process. Bumps are visible only to this
// process; multi-replica deployments should use Redis instead.
type Local struct {
	n atomic.Int64
}

var _ Source = (*Local)(nil)

// NewLocal starts the generation at start (values below 1 are raised to 1).
func NewLocal(start int64) *Local {
	if start < 1 {
		start = 1
	}
	l := &Local{}
	l.n.Store(start)
	return l
}

func (l *Local) Current(context.Context) (int64, error) { return l.n.Load(), nil }
func (l *Local) Bump(context.Context) (int64, error)    { return l.n.Add(1), nil }
