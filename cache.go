package rescache

import (
	"context"
	"fmt"
	"reflect"
	"sync/atomic"
	"time"

	cdc "github.com/rescache/rescache/codec"
	"github.com/rescache/rescache/gensource"
	"github.com/rescache/rescache/internal/keygen"
	pr "github.com/rescache/rescache/provider"
)

type cache[V any] struct {
	reader pr.Provider
	writer pr.Provider
	codec  cdc.Codec[V]
	log    Logger
	events Sink

	defaultTTL  time.Duration
	readTimeout time.Duration

	gen     gensource.Source
	lastGen atomic.Int64 // fallback when the source is unreachable

	absent func(V) bool
}

func newCache[V any](opts Options[V]) (*cache[V], error) {
	if opts.Reader == nil {
		return nil, fmt.Errorf("rescache: reader provider is required")
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf("rescache: codec is required")
	}
	if opts.DefaultTTL < 0 || opts.ReadTimeout < 0 || opts.Generation < 0 {
		return nil, fmt.Errorf("rescache: negative option")
	}

	c := &cache[V]{
		reader: opts.Reader,
		writer: opts.Writer,
		codec:  opts.Codec,
	}
	if c.writer == nil {
		c.writer = c.reader
	}

	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.events = opts.Events
	c.defaultTTL = coalesce[time.Duration](opts.DefaultTTL, defaultTTL)
	c.readTimeout = coalesce[time.Duration](opts.ReadTimeout, defaultReadTimeout)

	if opts.GenSource != nil {
		c.gen = opts.GenSource
	} else {
		c.gen = gensource.Static(coalesce[int64](opts.Generation, defaultGeneration))
	}

	if opts.Absent != nil {
		c.absent = opts.Absent
	} else {
		c.absent = isNilValue[V]
	}

	c.lastGen.Store(int64(coalesce[int64](opts.Generation, defaultGeneration)))
	return c, nil
}

func (c *cache[V]) Reader() pr.Provider { return c.reader }
func (c *cache[V]) Writer() pr.Provider { return c.writer }

func (c *cache[V]) Close(ctx context.Context) error {
	if c.writer != nil && c.writer != c.reader {
		_ = c.writer.Close(ctx)
	}
	if c.reader != nil {
		return c.reader.Close(ctx)
	}
	return nil
}

type readResult struct {
	raw     []byte
	ok      bool
	err     error
	elapsed time.Duration // store round-trip
}

func (c *cache[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V

	start := time.Now()
	sk := c.storageKey(ctx, key)
	c.emit(Event{Kind: EventReadStart, Key: key, StorageKey: sk})

	readCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Capacity 1 so a response that loses the race parks here and is
	// discarded instead of leaking the goroutine.
	ch := make(chan readResult, 1)
	go func() {
		t0 := time.Now()
		raw, ok, err := c.reader.Get(readCtx, sk)
		ch <- readResult{raw: raw, ok: ok, err: err, elapsed: time.Since(t0)}
	}()

	timer := time.NewTimer(c.readTimeout)
	defer timer.Stop()

	var res readResult
	select {
	case <-timer.C:
		// The in-flight read is now late: cancel it best-effort and never
		// look at its result, so it cannot settle this call a second time.
		cancel()
		c.emit(Event{
			Kind:         EventReadTimeout,
			Key:          key,
			StorageKey:   sk,
			Elapsed:      time.Since(start),
			StoreElapsed: time.Since(start),
		})
		return zero, ErrReadTimeout
	case res = <-ch:
	}

	switch {
	case res.err != nil:
		c.emit(Event{
			Kind:         EventReadError,
			Key:          key,
			StorageKey:   sk,
			Elapsed:      time.Since(start),
			StoreElapsed: res.elapsed,
			Err:          res.err,
		})
		return zero, &StoreError{Op: "read", Key: key, Err: res.err}
	case !res.ok:
		c.emit(Event{
			Kind:         EventReadNotFound,
			Key:          key,
			StorageKey:   sk,
			Elapsed:      time.Since(start),
			StoreElapsed: res.elapsed,
		})
		return zero, ErrNotFound
	}

	v, err := c.codec.Decode(res.raw)
	if err != nil {
		c.emit(Event{
			Kind:         EventReadDecodeFailed,
			Key:          key,
			StorageKey:   sk,
			Elapsed:      time.Since(start),
			StoreElapsed: res.elapsed,
			Err:          err,
		})
		return zero, &CodecError{Stage: "decode", Key: key, Err: err}
	}

	c.emit(Event{
		Kind:         EventReadDone,
		Key:          key,
		StorageKey:   sk,
		Elapsed:      time.Since(start),
		StoreElapsed: res.elapsed,
		Bytes:        len(res.raw),
	})
	return v, nil
}

func (c *cache[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	if c.absent(value) {
		// Nothing to cache: no store interaction, no events.
		return nil
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	start := time.Now()
	sk := c.storageKey(ctx, key)
	c.emit(Event{Kind: EventWriteStart, Key: key, StorageKey: sk})

	payload, err := c.codec.Encode(value)
	if err != nil {
		c.emit(Event{
			Kind:       EventWriteEncodeFailed,
			Key:        key,
			StorageKey: sk,
			Elapsed:    time.Since(start),
			TTL:        ttl,
			Err:        err,
		})
		return &CodecError{Stage: "encode", Key: key, Err: err}
	}

	t0 := time.Now()
	ok, err := c.writer.Set(ctx, sk, payload, ttl)
	storeElapsed := time.Since(t0)

	switch {
	case err != nil:
		c.emit(Event{
			Kind:         EventWriteError,
			Key:          key,
			StorageKey:   sk,
			Elapsed:      time.Since(start),
			StoreElapsed: storeElapsed,
			TTL:          ttl,
			Err:          err,
		})
		return &StoreError{Op: "write", Key: key, Err: err}
	case !ok:
		c.emit(Event{
			Kind:         EventWriteNotAcked,
			Key:          key,
			StorageKey:   sk,
			Elapsed:      time.Since(start),
			StoreElapsed: storeElapsed,
			TTL:          ttl,
		})
		return ErrWriteNotAcked
	}

	c.emit(Event{
		Kind:         EventWriteDone,
		Key:          key,
		StorageKey:   sk,
		Elapsed:      time.Since(start),
		StoreElapsed: storeElapsed,
		TTL:          ttl,
		Bytes:        len(payload),
	})
	return nil
}

func (c *cache[V]) Invalidate(ctx context.Context) (int64, error) {
	g, err := c.gen.Bump(ctx)
	if err != nil {
		c.log.Error("generation bump failed", Fields{"err": err})
		return 0, err
	}
	c.lastGen.Store(g)
	c.log.Info("keyspace generation bumped", Fields{"generation": g})
	return g, nil
}

// generation resolves the current keyspace generation. A source failure
// degrades to the last observed generation rather than failing the call.
func (c *cache[V]) generation(ctx context.Context) int64 {
	g, err := c.gen.Current(ctx)
	if err != nil {
		last := c.lastGen.Load()
		c.log.Warn("generation source unreachable, using last observed",
			Fields{"generation": last, "err": err})
		return last
	}
	c.lastGen.Store(g)
	return g
}

func (c *cache[V]) storageKey(ctx context.Context, key string) string {
	return keygen.Key(c.generation(ctx), key)
}

func (c *cache[V]) emit(e Event) {
	if c.events == nil {
		return
	}
	c.events.Emit(e)
}

// isNilValue is the default absence predicate: values whose dynamic kind
// can be nil (pointers, maps, slices, interfaces, funcs, channels) and are
// nil count as absent. Zero scalars and structs do not.
func isNilValue[V any](v V) bool {
	rv := reflect.ValueOf(&v).Elem()
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface,
		reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
