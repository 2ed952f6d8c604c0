package rescache

import "time"

// EventKind enumerates the lifecycle states an operation can report.
// The set is closed: every Get emits EventReadStart plus exactly one of the
// read terminals, every effective Set emits EventWriteStart plus exactly one
// of the write terminals.
type EventKind string

const (
	EventReadStart        EventKind = "read_start"
	EventReadTimeout      EventKind = "read_timeout"
	EventReadError        EventKind = "read_error"
	EventReadNotFound     EventKind = "read_not_found"
	EventReadDecodeFailed EventKind = "read_decode_failed"
	EventReadDone         EventKind = "read_done"

	EventWriteStart        EventKind = "write_start"
	EventWriteEncodeFailed EventKind = "write_encode_failed"
	EventWriteError        EventKind = "write_error"
	EventWriteNotAcked     EventKind = "write_not_acked"
	EventWriteDone         EventKind = "write_done"
)

// Terminal reports whether k ends its operation's state machine.
func (k EventKind) Terminal() bool {
	return k != EventReadStart && k != EventWriteStart
}

// Event describes one lifecycle state of one operation. Purely
// observational: events never feed back into control flow.
type Event struct {
	Kind       EventKind
	Key        string // logical key as supplied by the caller
	StorageKey string // derived SHA-512 key

	// Elapsed covers the whole operation; StoreElapsed covers only the store
	// round-trip. Both are zero on *_start events. On a timeout, StoreElapsed
	// reports how long the read had been in flight when the timer won.
	Elapsed      time.Duration
	StoreElapsed time.Duration

	Bytes int           // encoded payload size, set on read_done/write_done
	TTL   time.Duration // resolved TTL, set on write terminals
	Err   error         // set on failure terminals
}

// Sink consumes lifecycle events. Emit is called synchronously on the
// operation hot path and must be cheap; wrap a slow sink with asyncsink.
// A sink must never panic - the cache does not guard against it.
type Sink interface {
	Emit(Event)
}

type NopSink struct{}

func (NopSink) Emit(Event) {}

// LogSink forwards events to a Logger. Routine outcomes (start, done, miss,
// timeout) log at debug; store and codec failures log at error.
type LogSink struct {
	L Logger
}

func (s LogSink) Emit(e Event) {
	f := Fields{
		"kind":        string(e.Kind),
		"key":         e.Key,
		"storage_key": e.StorageKey,
	}
	if e.Kind.Terminal() {
		f["elapsed_ms"] = e.Elapsed.Milliseconds()
		f["store_ms"] = e.StoreElapsed.Milliseconds()
	}
	if e.Bytes > 0 {
		f["bytes"] = e.Bytes
	}
	if e.TTL > 0 {
		f["ttl_s"] = int64(e.TTL.Seconds())
	}
	if e.Err != nil {
		f["err"] = e.Err.Error()
	}

	switch e.Kind {
	case EventReadError, EventReadDecodeFailed, EventWriteEncodeFailed,
		EventWriteError, EventWriteNotAcked:
		s.L.Error("cache "+string(e.Kind), f)
	default:
		s.L.Debug("cache "+string(e.Kind), f)
	}
}
