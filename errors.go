package rescache

import (
	"errors"
	"fmt"
)

// Routine failure kinds. Both signal "fall through and compute the value";
// neither is worth alerting on.
var (
	// ErrNotFound reports that the store holds no value for the key.
	ErrNotFound = errors.New("rescache: key not found")

	// ErrReadTimeout reports that the store did not answer a read within
	// the configured ReadTimeout.
	ErrReadTimeout = errors.New("rescache: read timed out")
)

// ErrWriteNotAcked reports that the store answered a write but did not
// acknowledge it taking effect (backend-specific refusal, e.g. pressure).
var ErrWriteNotAcked = errors.New("rescache: write not acknowledged")

// StoreError wraps a store-level failure. Op is "read" or "write".
type StoreError struct {
	Op  string
	Key string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("rescache: store %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// CodecError wraps a serialization failure at the cache boundary.
// Stage is "encode" (write side, surfaced before any store interaction)
// or "decode" (read side, distinct from a miss).
type CodecError struct {
	Stage string
	Key   string
	Err   error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("rescache: %s %q: %v", e.Stage, e.Key, e.Err)
}

func (e *CodecError) Unwrap() error { return e.Err }
