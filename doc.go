// Package rescache implements a result-memoization cache backed by a
// Redis-family key-value store. It is meant to sit inside a request-processing
// pipeline: the caller asks for a previously computed result by a logical key,
// and either gets it back within a bounded wait or falls through to compute it.
//
// Components:
//   - Provider: byte store with TTL expiry (Redis standalone/cluster/sentinel;
//     BigCache and Ristretto emulations for tests and local development).
//   - Codec[V]: (de)serializes V <-> []byte. JSON is the canonical wire form;
//     the HTTPResponse codec narrows what is persisted to
//     {status_code, headers, result} and drops everything else.
//   - gensource.Source: the keyspace generation. Storage keys are the SHA-512
//     of "g<generation>:<logical key>", so bumping the generation makes every
//     previously written entry unreachable without deleting anything — old
//     entries simply expire via TTL.
//
// Reads race the store against a per-cache ReadTimeout. Whichever side loses
// the race is a guaranteed no-op: a late store response is discarded and never
// settles the call a second time.
//
// A cache miss is reported as ErrNotFound rather than an empty success so
// callers can tell "go compute it" apart from a cached empty value. Miss and
// timeout are routine outcomes; store and codec failures are the ones worth
// alerting on.
//
// Every operation emits lifecycle events (one start, exactly one terminal) to
// an optional Sink; see Event. Sinks are observational only and must never
// influence the operation outcome.
package rescache
