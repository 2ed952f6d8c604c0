// Package codec defines the serialization boundary between caller values
// and the bytes persisted in the backing store.
//
// The projection policy is fixed per cache instance by the codec chosen at
// construction: JSON persists the value verbatim, HTTPResponse narrows it to
// {status_code, headers, result}. Mixing policies for one keyspace breaks
// the round-trip contract, so pick one and keep it.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
