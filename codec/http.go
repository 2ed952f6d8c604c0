package codec

import "encoding/json"

// narrowed is the only shape ever persisted by HTTPResponse. RawMessage
// fields keep whatever JSON types the caller uses for the three members.
type narrowed struct {
	StatusCode json.RawMessage `json:"status_code,omitempty"`
	Headers    json.RawMessage `json:"headers,omitempty"`
	Result     json.RawMessage `json:"result,omitempty"`
}

// HTTPResponse persists HTTP-style results under the narrowing policy:
// on encode the value is projected through {status_code, headers, result}
// and every other field is dropped before anything reaches the store.
// Decode unmarshals the stored JSON back into V; fields outside the
// projection come back as zero values.
type HTTPResponse[V any] struct{}

func (HTTPResponse[V]) Encode(v V) ([]byte, error) {
	full, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var n narrowed
	if err := json.Unmarshal(full, &n); err != nil {
		return nil, err
	}
	return json.Marshal(n)
}

func (HTTPResponse[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}
