package codec

import "encoding/json"

// JSON persists the entire value as JSON text (verbatim policy). This is
// the canonical wire form for generic function-result caching.
type JSON[V any] struct{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}
