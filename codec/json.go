package codec

import "encoding/json"

// JSON stores V as a structured itemcache.JSON item, readable by any client
// that understands the envelope.
type JSON[V any] struct{}

func (JSON[V]) Format() Format { return FormatJSON }

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}
