package codec

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

// Msgpack stores V as compact msgpack in itemcache.Binary items.
// The zero value is ready to use and honors `msgpack:"..."` tags.
//
// JSONTags makes the encoder read `json:"..."` tags instead, so structs
// already shaped for codec.JSON keep the same field names.
type Msgpack[V any] struct {
	JSONTags bool
}

func (m Msgpack[V]) Encode(v V) ([]byte, error) {
	if !m.JSONTags {
		return msgpack.Marshal(v)
	}
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (m Msgpack[V]) Decode(b []byte) (V, error) {
	var v V
	if !m.JSONTags {
		err := msgpack.Unmarshal(b, &v)
		return v, err
	}
	dec := msgpack.NewDecoder(bytes.NewReader(b))
	dec.SetCustomStructTag("json")
	err := dec.Decode(&v)
	return v, err
}
