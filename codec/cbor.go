package codec

import (
	"github.com/fxamacker/cbor/v2"
)

// CBOR stores V as CBOR in itemcache.Binary items.
// The zero value uses the library defaults; NewCBOR tunes the modes.
type CBOR[V any] struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

var _ Codec[struct{}] = CBOR[struct{}]{}

// NewCBOR builds a CBOR codec. Times are written as RFC3339Nano strings.
//
// With deterministic set, encoding follows RFC 8949 Core Deterministic
// rules and decoding rejects duplicate map keys and indefinite-length
// items, so stored bytes are canonical in both directions.
func NewCBOR[V any](deterministic bool) (CBOR[V], error) {
	eo := cbor.PreferredUnsortedEncOptions()
	do := cbor.DecOptions{}
	if deterministic {
		eo = cbor.CoreDetEncOptions()
		do.DupMapKey = cbor.DupMapKeyEnforcedAPF
		do.IndefLength = cbor.IndefLengthForbidden
	}
	eo.Time = cbor.TimeRFC3339Nano

	em, err := eo.EncMode()
	if err != nil {
		return CBOR[V]{}, err
	}
	dm, err := do.DecMode()
	if err != nil {
		return CBOR[V]{}, err
	}
	return CBOR[V]{enc: em, dec: dm}, nil
}

func MustCBOR[V any](deterministic bool) CBOR[V] {
	c, err := NewCBOR[V](deterministic)
	if err != nil {
		panic(err)
	}
	return c
}

func (c CBOR[V]) Encode(v V) ([]byte, error) {
	if c.enc == nil {
		return cbor.Marshal(v)
	}
	return c.enc.Marshal(v)
}

func (c CBOR[V]) Decode(b []byte) (V, error) {
	var v V
	var err error
	if c.dec == nil {
		err = cbor.Unmarshal(b, &v)
	} else {
		err = c.dec.Unmarshal(b, &v)
	}
	return v, err
}
