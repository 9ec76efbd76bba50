package itemcache

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/unkn0wn-root/itemcache/codec"
)

// Typed binds a Cache to one Go type through a codec.
// The codec's Format picks the Item variant written:
// codec.JSON produces JSON items, codec.String produces String items,
// everything else produces Binary items. Text payloads that are not valid
// UTF-8 are stored as Binary.
type Typed[V any] struct {
	cache  Cache
	codec  codec.Codec[V]
	format codec.Format
}

func NewTyped[V any](c Cache, cd codec.Codec[V]) (*Typed[V], error) {
	if c == nil {
		return nil, fmt.Errorf("itemcache: cache is required")
	}
	if cd == nil {
		return nil, fmt.Errorf("itemcache: codec is required")
	}
	return &Typed[V]{cache: c, codec: cd, format: codec.FormatOf(cd)}, nil
}

// Get reads key and decodes it with the codec. Any stored variant is
// accepted; its raw payload bytes are handed to the codec.
func (t *Typed[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V
	item, ok, err := t.cache.Get(ctx, key, GetOptions{})
	if err != nil || !ok {
		return zero, false, err
	}
	v, err := t.codec.Decode(itemBytes(item))
	if err != nil {
		return zero, false, &DecodeError{Key: key, Type: item.Type(), Err: err}
	}
	return v, true, nil
}

func (t *Typed[V]) Put(ctx context.Context, key string, v V, opts PutOptions) error {
	payload, err := t.codec.Encode(v)
	if err != nil {
		return fmt.Errorf("itemcache: encode %q: %w", key, err)
	}
	var item Item
	switch t.format {
	case codec.FormatJSON:
		item = JSON(payload)
	case codec.FormatText:
		if utf8.Valid(payload) {
			item = String(payload)
		} else {
			item = Binary(payload)
		}
	default:
		item = Binary(payload)
	}
	return t.cache.Put(ctx, key, item, opts)
}

func (t *Typed[V]) Delete(ctx context.Context, key string) error {
	return t.cache.Delete(ctx, key)
}

func itemBytes(item Item) []byte {
	switch v := item.(type) {
	case String:
		return []byte(v)
	case Binary:
		return v
	case JSON:
		return v
	}
	return nil
}
