package itemcache

import (
	"encoding/json"
	"fmt"
)

// Type tags the variant of a stored Item. It is written into every envelope
// so reads never have to guess.
type Type string

const (
	TypeString Type = "string"
	TypeBinary Type = "binary"
	TypeJSON   Type = "json"
)

func (t Type) valid() bool {
	switch t {
	case TypeString, TypeBinary, TypeJSON:
		return true
	}
	return false
}

// Item is a cacheable value. The set of implementations is closed:
// String, Binary and JSON.
type Item interface {
	Type() Type
	sealed()
}

// String is UTF-8 text. Invalid UTF-8 is rejected on encode.
type String string

// Binary is an opaque byte payload, stored base64 encoded.
type Binary []byte

// JSON is a structured value kept as its JSON text.
// Build it with NewJSON and read it back with Unmarshal.
// The stored text is compacted and an empty JSON reads back as "null", so
// compare decoded values rather than bytes.
type JSON json.RawMessage

func (String) Type() Type { return TypeString }
func (Binary) Type() Type { return TypeBinary }
func (JSON) Type() Type   { return TypeJSON }

func (String) sealed() {}
func (Binary) sealed() {}
func (JSON) sealed()   {}

// NewJSON marshals v with encoding/json.
func NewJSON(v any) (JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("itemcache: marshal json item: %w", err)
	}
	return JSON(b), nil
}

// Unmarshal decodes the structured value into dst.
func (j JSON) Unmarshal(dst any) error {
	return json.Unmarshal(j, dst)
}

// MarshalJSON lets a JSON item be embedded as-is in other JSON documents.
func (j JSON) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return j, nil
}
