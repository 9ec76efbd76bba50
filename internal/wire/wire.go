package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrCorrupt = errors.New("itemcache: corrupt envelope")

// Envelope is the single JSON object stored per key:
//
//	{"info":{"type":"<tag>","expiration":<unix ms>},"value":<payload>}
//
// expiration is omitted when the entry has none.
type Envelope struct {
	Info  Info            `json:"info"`
	Value json.RawMessage `json:"value"`
}

type Info struct {
	Type       string `json:"type"`
	Expiration *int64 `json:"expiration,omitempty"`
}

// Marshal serializes e. Value must already hold valid JSON.
func Marshal(e Envelope) ([]byte, error) {
	if len(e.Value) == 0 {
		return nil, fmt.Errorf("itemcache: envelope without value")
	}
	return json.Marshal(e)
}

// Unmarshal parses b into an Envelope. Anything that is not a JSON object
// carrying an info object and a value is reported as ErrCorrupt.
// An empty type is allowed; callers may supply the tag themselves.
func Unmarshal(b []byte) (Envelope, error) {
	var raw struct {
		Info  *Info           `json:"info"`
		Value json.RawMessage `json:"value"`
	}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		return Envelope{}, ErrCorrupt
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if raw.Info == nil || len(raw.Value) == 0 {
		return Envelope{}, ErrCorrupt
	}
	return Envelope{Info: *raw.Info, Value: raw.Value}, nil
}
