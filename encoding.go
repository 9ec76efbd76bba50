package itemcache

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"
)

// EncodeItem converts item into the JSON value stored in the envelope:
// a JSON string for String, a base64 JSON string for Binary and the raw
// value for JSON. It fails for a String that is not valid UTF-8 and for a
// JSON item holding invalid JSON.
func EncodeItem(item Item) (json.RawMessage, error) {
	switch v := item.(type) {
	case String:
		if !utf8.ValidString(string(v)) {
			return nil, ErrInvalidUTF8
		}
		return json.Marshal(string(v))
	case Binary:
		return json.Marshal(base64.StdEncoding.EncodeToString(v))
	case JSON:
		if len(v) == 0 {
			return json.RawMessage("null"), nil
		}
		if !json.Valid(v) {
			return nil, fmt.Errorf("itemcache: json item is not valid JSON")
		}
		return json.RawMessage(v), nil
	case nil:
		return nil, fmt.Errorf("itemcache: nil item")
	default:
		return nil, fmt.Errorf("itemcache: unsupported item %T", item)
	}
}

// DecodeItem rebuilds the Item of type t from an encoded payload.
// The payload must match t; nothing is inferred from its shape.
func DecodeItem(payload json.RawMessage, t Type) (Item, error) {
	switch t {
	case TypeString:
		s, err := jsonString(payload)
		if err != nil {
			return nil, &DecodeError{Type: t, Err: err}
		}
		return String(s), nil
	case TypeBinary:
		s, err := jsonString(payload)
		if err != nil {
			return nil, &DecodeError{Type: t, Err: err}
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, &DecodeError{Type: t, Err: err}
		}
		return Binary(b), nil
	case TypeJSON:
		if !json.Valid(payload) {
			return nil, &DecodeError{Type: t, Err: fmt.Errorf("invalid JSON payload")}
		}
		out := make(JSON, len(payload))
		copy(out, payload)
		return out, nil
	default:
		return nil, &DecodeError{Type: t, Err: ErrUnknownType}
	}
}

// jsonString accepts only a JSON string; null is rejected too.
func jsonString(payload json.RawMessage) (string, error) {
	var s *string
	if err := json.Unmarshal(payload, &s); err != nil {
		return "", err
	}
	if s == nil {
		return "", fmt.Errorf("payload is null, want a JSON string")
	}
	return *s, nil
}

// CalculateExpiration returns the absolute expiration requested by opts and
// whether one was requested. It does no relative-to-absolute conversion.
func CalculateExpiration(opts PutOptions) (time.Time, bool) {
	if opts.Expiration.IsZero() {
		return time.Time{}, false
	}
	return opts.Expiration, true
}

// ttlSeconds turns an absolute expiration into whole seconds left,
// floor((exp - now) / 1s) on millisecond clocks, never below 0.
func ttlSeconds(exp, now time.Time) int64 {
	ms := exp.UnixMilli() - now.UnixMilli()
	if ms <= 0 {
		return 0
	}
	return ms / 1000
}
