package itemcache

import (
	"errors"
	"fmt"

	pr "github.com/unkn0wn-root/itemcache/provider"
	"github.com/unkn0wn-root/itemcache/internal/wire"
)

var (
	// ErrClosed is returned by every operation after Close.
	ErrClosed = pr.ErrClosed
	// ErrEmptyKey is returned when a key is "".
	ErrEmptyKey = errors.New("itemcache: empty key")
	// ErrUnknownType is wrapped by DecodeError when the tag is not one of ours.
	ErrUnknownType = errors.New("itemcache: unknown item type")
	// ErrInvalidUTF8 is returned when a String item is not valid UTF-8.
	// Store such bytes as Binary.
	ErrInvalidUTF8 = errors.New("itemcache: string item is not valid UTF-8; use Binary")
	// ErrCorruptEnvelope is wrapped by EnvelopeError.
	ErrCorruptEnvelope = wire.ErrCorrupt
)

// DecodeError reports a payload that does not fit its declared Type.
type DecodeError struct {
	Key  string // empty when raised by DecodeItem directly
	Type Type
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("itemcache: decode %q item: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("itemcache: decode %q item at %q: %v", e.Type, e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EnvelopeError reports stored bytes that are not a well-formed envelope,
// typically written by something other than itemcache.
type EnvelopeError struct {
	Key string
	Err error
}

func (e *EnvelopeError) Error() string {
	return fmt.Sprintf("itemcache: malformed envelope at %q: %v", e.Key, e.Err)
}

func (e *EnvelopeError) Unwrap() error { return e.Err }

// BackendError wraps a provider failure unchanged.
type BackendError struct {
	Op  string // get, set, keys, del, close
	Key string // empty for keys and close
	Err error
}

func (e *BackendError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("itemcache: backend %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("itemcache: backend %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// backendErr leaves ErrClosed bare so callers can match it directly.
func backendErr(op, key string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrClosed) {
		return ErrClosed
	}
	return &BackendError{Op: op, Key: key, Err: err}
}
