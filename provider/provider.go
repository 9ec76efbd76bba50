// Package provider defines the storage abstraction used by itemcache.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly the
// same []byte that was previously passed to Set for a key. itemcache stores a
// JSON envelope per key and treats anything else as corruption.
package provider

import (
	"context"
	"errors"
	"time"
)

// NoExpiration asks Set to keep the value until it is deleted or evicted.
const NoExpiration time.Duration = -1

// ErrClosed is returned by every call made after Close.
var ErrClosed = errors.New("itemcache: provider closed")

// Provider is a minimal string-keyed byte store with TTLs.
// Must be safe for concurrent use.
type Provider interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key.
	// ttl == NoExpiration => no expiry; ttl <= 0 otherwise => expire immediately.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Keys returns every key starting with prefix, in store order.
	// This walks the whole key space; use it for diagnostics only.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Del removes a key. Missing keys are not an error.
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}

// ExpiresNow reports whether ttl asks for immediate expiry.
func ExpiresNow(ttl time.Duration) bool {
	return ttl != NoExpiration && ttl <= 0
}
