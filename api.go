package itemcache

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"

	pr "github.com/unkn0wn-root/itemcache/provider"
)

// Cache is the provider-agnostic API over typed Items.
// Every call is a single independent request to the provider.
type Cache interface {
	// Get returns (item, true, nil) on hit and (nil, false, nil) on miss.
	Get(ctx context.Context, key string, opts GetOptions) (Item, bool, error)
	Put(ctx context.Context, key string, item Item, opts PutOptions) error

	// List scans the whole key space of the provider. It is meant for
	// administration and debugging, not for request paths.
	List(ctx context.Context, opts ListOptions) ([]string, error)

	// Delete is idempotent: a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close shuts the provider down. Every later call returns ErrClosed.
	Close(ctx context.Context) error
}

// GetOptions zero value reads with the type recorded in the envelope.
type GetOptions struct {
	// Type, when set, overrides the envelope's type tag. The caller is
	// trusted; a payload that does not fit yields a DecodeError.
	Type Type
}

// PutOptions zero value writes without expiration.
type PutOptions struct {
	// Expiration is the absolute time after which the entry may be dropped.
	// A time already past writes the entry with TTL 0.
	Expiration time.Time
}

// ListOptions zero value lists every key.
type ListOptions struct {
	Prefix string
	Limit  int // <= 0 => no limit
}

// Options configure New. Only Provider is required.
type Options struct {
	Provider pr.Provider

	// Namespace, when set, prefixes every key as "<ns>:<key>".
	// List strips it again. Empty keeps raw keys.
	Namespace string

	Logger Logger      // if nil, NopLogger is used
	Hooks  Hooks       // if nil, NopHooks is used
	Clock  clock.Clock // if nil, the wall clock is used
}

func New(opts Options) (Cache, error) {
	return newCache(opts)
}
