package itemcache

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/unkn0wn-root/itemcache/internal/wire"
	pr "github.com/unkn0wn-root/itemcache/provider"
)

type cache struct {
	ns       string
	provider pr.Provider
	log      Logger
	hooks    Hooks
	clock    clock.Clock
	closed   atomic.Bool
}

var _ Cache = (*cache)(nil)

func newCache(opts Options) (*cache, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	return &cache{
		ns:       opts.Namespace,
		provider: opts.Provider,
		log:      opts.Logger,
		hooks:    opts.Hooks,
		clock:    opts.Clock,
	}, nil
}

func (c *cache) Get(ctx context.Context, key string, opts GetOptions) (Item, bool, error) {
	if err := c.check(key); err != nil {
		return nil, false, err
	}
	k := c.storageKey(key)
	raw, ok, err := c.provider.Get(ctx, k)
	if err != nil {
		return nil, false, backendErr("get", key, err)
	}
	if !ok || len(raw) == 0 {
		return nil, false, nil
	}

	env, err := wire.Unmarshal(raw)
	if err != nil {
		return nil, false, c.malformed(key, err)
	}

	if exp := env.Info.Expiration; exp != nil && c.clock.Now().UnixMilli() >= *exp {
		// the store did not enforce the TTL (or lacks one); honor the envelope
		if err := c.provider.Del(ctx, k); err != nil {
			c.log.Debug("failed to delete expired entry", c.fields(key, "err", err))
		}
		c.hooks.ExpiredOnRead(key)
		c.log.Debug("dropped expired entry on read", c.fields(key, "expiration", *exp))
		return nil, false, nil
	}

	t := coalesce(opts.Type, Type(env.Info.Type))
	if t == "" {
		return nil, false, c.malformed(key, fmt.Errorf("%w: missing type", wire.ErrCorrupt))
	}

	item, err := DecodeItem(env.Value, t)
	if err != nil {
		if de, ok := err.(*DecodeError); ok {
			de.Key = key
		}
		c.hooks.DecodeFailed(key, t, err)
		return nil, false, err
	}
	return item, true, nil
}

func (c *cache) Put(ctx context.Context, key string, item Item, opts PutOptions) error {
	if err := c.check(key); err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("itemcache: nil item for %q", key)
	}

	payload, err := EncodeItem(item)
	if err != nil {
		return fmt.Errorf("itemcache: encode %q: %w", key, err)
	}
	env := wire.Envelope{
		Info:  wire.Info{Type: string(item.Type())},
		Value: payload,
	}

	ttl := pr.NoExpiration
	if exp, ok := CalculateExpiration(opts); ok {
		ms := exp.UnixMilli()
		env.Info.Expiration = &ms

		secs := ttlSeconds(exp, c.clock.Now())
		if secs == 0 {
			c.hooks.ExpiredOnWrite(key)
			c.log.Debug("expiration within a second; writing with ttl 0", c.fields(key, "expiration", ms))
		}
		ttl = time.Duration(secs) * time.Second
	}

	b, err := wire.Marshal(env)
	if err != nil {
		return fmt.Errorf("itemcache: encode %q: %w", key, err)
	}
	return backendErr("set", key, c.provider.Set(ctx, c.storageKey(key), b, ttl))
}

func (c *cache) List(ctx context.Context, opts ListOptions) ([]string, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	keys, err := c.provider.Keys(ctx, c.storageKey(opts.Prefix))
	if err != nil {
		return nil, backendErr("keys", "", err)
	}
	if c.ns != "" {
		cut := len(c.ns) + 1
		for i, k := range keys {
			keys[i] = k[cut:]
		}
	}
	if opts.Limit > 0 && len(keys) > opts.Limit {
		keys = keys[:opts.Limit]
	}
	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}

func (c *cache) Delete(ctx context.Context, key string) error {
	if err := c.check(key); err != nil {
		return err
	}
	return backendErr("del", key, c.provider.Del(ctx, c.storageKey(key)))
}

func (c *cache) Close(ctx context.Context) error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	if err := c.provider.Close(ctx); err != nil {
		return backendErr("close", "", err)
	}
	c.log.Debug("cache closed", Fields{"namespace": c.ns})
	return nil
}

func (c *cache) check(key string) error {
	if c.closed.Load() {
		return ErrClosed
	}
	if key == "" {
		return ErrEmptyKey
	}
	return nil
}

func (c *cache) malformed(key string, err error) error {
	c.hooks.MalformedEnvelope(key, err)
	c.log.Warn("malformed envelope", c.fields(key, "err", err))
	return &EnvelopeError{Key: key, Err: err}
}

func (c *cache) storageKey(userKey string) string {
	if c.ns == "" {
		return userKey
	}
	// isolate by namespace
	return c.ns + ":" + userKey
}
