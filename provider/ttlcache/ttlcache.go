package ttlcache

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	tc "github.com/jellydator/ttlcache/v3"

	pr "github.com/unkn0wn-root/itemcache/provider"
)

// Provider keeps entries in process with an exact per-entry TTL.
type Provider struct {
	c       *tc.Cache[string, []byte]
	janitor bool
	closed  atomic.Bool
}

var _ pr.Provider = (*Provider)(nil)

type Config struct {
	Capacity uint64 // 0 = unlimited; LRU beyond capacity
	// Janitor starts ttlcache's background loop that drops expired entries.
	// Without it expired entries are only hidden, and freed on overwrite.
	Janitor bool
}

func New(cfg Config) *Provider {
	opts := []tc.Option[string, []byte]{
		// reads must not extend the expiration chosen by the writer
		tc.WithDisableTouchOnHit[string, []byte](),
	}
	if cfg.Capacity > 0 {
		opts = append(opts, tc.WithCapacity[string, []byte](cfg.Capacity))
	}
	p := &Provider{c: tc.New[string, []byte](opts...), janitor: cfg.Janitor}
	if cfg.Janitor {
		go p.c.Start()
	}
	return p
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	if p.closed.Load() {
		return nil, false, pr.ErrClosed
	}
	it := p.c.Get(key)
	if it == nil {
		return nil, false, nil
	}
	return it.Value(), true, nil
}

func (p *Provider) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if p.closed.Load() {
		return pr.ErrClosed
	}
	switch {
	case ttl == pr.NoExpiration:
		p.c.Set(key, value, tc.NoTTL)
	case ttl <= 0:
		p.c.Delete(key)
	default:
		p.c.Set(key, value, ttl)
	}
	return nil
}

func (p *Provider) Keys(_ context.Context, prefix string) ([]string, error) {
	if p.closed.Load() {
		return nil, pr.ErrClosed
	}
	var keys []string
	for _, k := range p.c.Keys() {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		// Keys also reports expired entries the janitor has not swept yet
		if p.c.Get(k) == nil {
			continue
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	if p.closed.Load() {
		return pr.ErrClosed
	}
	p.c.Delete(key)
	return nil
}

func (p *Provider) Close(_ context.Context) error {
	if !p.closed.CompareAndSwap(false, true) {
		return pr.ErrClosed
	}
	if p.janitor {
		p.c.Stop()
	}
	p.c.DeleteAll()
	return nil
}
