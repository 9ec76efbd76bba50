package ristretto

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	rc "github.com/dgraph-io/ristretto"

	pr "github.com/unkn0wn-root/itemcache/provider"
)

type Provider struct {
	c      *rc.Cache
	closed atomic.Bool

	// ristretto hashes keys and cannot enumerate them; keys remembers what
	// was written so Keys can answer. Entries evicted by ristretto are
	// pruned lazily by Keys.
	keys sync.Map // string -> struct{}
}

var _ pr.Provider = (*Provider)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64 // bytes; each entry costs len(value)
	BufferItems int64
	Metrics     bool
}

func New(cfg Config) (*Provider, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Provider{c: c}, nil
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	if p.closed.Load() {
		return nil, false, pr.ErrClosed
	}
	v, ok := p.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, _ := v.([]byte)
	if b == nil {
		// drop unexpected entry shape
		p.c.Del(key)
		p.keys.Delete(key)
		return nil, false, nil
	}
	return b, true, nil
}

// Set waits for ristretto's write buffer so the value is visible to the next
// Get. A write refused by admission is not an error; the entry is just absent.
func (p *Provider) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if p.closed.Load() {
		return pr.ErrClosed
	}
	if pr.ExpiresNow(ttl) {
		p.c.Del(key)
		p.keys.Delete(key)
		return nil
	}
	if ttl == pr.NoExpiration {
		ttl = 0
	}
	if p.c.SetWithTTL(key, value, int64(len(value)), ttl) {
		p.keys.Store(key, struct{}{})
	}
	p.c.Wait()
	return nil
}

func (p *Provider) Keys(_ context.Context, prefix string) ([]string, error) {
	if p.closed.Load() {
		return nil, pr.ErrClosed
	}
	var keys []string
	p.keys.Range(func(k, _ any) bool {
		key := k.(string)
		if _, ok := p.c.Get(key); !ok {
			p.keys.Delete(key)
			return true
		}
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return true
	})
	return keys, nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	if p.closed.Load() {
		return pr.ErrClosed
	}
	p.c.Del(key)
	p.keys.Delete(key)
	return nil
}

func (p *Provider) Close(_ context.Context) error {
	if !p.closed.CompareAndSwap(false, true) {
		return pr.ErrClosed
	}
	p.c.Wait()
	p.c.Close()
	return nil
}

// Metrics exposes ristretto counters (nil unless Config.Metrics).
func (p *Provider) Metrics() *rc.Metrics { return p.c.Metrics }
