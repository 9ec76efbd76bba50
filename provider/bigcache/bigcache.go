package bigcache

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	bc "github.com/allegro/bigcache/v3"

	pr "github.com/unkn0wn-root/itemcache/provider"
)

type Provider struct {
	c      *bc.BigCache
	closed atomic.Bool
}

var _ pr.Provider = (*Provider)(nil)

type Config struct {
	LifeWindow         time.Duration
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
}

const defaultLifeWindow = 10 * time.Minute

func New(cfg Config) (*Provider, error) {
	if cfg.LifeWindow <= 0 {
		cfg.LifeWindow = defaultLifeWindow
	}
	conf := bc.DefaultConfig(cfg.LifeWindow)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.NewBigCache(conf)
	if err != nil {
		return nil, err
	}
	return &Provider{c: c}, nil
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	if p.closed.Load() {
		return nil, false, pr.ErrClosed
	}
	b, err := p.c.Get(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return nil, false, nil
	}
	return b, err == nil, err
}

// Set ignores positive TTLs: BigCache only has the global LifeWindow.
// itemcache still checks the envelope expiration on read.
func (p *Provider) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if p.closed.Load() {
		return pr.ErrClosed
	}
	if pr.ExpiresNow(ttl) {
		return p.del(key)
	}
	return p.c.Set(key, value)
}

func (p *Provider) Keys(_ context.Context, prefix string) ([]string, error) {
	if p.closed.Load() {
		return nil, pr.ErrClosed
	}
	var keys []string
	it := p.c.Iterator()
	for it.SetNext() {
		e, err := it.Value()
		if err != nil {
			// entry vanished between SetNext and Value
			continue
		}
		if strings.HasPrefix(e.Key(), prefix) {
			keys = append(keys, e.Key())
		}
	}
	return keys, nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	if p.closed.Load() {
		return pr.ErrClosed
	}
	return p.del(key)
}

func (p *Provider) del(key string) error {
	if err := p.c.Delete(key); err != nil && !errors.Is(err, bc.ErrEntryNotFound) {
		return err
	}
	return nil
}

func (p *Provider) Close(_ context.Context) error {
	if !p.closed.CompareAndSwap(false, true) {
		return pr.ErrClosed
	}
	return p.c.Close()
}
