package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	goredis "github.com/redis/go-redis/v9"

	pr "github.com/unkn0wn-root/itemcache/provider"
)

var ErrNilClient = errors.New("redis provider: nil client")

type Redis struct {
	rdb         goredis.UniversalClient
	closeClient bool
	scanCount   int64
	closed      atomic.Bool
}

var _ pr.Provider = (*Redis)(nil)

type Config struct {
	Client      goredis.UniversalClient
	CloseClient bool // set true only if this provider exclusively owns the client
	// ScanCount > 0 makes Keys iterate with SCAN (COUNT hint) instead of a
	// single blocking KEYS call.
	ScanCount int64
}

func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{rdb: cfg.Client, closeClient: cfg.CloseClient, scanCount: cfg.ScanCount}, nil
}

// NewFromOptions dials a dedicated client owned by the provider.
func NewFromOptions(opts *goredis.Options) (*Redis, error) {
	if opts == nil {
		return nil, errors.New("redis provider: nil options")
	}
	return New(Config{Client: goredis.NewClient(opts), CloseClient: true})
}

// NewFromURL builds an owned client from redis://[:password@]host[:port][/db].
func NewFromURL(uri string) (*Redis, error) {
	opts, err := goredis.ParseURL(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	return NewFromOptions(opts)
}

func (p *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if p.closed.Load() {
		return nil, false, pr.ErrClosed
	}
	b, err := p.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, mapErr(err) // transport/server error
	}
	return b, true, nil
}

// Set writes value. Redis rejects "SET ... EX 0", and EXPIRE with a
// non-positive TTL deletes the key, so an immediate expiry is a DEL.
func (p *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if p.closed.Load() {
		return pr.ErrClosed
	}
	if pr.ExpiresNow(ttl) {
		return mapErr(p.rdb.Del(ctx, key).Err())
	}
	if ttl == pr.NoExpiration {
		ttl = 0
	}
	return mapErr(p.rdb.Set(ctx, key, value, ttl).Err())
}

func (p *Redis) Keys(ctx context.Context, prefix string) ([]string, error) {
	if p.closed.Load() {
		return nil, pr.ErrClosed
	}
	pattern := escapeGlob(prefix) + "*"
	if p.scanCount <= 0 {
		keys, err := p.rdb.Keys(ctx, pattern).Result()
		return keys, mapErr(err)
	}

	return collectScan(ctx, p.rdb.Scan(ctx, 0, pattern, p.scanCount).Iterator())
}

type scanIterator interface {
	Next(ctx context.Context) bool
	Val() string
	Err() error
}

// collectScan drains it, dropping repeats; SCAN may return a key more than
// once while the keyspace is rehashed.
func collectScan(ctx context.Context, it scanIterator) ([]string, error) {
	var keys []string
	seen := make(map[string]struct{})
	for it.Next(ctx) {
		k := it.Val()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	if err := it.Err(); err != nil {
		return nil, mapErr(err)
	}
	return keys, nil
}

func (p *Redis) Del(ctx context.Context, key string) error {
	if p.closed.Load() {
		return pr.ErrClosed
	}
	return mapErr(p.rdb.Del(ctx, key).Err())
}

// Close releases the underlying redis client only when this provider owns it.
// The client drains in-flight commands before its pool shuts down.
func (p *Redis) Close(context.Context) error {
	if !p.closed.CompareAndSwap(false, true) {
		return pr.ErrClosed
	}
	if p.closeClient {
		if err := p.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}

func mapErr(err error) error {
	if errors.Is(err, goredis.ErrClosed) {
		return pr.ErrClosed
	}
	return err
}

// escapeGlob quotes the glob metacharacters understood by KEYS/SCAN MATCH.
func escapeGlob(s string) string {
	if !strings.ContainsAny(s, `*?[]\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
