// Package asynchook moves hook delivery off the cache's hot path.
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{ExpiredEvery: 100})
//	hooks := asynchook.New(raw, 1, 1000)
//	defer hooks.Close()
//
//	c, _ := itemcache.New(itemcache.Options{Provider: p, Hooks: hooks})
//
// Events are dropped, never blocked on, when the queue is full.
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/itemcache"
)

type Hooks struct {
	inner   itemcache.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Uint64
}

var _ itemcache.Hooks = (*Hooks)(nil)

func New(inner itemcache.Hooks, workers, qlen int) *Hooks {
	if inner == nil {
		inner = itemcache.NopHooks{}
	}
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Events fired after
// Close are counted as dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.q)
		h.mu.Unlock()
		h.wg.Wait()
	})
}

// Dropped reports how many events were discarded.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		h.dropped.Add(1)
		return
	}
	select {
	case h.q <- f:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hooks) MalformedEnvelope(k string, err error) {
	h.try(func() { h.inner.MalformedEnvelope(k, err) })
}
func (h *Hooks) DecodeFailed(k string, t itemcache.Type, err error) {
	h.try(func() { h.inner.DecodeFailed(k, t, err) })
}
func (h *Hooks) ExpiredOnWrite(k string) { h.try(func() { h.inner.ExpiredOnWrite(k) }) }
func (h *Hooks) ExpiredOnRead(k string)  { h.try(func() { h.inner.ExpiredOnRead(k) }) }
