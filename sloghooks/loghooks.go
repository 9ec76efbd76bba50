package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/itemcache"
)

type Options struct {
	// Sampling for expiry events, which fire on normal traffic; 0/1 = log all.
	ExpiredEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	expiredWriteCtr atomic.Uint64
	expiredReadCtr  atomic.Uint64
}

var _ itemcache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) MalformedEnvelope(key string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("itemcache.malformed_envelope",
		"key", h.redact(key),
		"err", err)
}

func (h *Hooks) DecodeFailed(key string, t itemcache.Type, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("itemcache.decode_failed",
		"key", h.redact(key),
		"type", string(t),
		"err", err)
}

func (h *Hooks) ExpiredOnWrite(key string) {
	if h.l == nil || !sample(h.opts.ExpiredEvery, &h.expiredWriteCtr) {
		return
	}
	h.l.Debug("itemcache.expired_on_write", "key", h.redact(key))
}

func (h *Hooks) ExpiredOnRead(key string) {
	if h.l == nil || !sample(h.opts.ExpiredEvery, &h.expiredReadCtr) {
		return
	}
	h.l.Debug("itemcache.expired_on_read", "key", h.redact(key))
}
