package sloghooks

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/itemcache"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, ln := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if ln == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(ln), &m))
		out = append(out, m)
	}
	return out
}

func TestKeysAreRedactedByDefault(t *testing.T) {
	var buf bytes.Buffer
	h := New(newLogger(&buf), Options{})

	h.MalformedEnvelope("user:secret", errors.New("bad"))
	h.DecodeFailed("user:secret", itemcache.TypeJSON, errors.New("bad"))

	got := lines(t, &buf)
	require.Len(t, got, 2)
	assert.Equal(t, "itemcache.malformed_envelope", got[0]["msg"])
	assert.Equal(t, "itemcache.decode_failed", got[1]["msg"])
	assert.Equal(t, "json", got[1]["type"])
	for _, m := range got {
		assert.NotContains(t, m["key"], "secret")
		assert.Len(t, m["key"], 16)
	}
}

func TestCustomRedactor(t *testing.T) {
	var buf bytes.Buffer
	h := New(newLogger(&buf), Options{Redact: func(k string) string { return "k=" + k }})
	h.ExpiredOnRead("a")

	got := lines(t, &buf)
	require.Len(t, got, 1)
	assert.Equal(t, "k=a", got[0]["key"])
}

func TestExpirySampling(t *testing.T) {
	var buf bytes.Buffer
	h := New(newLogger(&buf), Options{ExpiredEvery: 5})
	for i := 0; i < 10; i++ {
		h.ExpiredOnWrite("k")
	}
	assert.Len(t, lines(t, &buf), 2)
}

func TestNilLoggerIsSilent(t *testing.T) {
	h := New(nil, Options{})
	assert.NotPanics(t, func() {
		h.MalformedEnvelope("k", errors.New("x"))
		h.DecodeFailed("k", itemcache.TypeString, errors.New("x"))
		h.ExpiredOnWrite("k")
		h.ExpiredOnRead("k")
	})
}
