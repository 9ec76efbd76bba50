package asynchook

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/itemcache"
)

type record struct {
	mu     sync.Mutex
	events []string
	gate   chan struct{}
}

func (r *record) add(e string) {
	if r.gate != nil {
		<-r.gate
	}
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *record) MalformedEnvelope(k string, _ error)              { r.add("malformed:" + k) }
func (r *record) DecodeFailed(k string, _ itemcache.Type, _ error) { r.add("decode:" + k) }
func (r *record) ExpiredOnWrite(k string)                          { r.add("write:" + k) }
func (r *record) ExpiredOnRead(k string)                           { r.add("read:" + k) }

func TestDeliversAllEventsBeforeClose(t *testing.T) {
	rec := &record{}
	h := New(rec, 2, 16)

	h.MalformedEnvelope("a", errors.New("bad"))
	h.DecodeFailed("b", itemcache.TypeJSON, errors.New("bad"))
	h.ExpiredOnWrite("c")
	h.ExpiredOnRead("d")
	h.Close()

	assert.ElementsMatch(t, []string{"malformed:a", "decode:b", "write:c", "read:d"}, rec.events)
	assert.Zero(t, h.Dropped())
}

func TestDropsWhenQueueFull(t *testing.T) {
	rec := &record{gate: make(chan struct{})}
	h := New(rec, 1, 1)

	// The worker blocks on the first event; the second fills the queue.
	for i := 0; i < 10; i++ {
		h.ExpiredOnRead("k")
	}
	require.NotZero(t, h.Dropped())

	close(rec.gate)
	h.Close()
	assert.Equal(t, uint64(10), uint64(len(rec.events))+h.Dropped())
}

func TestEventsAfterCloseAreDropped(t *testing.T) {
	h := New(nil, 1, 1)
	h.Close()
	h.Close()
	h.ExpiredOnWrite("k")
	assert.Equal(t, uint64(1), h.Dropped())
}
