package ttlcache

import (
	"context"
	"testing"
	"time"

	pr "github.com/unkn0wn-root/itemcache/provider"
	"github.com/unkn0wn-root/itemcache/provider/providertest"
)

func TestProviderContract(t *testing.T) {
	providertest.Run(t, func(t *testing.T) pr.Provider {
		return New(Config{Janitor: true})
	})
}

func TestPositiveTTLExpires(t *testing.T) {
	ctx := context.Background()
	p := New(Config{})
	t.Cleanup(func() { _ = p.Close(ctx) })

	if err := p.Set(ctx, "short", []byte("v"), 50*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := p.Get(ctx, "short"); !ok {
		t.Fatalf("expected hit before expiry")
	}
	time.Sleep(120 * time.Millisecond)

	if _, ok, _ := p.Get(ctx, "short"); ok {
		t.Fatalf("expected miss after expiry")
	}
	keys, err := p.Keys(ctx, "")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("expired key still listed: %v", keys)
	}
}
