package bigcache

import (
	"testing"
	"time"

	pr "github.com/unkn0wn-root/itemcache/provider"
	"github.com/unkn0wn-root/itemcache/provider/providertest"
)

func TestProviderContract(t *testing.T) {
	providertest.Run(t, func(t *testing.T) pr.Provider {
		p, err := New(Config{LifeWindow: time.Hour, MaxEntriesInWindow: 64})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		return p
	})
}
