// Package providertest holds the behavior every provider.Provider must share.
// Provider packages call Run from their tests.
package providertest

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pr "github.com/unkn0wn-root/itemcache/provider"
)

// Factory returns a fresh, empty provider. Run closes it.
type Factory func(t *testing.T) pr.Provider

func Run(t *testing.T, newProvider Factory) {
	t.Run("GetMiss", func(t *testing.T) {
		p := open(t, newProvider)
		v, ok, err := p.Get(context.Background(), "missing")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("SetGetTransparent", func(t *testing.T) {
		p := open(t, newProvider)
		ctx := context.Background()
		in := []byte(`{"info":{"type":"binary"},"value":"AAE="}`)
		require.NoError(t, p.Set(ctx, "k", in, pr.NoExpiration))

		got, ok, err := p.Get(ctx, "k")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, in, got)
	})

	t.Run("ZeroTTLExpiresImmediately", func(t *testing.T) {
		p := open(t, newProvider)
		ctx := context.Background()
		require.NoError(t, p.Set(ctx, "k", []byte("old"), pr.NoExpiration))
		require.NoError(t, p.Set(ctx, "k", []byte("new"), 0))

		_, ok, err := p.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("DelIdempotent", func(t *testing.T) {
		p := open(t, newProvider)
		ctx := context.Background()
		require.NoError(t, p.Set(ctx, "k", []byte("v"), pr.NoExpiration))
		require.NoError(t, p.Del(ctx, "k"))
		require.NoError(t, p.Del(ctx, "k"))

		_, ok, err := p.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("KeysByPrefix", func(t *testing.T) {
		p := open(t, newProvider)
		ctx := context.Background()
		want := make([]string, 0, 4)
		for i := 0; i < 4; i++ {
			k := fmt.Sprintf("user:%d", i)
			want = append(want, k)
			require.NoError(t, p.Set(ctx, k, []byte("v"), pr.NoExpiration))
		}
		require.NoError(t, p.Set(ctx, "order:1", []byte("v"), pr.NoExpiration))

		got, err := p.Keys(ctx, "user:")
		require.NoError(t, err)
		sort.Strings(got)
		assert.Equal(t, want, got)

		all, err := p.Keys(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 5)
	})

	t.Run("ClosedRejectsCalls", func(t *testing.T) {
		p := newProvider(t)
		ctx := context.Background()
		require.NoError(t, p.Close(ctx))

		_, _, err := p.Get(ctx, "k")
		assert.ErrorIs(t, err, pr.ErrClosed)
		assert.ErrorIs(t, p.Set(ctx, "k", []byte("v"), pr.NoExpiration), pr.ErrClosed)
		assert.ErrorIs(t, p.Del(ctx, "k"), pr.ErrClosed)
		_, err = p.Keys(ctx, "")
		assert.ErrorIs(t, err, pr.ErrClosed)
		assert.ErrorIs(t, p.Close(ctx), pr.ErrClosed)
	})
}

func open(t *testing.T, newProvider Factory) pr.Provider {
	t.Helper()
	p := newProvider(t)
	t.Cleanup(func() { _ = p.Close(context.Background()) })
	return p
}
