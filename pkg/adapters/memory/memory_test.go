package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"souk/pkg/adapters/memory"
)

func TestBackendRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := memory.NewBackend()

	_, ok, err := b.Read(ctx, "products")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Write(ctx, "products", []byte(`[{"id":"1"}]`)))
	data, ok, err := b.Read(ctx, "products")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"1"}]`, string(data))

	keys, err := b.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"products"}, keys)

	require.NoError(t, b.Remove(ctx, "products"))
	_, ok, err = b.Read(ctx, "products")
	require.NoError(t, err)
	assert.False(t, ok)

	// Removing again is a no-op.
	require.NoError(t, b.Remove(ctx, "products"))
}

func TestReadReturnsACopy(t *testing.T) {
	ctx := context.Background()
	b := memory.NewBackend()
	require.NoError(t, b.Write(ctx, "k", []byte("abc")))

	data, _, err := b.Read(ctx, "k")
	require.NoError(t, err)
	data[0] = 'z'

	again, _, err := b.Read(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestSessionFlags(t *testing.T) {
	s := memory.NewSession()
	assert.False(t, s.Flag("hasWelcomed-merchant"))

	s.SetFlag("hasWelcomed-merchant")
	assert.True(t, s.Flag("hasWelcomed-merchant"))
	assert.False(t, s.Flag("hasWelcomed-supplier"))
}
