package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"souk/pkg/adapters/sqlite"
)

func newBackend(t *testing.T) *sqlite.Backend {
	t.Helper()
	b, err := sqlite.NewBackend(filepath.Join(t.TempDir(), "souk.db"))
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return b
}

func TestBackendRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := newBackend(t)

	_, ok, err := b.Read(ctx, "products")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Write(ctx, "products", []byte(`[{"id":"1"}]`)))
	data, ok, err := b.Read(ctx, "products")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"1"}]`, string(data))

	// Writing again replaces, never duplicates.
	require.NoError(t, b.Write(ctx, "products", []byte(`[]`)))
	data, _, err = b.Read(ctx, "products")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	require.NoError(t, b.Remove(ctx, "products"))
	require.NoError(t, b.Remove(ctx, "products"))
	_, ok, _ = b.Read(ctx, "products")
	assert.False(t, ok)
}

func TestKeysSorted(t *testing.T) {
	ctx := context.Background()
	b := newBackend(t)

	require.NoError(t, b.Write(ctx, "partners", []byte(`[]`)))
	require.NoError(t, b.Write(ctx, "exhibitions_sup1", []byte(`[]`)))
	require.NoError(t, b.Write(ctx, "products", []byte(`[]`)))

	keys, err := b.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"exhibitions_sup1", "partners", "products"}, keys)
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "souk.db")

	first, err := sqlite.NewBackend(path)
	require.NoError(t, err)
	require.NoError(t, first.Write(ctx, "products", []byte(`[{"id":"1"}]`)))
	require.NoError(t, first.Close())

	second, err := sqlite.NewBackend(path)
	require.NoError(t, err)
	defer second.Close()

	data, ok, err := second.Read(ctx, "products")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"1"}]`, string(data))
}
