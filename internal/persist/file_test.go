package persist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Load(ctx, WalletKey)
	assert.ErrorIs(t, err, ErrNotFound)

	blob := []byte(`{"balance_cents":1000}`)
	require.NoError(t, store.Save(ctx, WalletKey, blob))

	loaded, err := store.Load(ctx, WalletKey)
	require.NoError(t, err)
	assert.Equal(t, blob, loaded)

	// Overwrite replaces, never appends.
	next := []byte(`{"balance_cents":2000}`)
	require.NoError(t, store.Save(ctx, WalletKey, next))
	loaded, err = store.Load(ctx, WalletKey)
	require.NoError(t, err)
	assert.Equal(t, next, loaded)
}

func TestFileStore_KeysAreIndependent(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, WalletKey, []byte("wallet")))
	require.NoError(t, store.Save(ctx, BookingsKey, []byte("bookings")))

	w, err := store.Load(ctx, WalletKey)
	require.NoError(t, err)
	b, err := store.Load(ctx, BookingsKey)
	require.NoError(t, err)

	assert.Equal(t, []byte("wallet"), w)
	assert.Equal(t, []byte("bookings"), b)
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Save(ctx, WalletKey, []byte("data")))
	loaded, err := store.Load(ctx, WalletKey)
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), loaded)

	// The store keeps its own copy.
	loaded[0] = 'X'
	again, err := store.Load(ctx, WalletKey)
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), again)
}
