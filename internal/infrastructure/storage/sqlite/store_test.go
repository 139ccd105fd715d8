package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canaworld/cana/internal/domain/ports"
)

// setupTestStore creates an in-memory SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewStore(t *testing.T) {
	t.Run("success with memory database", func(t *testing.T) {
		store, err := NewStore(":memory:")
		require.NoError(t, err)
		defer store.Close()
		assert.NotNil(t, store)
	})

	t.Run("error with empty path", func(t *testing.T) {
		_, err := NewStore("")
		require.Error(t, err)
	})

	t.Run("creates parent directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "cana.db")
		store, err := NewStore(path)
		require.NoError(t, err)
		defer store.Close()
		assert.Equal(t, path, store.Path())
	})
}

func TestStore_LoadEmpty(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestStore_SaveLoad(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []byte(`{"title":"first"}`)))

	data, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"title":"first"}`, string(data))

	// Second save replaces the document.
	require.NoError(t, store.Save(ctx, []byte(`{"title":"second"}`)))

	data, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"title":"second"}`, string(data))
}

func TestStore_Reset(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []byte(`{}`)))
	require.NoError(t, store.Reset(ctx))

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, ports.ErrNotFound)

	// Reset on an empty store is a no-op.
	require.NoError(t, store.Reset(ctx))
}
