package prelude

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "prelude.db")
	store, err := Open(dsn, false)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, store.Close()) })
	return store
}

func TestStore_FreshIsFalseForUnknownModule(t *testing.T) {
	store := openTestStore(t)
	fresh, err := store.Fresh("collections", "deadbeef")
	require.NoError(t, err)
	require.False(t, fresh)
}

func TestStore_RecordThenFresh(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Record("collections", "abc123"))

	fresh, err := store.Fresh("collections", "abc123")
	require.NoError(t, err)
	require.True(t, fresh)

	fresh, err = store.Fresh("collections", "different")
	require.NoError(t, err)
	require.False(t, fresh)
}

func TestStore_RecordOverwritesPriorHash(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Record("collections", "v1"))
	require.NoError(t, store.Record("collections", "v2"))

	fresh, err := store.Fresh("collections", "v1")
	require.NoError(t, err)
	require.False(t, fresh)

	fresh, err = store.Fresh("collections", "v2")
	require.NoError(t, err)
	require.True(t, fresh)
}
