package prelude

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashSources_StableForSameContent(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.inf")
	b := filepath.Join(dir, "b.inf")
	require.NoError(t, os.WriteFile(a, []byte("struct Point { x: i32 }"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("fn origin() -> Point { @ }"), 0o644))

	hash1, sources1, err := hashSources([]string{a, b})
	require.NoError(t, err)
	require.Len(t, sources1, 2)

	hash2, _, err := hashSources([]string{a, b})
	require.NoError(t, err)
	require.Equal(t, hash1, hash2)
}

func TestHashSources_ChangesWithContent(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.inf")
	require.NoError(t, os.WriteFile(a, []byte("struct Point { x: i32 }"), 0o644))

	before, _, err := hashSources([]string{a})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(a, []byte("struct Point { x: i32, y: i32 }"), 0o644))
	after, _, err := hashSources([]string{a})
	require.NoError(t, err)

	require.NotEqual(t, before, after)
}

func TestHashSources_OrderSensitive(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.inf")
	b := filepath.Join(dir, "b.inf")
	require.NoError(t, os.WriteFile(a, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("y"), 0o644))

	ab, _, err := hashSources([]string{a, b})
	require.NoError(t, err)
	ba, _, err := hashSources([]string{b, a})
	require.NoError(t, err)

	require.NotEqual(t, ab, ba)
}
