package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindModuleRoot_PrefersLibOverMain(t *testing.T) {
	dir := t.TempDir()
	srcDir := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(srcDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "lib.inf"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "main.inf"), []byte(""), 0o644))

	root, ok := FindModuleRoot(dir)
	require.True(t, ok)
	require.Equal(t, filepath.Join(srcDir, "lib.inf"), root)
}

func TestFindModuleRoot_FallsBackToMain(t *testing.T) {
	dir := t.TempDir()
	srcDir := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(srcDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "main.inf"), []byte(""), 0o644))

	root, ok := FindModuleRoot(dir)
	require.True(t, ok)
	require.Equal(t, filepath.Join(srcDir, "main.inf"), root)
}

func TestFindModuleRoot_None(t *testing.T) {
	dir := t.TempDir()
	_, ok := FindModuleRoot(dir)
	require.False(t, ok)
}

func TestFindModuleRoot_IgnoresRootLevelFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.inf"), []byte(""), 0o644))

	_, ok := FindModuleRoot(dir)
	require.False(t, ok)
}

func TestDiscoverSources_FindsNestedFiles(t *testing.T) {
	dir := t.TempDir()
	srcDir := filepath.Join(dir, "src")
	nested := filepath.Join(srcDir, "collections")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "lib.inf"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "list.inf"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "notes.txt"), []byte(""), 0o644))

	root, ok := FindModuleRoot(dir)
	require.True(t, ok)

	files, err := DiscoverSources(root)
	require.NoError(t, err)
	require.Len(t, files, 2)
}
