package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitPreludeSpec(t *testing.T) {
	name, dir, err := splitPreludeSpec("collections=/opt/infc/lib/collections")
	require.NoError(t, err)
	require.Equal(t, "collections", name)
	require.Equal(t, "/opt/infc/lib/collections", dir)
}

func TestSplitPreludeSpec_RejectsMissingEquals(t *testing.T) {
	_, _, err := splitPreludeSpec("collections")
	require.Error(t, err)
}

func TestLoadModule_FailsClearlyWithoutRegisteredGrammar(t *testing.T) {
	_, _, err := loadModule(context.Background(), t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "no CST grammar registered")
}

func TestAbsOrSelf_MakesRelativePathAbsolute(t *testing.T) {
	got := absOrSelf(".")
	require.True(t, len(got) > 1)
	require.NotEqual(t, ".", got)
}
