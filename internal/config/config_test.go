package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func withEnv(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	require.NoError(t, os.Setenv(key, value))
	t.Cleanup(func() {
		if had {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

func TestLoad_DefaultsRelativeToWorkingDirectory(t *testing.T) {
	os.Unsetenv(envModuleRoot)
	os.Unsetenv(envPreludeCache)
	os.Unsetenv(envVerbose)

	cfg, err := Load()
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.Equal(t, wd, cfg.ModuleRootDir)
	require.Equal(t, filepath.Join(wd, defaultPreludeCacheFile), cfg.PreludeCachePath)
	require.False(t, cfg.Verbose)
}

func TestLoad_EnvOverrides(t *testing.T) {
	withEnv(t, envModuleRoot, "/projects/widget")
	withEnv(t, envPreludeCache, "/tmp/cache.db")
	withEnv(t, envVerbose, "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/projects/widget", cfg.ModuleRootDir)
	require.Equal(t, "/tmp/cache.db", cfg.PreludeCachePath)
	require.True(t, cfg.Verbose)
}

func TestEnvBool_InvalidDefaultsFalse(t *testing.T) {
	withEnv(t, envVerbose, "not-a-bool")
	require.False(t, envBool(envVerbose))
}
