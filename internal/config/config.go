// Package config loads ambient project configuration for the infc driver:
// where to look for a module's sources, where the prelude cache lives,
// and whether to run verbosely. It loads an optional `.env` file with
// github.com/joho/godotenv before reading environment variables, the way
// this corpus's other dependency-bearing CLI (termfx-morfx) loads
// project-local `.env` configuration ahead of flag parsing.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	envModuleRoot   = "INFC_MODULE_ROOT"
	envPreludeCache = "INFC_PRELUDE_CACHE"
	envVerbose      = "INFC_VERBOSE"

	defaultPreludeCacheFile = ".infc/prelude-cache.db"
)

// Config is the resolved set of ambient settings a compilation run needs
// beyond what's passed explicitly on the command line.
type Config struct {
	// ModuleRootDir is read from INFC_MODULE_ROOT and defaults to the
	// current working directory. The check and build commands do not use
	// it: they probe the directory given as their argument, or ".".
	ModuleRootDir string

	// PreludeCachePath is the sqlite DSN for internal/prelude's Store.
	// Defaults to .infc/prelude-cache.db under the current working
	// directory.
	PreludeCachePath string

	// Verbose turns on the prelude cache's gorm logger at logger.Info
	// level. Nothing else in the driver reads it.
	Verbose bool
}

// Load reads an optional .env file in the current directory (its absence
// is not an error — godotenv.Load's error is only surfaced when .env
// exists but cannot be parsed) and then resolves Config from environment
// variables, applying defaults relative to the working directory.
func Load() (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Config{}, err
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		ModuleRootDir:    envOrDefault(envModuleRoot, wd),
		PreludeCachePath: envOrDefault(envPreludeCache, filepath.Join(wd, defaultPreludeCacheFile)),
		Verbose:          envBool(envVerbose),
	}
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return false
	}
	return v
}
