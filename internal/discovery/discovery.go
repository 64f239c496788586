// Package discovery implements external prelude discovery (§6.2) and the
// glob-based source enumeration that feeds the AST Builder with the set
// of (CST root, source) pairs it consumes for a module.
package discovery

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// sourceExt is the file extension recognized as infc source.
const sourceExt = ".inf"

// FindModuleRoot implements §6.2: it probes baseDir/src/lib.inf then
// baseDir/src/main.inf, in that order, and returns the first that
// exists. Root-level files directly under baseDir (not under src/) are
// intentionally not discovered.
func FindModuleRoot(baseDir string) (string, bool) {
	for _, candidate := range []string{"lib.inf", "main.inf"} {
		path := filepath.Join(baseDir, "src", candidate)
		if fileExists(path) {
			return path, true
		}
	}
	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// DiscoverSources walks the src/ tree of the module rooted at
// moduleRoot's containing base directory and returns every `.inf` file
// it finds, sorted lexically by doublestar.Glob. This is the set of
// source paths the driver reads and hands to the AST Builder, one CST
// parse per file, to assemble the SourceFile arena entries the checker
// operates on.
func DiscoverSources(moduleRoot string) ([]string, error) {
	srcDir := filepath.Dir(moduleRoot)
	pattern := filepath.ToSlash(filepath.Join(srcDir, "**", "*"+sourceExt))
	return doublestar.FilepathGlob(pattern)
}
