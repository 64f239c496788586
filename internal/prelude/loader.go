package prelude

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sort"

	"github.com/inflang/infc/internal/astbuilder"
	"github.com/inflang/infc/internal/checker"
	"github.com/inflang/infc/internal/cst"
	"github.com/inflang/infc/internal/discovery"
)

// Loader builds checker.PreludeModule values for named external modules,
// consulting a Store to decide whether a module's sources have changed
// since it was last built and keeping already-built arenas in memory for
// the remainder of the process (§5: an ExternPrelude, once loaded, is
// consumed by exactly one compilation; a Loader lets several compilations
// in the same driver run reuse the same built arena instead of
// re-parsing and re-building it from source every time).
type Loader struct {
	store   *Store
	grammar cst.Grammar
	built   map[string]checker.PreludeModule
}

// NewLoader creates a Loader backed by store, parsing sources with grammar.
func NewLoader(store *Store, grammar cst.Grammar) *Loader {
	return &Loader{store: store, grammar: grammar, built: map[string]checker.PreludeModule{}}
}

// Load resolves the external module named name, rooted at baseDir, into a
// PreludeModule. baseDir is searched the way §6.2 describes (src/lib.inf
// then src/main.inf), then every .inf file under that module's src/ tree
// is read, hashed, and — only if the hash differs from what Store last
// recorded, or the module hasn't been built yet this process — parsed and
// built into a fresh arena.
func (l *Loader) Load(ctx context.Context, name, baseDir string) (checker.PreludeModule, error) {
	moduleRoot, ok := discovery.FindModuleRoot(baseDir)
	if !ok {
		return checker.PreludeModule{}, fmt.Errorf("prelude: no module root found under %s", baseDir)
	}

	files, err := discovery.DiscoverSources(moduleRoot)
	if err != nil {
		return checker.PreludeModule{}, fmt.Errorf("prelude: discovering sources for %s: %w", name, err)
	}
	sort.Strings(files)

	hash, sources, err := hashSources(files)
	if err != nil {
		return checker.PreludeModule{}, err
	}

	if cached, ok := l.built[name]; ok {
		if fresh, err := l.store.Fresh(name, hash); err == nil && fresh {
			return cached, nil
		}
	}

	roots := make([]cst.Root, 0, len(files))
	for _, file := range files {
		root, err := cst.Parse(ctx, l.grammar, file, sources[file])
		if err != nil {
			return checker.PreludeModule{}, fmt.Errorf("prelude: parsing %s: %w", file, err)
		}
		roots = append(roots, root)
	}

	arena, sourceFiles, err := astbuilder.Build(roots)
	if err != nil {
		return checker.PreludeModule{}, fmt.Errorf("prelude: building %s: %w", name, err)
	}

	mod := checker.PreludeModule{Arena: arena, SourceFiles: sourceFiles}
	l.built[name] = mod
	if err := l.store.Record(name, hash); err != nil {
		return checker.PreludeModule{}, fmt.Errorf("prelude: recording cache entry for %s: %w", name, err)
	}
	return mod, nil
}

// hashSources reads every file and returns a single hash of their
// concatenated contents (in the given order) plus a map of file to
// contents, so the caller hashes and parses off one read each.
func hashSources(files []string) (string, map[string]string, error) {
	h := sha256.New()
	sources := make(map[string]string, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", nil, fmt.Errorf("prelude: reading %s: %w", file, err)
		}
		sources[file] = string(data)
		h.Write([]byte(file))
		h.Write(data)
	}
	return hex.EncodeToString(h.Sum(nil)), sources, nil
}
