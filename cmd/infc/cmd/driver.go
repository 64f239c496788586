package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/inflang/infc/internal/ast"
	"github.com/inflang/infc/internal/astbuilder"
	"github.com/inflang/infc/internal/checker"
	"github.com/inflang/infc/internal/config"
	"github.com/inflang/infc/internal/cst"
	"github.com/inflang/infc/internal/discovery"
	"github.com/inflang/infc/internal/prelude"
)

const sourceExt = ".inf"

// loadModule discovers, parses, and builds the arena for the module
// rooted at dir, using whatever grammar is registered for sourceExt.
func loadModule(ctx context.Context, dir string) (*ast.Arena, []ast.NodeID, error) {
	grammar, ok := cst.LookupGrammar(sourceExt)
	if !ok {
		return nil, nil, fmt.Errorf("no CST grammar registered for %s; link a grammar package that calls cst.RegisterGrammar(%q, ...) in its init()", sourceExt, sourceExt)
	}

	moduleRoot, ok := discovery.FindModuleRoot(dir)
	if !ok {
		return nil, nil, fmt.Errorf("no module root found under %s (expected src/lib.inf or src/main.inf)", dir)
	}

	files, err := discovery.DiscoverSources(moduleRoot)
	if err != nil {
		return nil, nil, fmt.Errorf("discovering sources: %w", err)
	}
	sort.Strings(files)

	roots := make([]cst.Root, 0, len(files))
	for _, file := range files {
		root, err := parseFile(ctx, grammar, file)
		if err != nil {
			return nil, nil, err
		}
		roots = append(roots, root)
	}

	return astbuilder.Build(roots)
}

func parseFile(ctx context.Context, grammar cst.Grammar, file string) (cst.Root, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return cst.Root{}, fmt.Errorf("reading %s: %w", file, err)
	}
	root, err := cst.Parse(ctx, grammar, file, string(data))
	if err != nil {
		return cst.Root{}, fmt.Errorf("parsing %s: %w", file, err)
	}
	if cst.HasError(root.Node) {
		return cst.Root{}, fmt.Errorf("%s contains a syntax error", file)
	}
	return root, nil
}

// openPreludeLoader builds a prelude.Loader backed by cfg's cache path,
// using the same grammar registered for sourceExt.
func openPreludeLoader(cfg config.Config) (*prelude.Loader, *prelude.Store, error) {
	grammar, ok := cst.LookupGrammar(sourceExt)
	if !ok {
		return nil, nil, fmt.Errorf("no CST grammar registered for %s", sourceExt)
	}
	store, err := prelude.Open(cfg.PreludeCachePath, cfg.Verbose)
	if err != nil {
		return nil, nil, err
	}
	return prelude.NewLoader(store, grammar), store, nil
}

// loadPrelude resolves the named external modules (each a directory
// argument in "name=path" form) into a checker.ExternPrelude.
func loadPrelude(ctx context.Context, cfg config.Config, specs []string) (checker.ExternPrelude, func(), error) {
	if len(specs) == 0 {
		return nil, func() {}, nil
	}

	loader, store, err := openPreludeLoader(cfg)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() { store.Close() }

	prel := make(checker.ExternPrelude, len(specs))
	for _, spec := range specs {
		name, dir, err := splitPreludeSpec(spec)
		if err != nil {
			closeFn()
			return nil, nil, err
		}
		mod, err := loader.Load(ctx, name, dir)
		if err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("loading prelude %s: %w", name, err)
		}
		prel[name] = mod
	}
	return prel, closeFn, nil
}

func splitPreludeSpec(spec string) (name, dir string, err error) {
	for i := 0; i < len(spec); i++ {
		if spec[i] == '=' {
			return spec[:i], spec[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("invalid --prelude value %q, expected name=path", spec)
}

func absOrSelf(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	return abs
}
