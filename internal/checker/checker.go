// Package checker implements the multi-phase, error-recovering type
// checker (§4.F) and the TypedContext it produces (§4.G). It resolves
// scoping and visibility via package symbols and represents semantic
// types via package typeinfo.
package checker

import (
	"github.com/inflang/infc/internal/ast"
	"github.com/inflang/infc/internal/diag"
	"github.com/inflang/infc/internal/symbols"
)

// ExternPrelude maps an external module name to its pre-parsed arena and
// the ids of its top-level SourceFile nodes (§4.F phase 1, §6.2).
type ExternPrelude map[string]PreludeModule

// PreludeModule is one loaded external module: its own arena and the
// SourceFile node ids at that arena's top level.
type PreludeModule struct {
	Arena       *ast.Arena
	SourceFiles []ast.NodeID
}

// Checker runs the six ordered phases of §4.F over a single compilation's
// arena, producing a TypedContext or an aggregated diag.List.
type Checker struct {
	arena       *ast.Arena
	sourceFiles []ast.NodeID
	prelude     ExternPrelude

	symbols *symbols.Table
	ctx     *TypedContext
	diags   *diag.List
}

// Check runs all six phases over arena's sourceFiles, with an optional
// prelude, and returns a sealed TypedContext or the aggregated errors
// recorded along the way.
func Check(arena *ast.Arena, sourceFiles []ast.NodeID, prelude ExternPrelude) (*TypedContext, error) {
	c := &Checker{
		arena:       arena,
		sourceFiles: sourceFiles,
		prelude:     prelude,
		symbols:     symbols.NewTable(),
		diags:       &diag.List{},
	}
	c.ctx = NewTypedContext(arena)

	c.loadPrelude()
	c.processDirectives()
	c.registerTypes()
	c.resolveImports()
	c.collectFunctionAndConstantDefinitions()
	c.inferVariables()

	if c.diags.HasErrors() {
		return nil, c.diags.Err()
	}
	return c.ctx, nil
}

func astVisibility(v ast.Visibility) symbols.Visibility {
	if v == ast.Public {
		return symbols.Public
	}
	return symbols.Private
}
