package checker

import (
	"github.com/inflang/infc/internal/diag"
	"github.com/inflang/infc/internal/symbols"
)

// resolveImports is phase 4: resolve every scope's unresolved imports,
// binding Plain/Partial targets directly and expanding Glob targets'
// public symbols, with cycle detection on glob targets (§4.F.4).
func (c *Checker) resolveImports() {
	for scope := symbols.ScopeID(0); uint32(scope) < c.symbols.NextID(); scope++ {
		c.resolveScopeImports(scope)
	}
}

func (c *Checker) resolveScopeImports(scope symbols.ScopeID) {
	for _, imp := range c.symbols.PendingImports(scope) {
		switch {
		case imp.Glob:
			c.resolveGlobImport(scope, imp, map[symbols.ScopeID]bool{})
		case len(imp.Items) > 0:
			c.resolvePartialImport(scope, imp)
		default:
			c.resolvePlainImport(scope, imp)
		}
	}
}

func (c *Checker) resolvePlainImport(scope symbols.ScopeID, imp symbols.UnresolvedImport) {
	sym, defScope, ok := c.symbols.ResolveQualifiedName(scope, imp.Path)
	if !ok {
		c.diags.Errorf(diag.ImportResolutionFailed, joinPath(imp.Path), diag.Location{},
			"cannot resolve import %q", joinPath(imp.Path))
		return
	}
	name := sym.Name
	if imp.Alias != "" {
		name = imp.Alias
	}
	c.bindImportedSymbol(scope, name, sym, defScope)
}

func (c *Checker) resolvePartialImport(scope symbols.ScopeID, imp symbols.UnresolvedImport) {
	for _, item := range imp.Items {
		path := append(append([]string(nil), imp.Path...), item.Name)
		sym, defScope, ok := c.symbols.ResolveQualifiedName(scope, path)
		if !ok {
			c.diags.Errorf(diag.ImportResolutionFailed, joinPath(path), diag.Location{},
				"cannot resolve import %q", joinPath(path))
			continue
		}
		name := item.Name
		if item.Alias != "" {
			name = item.Alias
		}
		c.bindImportedSymbol(scope, name, sym, defScope)
	}
}

func (c *Checker) resolveGlobImport(scope symbols.ScopeID, imp symbols.UnresolvedImport, inProgress map[symbols.ScopeID]bool) {
	target, ok := c.symbols.ModuleByPath(joinPath(imp.Path))
	if !ok {
		c.diags.Errorf(diag.ImportResolutionFailed, joinPath(imp.Path), diag.Location{},
			"cannot resolve glob import %q", joinPath(imp.Path))
		return
	}
	if inProgress[target] {
		c.diags.Errorf(diag.CircularImport, joinPath(imp.Path), diag.Location{},
			"circular import through %q", joinPath(imp.Path))
		return
	}
	inProgress[target] = true
	defer delete(inProgress, target)

	// Resolve the target's own glob imports first so re-exported public
	// symbols chain through correctly (§4.F.4).
	for _, pending := range c.symbols.PendingImports(target) {
		if pending.Glob {
			c.resolveGlobImport(target, pending, inProgress)
		}
	}

	public := c.symbols.PublicSymbols(target)
	if len(public) == 0 {
		c.diags.Errorf(diag.EmptyGlobImport, joinPath(imp.Path), diag.Location{},
			"glob import of %q exports no public symbols", joinPath(imp.Path))
	}
	for name, sym := range public {
		c.bindImportedSymbol(scope, name, sym, target)
	}
}

func (c *Checker) bindImportedSymbol(scope symbols.ScopeID, name string, sym *symbols.Symbol, defScope symbols.ScopeID) {
	if !c.symbols.IsVisible(sym, defScope, scope) {
		c.diags.Errorf(diag.PrivateAccessViolation, name, diag.Location{},
			"%q is private to its defining scope", name)
		// Still bind it, to avoid cascading "undefined" errors (§4.F.4).
	}
	c.symbols.BindResolvedImport(scope, name, symbols.ResolvedImport{ScopeID: defScope, Symbol: sym})
}

func joinPath(segs []string) string {
	out := ""
	for i, s := range segs {
		if i > 0 {
			out += "::"
		}
		out += s
	}
	return out
}
