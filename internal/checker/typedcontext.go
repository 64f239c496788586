package checker

import (
	"github.com/inflang/infc/internal/ast"
	"github.com/inflang/infc/internal/typeinfo"
)

// TypedContext is the type checker's output (§4.G): a node-id-keyed map
// from AST node to inferred TypeInfo, plus read-through access to the
// arena it annotates. It is written only during checking and is
// append-or-overwrite; later phases (e.g. the WASM translator's callers)
// only read it.
type TypedContext struct {
	arena *ast.Arena
	types map[ast.NodeID]typeinfo.TypeInfo
}

// NewTypedContext creates an empty context over arena.
func NewTypedContext(arena *ast.Arena) *TypedContext {
	return &TypedContext{arena: arena, types: make(map[ast.NodeID]typeinfo.TypeInfo)}
}

// Arena returns the underlying arena for traversal.
func (c *TypedContext) Arena() *ast.Arena { return c.arena }

// Set records ty as id's inferred type, overwriting any prior entry.
func (c *TypedContext) Set(id ast.NodeID, ty typeinfo.TypeInfo) {
	c.types[id] = ty
}

// Get returns id's recorded type, if any.
func (c *TypedContext) Get(id ast.NodeID) (typeinfo.TypeInfo, bool) {
	ty, ok := c.types[id]
	return ty, ok
}

// Filter returns every node-id that both satisfies predicate (applied to
// the arena node) and has a recorded type.
func (c *TypedContext) Filter(predicate func(ast.Node) bool) []ast.NodeID {
	var out []ast.NodeID
	for _, n := range c.arena.All() {
		if predicate(n) {
			if _, ok := c.types[n.ID()]; ok {
				out = append(out, n.ID())
			}
		}
	}
	return out
}

// Len reports how many nodes carry a recorded type.
func (c *TypedContext) Len() int { return len(c.types) }
