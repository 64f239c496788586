package ast

// Resolve fetches the node stored under id in a and asserts it to T. It
// panics if id is not present or holds a different concrete type — both
// indicate a builder bug, not a user-facing error, since ids are only ever
// produced by the builder that owns the arena.
func Resolve[T Node](a *Arena, id NodeID) T {
	n := a.Get(id)
	typed, ok := n.(T)
	if !ok {
		panic("ast: node id does not hold the expected type")
	}
	return typed
}

// Expr is shorthand for Resolve[Expression].
func Expr(a *Arena, id NodeID) Expression { return Resolve[Expression](a, id) }

// Stmt is shorthand for Resolve[Statement].
func Stmt(a *Arena, id NodeID) Statement { return Resolve[Statement](a, id) }

// TypeOf is shorthand for Resolve[TypeExpr].
func TypeOf(a *Arena, id NodeID) TypeExpr { return Resolve[TypeExpr](a, id) }
