package astbuilder

import (
	"github.com/inflang/infc/internal/cst"
	"github.com/inflang/infc/internal/diag"
)

// locSetter is satisfied by every *ast.<Node> via its embedded base.
type locSetter interface {
	SetLoc(diag.Location)
}

// withLoc stamps node's location from n's and returns node, so callers can
// write `b.insert(parent, withLoc(&ast.Foo{...}, n))`.
func withLoc[T any](node T, n cst.Node) T {
	if ls, ok := any(node).(locSetter); ok {
		ls.SetLoc(n.Location())
	}
	return node
}
