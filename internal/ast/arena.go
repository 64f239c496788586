package ast

import "math"

// NodeID is a stable, 32-bit identifier assigned to every AST node at
// construction time. It is unique within a single compilation.
type NodeID uint32

// NoParent is the reserved sentinel parent id for root-level nodes.
const NoParent NodeID = math.MaxUint32

// idGen is a monotonic per-arena counter. A monotonic counter is simpler
// to reason about than random generation with collision checks and is
// sufficient for the single-threaded-per-compilation model of §5.
type idGen struct {
	next uint32
}

func (g *idGen) alloc() NodeID {
	id := NodeID(g.next)
	g.next++
	return id
}

// entry pairs a stored node with the id of its parent (NoParent for roots).
type entry struct {
	node   Node
	parent NodeID
}

// Arena is the interned, owning store for every AST node produced during a
// single compilation (component A). Nodes are looked up by id; there is no
// deletion. An Arena is exclusively owned by whichever phase currently
// holds it — the builder while constructing, the checker while annotating,
// later phases read-only.
type Arena struct {
	gen     idGen
	entries map[NodeID]entry
	order   []NodeID // insertion order, used for deterministic traversal
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{entries: make(map[NodeID]entry)}
}

// Insert stores node under a freshly allocated id, records parent as its
// parent link (NoParent for a root node), and returns the assigned id.
// The node's setID is called so the node can report its own identity.
func (a *Arena) Insert(node Node, parent NodeID) NodeID {
	id := a.gen.alloc()
	node.setID(id)
	a.entries[id] = entry{node: node, parent: parent}
	a.order = append(a.order, id)
	return id
}

// Get returns the node stored under id, or nil if no such node exists.
func (a *Arena) Get(id NodeID) Node {
	return a.entries[id].node
}

// Parent returns the parent id of id, or NoParent if id is a root or
// unknown.
func (a *Arena) Parent(id NodeID) NodeID {
	e, ok := a.entries[id]
	if !ok {
		return NoParent
	}
	return e.parent
}

// Len returns the number of nodes stored in the arena.
func (a *Arena) Len() int {
	return len(a.order)
}

// All returns every node in insertion order.
func (a *Arena) All() []Node {
	nodes := make([]Node, 0, len(a.order))
	for _, id := range a.order {
		nodes = append(nodes, a.entries[id].node)
	}
	return nodes
}

// Filter returns every node matching predicate, in insertion order.
func (a *Arena) Filter(predicate func(Node) bool) []Node {
	var out []Node
	for _, id := range a.order {
		if n := a.entries[id].node; predicate(n) {
			out = append(out, n)
		}
	}
	return out
}

// IsAncestor reports whether ancestor is id itself or an ancestor of id,
// walking parent links iteratively so deep trees never recurse (§9).
func (a *Arena) IsAncestor(ancestor, id NodeID) bool {
	for cur := id; ; {
		if cur == ancestor {
			return true
		}
		if cur == NoParent {
			return false
		}
		cur = a.Parent(cur)
	}
}
