// Package ast defines the arena-resident abstract syntax tree for the
// semantic analysis core: a closed set of tagged-union node kinds (§3.3),
// each carrying a stable NodeID and a source Location.
package ast

import "github.com/inflang/infc/internal/diag"

// Node is the common capability every AST node provides: identity,
// location, and enough type information for exhaustive switches.
type Node interface {
	ID() NodeID
	Loc() diag.Location
	setID(NodeID)
}

// base is embedded by every concrete node type and supplies ID()/Loc()/
// setID(). Embedding instead of an interface-per-field keeps node structs
// flat value types that construction code can build with a literal.
type base struct {
	id  NodeID
	loc diag.Location
}

func (b *base) ID() NodeID         { return b.id }
func (b *base) Loc() diag.Location { return b.loc }
func (b *base) setID(id NodeID)    { b.id = id }

// SetLoc records a node's source location. Builders call this once, right
// after constructing a node and before inserting it into an Arena.
func (b *base) SetLoc(loc diag.Location) { b.loc = loc }

// Visibility controls whether a symbol is reachable from outside its
// defining scope. Private is the default unless the CST says otherwise.
type Visibility int

const (
	Private Visibility = iota
	Public
)

// OperatorKind enumerates the binary operators of §3.3.
type OperatorKind int

const (
	OpAdd OperatorKind = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
	OpBitAnd
	OpBitOr
	OpBitXor
	OpBitNot
	OpShl
	OpShr
)

// UnaryOperatorKind enumerates the prefix unary operators of §3.3.
type UnaryOperatorKind int

const (
	UnaryNot UnaryOperatorKind = iota
	UnaryNeg
	UnaryBitNot
)

// BlockFlavor distinguishes the executable plain block from the
// specification-annotation scopes, which share the statement grammar but
// are never executed (§3.3).
type BlockFlavor int

const (
	BlockPlain BlockFlavor = iota
	BlockAssume
	BlockForall
	BlockExists
	BlockUnique
)
