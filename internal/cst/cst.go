// Package cst defines the concrete syntax tree contract the AST builder
// consumes (§6.1): a tree of nodes carrying a string kind, named and
// positional children, and source-position metadata. This package owns
// only the contract and a couple of concrete implementations of it — the
// grammar that actually produces .inf CSTs is an external collaborator,
// out of scope for this module (§1).
package cst

import "github.com/inflang/infc/internal/diag"

// Node is one node of a concrete syntax tree.
type Node interface {
	// Kind is the grammar's string tag for this node, e.g. "source_file",
	// "binary_expression", "+".
	Kind() string

	// Field looks up a single named child, as produced by a tree-sitter
	// style grammar's field declarations. It returns nil if the field is
	// absent.
	Field(name string) Node

	// Fields returns every value bound to name, in order, for grammar
	// fields that can repeat (e.g. repeated `argument` children).
	Fields(name string) []Node

	// Children returns every child in source order, named or not.
	Children() []Node

	// Location returns this node's source span.
	Location() diag.Location

	// Text returns the verbatim source text this node spans.
	Text() string
}

// Root is one compilation unit handed to the AST builder: a CST whose
// root node is a "source_file", together with the source bytes it was
// parsed from (§4.C).
type Root struct {
	Node   Node
	Source string
	File   string
}
