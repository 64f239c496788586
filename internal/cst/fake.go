package cst

import "github.com/inflang/infc/internal/diag"

// FakeNode is an in-memory Node implementation used by tests and by tools
// that want to hand-construct a CST without running an actual parser. It
// mirrors the shape tree-sitter grammars produce: a kind tag, named
// fields, and ordered children.
type FakeNode struct {
	kind     string
	text     string
	loc      diag.Location
	fields   map[string][]Node
	children []Node
}

// NewFakeNode creates a leaf or container node of the given kind and text.
func NewFakeNode(kind, text string) *FakeNode {
	return &FakeNode{
		kind:   kind,
		text:   text,
		fields: make(map[string][]Node),
		loc:    diag.Location{Source: text, StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 1 + len(text)},
	}
}

// WithLocation overrides the default single-line location, returning the
// receiver for chaining.
func (n *FakeNode) WithLocation(loc diag.Location) *FakeNode {
	n.loc = loc
	return n
}

// AddField appends child under the named field and also appends it to the
// ordered child list, returning the receiver for chaining.
func (n *FakeNode) AddField(name string, child Node) *FakeNode {
	n.fields[name] = append(n.fields[name], child)
	n.children = append(n.children, child)
	return n
}

// AddChild appends an unnamed child, returning the receiver for chaining.
func (n *FakeNode) AddChild(child Node) *FakeNode {
	n.children = append(n.children, child)
	return n
}

func (n *FakeNode) Kind() string { return n.kind }

func (n *FakeNode) Field(name string) Node {
	vs := n.fields[name]
	if len(vs) == 0 {
		return nil
	}
	return vs[0]
}

func (n *FakeNode) Fields(name string) []Node { return n.fields[name] }

func (n *FakeNode) Children() []Node { return n.children }

func (n *FakeNode) Location() diag.Location { return n.loc }

func (n *FakeNode) Text() string { return n.text }
