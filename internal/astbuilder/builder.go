// Package astbuilder lowers a concrete syntax tree (§6.1) into the
// arena-resident AST of package ast (§4.C). It owns no grammar of its
// own: it walks whatever cst.Node tree it is handed and dispatches on
// Kind().
package astbuilder

import (
	"fmt"

	"github.com/inflang/infc/internal/ast"
	"github.com/inflang/infc/internal/cst"
	"github.com/inflang/infc/internal/diag"
)

// Builder lowers one or more cst.Root values into a shared arena.
type Builder struct {
	arena *ast.Arena
}

// New creates a Builder over a fresh arena.
func New() *Builder {
	return &Builder{arena: ast.NewArena()}
}

// Build lowers every root in turn, inserting each resulting SourceFile at
// arena top level. It stops at the first malformed CST, since a
// half-built node tree cannot be safely handed to the type checker.
func Build(roots []cst.Root) (*ast.Arena, []ast.NodeID, error) {
	b := New()
	ids := make([]ast.NodeID, 0, len(roots))
	for _, root := range roots {
		id, err := b.buildSourceFile(root)
		if err != nil {
			return nil, nil, err
		}
		ids = append(ids, id)
	}
	return b.arena, ids, nil
}

// Arena returns the builder's underlying arena, for callers that build
// incrementally via BuildInto rather than the one-shot Build.
func (b *Builder) Arena() *ast.Arena { return b.arena }

// BuildInto lowers a single root into the builder's shared arena,
// returning the new SourceFile's id.
func (b *Builder) BuildInto(root cst.Root) (ast.NodeID, error) {
	return b.buildSourceFile(root)
}

func (b *Builder) insert(parent ast.NodeID, node ast.Node) ast.NodeID {
	return b.arena.Insert(node, parent)
}

// malformed reports a fatal construction error: n was expected to carry
// the named field or child, and didn't.
func (b *Builder) malformed(n cst.Node, what string) error {
	return &diag.Error{
		Kind:     diag.MalformedCST,
		Name:     n.Kind(),
		Location: n.Location(),
		Message:  fmt.Sprintf("malformed %s node: missing %s", n.Kind(), what),
	}
}

// field looks up a required named field, returning a malformed-CST error
// if absent.
func (b *Builder) field(n cst.Node, name string) (cst.Node, error) {
	f := n.Field(name)
	if f == nil {
		return nil, b.malformed(n, fmt.Sprintf("field %q", name))
	}
	return f, nil
}

func (b *Builder) buildSourceFile(root cst.Root) (ast.NodeID, error) {
	n := root.Node
	if n.Kind() != "source_file" {
		return 0, b.malformed(n, `a "source_file" root`)
	}

	sf := &ast.SourceFile{}
	id := b.insert(ast.NoParent, withLoc(sf, n))

	for _, child := range n.Children() {
		switch child.Kind() {
		case "use_directive":
			useID, err := b.buildUse(id, child)
			if err != nil {
				return 0, err
			}
			sf.Uses = append(sf.Uses, useID)
		default:
			defID, err := b.buildDefinition(id, child)
			if err != nil {
				return 0, err
			}
			sf.Definitions = append(sf.Definitions, defID)
		}
	}

	return id, nil
}

func (b *Builder) buildUse(parent ast.NodeID, n cst.Node) (ast.NodeID, error) {
	u := &ast.Use{}
	for _, seg := range n.Fields("segment") {
		u.Path = append(u.Path, seg.Text())
	}
	if alias := n.Field("alias"); alias != nil {
		u.Alias = alias.Text()
	}
	switch {
	case len(n.Fields("item")) > 0:
		u.Kind = ast.UsePartial
		for _, item := range n.Fields("item") {
			name := item.Field("name")
			if name == nil {
				return 0, b.malformed(item, `field "name"`)
			}
			entry := ast.UseItem{Name: name.Text()}
			if a := item.Field("alias"); a != nil {
				entry.Alias = a.Text()
			}
			u.Items = append(u.Items, entry)
		}
	case n.Field("glob") != nil:
		u.Kind = ast.UseGlob
	default:
		u.Kind = ast.UsePlain
	}
	return b.insert(parent, withLoc(u, n)), nil
}
