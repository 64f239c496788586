package cst

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/inflang/infc/internal/diag"
)

// Grammar supplies the tree-sitter language used to parse .inf sources.
// The grammar itself is an external collaborator (§1): this package only
// adapts whatever *sitter.Language it is given to the Node contract.
type Grammar interface {
	Language() *sitter.Language
}

// sitterNode adapts a *sitter.Node plus the source bytes it was parsed
// from to the Node contract, the way Provider.walkTree in a tree-sitter
// based tool treats *sitter.Node as its working unit.
type sitterNode struct {
	n      *sitter.Node
	source []byte
	file   string
}

// Parse runs grammar over source and returns a Root wrapping the parsed
// tree's root node. The returned tree is never closed by the caller since
// sitterNode keeps referring to it for the lifetime of the CST; callers
// that parse many files in a batch job should bound concurrency themselves.
func Parse(ctx context.Context, grammar Grammar, file, source string) (Root, error) {
	parser := sitter.NewParser()
	lang := grammar.Language()
	if lang == nil {
		return Root{}, fmt.Errorf("cst: grammar returned a nil language for %s", file)
	}
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, []byte(source))
	if err != nil {
		return Root{}, fmt.Errorf("cst: parsing %s: %w", file, err)
	}
	if tree == nil {
		return Root{}, fmt.Errorf("cst: parser returned no tree for %s", file)
	}

	root := &sitterNode{n: tree.RootNode(), source: []byte(source), file: file}
	return Root{Node: root, Source: source, File: file}, nil
}

func (s *sitterNode) wrap(n *sitter.Node) Node {
	if n == nil {
		return nil
	}
	return &sitterNode{n: n, source: s.source, file: s.file}
}

func (s *sitterNode) Kind() string { return s.n.Type() }

func (s *sitterNode) Field(name string) Node {
	return s.wrap(s.n.ChildByFieldName(name))
}

func (s *sitterNode) Fields(name string) []Node {
	var out []Node
	count := int(s.n.ChildCount())
	for i := 0; i < count; i++ {
		child := s.n.Child(i)
		if child == nil {
			continue
		}
		if s.n.FieldNameForChild(i) == name {
			out = append(out, s.wrap(child))
		}
	}
	return out
}

func (s *sitterNode) Children() []Node {
	count := int(s.n.ChildCount())
	out := make([]Node, 0, count)
	for i := 0; i < count; i++ {
		if child := s.n.Child(i); child != nil {
			out = append(out, s.wrap(child))
		}
	}
	return out
}

func (s *sitterNode) Location() diag.Location {
	start := s.n.StartPoint()
	end := s.n.EndPoint()
	return diag.Location{
		Source:      s.Text(),
		StartLine:   int(start.Row) + 1,
		StartColumn: int(start.Column) + 1,
		EndLine:     int(end.Row) + 1,
		EndColumn:   int(end.Column) + 1,
		StartOffset: int(s.n.StartByte()),
		EndOffset:   int(s.n.EndByte()),
	}
}

func (s *sitterNode) Text() string {
	return string(s.source[s.n.StartByte():s.n.EndByte()])
}

// HasError reports whether the parsed tree rooted at node contains a
// tree-sitter ERROR node, the way a provider rejects a source with syntax
// errors before attempting to match anything in it.
func HasError(node Node) bool {
	if node.Kind() == "ERROR" {
		return true
	}
	for _, child := range node.Children() {
		if HasError(child) {
			return true
		}
	}
	return false
}
