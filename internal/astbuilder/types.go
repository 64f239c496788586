package astbuilder

import (
	"strings"

	"github.com/inflang/infc/internal/ast"
	"github.com/inflang/infc/internal/cst"
)

var simpleTypeNames = map[string]string{
	"type_i8":   "i8",
	"type_i16":  "i16",
	"type_i32":  "i32",
	"type_i64":  "i64",
	"type_u8":   "u8",
	"type_u16":  "u16",
	"type_u32":  "u32",
	"type_u64":  "u64",
	"type_bool": "bool",
	"type_unit": "unit",
}

// buildType lowers a type-position CST node into a TypeExpr node id.
func (b *Builder) buildType(parent ast.NodeID, n cst.Node) (ast.NodeID, error) {
	if name, ok := simpleTypeNames[n.Kind()]; ok {
		return b.insert(parent, withLoc(&ast.SimpleType{Name: name}, n)), nil
	}

	switch n.Kind() {
	case "type_array":
		elemN, err := b.field(n, "element")
		if err != nil {
			return 0, err
		}
		sizeN, err := b.field(n, "size")
		if err != nil {
			return 0, err
		}
		at := &ast.ArrayType{}
		id := b.insert(parent, withLoc(at, n))
		elemID, err := b.buildType(id, elemN)
		if err != nil {
			return 0, err
		}
		sizeID, err := b.buildExpression(id, sizeN)
		if err != nil {
			return 0, err
		}
		at.Element, at.Size = elemID, sizeID
		return id, nil

	case "generic_type":
		baseN, err := b.field(n, "name")
		if err != nil {
			return 0, err
		}
		gt := &ast.GenericType{Base: baseN.Text()}
		id := b.insert(parent, withLoc(gt, n))
		for _, arg := range n.Fields("type_argument") {
			argID, err := b.buildType(id, arg)
			if err != nil {
				return 0, err
			}
			gt.TypeParams = append(gt.TypeParams, argID)
		}
		return id, nil

	case "type_fn":
		ft := &ast.FunctionType{}
		id := b.insert(parent, withLoc(ft, n))
		for _, p := range n.Fields("param") {
			pID, err := b.buildType(id, p)
			if err != nil {
				return 0, err
			}
			ft.Params = append(ft.Params, pID)
		}
		if ret := n.Field("return_type"); ret != nil {
			retID, err := b.buildType(id, ret)
			if err != nil {
				return 0, err
			}
			ft.Return, ft.HasReturn = retID, true
		}
		return id, nil

	case "qualified_name":
		qn := &ast.QualifiedName{Segments: splitSegments(n)}
		return b.insert(parent, withLoc(qn, n)), nil

	case "type_qualified_name":
		tqn := &ast.TypeQualifiedName{Segments: splitSegments(n)}
		return b.insert(parent, withLoc(tqn, n)), nil

	case "identifier", "generic_name":
		ct := &ast.CustomType{Name: n.Text()}
		return b.insert(parent, withLoc(ct, n)), nil

	default:
		return 0, b.malformed(n, "a recognized type node")
	}
}

// splitSegments collects the ordered `segment` children of a qualified
// name, falling back to splitting the node's raw text on its separator
// when the grammar inlines the path instead of emitting segment fields.
func splitSegments(n cst.Node) []string {
	segs := n.Fields("segment")
	if len(segs) > 0 {
		out := make([]string, len(segs))
		for i, s := range segs {
			out[i] = s.Text()
		}
		return out
	}
	sep := "."
	if n.Kind() == "type_qualified_name" {
		sep = "::"
	}
	return strings.Split(n.Text(), sep)
}
