package astbuilder

import (
	"github.com/inflang/infc/internal/ast"
	"github.com/inflang/infc/internal/cst"
)

var binaryOps = map[string]ast.OperatorKind{
	"+": ast.OpAdd, "-": ast.OpSub, "*": ast.OpMul, "/": ast.OpDiv, "%": ast.OpMod,
	"**": ast.OpPow, "==": ast.OpEq, "!=": ast.OpNe, "<": ast.OpLt, "<=": ast.OpLe,
	">": ast.OpGt, ">=": ast.OpGe, "&&": ast.OpAnd, "||": ast.OpOr,
	"&": ast.OpBitAnd, "|": ast.OpBitOr, "^": ast.OpBitXor, "<<": ast.OpShl, ">>": ast.OpShr,
}

// buildExpression lowers an expression-position CST node into an
// Expression node id.
func (b *Builder) buildExpression(parent ast.NodeID, n cst.Node) (ast.NodeID, error) {
	switch n.Kind() {
	case "identifier":
		return b.insert(parent, withLoc(&ast.Identifier{Name: n.Text()}, n)), nil

	case "bool_literal":
		return b.insert(parent, withLoc(&ast.Literal{Kind: ast.LitBool, Text: n.Text()}, n)), nil

	case "number_literal":
		return b.insert(parent, withLoc(&ast.Literal{Kind: ast.LitNumber, Text: n.Text()}, n)), nil

	case "string_literal":
		return b.insert(parent, withLoc(&ast.Literal{Kind: ast.LitString, Text: n.Text()}, n)), nil

	case "unit_literal", "unit":
		return b.insert(parent, withLoc(&ast.Literal{Kind: ast.LitUnit, Text: "unit"}, n)), nil

	case "array_literal":
		lit := &ast.Literal{Kind: ast.LitArray}
		id := b.insert(parent, withLoc(lit, n))
		for _, el := range n.Fields("element") {
			elID, err := b.buildExpression(id, el)
			if err != nil {
				return 0, err
			}
			lit.Elements = append(lit.Elements, elID)
		}
		return id, nil

	case "uzumaki_keyword":
		return b.insert(parent, withLoc(&ast.Uzumaki{}, n)), nil

	case "binary_expression":
		opN, err := b.field(n, "operator")
		if err != nil {
			return 0, err
		}
		op, ok := binaryOps[opN.Text()]
		if !ok {
			return 0, b.malformed(n, "a recognized binary operator")
		}
		leftN, err := b.field(n, "left")
		if err != nil {
			return 0, err
		}
		rightN, err := b.field(n, "right")
		if err != nil {
			return 0, err
		}
		bo := &ast.BinaryOp{Op: op}
		id := b.insert(parent, withLoc(bo, n))
		if bo.Left, err = b.buildExpression(id, leftN); err != nil {
			return 0, err
		}
		if bo.Right, err = b.buildExpression(id, rightN); err != nil {
			return 0, err
		}
		return id, nil

	case "prefix_unary_expression":
		opN, err := b.field(n, "operator")
		if err != nil {
			return 0, err
		}
		var op ast.UnaryOperatorKind
		switch opN.Text() {
		case "!", "unary_not", "not":
			op = ast.UnaryNot
		case "-":
			op = ast.UnaryNeg
		case "~":
			op = ast.UnaryBitNot
		default:
			return 0, b.malformed(n, "a recognized unary operator")
		}
		operandN, err := b.field(n, "operand")
		if err != nil {
			return 0, err
		}
		pu := &ast.PrefixUnaryOp{Op: op}
		id := b.insert(parent, withLoc(pu, n))
		if pu.Operand, err = b.buildExpression(id, operandN); err != nil {
			return 0, err
		}
		return id, nil

	case "parenthesized_expression":
		innerN, err := b.field(n, "inner")
		if err != nil {
			return 0, err
		}
		p := &ast.Parenthesized{}
		id := b.insert(parent, withLoc(p, n))
		if p.Inner, err = b.buildExpression(id, innerN); err != nil {
			return 0, err
		}
		return id, nil

	case "member_access_expression":
		valueN, err := b.field(n, "value")
		if err != nil {
			return 0, err
		}
		nameN, err := b.field(n, "name")
		if err != nil {
			return 0, err
		}
		ma := &ast.MemberAccess{Name: nameN.Text()}
		id := b.insert(parent, withLoc(ma, n))
		if ma.Value, err = b.buildExpression(id, valueN); err != nil {
			return 0, err
		}
		return id, nil

	case "type_member_access_expression":
		typeN, err := b.field(n, "type")
		if err != nil {
			return 0, err
		}
		nameN, err := b.field(n, "name")
		if err != nil {
			return 0, err
		}
		tma := &ast.TypeMemberAccess{TypeName: typeN.Text(), Name: nameN.Text()}
		return b.insert(parent, withLoc(tma, n)), nil

	case "array_index_access_expression":
		arrN, err := b.field(n, "array")
		if err != nil {
			return 0, err
		}
		idxN, err := b.field(n, "index")
		if err != nil {
			return 0, err
		}
		aia := &ast.ArrayIndexAccess{}
		id := b.insert(parent, withLoc(aia, n))
		if aia.Array, err = b.buildExpression(id, arrN); err != nil {
			return 0, err
		}
		if aia.Index, err = b.buildExpression(id, idxN); err != nil {
			return 0, err
		}
		return id, nil

	case "function_call_expression":
		return b.buildFunctionCall(parent, n)

	case "struct_expression":
		return b.buildStructLiteral(parent, n)

	case "qualified_name":
		return b.buildQualifiedNameExpr(parent, n)

	case "generic_name":
		return b.insert(parent, withLoc(&ast.Identifier{Name: n.Text()}, n)), nil

	default:
		// A type appearing in expression position (e.g. `T::default()`'s
		// callee, or a bare type name used as a value) is valid per §3.3's
		// Type-as-expression variant.
		typeID, err := b.buildType(parent, n)
		if err != nil {
			return 0, b.malformed(n, "a recognized expression node")
		}
		return b.insert(parent, withLoc(&ast.TypeExprAsValue{Type: typeID}, n)), nil
	}
}

func (b *Builder) buildQualifiedNameExpr(parent ast.NodeID, n cst.Node) (ast.NodeID, error) {
	qn := &ast.QualifiedName{Segments: splitSegments(n)}
	return b.insert(parent, withLoc(qn, n)), nil
}

func (b *Builder) buildFunctionCall(parent ast.NodeID, n cst.Node) (ast.NodeID, error) {
	calleeN, err := b.field(n, "callee")
	if err != nil {
		return 0, err
	}
	fc := &ast.FunctionCall{}
	id := b.insert(parent, withLoc(fc, n))
	if fc.Callee, err = b.buildExpression(id, calleeN); err != nil {
		return 0, err
	}

	for _, ta := range n.Fields("type_argument") {
		taID, err := b.buildType(id, ta)
		if err != nil {
			return 0, err
		}
		fc.TypeArgs = append(fc.TypeArgs, taID)
	}

	// argument_name and argument children interleave in source order; a
	// name binds to the next argument child, otherwise the argument is
	// positional (§4.C). Children are matched against those fields in
	// order by kind and location, since an adapter may hand out a fresh
	// wrapper for the same node on every call.
	names := n.Fields("argument_name")
	args := n.Fields("argument")
	var pendingName string
	havePending := false
	for _, child := range n.Children() {
		switch {
		case len(names) > 0 && child.Kind() == names[0].Kind() && child.Location() == names[0].Location():
			names = names[1:]
			pendingName = child.Text()
			havePending = true
		case len(args) > 0 && child.Kind() == args[0].Kind() && child.Location() == args[0].Location():
			args = args[1:]
			valueID, err := b.buildExpression(id, child)
			if err != nil {
				return 0, err
			}
			arg := ast.CallArgument{Value: valueID}
			if havePending {
				arg.Name = pendingName
				havePending = false
			}
			fc.Arguments = append(fc.Arguments, arg)
		}
	}

	return id, nil
}

func (b *Builder) buildStructLiteral(parent ast.NodeID, n cst.Node) (ast.NodeID, error) {
	nameN, err := b.field(n, "name")
	if err != nil {
		return 0, err
	}
	sl := &ast.StructLiteral{TypeName: nameN.Text()}
	id := b.insert(parent, withLoc(sl, n))

	fields := n.Fields("field")
	values := n.Fields("value")
	var pendingField string
	havePending := false
	for _, child := range n.Children() {
		switch {
		case len(fields) > 0 && child.Kind() == fields[0].Kind() && child.Location() == fields[0].Location():
			fields = fields[1:]
			pendingField = child.Text()
			havePending = true
		case len(values) > 0 && child.Kind() == values[0].Kind() && child.Location() == values[0].Location():
			values = values[1:]
			if !havePending {
				return 0, b.malformed(n, `a "field" before this "value"`)
			}
			valueID, err := b.buildExpression(id, child)
			if err != nil {
				return 0, err
			}
			sl.Fields = append(sl.Fields, ast.StructLiteralField{Name: pendingField, Value: valueID})
			havePending = false
		}
	}

	return id, nil
}
