package wasmproof

// exprPart is one node of the reconstructed operator tree: either a
// plain operator, a structured block (Block/Loop/Forall/Exists/Assume/
// Unique), or a structured condition (If/then/else).
type exprPart struct {
	op       Operator
	isBlock  bool
	isCond   bool
	block    []exprPart // isBlock
	then     []exprPart // isCond
	els      []exprPart // isCond
}

func isStructuredOpener(k OpKind) bool {
	switch k {
	case OpBlock, OpLoop, OpForall, OpExists, OpAssume, OpUnique:
		return true
	default:
		return false
	}
}

// buildExpression mirrors translate_expression: it consumes from ops
// starting at *pos, recursing on structured openers and collecting
// until a matching End (or, for If, an Else/End pair), per §4.H and the
// "Structured block/loop/if recursion" supplement grounded in
// translator.rs's translate_expression.
func buildExpression(ops []Operator, pos *int) []exprPart {
	var parts []exprPart
	for *pos < len(ops) {
		op := ops[*pos]
		switch {
		case isStructuredOpener(op.Kind):
			*pos++
			inner := buildExpression(ops, pos)
			parts = append(parts, exprPart{op: op, isBlock: true, block: inner})

		case op.Kind == OpIf:
			*pos++
			then := buildExpression(ops, pos)
			var els []exprPart
			if !endsOnBareEnd(then) {
				els = buildExpression(ops, pos)
			}
			parts = append(parts, exprPart{op: op, isCond: true, then: then, els: els})

		case op.Kind == OpElse || op.Kind == OpEnd:
			*pos++
			parts = append(parts, exprPart{op: op})
			return parts

		default:
			*pos++
			parts = append(parts, exprPart{op: op})
		}
	}
	return parts
}

func endsOnBareEnd(parts []exprPart) bool {
	if len(parts) == 0 {
		return false
	}
	last := parts[len(parts)-1]
	return !last.isBlock && !last.isCond && last.op.Kind == OpEnd
}

// renderExpression prints a reconstructed tree as the nested `ctor
// (inner :: … :: nil) ::` list syntax §4.H describes, indenting each
// nesting level by two extra spaces.
func renderExpression(parts []exprPart, localNames map[uint32]string, depth int) (string, error) {
	offset := indent(depth)
	var out string
	for _, p := range parts {
		switch {
		case p.isBlock:
			head, err := translateBasicOperator(p.op, localNames)
			if err != nil {
				return "", err
			}
			inner, err := renderExpression(p.block, localNames, depth+1)
			if err != nil {
				return "", err
			}
			out += offset + head + " (\n" + inner + ") ::\n"

		case p.isCond:
			head, err := translateBasicOperator(p.op, localNames)
			if err != nil {
				return "", err
			}
			thenStr, err := renderExpression(p.then, localNames, depth+1)
			if err != nil {
				return "", err
			}
			elsStr, err := renderExpression(p.els, localNames, depth+1)
			if err != nil {
				return "", err
			}
			out += offset + head + " (\n" + thenStr + ") (\n" + elsStr + ") ::\n"

		default:
			if p.op.Kind == OpElse || p.op.Kind == OpEnd {
				continue
			}
			rendered, err := translateBasicOperator(p.op, localNames)
			if err != nil {
				return "", err
			}
			out += offset + rendered + " ::\n"
		}
	}
	out += offset + "nil"
	return out, nil
}

func indent(depth int) string {
	s := ""
	for i := 0; i < depth; i++ {
		s += "  "
	}
	return s
}

// translateOperators runs the full tree-build-then-render pipeline over
// one function/global/data/element's flat operator stream.
func translateOperators(ops []Operator, localNames map[uint32]string, depth int) (string, error) {
	pos := 0
	parts := buildExpression(ops, &pos)
	return renderExpression(parts, localNames, depth)
}
