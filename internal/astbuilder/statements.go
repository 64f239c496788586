package astbuilder

import (
	"github.com/inflang/infc/internal/ast"
	"github.com/inflang/infc/internal/cst"
)

var blockFlavors = map[string]ast.BlockFlavor{
	"block":        ast.BlockPlain,
	"assume_block": ast.BlockAssume,
	"forall_block": ast.BlockForall,
	"exists_block": ast.BlockExists,
	"unique_block": ast.BlockUnique,
}

// buildBlock lowers any of the block-flavored CST kinds (§4.C) into a
// Block node id.
func (b *Builder) buildBlock(parent ast.NodeID, n cst.Node) (ast.NodeID, error) {
	flavor, ok := blockFlavors[n.Kind()]
	if !ok {
		return 0, b.malformed(n, "a recognized block kind")
	}
	blk := &ast.Block{Flavor: flavor}
	id := b.insert(parent, withLoc(blk, n))
	for _, child := range n.Children() {
		stmtID, err := b.buildStatement(id, child)
		if err != nil {
			return 0, err
		}
		blk.Statements = append(blk.Statements, stmtID)
	}
	return id, nil
}

// buildStatement lowers a statement-position CST node into a Statement
// node id.
func (b *Builder) buildStatement(parent ast.NodeID, n cst.Node) (ast.NodeID, error) {
	switch n.Kind() {
	case "block", "assume_block", "forall_block", "exists_block", "unique_block":
		return b.buildBlock(parent, n)

	case "assign_statement":
		targetN, err := b.field(n, "target")
		if err != nil {
			return 0, err
		}
		valueN, err := b.field(n, "value")
		if err != nil {
			return 0, err
		}
		as := &ast.Assign{}
		id := b.insert(parent, withLoc(as, n))
		if as.Target, err = b.buildExpression(id, targetN); err != nil {
			return 0, err
		}
		if as.Value, err = b.buildExpression(id, valueN); err != nil {
			return 0, err
		}
		return id, nil

	case "expression_statement":
		valueN, err := b.field(n, "value")
		if err != nil {
			return 0, err
		}
		es := &ast.ExpressionStatement{}
		id := b.insert(parent, withLoc(es, n))
		if es.Value, err = b.buildExpression(id, valueN); err != nil {
			return 0, err
		}
		return id, nil

	case "return_statement":
		ret := &ast.Return{}
		id := b.insert(parent, withLoc(ret, n))
		if valueN := n.Field("value"); valueN != nil {
			var err error
			if ret.Value, err = b.buildExpression(id, valueN); err != nil {
				return 0, err
			}
			ret.HasValue = true
		}
		return id, nil

	case "loop_statement":
		bodyN, err := b.field(n, "body")
		if err != nil {
			return 0, err
		}
		lp := &ast.Loop{}
		id := b.insert(parent, withLoc(lp, n))
		if condN := n.Field("condition"); condN != nil {
			if lp.Condition, err = b.buildExpression(id, condN); err != nil {
				return 0, err
			}
			lp.HasCondition = true
		}
		if lp.Body, err = b.buildBlock(id, bodyN); err != nil {
			return 0, err
		}
		return id, nil

	case "if_statement":
		condN, err := b.field(n, "condition")
		if err != nil {
			return 0, err
		}
		thenN, err := b.field(n, "then")
		if err != nil {
			return 0, err
		}
		ifs := &ast.If{}
		id := b.insert(parent, withLoc(ifs, n))
		if ifs.Condition, err = b.buildExpression(id, condN); err != nil {
			return 0, err
		}
		if ifs.Then, err = b.buildBlock(id, thenN); err != nil {
			return 0, err
		}
		if elseN := n.Field("else"); elseN != nil {
			if ifs.Else, err = b.buildBlock(id, elseN); err != nil {
				return 0, err
			}
			ifs.HasElse = true
		}
		return id, nil

	case "variable_definition_statement":
		nameN, err := b.field(n, "name")
		if err != nil {
			return 0, err
		}
		typeN, err := b.field(n, "type")
		if err != nil {
			return 0, err
		}
		vd := &ast.VariableDefinition{Name: nameN.Text(), Undef: n.Field("undef") != nil}
		id := b.insert(parent, withLoc(vd, n))
		if vd.Type, err = b.buildType(id, typeN); err != nil {
			return 0, err
		}
		if initN := n.Field("initializer"); initN != nil {
			if vd.Initializer, err = b.buildExpression(id, initN); err != nil {
				return 0, err
			}
			vd.HasInitializer = true
		}
		return id, nil

	case "type_definition_statement":
		nameN, err := b.field(n, "name")
		if err != nil {
			return 0, err
		}
		typeN, err := b.field(n, "type")
		if err != nil {
			return 0, err
		}
		td := &ast.TypeDefinition{Name: nameN.Text()}
		id := b.insert(parent, withLoc(td, n))
		if td.Type, err = b.buildType(id, typeN); err != nil {
			return 0, err
		}
		return id, nil

	case "assert_statement":
		condN, err := b.field(n, "condition")
		if err != nil {
			return 0, err
		}
		as := &ast.Assert{}
		id := b.insert(parent, withLoc(as, n))
		if as.Condition, err = b.buildExpression(id, condN); err != nil {
			return 0, err
		}
		return id, nil

	case "break_statement":
		return b.insert(parent, withLoc(&ast.Break{}, n)), nil

	case "constant_definition":
		nameN, err := b.field(n, "name")
		if err != nil {
			return 0, err
		}
		valueN, err := b.field(n, "value")
		if err != nil {
			return 0, err
		}
		cd := &ast.ConstantDefinition{Name: nameN.Text()}
		id := b.insert(parent, withLoc(cd, n))
		if typeN := n.Field("type"); typeN != nil {
			if cd.Type, err = b.buildType(id, typeN); err != nil {
				return 0, err
			}
			cd.HasType = true
		}
		if cd.Value, err = b.buildExpression(id, valueN); err != nil {
			return 0, err
		}
		return id, nil

	default:
		return 0, b.malformed(n, "a recognized statement kind")
	}
}
