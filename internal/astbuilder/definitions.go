package astbuilder

import (
	"github.com/inflang/infc/internal/ast"
	"github.com/inflang/infc/internal/cst"
)

func visibilityOf(n cst.Node) ast.Visibility {
	if n.Field("pub") != nil || n.Field("visibility") != nil {
		return ast.Public
	}
	return ast.Private
}

// buildDefinition lowers a top-level-or-module-nested definition CST node
// into a Definition node id.
func (b *Builder) buildDefinition(parent ast.NodeID, n cst.Node) (ast.NodeID, error) {
	switch n.Kind() {
	case "type_definition_statement", "type_alias_definition":
		nameN, err := b.field(n, "name")
		if err != nil {
			return 0, err
		}
		typeN, err := b.field(n, "type")
		if err != nil {
			return 0, err
		}
		ta := &ast.TypeAliasDef{Name: nameN.Text(), Visibility: visibilityOf(n)}
		id := b.insert(parent, withLoc(ta, n))
		if ta.Type, err = b.buildType(id, typeN); err != nil {
			return 0, err
		}
		return id, nil

	case "struct_definition":
		return b.buildStructDefinition(parent, n)

	case "enum_definition":
		nameN, err := b.field(n, "name")
		if err != nil {
			return 0, err
		}
		ed := &ast.EnumDefinition{Name: nameN.Text(), Visibility: visibilityOf(n)}
		for _, v := range n.Fields("variant") {
			ed.Variants = append(ed.Variants, v.Text())
		}
		return b.insert(parent, withLoc(ed, n)), nil

	case "spec_definition":
		nameN, err := b.field(n, "name")
		if err != nil {
			return 0, err
		}
		sd := &ast.SpecDefinition{Name: nameN.Text(), Visibility: visibilityOf(n)}
		return b.insert(parent, withLoc(sd, n)), nil

	case "constant_definition":
		nameN, err := b.field(n, "name")
		if err != nil {
			return 0, err
		}
		valueN, err := b.field(n, "value")
		if err != nil {
			return 0, err
		}
		cd := &ast.ConstantDef{Name: nameN.Text(), Visibility: visibilityOf(n)}
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

	case "function_definition":
		return b.buildFunctionDefinition(parent, n)

	case "external_function_definition":
		return b.buildExternalFunctionDefinition(parent, n)

	case "module_definition":
		nameN, err := b.field(n, "name")
		if err != nil {
			return 0, err
		}
		md := &ast.ModuleDefinition{Name: nameN.Text(), Visibility: visibilityOf(n)}
		id := b.insert(parent, withLoc(md, n))
		for _, child := range n.Fields("definition") {
			defID, err := b.buildDefinition(id, child)
			if err != nil {
				return 0, err
			}
			md.Definitions = append(md.Definitions, defID)
		}
		return id, nil

	default:
		return 0, b.malformed(n, "a recognized definition kind")
	}
}

func (b *Builder) buildStructDefinition(parent ast.NodeID, n cst.Node) (ast.NodeID, error) {
	nameN, err := b.field(n, "name")
	if err != nil {
		return 0, err
	}
	sd := &ast.StructDefinition{Name: nameN.Text(), Visibility: visibilityOf(n)}
	id := b.insert(parent, withLoc(sd, n))

	for _, fieldN := range n.Fields("field") {
		fnameN, err := b.field(fieldN, "name")
		if err != nil {
			return 0, err
		}
		ftypeN, err := b.field(fieldN, "type")
		if err != nil {
			return 0, err
		}
		typeID, err := b.buildType(id, ftypeN)
		if err != nil {
			return 0, err
		}
		sd.Fields = append(sd.Fields, ast.StructField{
			Name:       fnameN.Text(),
			Type:       typeID,
			Visibility: visibilityOf(fieldN),
		})
	}

	for _, methodN := range n.Fields("method") {
		methodID, err := b.buildFunctionDefinition(id, methodN)
		if err != nil {
			return 0, err
		}
		sd.Methods = append(sd.Methods, methodID)
	}

	return id, nil
}

func (b *Builder) buildArguments(parent ast.NodeID, n cst.Node) ([]ast.Argument, error) {
	var args []ast.Argument
	for _, argN := range n.Fields("argument") {
		arg, err := b.buildArgument(parent, argN)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

func (b *Builder) buildArgument(parent ast.NodeID, n cst.Node) (ast.Argument, error) {
	switch n.Kind() {
	case "self_reference":
		return ast.Argument{Kind: ast.ArgSelf, Mutable: n.Field("mut") != nil}, nil

	case "ignore_argument":
		var a ast.Argument
		a.Kind = ast.ArgIgnore
		if typeN := n.Field("type"); typeN != nil {
			typeID, err := b.buildType(parent, typeN)
			if err != nil {
				return ast.Argument{}, err
			}
			a.Type = typeID
		}
		return a, nil

	case "argument_declaration":
		nameN := n.Field("name")
		typeN, err := b.field(n, "type")
		if err != nil {
			return ast.Argument{}, err
		}
		typeID, err := b.buildType(parent, typeN)
		if err != nil {
			return ast.Argument{}, err
		}
		if nameN == nil {
			return ast.Argument{Kind: ast.ArgRawType, Type: typeID}, nil
		}
		return ast.Argument{
			Kind:    ast.ArgNamed,
			Name:    nameN.Text(),
			Type:    typeID,
			Mutable: n.Field("mut") != nil,
		}, nil

	default:
		return ast.Argument{}, b.malformed(n, "a recognized argument kind")
	}
}

func (b *Builder) buildFunctionDefinition(parent ast.NodeID, n cst.Node) (ast.NodeID, error) {
	nameN, err := b.field(n, "name")
	if err != nil {
		return 0, err
	}
	bodyN, err := b.field(n, "body")
	if err != nil {
		return 0, err
	}

	fd := &ast.FunctionDefinition{Name: nameN.Text(), Visibility: visibilityOf(n)}
	for _, tp := range n.Fields("type_param") {
		fd.TypeParams = append(fd.TypeParams, tp.Text())
	}
	id := b.insert(parent, withLoc(fd, n))

	if fd.Arguments, err = b.buildArguments(id, n); err != nil {
		return 0, err
	}
	if retN := n.Field("return_type"); retN != nil {
		if fd.ReturnType, err = b.buildType(id, retN); err != nil {
			return 0, err
		}
		fd.HasReturnType = true
	}
	if fd.Body, err = b.buildBlock(id, bodyN); err != nil {
		return 0, err
	}
	return id, nil
}

func (b *Builder) buildExternalFunctionDefinition(parent ast.NodeID, n cst.Node) (ast.NodeID, error) {
	nameN, err := b.field(n, "name")
	if err != nil {
		return 0, err
	}

	efd := &ast.ExternalFunctionDefinition{Name: nameN.Text(), Visibility: visibilityOf(n)}
	id := b.insert(parent, withLoc(efd, n))

	if efd.Arguments, err = b.buildArguments(id, n); err != nil {
		return 0, err
	}
	if retN := n.Field("return_type"); retN != nil {
		if efd.ReturnType, err = b.buildType(id, retN); err != nil {
			return 0, err
		}
		efd.HasReturnType = true
	}
	return id, nil
}
