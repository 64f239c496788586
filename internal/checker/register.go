package checker

import (
	"fmt"

	"github.com/inflang/infc/internal/ast"
	"github.com/inflang/infc/internal/diag"
	"github.com/inflang/infc/internal/symbols"
	"github.com/inflang/infc/internal/typeinfo"
)

// loadPrelude is phase 1: each external module gets a public child scope
// of root named after it, populated with the same registration paths
// local definitions use (§4.F.1).
func (c *Checker) loadPrelude() {
	for name, mod := range c.prelude {
		scope := c.symbols.Push(c.symbols.Root(), name, symbols.Public)
		for _, sfID := range mod.SourceFiles {
			sf := ast.Resolve[*ast.SourceFile](mod.Arena, sfID)
			for _, defID := range sf.Definitions {
				c.registerDefinition(mod.Arena, scope, defID)
			}
		}
	}
}

// processDirectives is phase 2: record every use-directive as an
// unresolved import in the scope it appears in. At this stage every
// source file's directives are attached directly to the root scope,
// since the core has no notion of a file-local scope distinct from its
// enclosing module (§4.F.2).
func (c *Checker) processDirectives() {
	for _, sfID := range c.sourceFiles {
		sf := ast.Resolve[*ast.SourceFile](c.arena, sfID)
		for _, useID := range sf.Uses {
			use := ast.Resolve[*ast.Use](c.arena, useID)
			imp := symbols.UnresolvedImport{Path: use.Path, Alias: use.Alias}
			switch use.Kind {
			case ast.UseGlob:
				imp.Glob = true
			case ast.UsePartial:
				for _, item := range use.Items {
					imp.Items = append(imp.Items, symbols.ImportItem{Name: item.Name, Alias: item.Alias})
				}
			}
			c.symbols.RegisterImport(c.symbols.Root(), imp)
		}
	}
}

// registerTypes is phase 3: pre-register every Type/Struct/Enum/Spec
// (and every struct method) so forward references resolve (§4.F.3).
func (c *Checker) registerTypes() {
	for _, sfID := range c.sourceFiles {
		sf := ast.Resolve[*ast.SourceFile](c.arena, sfID)
		for _, defID := range sf.Definitions {
			c.registerTypeLike(c.arena, c.symbols.Root(), defID)
		}
	}
}

func (c *Checker) registerTypeLike(arena *ast.Arena, scope symbols.ScopeID, id ast.NodeID) {
	switch def := arena.Get(id).(type) {
	case *ast.TypeAliasDef:
		ty := typeinfo.New(arena, def.Type)
		if err := c.symbols.RegisterTypeAlias(scope, def.Name, ty); err != nil {
			c.registrationFailed(symbols.Private, def.Name, def.Loc(), diag.RegType, err)
		}

	case *ast.StructDefinition:
		info := &symbols.StructInfo{Name: def.Name, Visibility: astVisibility(def.Visibility)}
		for _, f := range def.Fields {
			info.Fields = append(info.Fields, symbols.StructFieldInfo{
				Name:       f.Name,
				Type:       typeinfo.New(arena, f.Type),
				Visibility: astVisibility(f.Visibility),
			})
		}
		if err := c.symbols.RegisterStruct(scope, info); err != nil {
			c.registrationFailed(astVisibility(def.Visibility), def.Name, def.Loc(), diag.RegStruct, err)
			return
		}
		for _, methodID := range def.Methods {
			m := ast.Resolve[*ast.FunctionDefinition](arena, methodID)
			mi := symbols.MethodInfo{
				FuncInfo: symbols.FuncInfo{
					Name:       m.Name,
					TypeParams: m.TypeParams,
					Visibility: astVisibility(m.Visibility),
				},
				HasSelf: m.HasSelf(),
			}
			for _, a := range m.Arguments {
				if a.Kind == ast.ArgSelf {
					continue
				}
				mi.ParamTypes = append(mi.ParamTypes, argTypeInfo(arena, a, m.TypeParams))
			}
			if m.HasReturnType {
				mi.ReturnType = typeinfo.NewWithTypeParams(arena, m.ReturnType, m.TypeParams)
			} else {
				mi.ReturnType = typeinfo.Unit()
			}
			c.symbols.RegisterMethod(scope, def.Name, mi)
		}

	case *ast.EnumDefinition:
		info := &symbols.EnumInfo{Name: def.Name, Variants: append([]string(nil), def.Variants...), Visibility: astVisibility(def.Visibility)}
		if err := c.symbols.RegisterEnum(scope, info); err != nil {
			c.registrationFailed(astVisibility(def.Visibility), def.Name, def.Loc(), diag.RegEnum, err)
		}

	case *ast.SpecDefinition:
		info := &symbols.SpecInfo{Name: def.Name, Visibility: astVisibility(def.Visibility)}
		if err := c.symbols.RegisterSpec(scope, info); err != nil {
			c.registrationFailed(astVisibility(def.Visibility), def.Name, def.Loc(), diag.RegSpec, err)
		}

	case *ast.ModuleDefinition:
		childScope := c.symbols.Push(scope, def.Name, astVisibility(def.Visibility))
		for _, nested := range def.Definitions {
			c.registerTypeLike(arena, childScope, nested)
		}
	}
}

func argTypeInfo(arena *ast.Arena, a ast.Argument, typeParams []string) typeinfo.TypeInfo {
	switch a.Kind {
	case ast.ArgNamed, ast.ArgRawType:
		return typeinfo.NewWithTypeParams(arena, a.Type, typeParams)
	case ast.ArgIgnore:
		if a.Type != 0 {
			return typeinfo.NewWithTypeParams(arena, a.Type, typeParams)
		}
	}
	return typeinfo.TypeInfo{}
}

func (c *Checker) registrationFailed(vis symbols.Visibility, name string, loc diag.Location, kind diag.RegistrationKind, err error) {
	c.diags.Add(&diag.Error{
		Kind:     diag.RegistrationFailed,
		Name:     name,
		Location: loc,
		Message:  fmt.Sprintf("%s %q: %v", kind, name, err),
	})
}

// registerDefinition is the prelude-loading counterpart of
// registerTypeLike that also registers functions and constants in one
// pass, since an external module arrives fully formed with no further
// phases to run over it (§4.F.1).
func (c *Checker) registerDefinition(arena *ast.Arena, scope symbols.ScopeID, id ast.NodeID) {
	c.registerTypeLike(arena, scope, id)
	switch def := arena.Get(id).(type) {
	case *ast.ConstantDef:
		ty := constantType(arena, def)
		if err := c.symbols.RegisterVariable(scope, def.Name, ty); err != nil {
			c.registrationFailed(astVisibility(def.Visibility), def.Name, def.Loc(), diag.RegVariable, err)
		}
	case *ast.FunctionDefinition:
		c.registerFunctionSignature(arena, scope, def)
	case *ast.ExternalFunctionDefinition:
		c.registerExternalFunctionSignature(arena, scope, def)
	}
}

func constantType(arena *ast.Arena, def *ast.ConstantDef) typeinfo.TypeInfo {
	if def.HasType {
		return typeinfo.New(arena, def.Type)
	}
	return inferLiteralDefaultType(arena, def.Value)
}

// inferLiteralDefaultType gives an untyped constant initializer a type
// using the same defaults §4.F.2 uses for literals, without requiring a
// full checker pass (used while registering prelude/constant symbols
// ahead of inference, and for local constants without a declared type).
func inferLiteralDefaultType(arena *ast.Arena, id ast.NodeID) typeinfo.TypeInfo {
	lit, ok := ast.Expr(arena, id).(*ast.Literal)
	if !ok {
		return typeinfo.Custom("")
	}
	switch lit.Kind {
	case ast.LitNumber:
		return typeinfo.Number(typeinfo.I32)
	case ast.LitBool:
		return typeinfo.Bool()
	case ast.LitString:
		return typeinfo.String()
	case ast.LitArray:
		if len(lit.Elements) == 0 {
			return typeinfo.Array(typeinfo.Unit(), 0)
		}
		return typeinfo.Array(inferLiteralDefaultType(arena, lit.Elements[0]), uint32(len(lit.Elements)))
	default:
		return typeinfo.Unit()
	}
}

// collectFunctionAndConstantDefinitions is phase 5.
func (c *Checker) collectFunctionAndConstantDefinitions() {
	for _, sfID := range c.sourceFiles {
		sf := ast.Resolve[*ast.SourceFile](c.arena, sfID)
		for _, defID := range sf.Definitions {
			c.collectOne(c.arena, c.symbols.Root(), defID)
		}
	}
}

func (c *Checker) collectOne(arena *ast.Arena, scope symbols.ScopeID, id ast.NodeID) {
	switch def := arena.Get(id).(type) {
	case *ast.ConstantDef:
		ty := constantType(arena, def)
		if err := c.symbols.RegisterVariable(scope, def.Name, ty); err != nil {
			c.registrationFailed(astVisibility(def.Visibility), def.Name, def.Loc(), diag.RegVariable, err)
		}

	case *ast.FunctionDefinition:
		for _, a := range def.Arguments {
			if a.Kind == ast.ArgSelf {
				c.diags.Errorf(diag.RegistrationFailed, def.Name, def.Loc(),
					"free function %q cannot declare a self argument", def.Name)
				break
			}
		}
		c.validateFunctionSignature(arena, scope, def)
		c.registerFunctionSignature(arena, scope, def)

	case *ast.ModuleDefinition:
		childScope, ok := c.symbols.ModuleByPath(def.Name)
		if !ok {
			childScope = c.symbols.Push(scope, def.Name, astVisibility(def.Visibility))
		}
		for _, nested := range def.Definitions {
			c.collectOne(arena, childScope, nested)
		}

	case *ast.ExternalFunctionDefinition:
		c.validateExternalFunctionSignature(arena, scope, def)
		c.registerExternalFunctionSignature(arena, scope, def)
	}
}

func (c *Checker) registerFunctionSignature(arena *ast.Arena, scope symbols.ScopeID, def *ast.FunctionDefinition) {
	info := &symbols.FuncInfo{Name: def.Name, TypeParams: def.TypeParams, Visibility: astVisibility(def.Visibility)}
	for _, a := range def.Arguments {
		info.ParamTypes = append(info.ParamTypes, argTypeInfo(arena, a, def.TypeParams))
	}
	if def.HasReturnType {
		info.ReturnType = typeinfo.NewWithTypeParams(arena, def.ReturnType, def.TypeParams)
	} else {
		info.ReturnType = typeinfo.Unit()
	}
	if err := c.symbols.RegisterFunction(scope, info); err != nil {
		c.registrationFailed(astVisibility(def.Visibility), def.Name, def.Loc(), diag.RegFunction, err)
	}
}

func (c *Checker) registerExternalFunctionSignature(arena *ast.Arena, scope symbols.ScopeID, def *ast.ExternalFunctionDefinition) {
	info := &symbols.FuncInfo{Name: def.Name, Visibility: astVisibility(def.Visibility)}
	for _, a := range def.Arguments {
		info.ParamTypes = append(info.ParamTypes, argTypeInfo(arena, a, nil))
	}
	if def.HasReturnType {
		info.ReturnType = typeinfo.New(arena, def.ReturnType)
	} else {
		info.ReturnType = typeinfo.Unit()
	}
	if err := c.symbols.RegisterFunction(scope, info); err != nil {
		c.registrationFailed(astVisibility(def.Visibility), def.Name, def.Loc(), diag.RegFunction, err)
	}
}

// validateFunctionSignature runs validate_type (§4.F.3) over every
// declared type in def's signature.
func (c *Checker) validateFunctionSignature(arena *ast.Arena, scope symbols.ScopeID, def *ast.FunctionDefinition) {
	for _, a := range def.Arguments {
		if a.Type != 0 {
			c.validateType(arena, scope, a.Type, def.TypeParams)
		}
	}
	if def.HasReturnType {
		c.validateType(arena, scope, def.ReturnType, def.TypeParams)
	}
}

func (c *Checker) validateExternalFunctionSignature(arena *ast.Arena, scope symbols.ScopeID, def *ast.ExternalFunctionDefinition) {
	for _, a := range def.Arguments {
		if a.Type != 0 {
			c.validateType(arena, scope, a.Type, nil)
		}
	}
	if def.HasReturnType {
		c.validateType(arena, scope, def.ReturnType, nil)
	}
}

// validateType implements §4.F.3: simple/custom types not in typeParams
// must be known; generic types must have a known base and known (or
// type-parameter) arguments. Unknown names are reported once per name.
func (c *Checker) validateType(arena *ast.Arena, scope symbols.ScopeID, id ast.NodeID, typeParams []string) {
	isParam := func(name string) bool {
		for _, p := range typeParams {
			if p == name {
				return true
			}
		}
		return false
	}

	var visit func(ast.NodeID)
	visit = func(id ast.NodeID) {
		switch n := ast.TypeOf(arena, id).(type) {
		case *ast.SimpleType:
			// Built-in primitives always resolve; nothing to check.
		case *ast.CustomType:
			if isParam(n.Name) {
				return
			}
			if _, ok := c.symbols.LookupType(scope, n.Name); !ok {
				c.diags.Errorf(diag.UnknownType, n.Name, n.Loc(), "unknown type %q", n.Name)
			}
		case *ast.ArrayType:
			visit(n.Element)
		case *ast.GenericType:
			if !isParam(n.Base) {
				if _, ok := c.symbols.LookupType(scope, n.Base); !ok {
					c.diags.Errorf(diag.UnknownType, n.Base, n.Loc(), "unknown type %q", n.Base)
				}
			}
			for _, p := range n.TypeParams {
				visit(p)
			}
		case *ast.FunctionType:
			for _, p := range n.Params {
				visit(p)
			}
			if n.HasReturn {
				visit(n.Return)
			}
		case *ast.QualifiedName, *ast.TypeQualifiedName:
			// Module-qualified references are resolved at use time via
			// resolve_qualified_name, not validated against the local
			// scope's flat symbol table.
		}
	}
	visit(id)
}
