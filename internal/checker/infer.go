package checker

import (
	"github.com/inflang/infc/internal/ast"
	"github.com/inflang/infc/internal/diag"
	"github.com/inflang/infc/internal/symbols"
	"github.com/inflang/infc/internal/typeinfo"
)

// inferVariables is phase 6: push a scope per function/method body, bind
// arguments (and implicit self), infer statement by statement, thread the
// return type through for `return` checking (§4.F.6).
func (c *Checker) inferVariables() {
	for _, sfID := range c.sourceFiles {
		sf := ast.Resolve[*ast.SourceFile](c.arena, sfID)
		for _, defID := range sf.Definitions {
			c.inferDefinition(c.symbols.Root(), defID)
		}
	}
}

func (c *Checker) inferDefinition(scope symbols.ScopeID, id ast.NodeID) {
	switch def := c.arena.Get(id).(type) {
	case *ast.ConstantDef:
		c.inferExpression(scope, def.Value)
	case *ast.FunctionDefinition:
		c.inferFunctionBody(scope, def, "")
	case *ast.StructDefinition:
		for _, methodID := range def.Methods {
			method := ast.Resolve[*ast.FunctionDefinition](c.arena, methodID)
			c.inferFunctionBody(scope, method, def.Name)
		}
	case *ast.ModuleDefinition:
		childScope, ok := c.symbols.ModuleByPath(def.Name)
		if !ok {
			childScope = scope
		}
		for _, nested := range def.Definitions {
			c.inferDefinition(childScope, nested)
		}
	}
}

func (c *Checker) inferFunctionBody(scope symbols.ScopeID, fn *ast.FunctionDefinition, receiverType string) {
	bodyScope := c.symbols.Push(scope, "", symbols.Private)

	for _, a := range fn.Arguments {
		switch a.Kind {
		case ast.ArgSelf:
			c.symbols.RegisterVariable(bodyScope, "self", typeinfo.Struct(receiverType))
		case ast.ArgNamed:
			c.symbols.RegisterVariable(bodyScope, a.Name, typeinfo.NewWithTypeParams(c.arena, a.Type, fn.TypeParams))
		}
	}

	var returnType typeinfo.TypeInfo
	if fn.HasReturnType {
		returnType = typeinfo.NewWithTypeParams(c.arena, fn.ReturnType, fn.TypeParams)
	} else {
		returnType = typeinfo.Unit()
	}

	body := ast.Resolve[*ast.Block](c.arena, fn.Body)
	c.checkBlockIn(bodyScope, body, returnType)
}

// checkBlock pushes a fresh child scope, checks each statement, and
// returns. Used when a block appears somewhere other than directly as a
// function/method body (§4.F.1 "Block": push scope, recurse, pop).
func (c *Checker) checkBlock(parentScope symbols.ScopeID, blk *ast.Block, returnType typeinfo.TypeInfo) {
	scope := c.symbols.Push(parentScope, "", symbols.Private)
	c.checkBlockIn(scope, blk, returnType)
}

func (c *Checker) checkBlockIn(scope symbols.ScopeID, blk *ast.Block, returnType typeinfo.TypeInfo) {
	for _, stmtID := range blk.Statements {
		c.checkStatement(scope, stmtID, returnType)
	}
}

func (c *Checker) checkStatement(scope symbols.ScopeID, id ast.NodeID, returnType typeinfo.TypeInfo) {
	switch stmt := c.arena.Get(id).(type) {
	case *ast.VariableDefinition:
		declared := typeinfo.New(c.arena, stmt.Type)
		if declared.Kind == typeinfo.KindCustom && len(declared.TypeParams) == 0 {
			if resolved, ok := c.symbols.LookupType(scope, declared.Name); ok {
				declared = resolved
			}
		}
		if stmt.HasInitializer {
			if c.isUzumaki(stmt.Initializer) {
				c.ctx.Set(stmt.Initializer, declared)
			} else {
				got := c.inferExpression(scope, stmt.Initializer)
				if !got.Equal(declared) {
					c.typeMismatch(declared, got, diag.CtxVariableDefinition, stmt.Loc())
				}
			}
		}
		c.symbols.RegisterVariable(scope, stmt.Name, declared)

	case *ast.Assign:
		left := c.inferExpression(scope, stmt.Target)
		if c.isUzumaki(stmt.Value) {
			c.ctx.Set(stmt.Value, left)
		} else {
			right := c.inferExpression(scope, stmt.Value)
			if !left.Equal(right) {
				c.typeMismatch(left, right, diag.CtxAssignment, stmt.Loc())
			}
		}

	case *ast.ExpressionStatement:
		c.inferExpression(scope, stmt.Value)

	case *ast.Return:
		if stmt.HasValue {
			if c.isUzumaki(stmt.Value) {
				c.ctx.Set(stmt.Value, returnType)
			} else {
				got := c.inferExpression(scope, stmt.Value)
				if !got.Equal(returnType) {
					c.typeMismatch(returnType, got, diag.CtxReturn, stmt.Loc())
				}
			}
		}

	case *ast.Loop:
		if stmt.HasCondition {
			cond := c.inferExpression(scope, stmt.Condition)
			if !cond.IsBool() {
				c.typeMismatch(typeinfo.Bool(), cond, diag.CtxCondition, stmt.Loc())
			}
		}
		body := ast.Resolve[*ast.Block](c.arena, stmt.Body)
		c.checkBlock(scope, body, returnType)

	case *ast.If:
		cond := c.inferExpression(scope, stmt.Condition)
		if !cond.IsBool() {
			c.typeMismatch(typeinfo.Bool(), cond, diag.CtxCondition, stmt.Loc())
		}
		then := ast.Resolve[*ast.Block](c.arena, stmt.Then)
		c.checkBlock(scope, then, returnType)
		if stmt.HasElse {
			elseBlk := ast.Resolve[*ast.Block](c.arena, stmt.Else)
			c.checkBlock(scope, elseBlk, returnType)
		}

	case *ast.Assert:
		cond := c.inferExpression(scope, stmt.Condition)
		if !cond.IsBool() {
			c.diags.Errorf(diag.TypeMismatch, "", stmt.Loc(), "assert condition must be bool, found %s", cond)
		}

	case *ast.Break:
		// No type requirement.

	case *ast.TypeDefinition:
		ty := typeinfo.New(c.arena, stmt.Type)
		c.symbols.RegisterTypeAlias(scope, stmt.Name, ty)

	case *ast.ConstantDefinition:
		var ty typeinfo.TypeInfo
		if stmt.HasType {
			ty = typeinfo.New(c.arena, stmt.Type)
		} else {
			ty = inferLiteralDefaultType(c.arena, stmt.Value)
		}
		c.inferExpression(scope, stmt.Value)
		c.symbols.RegisterVariable(scope, stmt.Name, ty)

	case *ast.Block:
		c.checkBlock(scope, stmt, returnType)
	}
}

func (c *Checker) isUzumaki(id ast.NodeID) bool {
	_, ok := c.arena.Get(id).(*ast.Uzumaki)
	return ok
}

func (c *Checker) typeMismatch(expected, found typeinfo.TypeInfo, ctx diag.MismatchContext, loc diag.Location) {
	c.diags.Add(&diag.Error{
		Kind:     diag.TypeMismatch,
		Location: loc,
		Message:  formatMismatch(expected, found, ctx),
	})
}

func formatMismatch(expected, found typeinfo.TypeInfo, ctx diag.MismatchContext) string {
	return string(ctx) + ": expected " + expected.String() + ", found " + found.String()
}
