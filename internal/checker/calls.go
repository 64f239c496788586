package checker

import (
	"github.com/inflang/infc/internal/ast"
	"github.com/inflang/infc/internal/diag"
	"github.com/inflang/infc/internal/symbols"
	"github.com/inflang/infc/internal/typeinfo"
)

// inferFunctionCall implements the FunctionCall rules of §4.F.2: the
// callee shape picks associated-function dispatch, instance-method
// dispatch, or a bare function lookup, after which generic substitution
// (if any) is applied uniformly.
func (c *Checker) inferFunctionCall(scope symbols.ScopeID, call *ast.FunctionCall) typeinfo.TypeInfo {
	calleeNode := c.arena.Get(call.Callee)

	switch callee := calleeNode.(type) {
	case *ast.TypeMemberAccess:
		return c.inferAssociatedCall(scope, call, callee)
	case *ast.MemberAccess:
		return c.inferMethodCall(scope, call, callee)
	case *ast.Identifier:
		return c.inferBareCall(scope, call, callee)
	default:
		// Any other callee shape (e.g. a parenthesized higher-order
		// value) is inferred for its own sake but cannot be resolved to
		// a signature; arguments are still inferred to avoid cascading
		// errors.
		c.inferExpression(scope, call.Callee)
		for _, a := range call.Arguments {
			c.inferExpression(scope, a.Value)
		}
		return typeinfo.Custom("")
	}
}

func (c *Checker) inferAssociatedCall(scope symbols.ScopeID, call *ast.FunctionCall, callee *ast.TypeMemberAccess) typeinfo.TypeInfo {
	sym, defScope, ok := c.symbols.LookupSymbol(scope, callee.TypeName)
	if !ok {
		c.diags.Errorf(diag.UndefinedStruct, callee.TypeName, callee.Loc(), "undefined type %q", callee.TypeName)
		c.inferCallArguments(scope, call)
		return typeinfo.Custom("")
	}
	method, ok := c.symbols.LookupMethod(scope, sym.Name, callee.Name)
	if !ok {
		c.diags.Errorf(diag.MethodNotFound, callee.Name, callee.Loc(), "type %q has no method %q", callee.TypeName, callee.Name)
		c.inferCallArguments(scope, call)
		return typeinfo.Custom("")
	}
	if method.HasSelf {
		c.diags.Errorf(diag.InstanceMethodCalledAsAssociated, callee.Name, callee.Loc(),
			"%q is an instance method, called as an associated function", callee.Name)
	} else if !c.symbols.IsVisible(methodSymbol(method), defScope, scope) {
		c.diags.Errorf(diag.PrivateAccessViolation, callee.Name, callee.Loc(), "method %q is private", callee.Name)
	}
	return c.finishCall(scope, call, method.FuncInfo, "method", callee.Name)
}

func (c *Checker) inferMethodCall(scope symbols.ScopeID, call *ast.FunctionCall, callee *ast.MemberAccess) typeinfo.TypeInfo {
	receiver := c.inferExpression(scope, callee.Value)
	if receiver.Kind != typeinfo.KindStruct {
		c.diags.Errorf(diag.MethodCallOnNonStruct, "", callee.Loc(), "method call on non-struct type %s", receiver)
		c.inferCallArguments(scope, call)
		return typeinfo.Custom("")
	}
	method, ok := c.symbols.LookupMethod(scope, receiver.Name, callee.Name)
	if !ok {
		c.diags.Errorf(diag.MethodNotFound, callee.Name, callee.Loc(), "type %q has no method %q", receiver.Name, callee.Name)
		c.inferCallArguments(scope, call)
		return typeinfo.Custom("")
	}
	if !method.HasSelf {
		c.diags.Errorf(diag.AssociatedFunctionCalledAsMethod, callee.Name, callee.Loc(),
			"%q is an associated function, called as an instance method", callee.Name)
	} else if sym, defScope, ok := c.symbols.LookupSymbol(scope, receiver.Name); ok {
		_ = sym
		if !c.symbols.IsVisible(methodSymbol(method), defScope, scope) {
			c.diags.Errorf(diag.PrivateAccessViolation, callee.Name, callee.Loc(), "method %q is private", callee.Name)
		}
	}
	return c.finishCall(scope, call, method.FuncInfo, "method", callee.Name)
}

func (c *Checker) inferBareCall(scope symbols.ScopeID, call *ast.FunctionCall, callee *ast.Identifier) typeinfo.TypeInfo {
	sym, defScope, ok := c.symbols.LookupSymbol(scope, callee.Name)
	if !ok || sym.Kind != symbols.SymFunction {
		c.diags.Errorf(diag.UndefinedFunction, callee.Name, callee.Loc(), "undefined function %q", callee.Name)
		c.inferCallArguments(scope, call)
		return typeinfo.Custom("")
	}
	if !c.symbols.IsVisible(sym, defScope, scope) {
		c.diags.Errorf(diag.PrivateAccessViolation, callee.Name, callee.Loc(), "function %q is private", callee.Name)
	}
	return c.finishCall(scope, call, *sym.Function, "function", callee.Name)
}

// methodSymbol wraps a MethodInfo's visibility as a Symbol so it can be
// run through IsVisible.
func methodSymbol(m symbols.MethodInfo) *symbols.Symbol {
	fi := m.FuncInfo
	return &symbols.Symbol{Kind: symbols.SymFunction, Name: m.Name, Function: &fi}
}

func (c *Checker) inferCallArguments(scope symbols.ScopeID, call *ast.FunctionCall) {
	for _, a := range call.Arguments {
		c.inferExpression(scope, a.Value)
	}
}

// finishCall checks argument count, infers arguments, resolves generic
// substitution, and returns the (possibly substituted) return type.
func (c *Checker) finishCall(scope symbols.ScopeID, call *ast.FunctionCall, fn symbols.FuncInfo, kindLabel, name string) typeinfo.TypeInfo {
	if len(call.Arguments) != len(fn.ParamTypes) {
		c.diags.Add(&diag.Error{
			Kind:     diag.ArgumentCountMismatch,
			Name:     name,
			Location: call.Loc(),
			Message:  argCountMessage(kindLabel, name, len(fn.ParamTypes), len(call.Arguments)),
		})
	}

	argTypes := make([]typeinfo.TypeInfo, len(call.Arguments))
	for i, a := range call.Arguments {
		argTypes[i] = c.inferExpression(scope, a.Value)
	}

	if len(fn.TypeParams) == 0 {
		return fn.ReturnType
	}

	subst := c.resolveTypeParams(call, fn, argTypes)
	return fn.ReturnType.Substitute(subst)
}

func argCountMessage(kindLabel, name string, expected, found int) string {
	return kindLabel + " " + name + ": expected " + itoa(expected) + " arguments, found " + itoa(found)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// resolveTypeParams builds the name->TypeInfo substitution map for a
// generic call (§4.F.2): explicit type arguments take precedence over
// inference from argument types.
func (c *Checker) resolveTypeParams(call *ast.FunctionCall, fn symbols.FuncInfo, argTypes []typeinfo.TypeInfo) map[string]typeinfo.TypeInfo {
	subst := make(map[string]typeinfo.TypeInfo)

	if len(call.TypeArgs) > 0 {
		if len(call.TypeArgs) != len(fn.TypeParams) {
			c.diags.Errorf(diag.TypeParameterCountMismatch, "", call.Loc(),
				"expected %d type arguments, found %d", len(fn.TypeParams), len(call.TypeArgs))
		}
		for i, tpName := range fn.TypeParams {
			if i >= len(call.TypeArgs) {
				break
			}
			ty := typeFromExplicitArg(c, call.TypeArgs[i])
			subst[tpName] = ty
		}
		return subst
	}

	bound := make(map[string]typeinfo.TypeInfo)
	conflicted := make(map[string]bool)
	for i, paramTy := range fn.ParamTypes {
		if i >= len(argTypes) {
			break
		}
		inferGenericBinding(paramTy, argTypes[i], bound, conflicted, c)
	}
	for _, tpName := range fn.TypeParams {
		if conflicted[tpName] {
			c.diags.Errorf(diag.ConflictingTypeInference, tpName, call.Loc(),
				"conflicting inference for type parameter %q", tpName)
			continue
		}
		if ty, ok := bound[tpName]; ok {
			subst[tpName] = ty
		} else {
			c.diags.Errorf(diag.CannotInferTypeParameter, tpName, call.Loc(),
				"cannot infer type parameter %q", tpName)
		}
	}
	return subst
}

// inferGenericBinding walks paramTy/argTy in lockstep, recording a
// Generic leaf's binding the first time it's seen and flagging a
// conflict if a later occurrence disagrees.
func inferGenericBinding(paramTy, argTy typeinfo.TypeInfo, bound map[string]typeinfo.TypeInfo, conflicted map[string]bool, c *Checker) {
	if paramTy.Kind == typeinfo.KindGeneric {
		if existing, ok := bound[paramTy.Name]; ok {
			if !existing.Equal(argTy) {
				conflicted[paramTy.Name] = true
			}
			return
		}
		bound[paramTy.Name] = argTy
		return
	}
	if paramTy.Kind == typeinfo.KindArray && argTy.Kind == typeinfo.KindArray && paramTy.Element != nil && argTy.Element != nil {
		inferGenericBinding(*paramTy.Element, *argTy.Element, bound, conflicted, c)
		return
	}
	if len(paramTy.TypeParams) == len(argTy.TypeParams) {
		for i := range paramTy.TypeParams {
			inferGenericBinding(paramTy.TypeParams[i], argTy.TypeParams[i], bound, conflicted, c)
		}
	}
}

func typeFromExplicitArg(c *Checker, id ast.NodeID) typeinfo.TypeInfo {
	return typeinfo.New(c.arena, id)
}
