package symbols

import (
	"testing"

	"github.com/inflang/infc/internal/typeinfo"
)

func TestNewTable_RootHasBuiltinAliases(t *testing.T) {
	tbl := NewTable()
	for _, name := range []string{"i32", "bool", "unit", "string"} {
		ty, ok := tbl.LookupType(tbl.Root(), name)
		if !ok {
			t.Fatalf("LookupType(%q) not found in root scope", name)
		}
		if name == "i32" && ty.Number != typeinfo.I32 {
			t.Errorf("i32 resolved to %v, want Number(I32)", ty)
		}
	}
}

func TestRegisterVariable_DuplicateFails(t *testing.T) {
	tbl := NewTable()
	scope := tbl.Push(tbl.Root(), "main", Private)
	if err := tbl.RegisterVariable(scope, "x", typeinfo.Number(typeinfo.I32)); err != nil {
		t.Fatalf("first RegisterVariable: %v", err)
	}
	if err := tbl.RegisterVariable(scope, "x", typeinfo.Bool()); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
}

func TestRegisterMethod_AllowsMultiplePerType(t *testing.T) {
	tbl := NewTable()
	scope := tbl.Root()
	tbl.RegisterMethod(scope, "Point", MethodInfo{FuncInfo: FuncInfo{Name: "length"}, HasSelf: true})
	tbl.RegisterMethod(scope, "Point", MethodInfo{FuncInfo: FuncInfo{Name: "scale"}, HasSelf: true})

	if _, ok := tbl.LookupMethod(scope, "Point", "length"); !ok {
		t.Error("length method not found")
	}
	if _, ok := tbl.LookupMethod(scope, "Point", "scale"); !ok {
		t.Error("scale method not found")
	}
}

func TestLookupSymbol_WalksToRoot(t *testing.T) {
	tbl := NewTable()
	outer := tbl.Push(tbl.Root(), "outer", Private)
	inner := tbl.Push(outer, "inner", Private)

	tbl.RegisterStruct(outer, &StructInfo{Name: "Vec", Visibility: Private})

	if _, _, ok := tbl.LookupSymbol(inner, "Vec"); !ok {
		t.Error("expected Vec to be visible from nested scope")
	}
	if _, _, ok := tbl.LookupSymbol(tbl.Root(), "Vec"); ok {
		t.Error("expected Vec not to be visible from root (wrong direction)")
	}
}

func TestIsVisible_PrivateOnlyInScopeOrDescendant(t *testing.T) {
	tbl := NewTable()
	moduleA := tbl.Push(tbl.Root(), "a", Public)
	moduleB := tbl.Push(tbl.Root(), "b", Public)
	inA := tbl.Push(moduleA, "inner", Private)

	tbl.RegisterStruct(moduleA, &StructInfo{Name: "Secret", Visibility: Private})
	sym, defScope, _ := tbl.LookupSymbol(moduleA, "Secret")

	if !tbl.IsVisible(sym, defScope, moduleA) {
		t.Error("should be visible from its own defining scope")
	}
	if !tbl.IsVisible(sym, defScope, inA) {
		t.Error("should be visible from a descendant scope")
	}
	if tbl.IsVisible(sym, defScope, moduleB) {
		t.Error("should not be visible from an unrelated sibling scope")
	}
}

func TestIsVisible_PublicVisibleEverywhere(t *testing.T) {
	tbl := NewTable()
	moduleA := tbl.Push(tbl.Root(), "a", Public)
	moduleB := tbl.Push(tbl.Root(), "b", Public)

	tbl.RegisterStruct(moduleA, &StructInfo{Name: "Open", Visibility: Public})
	sym, defScope, _ := tbl.LookupSymbol(moduleA, "Open")

	if !tbl.IsVisible(sym, defScope, moduleB) {
		t.Error("public symbol should be visible from any scope")
	}
}

func TestResolveQualifiedName_DescendsThroughModules(t *testing.T) {
	tbl := NewTable()
	mathMod := tbl.Push(tbl.Root(), "math", Public)
	tbl.RegisterFunction(mathMod, &FuncInfo{Name: "sqrt", Visibility: Public})

	sym, scope, ok := tbl.ResolveQualifiedName(tbl.Root(), []string{"math", "sqrt"})
	if !ok {
		t.Fatal("expected math::sqrt to resolve")
	}
	if sym.Name != "sqrt" || scope != mathMod {
		t.Errorf("resolved to %+v in scope %d, want sqrt in %d", sym, scope, mathMod)
	}
}

func TestResolveQualifiedName_SelfRelative(t *testing.T) {
	tbl := NewTable()
	scope := tbl.Push(tbl.Root(), "widget", Private)
	tbl.RegisterVariable(scope, "count", typeinfo.Number(typeinfo.I32))
	tbl.RegisterFunction(scope, &FuncInfo{Name: "reset"})

	sym, _, ok := tbl.ResolveQualifiedName(scope, []string{"self", "reset"})
	if !ok || sym.Name != "reset" {
		t.Fatalf("expected self::reset to resolve to reset, got %+v ok=%v", sym, ok)
	}
}

func TestPublicSymbols_OnlyIncludesPublic(t *testing.T) {
	tbl := NewTable()
	mod := tbl.Push(tbl.Root(), "m", Public)
	tbl.RegisterStruct(mod, &StructInfo{Name: "Pub", Visibility: Public})
	tbl.RegisterStruct(mod, &StructInfo{Name: "Priv", Visibility: Private})

	pub := tbl.PublicSymbols(mod)
	if _, ok := pub["Pub"]; !ok {
		t.Error("Pub should be exported")
	}
	if _, ok := pub["Priv"]; ok {
		t.Error("Priv should not be exported")
	}
}

func TestFullPath_JoinsWithDoubleColon(t *testing.T) {
	tbl := NewTable()
	outer := tbl.Push(tbl.Root(), "outer", Public)
	inner := tbl.Push(outer, "inner", Public)

	if got := tbl.Scope(inner).FullPath(); got != "outer::inner" {
		t.Errorf("FullPath() = %q, want outer::inner", got)
	}
}
