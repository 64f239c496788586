package astbuilder

import (
	"testing"

	"github.com/inflang/infc/internal/ast"
	"github.com/inflang/infc/internal/cst"
)

func ident(name string) *cst.FakeNode {
	return cst.NewFakeNode("identifier", name)
}

func numberLit(text string) *cst.FakeNode {
	return cst.NewFakeNode("number_literal", text)
}

func typeI32() *cst.FakeNode {
	return cst.NewFakeNode("type_i32", "i32")
}

func TestBuildSourceFile_SingleConstant(t *testing.T) {
	constDef := cst.NewFakeNode("constant_definition", "").
		AddField("name", ident("Answer")).
		AddField("value", numberLit("42"))

	root := cst.NewFakeNode("source_file", "").AddChild(constDef)

	arena, ids, err := Build([]cst.Root{{Node: root, Source: "", File: "answer.inf"}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("got %d source files, want 1", len(ids))
	}

	sf := ast.Resolve[*ast.SourceFile](arena, ids[0])
	if len(sf.Definitions) != 1 {
		t.Fatalf("got %d definitions, want 1", len(sf.Definitions))
	}

	cd := ast.Resolve[*ast.ConstantDef](arena, sf.Definitions[0])
	if cd.Name != "Answer" {
		t.Errorf("Name = %q, want Answer", cd.Name)
	}
	if cd.Visibility != ast.Private {
		t.Errorf("Visibility = %v, want Private by default", cd.Visibility)
	}

	lit := ast.Resolve[*ast.Literal](arena, cd.Value)
	if lit.Kind != ast.LitNumber || lit.Text != "42" {
		t.Errorf("value literal = %+v, want number 42", lit)
	}
}

func TestBuildFunctionDefinition_WithSelfAndArgs(t *testing.T) {
	self := cst.NewFakeNode("self_reference", "self")
	argDecl := cst.NewFakeNode("argument_declaration", "").
		AddField("name", ident("delta")).
		AddField("type", typeI32())

	body := cst.NewFakeNode("block", "")

	fn := cst.NewFakeNode("function_definition", "").
		AddField("name", ident("bump")).
		AddField("argument", self).
		AddField("argument", argDecl).
		AddField("return_type", typeI32()).
		AddField("body", body)

	root := cst.NewFakeNode("source_file", "").AddChild(fn)

	arena, ids, err := Build([]cst.Root{{Node: root, File: "bump.inf"}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	sf := ast.Resolve[*ast.SourceFile](arena, ids[0])
	fd := ast.Resolve[*ast.FunctionDefinition](arena, sf.Definitions[0])

	if fd.Name != "bump" {
		t.Errorf("Name = %q, want bump", fd.Name)
	}
	if !fd.HasSelf() {
		t.Error("HasSelf() = false, want true")
	}
	if len(fd.Arguments) != 2 {
		t.Fatalf("got %d arguments, want 2", len(fd.Arguments))
	}
	if fd.Arguments[1].Name != "delta" {
		t.Errorf("second argument name = %q, want delta", fd.Arguments[1].Name)
	}
	if !fd.HasReturnType {
		t.Error("HasReturnType = false, want true")
	}
}

func TestBuildFunctionCall_NamedAndPositionalArgumentsInterleave(t *testing.T) {
	// First argument is positional (no preceding argument_name); second is
	// named via a preceding argument_name child.
	call := cst.NewFakeNode("function_call_expression", "").
		AddField("callee", ident("make")).
		AddField("argument", numberLit("1"))
	call.AddField("argument_name", cst.NewFakeNode("argument_name", "scale"))
	call.AddField("argument", numberLit("2"))

	b := New()
	id, err := b.buildExpression(ast.NoParent, call)
	if err != nil {
		t.Fatalf("buildExpression: %v", err)
	}

	fc := ast.Resolve[*ast.FunctionCall](b.Arena(), id)
	if len(fc.Arguments) != 2 {
		t.Fatalf("got %d arguments, want 2", len(fc.Arguments))
	}
	if fc.Arguments[0].Name != "" {
		t.Errorf("first argument name = %q, want unnamed (positional)", fc.Arguments[0].Name)
	}
	if fc.Arguments[1].Name != "scale" {
		t.Errorf("second argument name = %q, want scale", fc.Arguments[1].Name)
	}
}

func TestBuildUnitLiteral_Normalizes(t *testing.T) {
	for _, kind := range []string{"unit_literal", "unit"} {
		n := cst.NewFakeNode(kind, "()")
		b := New()
		id, err := b.buildExpression(ast.NoParent, n)
		if err != nil {
			t.Fatalf("buildExpression(%s): %v", kind, err)
		}
		lit := ast.Resolve[*ast.Literal](b.Arena(), id)
		if lit.Kind != ast.LitUnit || lit.Text != "unit" {
			t.Errorf("%s -> %+v, want unit literal named \"unit\"", kind, lit)
		}
	}
}

func TestBuildBlock_LocalConstantDefinition(t *testing.T) {
	constStmt := cst.NewFakeNode("constant_definition", "").
		AddField("name", ident("Limit")).
		AddField("value", numberLit("10"))

	blk := cst.NewFakeNode("block", "").AddChild(constStmt)

	b := New()
	id, err := b.buildBlock(ast.NoParent, blk)
	if err != nil {
		t.Fatalf("buildBlock: %v", err)
	}

	block := ast.Resolve[*ast.Block](b.Arena(), id)
	if len(block.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(block.Statements))
	}

	cd := ast.Resolve[*ast.ConstantDefinition](b.Arena(), block.Statements[0])
	if cd.Name != "Limit" {
		t.Errorf("Name = %q, want Limit", cd.Name)
	}
	lit := ast.Resolve[*ast.Literal](b.Arena(), cd.Value)
	if lit.Kind != ast.LitNumber || lit.Text != "10" {
		t.Errorf("value literal = %+v, want number 10", lit)
	}
}

func TestBuildBlock_RejectsUnknownStatementKind(t *testing.T) {
	blk := cst.NewFakeNode("block", "").AddChild(cst.NewFakeNode("mystery_statement", ""))
	b := New()
	if _, err := b.buildBlock(ast.NoParent, blk); err == nil {
		t.Fatal("expected a malformed-CST error, got nil")
	}
}

func TestBuildStructLiteral_FieldValuePairs(t *testing.T) {
	lit := cst.NewFakeNode("struct_expression", "").
		AddField("name", ident("Point")).
		AddField("field", cst.NewFakeNode("field", "x")).
		AddField("value", numberLit("1")).
		AddField("field", cst.NewFakeNode("field", "y")).
		AddField("value", numberLit("2"))

	b := New()
	id, err := b.buildExpression(ast.NoParent, lit)
	if err != nil {
		t.Fatalf("buildExpression: %v", err)
	}
	sl := ast.Resolve[*ast.StructLiteral](b.Arena(), id)
	if sl.TypeName != "Point" {
		t.Errorf("TypeName = %q, want Point", sl.TypeName)
	}
	if len(sl.Fields) != 2 || sl.Fields[0].Name != "x" || sl.Fields[1].Name != "y" {
		t.Fatalf("Fields = %+v, want [x y]", sl.Fields)
	}
}
