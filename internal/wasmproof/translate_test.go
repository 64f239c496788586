package wasmproof

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wazero/api"
)

func u32p(v uint32) *uint32 { return &v }

func TestTranslate_MinimalModule(t *testing.T) {
	mod := Module{
		Name: "m",
		Types: []FuncType{
			{Params: []ValueType{api.ValueTypeI32}, Results: []ValueType{api.ValueTypeI32}},
		},
		FunctionTypeIndexes: []uint32{0},
		Functions: []FunctionBody{
			{
				Locals: []LocalGroup{{Count: 1, Type: api.ValueTypeI32}},
				Operators: []Operator{
					{Kind: OpLocalGet, LocalIndex: 0},
					{Kind: OpConstI32, ConstInt: 1},
					{Kind: OpBinOp, Opcode: OpcodeI32Add},
					{Kind: OpEnd},
				},
			},
		},
		Exports: []Export{{Name: "add_one", Kind: ExportFunc, Index: 0}},
	}

	out, err := Translate(mod)
	require.NoError(t, err)
	snaps.MatchSnapshot(t, out)
}

func TestTranslate_StructuredIfElse(t *testing.T) {
	mod := Module{
		Name:                "m",
		Types:               []FuncType{{Results: []ValueType{api.ValueTypeI32}}},
		FunctionTypeIndexes: []uint32{0},
		Functions: []FunctionBody{
			{
				Operators: []Operator{
					{Kind: OpConstI32, ConstInt: 1},
					{Kind: OpIf, BlockType: BlockType{Kind: BlockTypeValue, ValType: api.ValueTypeI32}},
					{Kind: OpConstI32, ConstInt: 10},
					{Kind: OpElse},
					{Kind: OpConstI32, ConstInt: 20},
					{Kind: OpEnd},
					{Kind: OpEnd},
				},
			},
		},
	}

	out, err := Translate(mod)
	require.NoError(t, err)
	snaps.MatchSnapshot(t, out)
}

func TestTranslate_StartFunctionAndMemory(t *testing.T) {
	mod := Module{
		Name:      "m",
		Memories:  []MemoryType{{Min: 1, Max: u32p(2)}},
		Globals:   []Global{{Type: GlobalType{ValType: api.ValueTypeI32, Mutable: true}, Init: ConstExpr{Ops: []Operator{{Kind: OpConstI32, ConstInt: 0}, {Kind: OpEnd}}}}},
		StartFunction: u32p(0),
		Types:     []FuncType{{}},
		FunctionTypeIndexes: []uint32{0},
		Functions: []FunctionBody{{Operators: []Operator{{Kind: OpNop}, {Kind: OpEnd}}}},
	}

	out, err := Translate(mod)
	require.NoError(t, err)
	snaps.MatchSnapshot(t, out)
}

func TestTranslate_UnsupportedOperatorSurfacesError(t *testing.T) {
	mod := Module{
		Name: "m",
		Types: []FuncType{{}},
		FunctionTypeIndexes: []uint32{0},
		Functions: []FunctionBody{
			{Operators: []Operator{{Kind: OpKind(9999)}, {Kind: OpEnd}}},
		},
	}

	_, err := Translate(mod)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUnsupportedOperator)
}

func TestTranslate_DebugLocalNameComment(t *testing.T) {
	mod := Module{
		Name:                "m",
		Types:               []FuncType{{Params: []ValueType{api.ValueTypeI32}}},
		FunctionTypeIndexes: []uint32{0},
		FuncLocalNames:      map[uint32]map[uint32]string{0: {0: "count"}},
		Functions: []FunctionBody{
			{Operators: []Operator{{Kind: OpLocalGet, LocalIndex: 0}, {Kind: OpDrop}, {Kind: OpEnd}}},
		},
	}

	out, err := Translate(mod)
	require.NoError(t, err)
	require.Contains(t, out, "BI_local_get 0%N (*count*)")
}

func TestFuncNamer_DeterministicFallback(t *testing.T) {
	n := newFuncNamer(map[uint32]string{1: "named"})
	require.Equal(t, "func_0", n.nameFor(0))
	require.Equal(t, "named", n.nameFor(1))
	require.Equal(t, "func_1", n.nameFor(2))
}

func TestBuildExpression_IfWithoutElse(t *testing.T) {
	ops := []Operator{
		{Kind: OpIf, BlockType: BlockType{Kind: BlockTypeEmpty}},
		{Kind: OpNop},
		{Kind: OpEnd},
	}
	pos := 0
	parts := buildExpression(ops, &pos)
	require.Len(t, parts, 1)
	require.True(t, parts[0].isCond)
	require.Empty(t, parts[0].els)
}
