package wasmproof

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranslateNumericOp_IntAndFloatFamilies(t *testing.T) {
	cases := []struct {
		name string
		op   Opcode
		want string
	}{
		{"i32.eqz", OpcodeI32Eqz, "BI_testop T_i32 TO_eqz"},
		{"i32.lt_s", OpcodeI32LtS, "BI_relop T_i32 (Relop_i (ROI_lt SX_S))"},
		{"i32.lt_u", OpcodeI32LtU, "BI_relop T_i32 (Relop_i (ROI_lt SX_U))"},
		{"f64.lt", OpcodeF64Lt, "BI_relop T_f64 (Relop_f ROI_lt)"},
		{"i32.clz", OpcodeI32Clz, "BI_unop T_i32 (Unop_i UOI_clz)"},
		{"f32.sqrt", OpcodeF32Sqrt, "BI_unop T_f32 (Unop_f UOF_sqrt)"},
		{"i64.div_s", OpcodeI64DivS, "BI_binop T_i64 (Binop_i (BOI_div SX_S))"},
		{"i64.div_u", OpcodeI64DivU, "BI_binop T_i64 (Binop_i (BOI_div SX_U))"},
		{"f32.copysign", OpcodeF32Copysign, "BI_binop T_f32 (Binop_f BOF_copysign)"},
		{"i32.wrap_i64", OpcodeI32WrapI64, "BI_cvtop T_i32 (CVO_wrap T_i64 None)"},
		{"i32.trunc_f64_u", OpcodeI32TruncF64U, "BI_cvtop T_i32 (CVO_trunc T_f64 (Some SX_U))"},
		{"f64.promote_f32", OpcodeF64PromoteF32, "BI_cvtop T_f64 (CVO_promote T_f32 None)"},
		{"i64.reinterpret_f64", OpcodeI64ReinterpretF64, "BI_cvtop T_i64 (CVO_reinterpret T_f64 None)"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := translateNumericOp(tc.op)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestTranslateNumericOp_SignExtensionUnsupported(t *testing.T) {
	_, err := translateNumericOp(OpcodeI32Extend8S)
	require.ErrorIs(t, err, ErrUnsupportedOperator)
}

func TestTranslateNumericOp_UnknownOpcodeUnsupported(t *testing.T) {
	_, err := translateNumericOp(Opcode(0xff))
	require.ErrorIs(t, err, ErrUnsupportedOperator)
}

func TestTranslateBasicOperator_DispatchesThroughOpcode(t *testing.T) {
	out, err := translateBasicOperator(Operator{Kind: OpBinOp, Opcode: OpcodeI32Add}, nil)
	require.NoError(t, err)
	require.Equal(t, "BI_binop T_i32 (Binop_i BOI_add)", out)
}
