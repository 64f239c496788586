package wasmproof

import (
	"fmt"
	"strconv"

	"github.com/tetratelabs/wazero/api"
)

// ErrUnsupportedOperator is wrapped with the offending operator's kind
// when translateBasicOperator meets an instruction outside the scalar
// control/numeric/memory/table families this translator covers (atomics,
// exceptions, GC, vectors, tail calls, stack switching), per §4.H:
// "Unsupported operators... produce an error surfaced to the caller."
var ErrUnsupportedOperator = fmt.Errorf("unsupported operator")

func valTypeTag(t ValueType) (string, error) {
	switch t {
	case api.ValueTypeI32:
		return "T_i32", nil
	case api.ValueTypeI64:
		return "T_i64", nil
	case api.ValueTypeF32:
		return "T_f32", nil
	case api.ValueTypeF64:
		return "T_f64", nil
	default:
		return "", fmt.Errorf("%w: value type %#x", ErrUnsupportedOperator, t)
	}
}

func packedWidthTag(w Width) string {
	switch w {
	case Width8:
		return "Tp_i8"
	case Width16:
		return "Tp_i16"
	case Width32:
		return "Tp_i32"
	default:
		return "Tp_i8"
	}
}

func signTag(s Signedness) string {
	if s == SignedExt {
		return "SX_S"
	}
	return "SX_U"
}

// translateBasicOperator implements the large `basic_instruction`
// dispatch of §4.H: one Coq constructor expression per Operator,
// annotating LocalGet/LocalSet/LocalTee with a debug-name comment when
// localNames has an entry for that index.
func translateBasicOperator(op Operator, localNames map[uint32]string) (string, error) {
	switch op.Kind {
	case OpNop:
		return "BI_nop", nil
	case OpUnreachable:
		return "BI_unreachable", nil

	case OpBlock, OpLoop, OpIf, OpForall, OpExists, OpAssume, OpUnique:
		bt, err := translateBlockType(op.BlockType)
		if err != nil {
			return "", err
		}
		return structuredCtor(op.Kind) + " (" + bt + ")", nil

	case OpUzumaki:
		tag, err := valTypeTag(op.ValType)
		if err != nil {
			return "", err
		}
		return "BI_uzumaki_num " + tag, nil

	case OpElse, OpEnd:
		return "", nil

	case OpBr:
		return fmt.Sprintf("BI_br %d", op.RelativeDepth), nil
	case OpBrIf:
		return fmt.Sprintf("BI_br_if %d%%N", op.RelativeDepth), nil
	case OpBrTable:
		if len(op.Targets) == 0 {
			return "BI_br_table", nil
		}
		list := ""
		for _, t := range op.Targets {
			list += strconv.FormatUint(uint64(t), 10) + " :: "
		}
		list += "nil"
		return "BI_br_table (" + list + ")", nil

	case OpReturn:
		return "BI_return", nil
	case OpCall:
		return fmt.Sprintf("BI_call %d", op.FunctionIndex), nil
	case OpCallIndirect:
		return fmt.Sprintf("BI_call_indirect %d %d", op.TypeIndex, op.TableIndex), nil
	case OpDrop:
		return "BI_drop", nil
	case OpSelect:
		return "BI_select None", nil

	case OpLocalGet:
		return localIndexOp("BI_local_get", op.LocalIndex, localNames), nil
	case OpLocalSet:
		return localIndexOp("BI_local_set", op.LocalIndex, localNames), nil
	case OpLocalTee:
		return localIndexOp("BI_local_tee", op.LocalIndex, localNames), nil

	case OpGlobalGet:
		return fmt.Sprintf("BI_global_get %d%%N", op.GlobalIndex), nil
	case OpGlobalSet:
		return fmt.Sprintf("BI_global_set %d%%N", op.GlobalIndex), nil

	case OpLoad:
		return translateLoad(op)
	case OpStore:
		return translateStore(op)

	case OpMemorySize:
		return "BI_memory_size", nil
	case OpMemoryGrow:
		return "BI_memory_grow", nil
	case OpMemoryInit:
		return fmt.Sprintf("BI_memory_init %d", op.DataIndex), nil
	case OpDataDrop:
		return fmt.Sprintf("BI_data_drop %d", op.DataIndex), nil
	case OpMemoryCopy:
		return "BI_memory_copy", nil
	case OpMemoryFill:
		return "BI_memory_fill", nil

	case OpConstI32:
		return fmt.Sprintf("BI_const_num (Vi32 %d)", op.ConstInt), nil
	case OpConstI64:
		return fmt.Sprintf("BI_const_num (Vi64 %d)", op.ConstInt), nil
	case OpConstF32:
		return fmt.Sprintf("BI_const_num (VAL_float32 %d)", op.ConstBits), nil
	case OpConstF64:
		return fmt.Sprintf("BI_const_num (VAL_float64 %d)", op.ConstBits), nil

	case OpTestOp, OpRelOp, OpUnOp, OpBinOp, OpCvtOp:
		return translateNumericOp(op.Opcode)

	case OpRefIsNull:
		return "BI_ref_is_null", nil
	case OpRefFunc:
		return fmt.Sprintf("BI_ref_func %d%%N", op.FunctionIndex), nil
	case OpTableGet:
		return fmt.Sprintf("BI_table_get %d%%N", op.TableIndex), nil
	case OpTableSet:
		return fmt.Sprintf("BI_table_set %d%%N", op.TableIndex), nil
	case OpTableGrow:
		return fmt.Sprintf("BI_table_grow %d%%N", op.TableIndex), nil
	case OpTableSize:
		return fmt.Sprintf("BI_table_size %d%%N", op.TableIndex), nil
	case OpTableFill:
		return fmt.Sprintf("BI_table_fill %d%%N", op.TableIndex), nil

	default:
		return "", fmt.Errorf("%w: kind %d", ErrUnsupportedOperator, op.Kind)
	}
}

func structuredCtor(k OpKind) string {
	switch k {
	case OpBlock:
		return "BI_block"
	case OpLoop:
		return "BI_loop"
	case OpIf:
		return "BI_if"
	case OpForall:
		return "BI_forall"
	case OpExists:
		return "BI_exists"
	case OpAssume:
		return "BI_assume"
	case OpUnique:
		return "BI_unique"
	default:
		return "BI_block"
	}
}

func localIndexOp(ctor string, index uint32, localNames map[uint32]string) string {
	if name, ok := localNames[index]; ok {
		return fmt.Sprintf("%s %d%%N (*%s*)", ctor, index, name)
	}
	return fmt.Sprintf("%s %d%%N", ctor, index)
}

func translateLoad(op Operator) (string, error) {
	tag, err := valTypeTag(op.ValType)
	if err != nil {
		return "", err
	}
	memarg := translateMemArg(op.MemArg)
	if op.PackedWidth == nil {
		return fmt.Sprintf("BI_load %s None (%s)", tag, memarg), nil
	}
	pw := op.PackedWidth
	return fmt.Sprintf("BI_load %s (Some (%s, %s)) (%s)", tag, packedWidthTag(pw.Width), signTag(pw.Sign), memarg), nil
}

func translateStore(op Operator) (string, error) {
	tag, err := valTypeTag(op.ValType)
	if err != nil {
		return "", err
	}
	memarg := translateMemArg(op.MemArg)
	if op.PackedWidth == nil {
		return fmt.Sprintf("BI_store %s None (%s)", tag, memarg), nil
	}
	return fmt.Sprintf("BI_store %s (Some %s) (%s)", tag, packedWidthTag(op.PackedWidth.Width), memarg), nil
}

// translateNumericOp is the testop/relop/unop/binop/cvtop dispatch of
// §4.H: one Coq expression literal per concrete WASM opcode, a direct
// port of the per-variant match in
// original_source/core/wasm-to-v/src/translator.rs. Unlike the coarser
// OpKind tag, the opcode alone fixes both operand type and operation, so
// no other Operator field is consulted here.
func translateNumericOp(op Opcode) (string, error) {
	switch op {
	case OpcodeI32Eqz:
		return "BI_testop T_i32 TO_eqz", nil
	case OpcodeI64Eqz:
		return "BI_testop T_i64 TO_eqz", nil

	case OpcodeI32Eq:
		return "BI_relop T_i32 (Relop_i ROI_eq)", nil
	case OpcodeI32Ne:
		return "BI_relop T_i32 (Relop_i ROI_ne)", nil
	case OpcodeI32LtS:
		return "BI_relop T_i32 (Relop_i (ROI_lt SX_S))", nil
	case OpcodeI32LtU:
		return "BI_relop T_i32 (Relop_i (ROI_lt SX_U))", nil
	case OpcodeI32GtS:
		return "BI_relop T_i32 (Relop_i (ROI_gt SX_S))", nil
	case OpcodeI32GtU:
		return "BI_relop T_i32 (Relop_i (ROI_gt SX_U))", nil
	case OpcodeI32LeS:
		return "BI_relop T_i32 (Relop_i (ROI_le SX_S))", nil
	case OpcodeI32LeU:
		return "BI_relop T_i32 (Relop_i (ROI_le SX_U))", nil
	case OpcodeI32GeS:
		return "BI_relop T_i32 (Relop_i (ROI_ge SX_S))", nil
	case OpcodeI32GeU:
		return "BI_relop T_i32 (Relop_i (ROI_ge SX_U))", nil

	case OpcodeI64Eq:
		return "BI_relop T_i64 (Relop_i ROI_eq)", nil
	case OpcodeI64Ne:
		return "BI_relop T_i64 (Relop_i ROI_ne)", nil
	case OpcodeI64LtS:
		return "BI_relop T_i64 (Relop_i (ROI_lt SX_S))", nil
	case OpcodeI64LtU:
		return "BI_relop T_i64 (Relop_i (ROI_lt SX_U))", nil
	case OpcodeI64GtS:
		return "BI_relop T_i64 (Relop_i (ROI_gt SX_S))", nil
	case OpcodeI64GtU:
		return "BI_relop T_i64 (Relop_i (ROI_gt SX_U))", nil
	case OpcodeI64LeS:
		return "BI_relop T_i64 (Relop_i (ROI_le SX_S))", nil
	case OpcodeI64LeU:
		return "BI_relop T_i64 (Relop_i (ROI_le SX_U))", nil
	case OpcodeI64GeS:
		return "BI_relop T_i64 (Relop_i (ROI_ge SX_S))", nil
	case OpcodeI64GeU:
		return "BI_relop T_i64 (Relop_i (ROI_ge SX_U))", nil

	case OpcodeF32Eq:
		return "BI_relop T_f32 (Relop_f ROI_eq)", nil
	case OpcodeF32Ne:
		return "BI_relop T_f32 (Relop_f ROI_ne)", nil
	case OpcodeF32Lt:
		return "BI_relop T_f32 (Relop_f ROI_lt)", nil
	case OpcodeF32Gt:
		return "BI_relop T_f32 (Relop_f ROI_gt)", nil
	case OpcodeF32Le:
		return "BI_relop T_f32 (Relop_f ROI_le)", nil
	case OpcodeF32Ge:
		return "BI_relop T_f32 (Relop_f ROI_ge)", nil

	case OpcodeF64Eq:
		return "BI_relop T_f64 (Relop_f ROI_eq)", nil
	case OpcodeF64Ne:
		return "BI_relop T_f64 (Relop_f ROI_ne)", nil
	case OpcodeF64Lt:
		return "BI_relop T_f64 (Relop_f ROI_lt)", nil
	case OpcodeF64Gt:
		return "BI_relop T_f64 (Relop_f ROI_gt)", nil
	case OpcodeF64Le:
		return "BI_relop T_f64 (Relop_f ROI_le)", nil
	case OpcodeF64Ge:
		return "BI_relop T_f64 (Relop_f ROI_ge)", nil

	case OpcodeI32Clz:
		return "BI_unop T_i32 (Unop_i UOI_clz)", nil
	case OpcodeI32Ctz:
		return "BI_unop T_i32 (Unop_i UOI_ctz)", nil
	case OpcodeI32Popcnt:
		return "BI_unop T_i32 (Unop_i UOI_popcnt)", nil
	case OpcodeI32Add:
		return "BI_binop T_i32 (Binop_i BOI_add)", nil
	case OpcodeI32Sub:
		return "BI_binop T_i32 (Binop_i BOI_sub)", nil
	case OpcodeI32Mul:
		return "BI_binop T_i32 (Binop_i BOI_mul)", nil
	case OpcodeI32DivS:
		return "BI_binop T_i32 (Binop_i (BOI_div SX_S))", nil
	case OpcodeI32DivU:
		return "BI_binop T_i32 (Binop_i (BOI_div SX_U))", nil
	case OpcodeI32RemS:
		return "BI_binop T_i32 (Binop_i (BOI_rem SX_S))", nil
	case OpcodeI32RemU:
		return "BI_binop T_i32 (Binop_i (BOI_rem SX_U))", nil
	case OpcodeI32And:
		return "BI_binop T_i32 (Binop_i BOI_and)", nil
	case OpcodeI32Or:
		return "BI_binop T_i32 (Binop_i BOI_or)", nil
	case OpcodeI32Xor:
		return "BI_binop T_i32 (Binop_i BOI_xor)", nil
	case OpcodeI32Shl:
		return "BI_binop T_i32 (Binop_i BOI_shl)", nil
	case OpcodeI32ShrS:
		return "BI_binop T_i32 (Binop_i (BOI_shr SX_S))", nil
	case OpcodeI32ShrU:
		return "BI_binop T_i32 (Binop_i (BOI_shr SX_U))", nil
	case OpcodeI32Rotl:
		return "BI_binop T_i32 (Binop_i BOI_rotl)", nil
	case OpcodeI32Rotr:
		return "BI_binop T_i32 (Binop_i BOI_rotr)", nil

	case OpcodeI64Clz:
		return "BI_unop T_i64 (Unop_i UOI_clz)", nil
	case OpcodeI64Ctz:
		return "BI_unop T_i64 (Unop_i UOI_ctz)", nil
	case OpcodeI64Popcnt:
		return "BI_unop T_i64 (Unop_i UOI_popcnt)", nil
	case OpcodeI64Add:
		return "BI_binop T_i64 (Binop_i BOI_add)", nil
	case OpcodeI64Sub:
		return "BI_binop T_i64 (Binop_i BOI_sub)", nil
	case OpcodeI64Mul:
		return "BI_binop T_i64 (Binop_i BOI_mul)", nil
	case OpcodeI64DivS:
		return "BI_binop T_i64 (Binop_i (BOI_div SX_S))", nil
	case OpcodeI64DivU:
		return "BI_binop T_i64 (Binop_i (BOI_div SX_U))", nil
	case OpcodeI64RemS:
		return "BI_binop T_i64 (Binop_i (BOI_rem SX_S))", nil
	case OpcodeI64RemU:
		return "BI_binop T_i64 (Binop_i (BOI_rem SX_U))", nil
	case OpcodeI64And:
		return "BI_binop T_i64 (Binop_i BOI_and)", nil
	case OpcodeI64Or:
		return "BI_binop T_i64 (Binop_i BOI_or)", nil
	case OpcodeI64Xor:
		return "BI_binop T_i64 (Binop_i BOI_xor)", nil
	case OpcodeI64Shl:
		return "BI_binop T_i64 (Binop_i BOI_shl)", nil
	case OpcodeI64ShrS:
		return "BI_binop T_i64 (Binop_i (BOI_shr SX_S))", nil
	case OpcodeI64ShrU:
		return "BI_binop T_i64 (Binop_i (BOI_shr SX_U))", nil
	case OpcodeI64Rotl:
		return "BI_binop T_i64 (Binop_i BOI_rotl)", nil
	case OpcodeI64Rotr:
		return "BI_binop T_i64 (Binop_i BOI_rotr)", nil

	case OpcodeF32Abs:
		return "BI_unop T_f32 (Unop_f UOF_abs)", nil
	case OpcodeF32Neg:
		return "BI_unop T_f32 (Unop_f UOF_neg)", nil
	case OpcodeF32Ceil:
		return "BI_unop T_f32 (Unop_f UOF_ceil)", nil
	case OpcodeF32Floor:
		return "BI_unop T_f32 (Unop_f UOF_floor)", nil
	case OpcodeF32Trunc:
		return "BI_unop T_f32 (Unop_f UOF_trunc)", nil
	case OpcodeF32Nearest:
		return "BI_unop T_f32 (Unop_f UOF_nearest)", nil
	case OpcodeF32Sqrt:
		return "BI_unop T_f32 (Unop_f UOF_sqrt)", nil
	case OpcodeF32Add:
		return "BI_binop T_f32 (Binop_f BOF_add)", nil
	case OpcodeF32Sub:
		return "BI_binop T_f32 (Binop_f BOF_sub)", nil
	case OpcodeF32Mul:
		return "BI_binop T_f32 (Binop_f BOF_mul)", nil
	case OpcodeF32Div:
		return "BI_binop T_f32 (Binop_f BOF_div)", nil
	case OpcodeF32Min:
		return "BI_binop T_f32 (Binop_f BOF_min)", nil
	case OpcodeF32Max:
		return "BI_binop T_f32 (Binop_f BOF_max)", nil
	case OpcodeF32Copysign:
		return "BI_binop T_f32 (Binop_f BOF_copysign)", nil

	case OpcodeF64Abs:
		return "BI_unop T_f64 (Unop_f UOF_abs)", nil
	case OpcodeF64Neg:
		return "BI_unop T_f64 (Unop_f UOF_neg)", nil
	case OpcodeF64Ceil:
		return "BI_unop T_f64 (Unop_f UOF_ceil)", nil
	case OpcodeF64Floor:
		return "BI_unop T_f64 (Unop_f UOF_floor)", nil
	case OpcodeF64Trunc:
		return "BI_unop T_f64 (Unop_f UOF_trunc)", nil
	case OpcodeF64Nearest:
		return "BI_unop T_f64 (Unop_f UOF_nearest)", nil
	case OpcodeF64Sqrt:
		return "BI_unop T_f64 (Unop_f UOF_sqrt)", nil
	case OpcodeF64Add:
		return "BI_binop T_f64 (Binop_f BOF_add)", nil
	case OpcodeF64Sub:
		return "BI_binop T_f64 (Binop_f BOF_sub)", nil
	case OpcodeF64Mul:
		return "BI_binop T_f64 (Binop_f BOF_mul)", nil
	case OpcodeF64Div:
		return "BI_binop T_f64 (Binop_f BOF_div)", nil
	case OpcodeF64Min:
		return "BI_binop T_f64 (Binop_f BOF_min)", nil
	case OpcodeF64Max:
		return "BI_binop T_f64 (Binop_f BOF_max)", nil
	case OpcodeF64Copysign:
		return "BI_binop T_f64 (Binop_f BOF_copysign)", nil

	case OpcodeI32WrapI64:
		return "BI_cvtop T_i32 (CVO_wrap T_i64 None)", nil
	case OpcodeI32TruncF32S:
		return "BI_cvtop T_i32 (CVO_trunc T_f32 (Some SX_S))", nil
	case OpcodeI32TruncF32U:
		return "BI_cvtop T_i32 (CVO_trunc T_f32 (Some SX_U))", nil
	case OpcodeI32TruncF64S:
		return "BI_cvtop T_i32 (CVO_trunc T_f64 (Some SX_S))", nil
	case OpcodeI32TruncF64U:
		return "BI_cvtop T_i32 (CVO_trunc T_f64 (Some SX_U))", nil
	case OpcodeI64ExtendI32S:
		return "BI_cvtop T_i64 (CVO_extend T_i32 (Some SX_S))", nil
	case OpcodeI64ExtendI32U:
		return "BI_cvtop T_i64 (CVO_extend T_i32 (Some SX_U))", nil
	case OpcodeI64TruncF32S:
		return "BI_cvtop T_i64 (CVO_trunc T_f32 (Some SX_S))", nil
	case OpcodeI64TruncF32U:
		return "BI_cvtop T_i64 (CVO_trunc T_f32 (Some SX_U))", nil
	case OpcodeI64TruncF64S:
		return "BI_cvtop T_i64 (CVO_trunc T_f64 (Some SX_S))", nil
	case OpcodeI64TruncF64U:
		return "BI_cvtop T_i64 (CVO_trunc T_f64 (Some SX_U))", nil
	case OpcodeF32ConvertI32S:
		return "BI_cvtop T_f32 (CVO_convert T_i32 (Some SX_S))", nil
	case OpcodeF32ConvertI32U:
		return "BI_cvtop T_f32 (CVO_convert T_i32 (Some SX_U))", nil
	case OpcodeF32ConvertI64S:
		return "BI_cvtop T_f32 (CVO_convert T_i64 (Some SX_S))", nil
	case OpcodeF32ConvertI64U:
		return "BI_cvtop T_f32 (CVO_convert T_i64 (Some SX_U))", nil
	case OpcodeF32DemoteF64:
		return "BI_cvtop T_f32 (CVO_demote T_f64 None)", nil
	case OpcodeF64ConvertI32S:
		return "BI_cvtop T_f64 (CVO_convert T_i32 (Some SX_S))", nil
	case OpcodeF64ConvertI32U:
		return "BI_cvtop T_f64 (CVO_convert T_i32 (Some SX_U))", nil
	case OpcodeF64ConvertI64S:
		return "BI_cvtop T_f64 (CVO_convert T_i64 (Some SX_S))", nil
	case OpcodeF64ConvertI64U:
		return "BI_cvtop T_f64 (CVO_convert T_i64 (Some SX_U))", nil
	case OpcodeF64PromoteF32:
		return "BI_cvtop T_f64 (CVO_promote T_f32 None)", nil
	case OpcodeI32ReinterpretF32:
		return "BI_cvtop T_i32 (CVO_reinterpret T_f32 None)", nil
	case OpcodeI64ReinterpretF64:
		return "BI_cvtop T_i64 (CVO_reinterpret T_f64 None)", nil
	case OpcodeF32ReinterpretI32:
		return "BI_cvtop T_f32 (CVO_reinterpret T_i32 None)", nil
	case OpcodeF64ReinterpretI64:
		return "BI_cvtop T_f64 (CVO_reinterpret T_i64 None)", nil

	// Sign-extension instructions are unimplemented upstream (todo!() in
	// translator.rs) and surface the same error here.
	case OpcodeI32Extend8S, OpcodeI32Extend16S, OpcodeI64Extend8S, OpcodeI64Extend16S, OpcodeI64Extend32S:
		return "", fmt.Errorf("%w: opcode %#x", ErrUnsupportedOperator, byte(op))

	default:
		return "", fmt.Errorf("%w: opcode %#x", ErrUnsupportedOperator, byte(op))
	}
}
