package wasmproof

import (
	"fmt"
	"strconv"

	"github.com/tetratelabs/wazero/api"
)

func translateValueType(t ValueType) (string, error) {
	switch t {
	case api.ValueTypeI32:
		return "T_num T_i32", nil
	case api.ValueTypeI64:
		return "T_num T_i64", nil
	case api.ValueTypeF32:
		return "T_num T_f32", nil
	case api.ValueTypeF64:
		return "T_num T_f64", nil
	default:
		return "", fmt.Errorf("unsupported value type %#x", t)
	}
}

func translateRefType(t RefType) (string, error) {
	switch t {
	case RefFunc:
		return "T_funcref", nil
	case RefExtern:
		return "T_externref", nil
	default:
		return "", fmt.Errorf("unsupported reference type %#x", t)
	}
}

func translateMutability(mutable bool) string {
	if mutable {
		return "MUT_var"
	}
	return "MUT_const"
}

func translateLimits(l Limits) string {
	min := strconv.FormatUint(uint64(l.Min), 10) + "%N"
	max := "None"
	if l.Max != nil {
		max = "Some(" + strconv.FormatUint(uint64(*l.Max), 10) + "%N)"
	}
	return "{|lim_min := " + min + "; lim_max := " + max + "|}"
}

func translateBlockType(bt BlockType) (string, error) {
	switch bt.Kind {
	case BlockTypeEmpty:
		return "BT_valtype None", nil
	case BlockTypeFuncIndex:
		return fmt.Sprintf("BT_id %d%%N", bt.TypeIndex), nil
	case BlockTypeValue:
		vt, err := translateValueType(bt.ValType)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("BT_valtype (Some (%s))", vt), nil
	default:
		return "", fmt.Errorf("unrecognized block type")
	}
}

func translateMemArg(m MemArg) string {
	return fmt.Sprintf("Ma %d%%N %d%%N", m.Offset, m.Align)
}
