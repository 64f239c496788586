package wasmproof

import "fmt"

// consList renders items as a `"    " + item + " ::\n"` run sealed with
// `"    nil"`, the list separator/terminator used throughout §4.H and
// §6.4 ("List values use `::`/`nil` cons-list syntax").
func consList(items []string) string {
	out := ""
	for _, item := range items {
		out += "    " + item + " ::\n"
	}
	out += "    nil"
	return out
}

func translateImportDesc(imp Import) (string, error) {
	switch imp.Kind {
	case ImportFunc:
		return fmt.Sprintf("MID_func %d%%N", imp.FuncTypeIndex), nil
	case ImportGlobal:
		t, err := translateValueType(imp.Global.ValType)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("MID_global {|tg_mut := %s; tg_t := %s|}", translateMutability(imp.Global.Mutable), t), nil
	case ImportMemory:
		return fmt.Sprintf("MID_mem %s", translateLimits(imp.Memory)), nil
	case ImportTable:
		return fmt.Sprintf("MID_table %s", translateLimits(imp.Table.Limits)), nil
	default:
		return "", fmt.Errorf("unsupported import kind %d", imp.Kind)
	}
}

func translateImport(imp Import) (string, error) {
	desc, err := translateImportDesc(imp)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Mi %q %q (%s)", imp.Module, imp.Name, desc), nil
}

func translateExportDesc(exp Export) (string, error) {
	switch exp.Kind {
	case ExportFunc:
		return fmt.Sprintf("MED_func %d%%N", exp.Index), nil
	case ExportTable:
		return fmt.Sprintf("MED_table %d%%N", exp.Index), nil
	case ExportMemory:
		return fmt.Sprintf("MED_mem %d%%N", exp.Index), nil
	case ExportGlobal:
		return fmt.Sprintf("MED_global %d%%N", exp.Index), nil
	default:
		return "", fmt.Errorf("unsupported export kind %d", exp.Kind)
	}
}

func translateExport(exp Export) (string, error) {
	desc, err := translateExportDesc(exp)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Me %q (%s)", exp.Name, desc), nil
}

func translateTable(t TableType) (string, error) {
	elem, err := translateRefType(t.ElemType)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Mt %s %s", translateLimits(t.Limits), elem), nil
}

func translateMemory(m MemoryType) string {
	return fmt.Sprintf("Mm %s", translateLimits(m))
}

func translateGlobal(g Global) (string, error) {
	t, err := translateValueType(g.Type.ValType)
	if err != nil {
		return "", err
	}
	init, err := translateOperators(g.Init.Ops, nil, 2)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Mg %s (%s) (%s)", translateMutability(g.Type.Mutable), t, init), nil
}

func translateDataMode(d DataSegment) (string, error) {
	switch d.Mode {
	case DataActive:
		offset, err := translateOperators(d.Offset.Ops, nil, 2)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("MD_active %d%%N (%s)", d.MemoryIndex, offset), nil
	case DataPassive:
		return "MD_passive", nil
	default:
		return "", fmt.Errorf("unsupported data mode %d", d.Mode)
	}
}

func translateData(d DataSegment) (string, error) {
	mode, err := translateDataMode(d)
	if err != nil {
		return "", err
	}
	init := ""
	for _, b := range d.Bytes {
		init += fmt.Sprintf("#%02X :: ", b)
	}
	init += "nil"
	return fmt.Sprintf("{|\n    moddata_init := %s;\n    moddata_mode := %s;\n|}", init, mode), nil
}

func translateElementMode(e Element) (string, error) {
	switch e.Mode {
	case ElemActive:
		offset, err := translateOperators(e.Offset.Ops, nil, 2)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("ME_active %d%%N (%s)", e.TableIndex, offset), nil
	case ElemPassive:
		return "ME_passive", nil
	case ElemDeclared:
		return "ME_declared", nil
	default:
		return "", fmt.Errorf("unsupported element mode %d", e.Mode)
	}
}

func translateElement(e Element) (string, error) {
	mode, err := translateElementMode(e)
	if err != nil {
		return "", err
	}

	var elemType, init string
	if e.Items == ElemItemsFuncIndexes {
		elemType = "T_funcref"
		idx := ""
		for _, i := range e.FuncIndexes {
			idx += fmt.Sprintf("%d::", i)
		}
		idx += "nil"
		init = "ME_functions " + idx
	} else {
		rt, err := translateRefType(e.RefType)
		if err != nil {
			return "", err
		}
		elemType = rt
		list := ""
		for _, expr := range e.Exprs {
			rendered, err := translateOperators(expr.Ops, nil, 2)
			if err != nil {
				return "", err
			}
			list += "(" + rendered + ") ::\n"
		}
		list += "nil"
		init = list
	}

	return fmt.Sprintf("{|\nmodelem_type := %s;\nmodelem_init :=\n%s;\nmodelem_mode := %s;\n|}", elemType, init, mode), nil
}

func translateFuncType(ft FuncType) (string, error) {
	params := ""
	for _, p := range ft.Params {
		tag, err := translateValueType(p)
		if err != nil {
			return "", err
		}
		params += tag + " :: "
	}
	params += "nil"

	results := ""
	for _, r := range ft.Results {
		tag, err := translateValueType(r)
		if err != nil {
			return "", err
		}
		results += tag + " :: "
	}
	results += "nil"

	return fmt.Sprintf("Tf (%s) (%s)", params, results), nil
}
