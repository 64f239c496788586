package wasmproof

import (
	"fmt"
	"strings"
)

// Translate implements the WASM Translator (§4.H): it renders mod into a
// single Coq-like proof-assistant source text built from the fixed
// preamble, one cons-list per module section, one `module_func`
// definition per function body, and a final `module` record whose field
// order (mod_types, mod_funcs, mod_tables, mod_mems, mod_globals,
// mod_elems, mod_datas, mod_start, mod_imports, mod_exports) is pinned by
// original_source/core/wasm-to-v/src/translator.rs.
func Translate(mod Module) (string, error) {
	var b strings.Builder
	b.WriteString(preamble)

	imports, err := sectionList(mod.Imports, translateImport)
	if err != nil {
		return "", fmt.Errorf("imports: %w", err)
	}
	exports, err := sectionList(mod.Exports, translateExport)
	if err != nil {
		return "", fmt.Errorf("exports: %w", err)
	}
	tables, err := sectionList(mod.Tables, translateTable)
	if err != nil {
		return "", fmt.Errorf("tables: %w", err)
	}
	memories := consList(mapStrings(mod.Memories, translateMemory))
	globals, err := sectionList(mod.Globals, translateGlobal)
	if err != nil {
		return "", fmt.Errorf("globals: %w", err)
	}
	data, err := sectionList(mod.Data, translateData)
	if err != nil {
		return "", fmt.Errorf("data: %w", err)
	}
	elements, err := sectionList(mod.Elements, translateElement)
	if err != nil {
		return "", fmt.Errorf("elements: %w", err)
	}
	funcTypes, err := sectionList(mod.Types, translateFuncType)
	if err != nil {
		return "", fmt.Errorf("types: %w", err)
	}

	funcDefs, funcNames, err := translateFunctions(mod)
	if err != nil {
		return "", fmt.Errorf("functions: %w", err)
	}
	functions := consList(funcNames)

	b.WriteString(funcDefs)

	fmt.Fprintf(&b, "Definition %s : module := {|\n", mod.Name)
	fmt.Fprintf(&b, "  mod_types :=\n%s;\n", funcTypes)
	fmt.Fprintf(&b, "  mod_funcs :=\n%s;\n", functions)
	fmt.Fprintf(&b, "  mod_tables :=\n%s;\n", tables)
	fmt.Fprintf(&b, "  mod_mems :=\n%s;\n", memories)
	fmt.Fprintf(&b, "  mod_globals :=\n%s;\n", globals)
	fmt.Fprintf(&b, "  mod_elems :=\n%s;\n", elements)
	fmt.Fprintf(&b, "  mod_datas :=\n%s;\n", data)
	if mod.StartFunction != nil {
		fmt.Fprintf(&b, "  mod_start := Some {|modstart_func := %d%%N|};\n", *mod.StartFunction)
	} else {
		b.WriteString("  mod_start := None;\n")
	}
	fmt.Fprintf(&b, "  mod_imports :=\n%s;\n", imports)
	fmt.Fprintf(&b, "  mod_exports :=\n%s;\n", exports)
	b.WriteString("|}.\n")

	return b.String(), nil
}

func sectionList[T any](items []T, f func(T) (string, error)) (string, error) {
	rendered := make([]string, len(items))
	for i, item := range items {
		r, err := f(item)
		if err != nil {
			return "", err
		}
		rendered[i] = r
	}
	return consList(rendered), nil
}

func mapStrings[T any](items []T, f func(T) string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = f(item)
	}
	return out
}

// translateFunctions emits one `module_func` Definition per function
// body and returns that text alongside the ordered list of generated
// definition names (used to build mod_funcs' cons-list).
func translateFunctions(mod Module) (string, []string, error) {
	var b strings.Builder
	names := make([]string, len(mod.Functions))
	namer := newFuncNamer(mod.FuncNames)

	for i, fn := range mod.Functions {
		index := uint32(i)
		name := namer.nameFor(index)
		names[i] = name

		typeIndex := uint32(0)
		if index < uint32(len(mod.FunctionTypeIndexes)) {
			typeIndex = mod.FunctionTypeIndexes[index]
		}

		locals := ""
		for _, group := range fn.Locals {
			tag, err := translateValueType(group.Type)
			if err != nil {
				return "", nil, err
			}
			for n := uint32(0); n < group.Count; n++ {
				locals += tag + " :: "
			}
		}
		locals += "nil"

		var localNames map[uint32]string
		if mod.FuncLocalNames != nil {
			localNames = mod.FuncLocalNames[index]
		}
		body, err := translateOperators(fn.Operators, localNames, 2)
		if err != nil {
			return "", nil, fmt.Errorf("function %d: %w", index, err)
		}

		fmt.Fprintf(&b, "Definition %s : module_func := {|\n", name)
		fmt.Fprintf(&b, "  modfunc_type := %d%%N;\n", typeIndex)
		fmt.Fprintf(&b, "  modfunc_locals := %s;\n", locals)
		fmt.Fprintf(&b, "  modfunc_body :=\n%s;\n", body)
		b.WriteString("|}.\n")
	}

	return b.String(), names, nil
}
