// Package wasmproof implements the WASM Translator (§4.H): it consumes the
// decoded structure of a WebAssembly module (§6.3) and emits a
// proof-assistant source text (§6.4) built from a fixed preamble, one
// helper-expression list per module section, and one structured
// `module_func` definition per function body.
package wasmproof

import "github.com/tetratelabs/wazero/api"

// ValueType reuses wazero's byte-sized WASM value-type tag
// (ValueTypeI32/I64/F32/F64) rather than a hand-rolled enum, per the
// DOMAIN STACK wiring.
type ValueType = api.ValueType

// RefType distinguishes the two WASM reference types; these are never
// valid ValueType numeric tags so they get their own byte enum.
type RefType byte

const (
	RefFunc   RefType = 0x70
	RefExtern RefType = 0x6f
)

// Limits is the shared min/max shape used by table and memory types.
type Limits struct {
	Min uint32
	Max *uint32
}

type TableType struct {
	ElemType RefType
	Limits   Limits
}

// MemoryType is a Limits over page counts; WASM has no memory-specific
// fields beyond that.
type MemoryType = Limits

type GlobalType struct {
	ValType ValueType
	Mutable bool
}

// ConstExpr is a constant initializer expression (global init, offset
// expression for data/elem segments). The reader contract only needs the
// handful of operators that are legal in a constant context, so it is
// represented as a short operator stream rather than a dedicated type.
type ConstExpr struct {
	Ops []Operator
}

type ImportKind int

const (
	ImportFunc ImportKind = iota
	ImportTable
	ImportMemory
	ImportGlobal
)

type Import struct {
	Module string
	Name   string
	Kind   ImportKind

	FuncTypeIndex uint32
	Table         TableType
	Memory        MemoryType
	Global        GlobalType
}

type ExportKind int

const (
	ExportFunc ExportKind = iota
	ExportTable
	ExportMemory
	ExportGlobal
)

type Export struct {
	Name  string
	Kind  ExportKind
	Index uint32
}

type Global struct {
	Type GlobalType
	Init ConstExpr
}

type DataMode int

const (
	DataActive DataMode = iota
	DataPassive
)

type DataSegment struct {
	Mode        DataMode
	MemoryIndex uint32
	Offset      ConstExpr
	Bytes       []byte
}

type ElementMode int

const (
	ElemActive ElementMode = iota
	ElemPassive
	ElemDeclared
)

// ElemItemsKind distinguishes the binary format's two encodings of an
// element segment's init list: a plain function-index list (the common
// case, rendered as ME_functions) versus a list of full constant
// expressions (rendered as one translated expression per item).
type ElemItemsKind int

const (
	ElemItemsFuncIndexes ElemItemsKind = iota
	ElemItemsExprs
)

// Element is a module element segment.
type Element struct {
	Mode        ElementMode
	TableIndex  uint32
	Offset      ConstExpr
	RefType     RefType
	Items       ElemItemsKind
	FuncIndexes []uint32  // valid iff Items == ElemItemsFuncIndexes
	Exprs       []ConstExpr // valid iff Items == ElemItemsExprs
}

// FuncType is one function signature; a rec-group in the binary format
// that contains more than a single func type is out of scope for this
// translator (struct/array/cont composite types are not supported, same
// as the reader this is grounded on).
type FuncType struct {
	Params  []ValueType
	Results []ValueType
}

type LocalGroup struct {
	Count uint32
	Type  ValueType
}

// FunctionBody is one defined function: its declared locals (grouped by
// run, as the binary format stores them) and its flat operator stream.
type FunctionBody struct {
	Locals    []LocalGroup
	Operators []Operator
}

// Module is the full decoded input to Translate (§6.3): a display name,
// optional debug name maps, and one slice per module section, index-
// aligned with function_type_indexes/functions.
type Module struct {
	Name string

	// FuncNames and FuncLocalNames are both keyed by function index (not
	// type index): WASM's debug name subsection assigns names per defined
	// function, and two functions sharing a signature still have distinct
	// locals and distinct names.
	FuncNames      map[uint32]string
	FuncLocalNames map[uint32]map[uint32]string
	StartFunction  *uint32

	Imports             []Import
	Exports             []Export
	Tables              []TableType
	Memories            []MemoryType
	Globals             []Global
	Data                []DataSegment
	Elements            []Element
	Types               []FuncType
	FunctionTypeIndexes []uint32
	Functions           []FunctionBody
}
