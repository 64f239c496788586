package ast

// Definition is a top-level or module-nested declaration (§3.3).
type Definition interface {
	Node
	definitionNode()
}

// Use is a use-import directive attached to a SourceFile.
type Use struct {
	base
	Path  []string // segments before any alias/brace group
	Alias string   // non-empty for `as` aliases and Partial-import items
	Kind  UseKind
	Items []UseItem // populated for UseKindPartial
}

// UseKind distinguishes the three import shapes §4.F.2 resolves.
type UseKind int

const (
	UsePlain UseKind = iota
	UsePartial
	UseGlob
)

// UseItem is one `name` or `name as alias` entry of a Partial import.
type UseItem struct {
	Name  string
	Alias string // empty if not aliased
}

// SourceFile is the root node of one compiled file: its directives
// (currently only use-imports) followed by its definitions, both in
// source order.
type SourceFile struct {
	base
	Uses        []NodeID // []Use
	Definitions []NodeID // []Definition
}

// TypeAliasDef declares `type Name = <type>;`.
type TypeAliasDef struct {
	base
	Name       string
	Type       NodeID // TypeExpr
	Visibility Visibility
}

func (*TypeAliasDef) definitionNode() {}

// StructField is one field of a StructDefinition.
type StructField struct {
	Name       string
	Type       NodeID // TypeExpr
	Visibility Visibility
}

// StructDefinition declares a struct's fields and methods.
type StructDefinition struct {
	base
	Name       string
	Fields     []StructField
	Methods    []NodeID // []*FunctionDefinition
	Visibility Visibility
}

func (*StructDefinition) definitionNode() {}

// EnumDefinition declares a unit-only enum.
type EnumDefinition struct {
	base
	Name       string
	Variants   []string
	Visibility Visibility
}

func (*EnumDefinition) definitionNode() {}

// SpecDefinition declares an interface-like collection of operation
// signatures. The core recognizes but does not further analyze specs
// (§GLOSSARY).
type SpecDefinition struct {
	base
	Name       string
	Visibility Visibility
}

func (*SpecDefinition) definitionNode() {}

// ConstantDef is a top-level constant declaration.
type ConstantDef struct {
	base
	Name       string
	Type       NodeID // TypeExpr, valid iff HasType
	HasType    bool
	Value      NodeID // Expression
	Visibility Visibility
}

func (*ConstantDef) definitionNode() {}

// ArgumentKind tags the variant of a FunctionDefinition argument.
type ArgumentKind int

const (
	ArgNamed ArgumentKind = iota
	ArgSelf
	ArgIgnore
	ArgRawType
)

// Argument is one entry of a FunctionDefinition's argument list.
type Argument struct {
	Kind    ArgumentKind
	Name    string // valid for ArgNamed
	Type    NodeID // TypeExpr; valid for ArgNamed and ArgRawType
	Mutable bool   // valid for ArgNamed and ArgSelf
}

// FunctionDefinition declares a free function or a struct method (the
// latter may take a leading `self` pseudo-argument, see HasSelf).
type FunctionDefinition struct {
	base
	Name       string
	TypeParams []string
	Arguments  []Argument
	ReturnType NodeID // TypeExpr, valid iff HasReturnType
	HasReturnType bool
	Body       NodeID // Block
	Visibility Visibility
}

func (*FunctionDefinition) definitionNode() {}

// HasSelf reports whether the function's first argument is a `self`
// reference, i.e. it is an instance method rather than an associated
// function or free function (§3.4).
func (f *FunctionDefinition) HasSelf() bool {
	return len(f.Arguments) > 0 && f.Arguments[0].Kind == ArgSelf
}

// ExternalFunctionDefinition declares a function with no body, implemented
// outside the module (an FFI-style import of a native function).
type ExternalFunctionDefinition struct {
	base
	Name       string
	Arguments  []Argument
	ReturnType NodeID // TypeExpr, valid iff HasReturnType
	HasReturnType bool
	Visibility Visibility
}

func (*ExternalFunctionDefinition) definitionNode() {}

// ModuleDefinition introduces a named nested scope containing its own
// definitions.
type ModuleDefinition struct {
	base
	Name        string
	Definitions []NodeID // []Definition
	Visibility  Visibility
}

func (*ModuleDefinition) definitionNode() {}
