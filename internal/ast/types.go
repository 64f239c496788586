package ast

// TypeExpr is any node appearing in type position (§3.3 "Type").
type TypeExpr interface {
	Node
	typeExprNode()
}

// Numeric is the set of built-in numeric type names recognized in type
// position. Built-in bool/unit/string are represented by SimpleType too,
// with an empty Numeric value.
type Numeric string

const (
	NumNone Numeric = ""
	NumI8   Numeric = "i8"
	NumI16  Numeric = "i16"
	NumI32  Numeric = "i32"
	NumI64  Numeric = "i64"
	NumU8   Numeric = "u8"
	NumU16  Numeric = "u16"
	NumU32  Numeric = "u32"
	NumU64  Numeric = "u64"
)

// SimpleType names a built-in: a numeric width, bool, unit, or string.
type SimpleType struct {
	base
	Name string // "i8".."u64", "bool", "unit", "string"
}

func (*SimpleType) typeExprNode() {}

// ArrayType is a fixed-size array: element type plus a compile-time size
// expression (an Expression node, since sizes may be constant expressions).
type ArrayType struct {
	base
	Element NodeID // TypeExpr
	Size    NodeID // Expression
}

func (*ArrayType) typeExprNode() {}

// GenericType is a base identifier applied to ordered type parameters,
// e.g. Array<T>.
type GenericType struct {
	base
	Base       string
	TypeParams []NodeID // []TypeExpr
}

func (*GenericType) typeExprNode() {}

// FunctionType is a function type appearing in type position: optional
// parameter types and an optional return type.
type FunctionType struct {
	base
	Params  []NodeID // []TypeExpr
	Return  NodeID   // TypeExpr, ast.NoParent-sentinel-free: use HasReturn
	HasReturn bool
}

func (*FunctionType) typeExprNode() {}

// QualifiedName is a dotted value-position path, A.B.
type QualifiedName struct {
	base
	Segments []string
}

func (*QualifiedName) typeExprNode() {}

// TypeQualifiedName is a `::`-separated type selector, A::B.
type TypeQualifiedName struct {
	base
	Segments []string
}

func (*TypeQualifiedName) typeExprNode() {}

// CustomType is a bare identifier naming a user type or a type parameter;
// which one it is can only be resolved with symbol-table context.
type CustomType struct {
	base
	Name string
}

func (*CustomType) typeExprNode() {}
