// Package typeinfo implements the semantic type representation used by
// the type checker (§4.E): a small tagged union with structural equality
// and capture-free substitution over free type variables.
package typeinfo

import (
	"fmt"
	"strings"

	"github.com/inflang/infc/internal/ast"
)

// Kind tags the variant a TypeInfo holds.
type Kind int

const (
	KindNumber Kind = iota
	KindBool
	KindString
	KindUnit
	KindArray
	KindStruct
	KindEnum
	KindSpec
	KindFunction
	KindGeneric
	KindCustom
)

// NumberType enumerates the fixed-width numeric types.
type NumberType string

const (
	I8  NumberType = "i8"
	I16 NumberType = "i16"
	I32 NumberType = "i32"
	I64 NumberType = "i64"
	U8  NumberType = "u8"
	U16 NumberType = "u16"
	U32 NumberType = "u32"
	U64 NumberType = "u64"
)

var signedNumbers = map[NumberType]bool{I8: true, I16: true, I32: true, I64: true}

var simpleNames = map[string]NumberType{
	"i8": I8, "i16": I16, "i32": I32, "i64": I64,
	"u8": U8, "u16": U16, "u32": U32, "u64": U64,
}

// TypeInfo is (kind, type_params) per §4.E: a tagged union carrying an
// ordered list of type arguments alongside whichever payload its Kind
// needs. It is a value type so it can be copied, compared, and stored in
// maps freely.
type TypeInfo struct {
	Kind       Kind
	Number     NumberType // valid iff Kind == KindNumber
	Name       string     // valid iff Kind is Struct/Enum/Spec/Function/Generic/Custom
	Element    *TypeInfo  // valid iff Kind == KindArray
	Size       uint32     // valid iff Kind == KindArray
	TypeParams []TypeInfo
}

func Bool() TypeInfo   { return TypeInfo{Kind: KindBool} }
func String() TypeInfo { return TypeInfo{Kind: KindString} }
func Unit() TypeInfo   { return TypeInfo{Kind: KindUnit} }
func Number(n NumberType) TypeInfo { return TypeInfo{Kind: KindNumber, Number: n} }
func Array(elem TypeInfo, size uint32) TypeInfo {
	e := elem
	return TypeInfo{Kind: KindArray, Element: &e, Size: size}
}
func Struct(name string, typeParams ...TypeInfo) TypeInfo {
	return TypeInfo{Kind: KindStruct, Name: name, TypeParams: typeParams}
}
func Enum(name string) TypeInfo    { return TypeInfo{Kind: KindEnum, Name: name} }
func Spec(name string) TypeInfo    { return TypeInfo{Kind: KindSpec, Name: name} }
func Function(name string) TypeInfo { return TypeInfo{Kind: KindFunction, Name: name} }
func Generic(name string) TypeInfo { return TypeInfo{Kind: KindGeneric, Name: name} }
func Custom(name string, typeParams ...TypeInfo) TypeInfo {
	return TypeInfo{Kind: KindCustom, Name: name, TypeParams: typeParams}
}

// IsNumber reports whether t is any fixed-width numeric type.
func (t TypeInfo) IsNumber() bool { return t.Kind == KindNumber }

// IsSignedInteger reports whether t is i8, i16, i32, or i64.
func (t TypeInfo) IsSignedInteger() bool { return t.Kind == KindNumber && signedNumbers[t.Number] }

// IsBool reports whether t is bool.
func (t TypeInfo) IsBool() bool { return t.Kind == KindBool }

// IsString reports whether t is string.
func (t TypeInfo) IsString() bool { return t.Kind == KindString }

// Equal reports whether t and other describe the same type, recursing
// into array element types and type-parameter lists.
func (t TypeInfo) Equal(other TypeInfo) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KindNumber:
		return t.Number == other.Number
	case KindArray:
		if t.Size != other.Size {
			return false
		}
		return elemEqual(t.Element, other.Element)
	case KindStruct, KindEnum, KindSpec, KindFunction, KindGeneric, KindCustom:
		if t.Name != other.Name {
			return false
		}
		return typeParamsEqual(t.TypeParams, other.TypeParams)
	default: // Bool, String, Unit
		return true
	}
}

func elemEqual(a, b *TypeInfo) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func typeParamsEqual(a, b []TypeInfo) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Substitute replaces every Generic leaf whose name is a key of subst
// with the corresponding TypeInfo, recursing into array elements and type
// parameters. It is idempotent and capture-free: TypeInfo values carry no
// binders, so substitution cannot accidentally capture a free variable.
func (t TypeInfo) Substitute(subst map[string]TypeInfo) TypeInfo {
	switch t.Kind {
	case KindGeneric:
		if repl, ok := subst[t.Name]; ok {
			return repl
		}
		return t
	case KindArray:
		if t.Element == nil {
			return t
		}
		elem := t.Element.Substitute(subst)
		return TypeInfo{Kind: KindArray, Element: &elem, Size: t.Size}
	default:
		if len(t.TypeParams) == 0 {
			return t
		}
		out := t
		out.TypeParams = make([]TypeInfo, len(t.TypeParams))
		for i, tp := range t.TypeParams {
			out.TypeParams[i] = tp.Substitute(subst)
		}
		return out
	}
}

func (t TypeInfo) String() string {
	var base string
	switch t.Kind {
	case KindNumber:
		base = string(t.Number)
	case KindBool:
		base = "bool"
	case KindString:
		base = "string"
	case KindUnit:
		base = "unit"
	case KindArray:
		if t.Element != nil {
			return fmt.Sprintf("[%s; %d]", t.Element.String(), t.Size)
		}
		return "[?]"
	default:
		base = t.Name
	}
	if len(t.TypeParams) == 0 {
		return base
	}
	parts := make([]string, len(t.TypeParams))
	for i, tp := range t.TypeParams {
		parts[i] = tp.String()
	}
	return fmt.Sprintf("%s<%s>", base, strings.Join(parts, ", "))
}

// New converts an AST type expression to a TypeInfo without any
// symbol-table context: bare names that aren't built-ins become Custom,
// unresolved until the type checker's validate_type (§4.F.3) looks them
// up in scope.
func New(arena *ast.Arena, id ast.NodeID) TypeInfo {
	return newTypeInfo(arena, id, nil)
}

// NewWithTypeParams is New, but bare identifiers whose name appears in
// typeParams are Generic free variables rather than Custom references.
func NewWithTypeParams(arena *ast.Arena, id ast.NodeID, typeParams []string) TypeInfo {
	set := make(map[string]bool, len(typeParams))
	for _, p := range typeParams {
		set[p] = true
	}
	return newTypeInfo(arena, id, set)
}

func newTypeInfo(arena *ast.Arena, id ast.NodeID, generics map[string]bool) TypeInfo {
	node := ast.TypeOf(arena, id)
	switch n := node.(type) {
	case *ast.SimpleType:
		if n.Name == "bool" {
			return Bool()
		}
		if n.Name == "unit" {
			return Unit()
		}
		if n.Name == "string" {
			return String()
		}
		if num, ok := simpleNames[n.Name]; ok {
			return Number(num)
		}
		return Custom(n.Name)

	case *ast.ArrayType:
		elem := newTypeInfo(arena, n.Element, generics)
		size := evalConstSize(arena, n.Size)
		return Array(elem, size)

	case *ast.GenericType:
		params := make([]TypeInfo, len(n.TypeParams))
		for i, p := range n.TypeParams {
			params[i] = newTypeInfo(arena, p, generics)
		}
		if generics[n.Base] {
			return Generic(n.Base)
		}
		return Custom(n.Base, params...)

	case *ast.FunctionType:
		return Function("")

	case *ast.QualifiedName:
		return Custom(strings.Join(n.Segments, "."))

	case *ast.TypeQualifiedName:
		return Custom(strings.Join(n.Segments, "::"))

	case *ast.CustomType:
		if num, ok := simpleNames[strings.ToLower(n.Name)]; ok {
			return Number(num)
		}
		if generics[n.Name] {
			return Generic(n.Name)
		}
		return Custom(n.Name)

	default:
		return Custom("")
	}
}

// evalConstSize extracts the array size expressed by a compile-time-sized
// array type's size expression. Only integer literals are supported here;
// arbitrary compile-time constant folding is outside this core's scope.
func evalConstSize(arena *ast.Arena, id ast.NodeID) uint32 {
	expr := ast.Expr(arena, id)
	lit, ok := expr.(*ast.Literal)
	if !ok || lit.Kind != ast.LitNumber {
		return 0
	}
	var n uint32
	fmt.Sscanf(lit.Text, "%d", &n)
	return n
}
