// Package symbols implements the tree-structured scope table the type
// checker resolves names against (§3.5, §4.D): a Scope per module,
// function, and block, each owning its own symbol/variable/method maps
// and linked to its parent for visibility walks.
package symbols

import (
	"fmt"
	"strings"

	"github.com/inflang/infc/internal/typeinfo"
)

// ScopeID identifies a Scope within a single Table.
type ScopeID uint32

// SymbolKind tags the variant a Symbol holds.
type SymbolKind int

const (
	SymTypeAlias SymbolKind = iota
	SymStruct
	SymEnum
	SymSpec
	SymFunction
)

// StructFieldInfo is one field of a registered struct.
type StructFieldInfo struct {
	Name       string
	Type       typeinfo.TypeInfo
	Visibility Visibility
}

// StructInfo is the payload of a SymStruct symbol.
type StructInfo struct {
	Name            string
	Fields          []StructFieldInfo
	TypeParams      []string
	Visibility      Visibility
	DefiningScopeID ScopeID
}

// FieldByName returns the named field, or false if no such field exists.
func (s *StructInfo) FieldByName(name string) (StructFieldInfo, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return StructFieldInfo{}, false
}

// EnumInfo is the payload of a SymEnum symbol.
type EnumInfo struct {
	Name            string
	Variants        []string
	Visibility      Visibility
	DefiningScopeID ScopeID
}

// HasVariant reports whether name is one of the enum's variants.
func (e *EnumInfo) HasVariant(name string) bool {
	for _, v := range e.Variants {
		if v == name {
			return true
		}
	}
	return false
}

// FuncInfo is the payload of a SymFunction symbol, and the embedded
// signature of a MethodInfo.
type FuncInfo struct {
	Name            string
	TypeParams      []string
	ParamTypes      []typeinfo.TypeInfo
	ReturnType      typeinfo.TypeInfo
	Visibility      Visibility
	DefiningScopeID ScopeID
}

// MethodInfo adds has_self and a defining scope to a FuncInfo (§3.5):
// associated functions have HasSelf false, instance methods true.
type MethodInfo struct {
	FuncInfo
	HasSelf bool
	ScopeID ScopeID
}

// Visibility mirrors ast.Visibility without importing package ast, since
// the symbol table is meant to be usable from a standalone checker test
// that only constructs typeinfo/symbols values.
type Visibility int

const (
	Private Visibility = iota
	Public
)

// Symbol is a tagged union over the five kinds of named, scope-resident
// declarations (§3.5).
type Symbol struct {
	Kind      SymbolKind
	Name      string
	TypeAlias typeinfo.TypeInfo // valid iff Kind == SymTypeAlias
	Struct    *StructInfo       // valid iff Kind == SymStruct
	Enum      *EnumInfo         // valid iff Kind == SymEnum
	Spec      *SpecInfo         // valid iff Kind == SymSpec
	Function  *FuncInfo         // valid iff Kind == SymFunction
}

// SpecInfo is the payload of a SymSpec symbol. The core recognizes specs
// but does not check their operation signatures against implementers.
type SpecInfo struct {
	Name       string
	Visibility Visibility
}

func (s *Symbol) visibility() Visibility {
	switch s.Kind {
	case SymTypeAlias:
		return Public
	case SymStruct:
		return s.Struct.Visibility
	case SymEnum:
		return s.Enum.Visibility
	case SymSpec:
		return s.Spec.Visibility
	case SymFunction:
		return s.Function.Visibility
	}
	return Private
}

// builtinAliases are pre-registered in the root scope at construction
// (§4.D).
var builtinAliases = []string{"i8", "i16", "i32", "i64", "u8", "u16", "u32", "u64", "bool", "unit", "string"}

var builtinTypes = map[string]typeinfo.TypeInfo{
	"i8": typeinfo.Number(typeinfo.I8), "i16": typeinfo.Number(typeinfo.I16),
	"i32": typeinfo.Number(typeinfo.I32), "i64": typeinfo.Number(typeinfo.I64),
	"u8": typeinfo.Number(typeinfo.U8), "u16": typeinfo.Number(typeinfo.U16),
	"u32": typeinfo.Number(typeinfo.U32), "u64": typeinfo.Number(typeinfo.U64),
	"bool": typeinfo.Bool(), "unit": typeinfo.Unit(), "string": typeinfo.String(),
}

// Scope is one node of the scope tree.
type Scope struct {
	id       ScopeID
	name     string
	parent   ScopeID
	hasParent bool
	children []ScopeID
	fullPath string

	visibility Visibility

	symbols   map[string]*Symbol
	variables map[string]typeinfo.TypeInfo
	methods   map[string][]MethodInfo // type name -> methods, insertion order

	unresolvedImports []UnresolvedImport
	resolvedImports   map[string]ResolvedImport
}

// ID returns the scope's identity within its Table.
func (s *Scope) ID() ScopeID { return s.id }

// Name returns the scope's short name.
func (s *Scope) Name() string { return s.name }

// FullPath returns the `::`-joined path from root to this scope.
func (s *Scope) FullPath() string { return s.fullPath }

// Parent returns the parent scope id and whether one exists (false only
// for the root scope).
func (s *Scope) Parent() (ScopeID, bool) { return s.parent, s.hasParent }

// Children returns child scope ids in insertion order.
func (s *Scope) Children() []ScopeID { return append([]ScopeID(nil), s.children...) }

// UnresolvedImport is a use-directive not yet resolved to a concrete
// scope/glob (§4.F phase "resolve_imports").
type UnresolvedImport struct {
	Path  []string
	Alias string
	Glob  bool
	Items []ImportItem
}

// ImportItem is one `name` or `name as alias` entry of a Partial import.
type ImportItem struct {
	Name  string
	Alias string
}

// ResolvedImport records what a name resolves to after import resolution.
type ResolvedImport struct {
	ScopeID ScopeID
	Symbol  *Symbol // nil when the import binds a whole module
}

// Table owns every Scope created during one compilation.
type Table struct {
	scopes  map[ScopeID]*Scope
	modules map[string]ScopeID
	nextID  uint32
	root    ScopeID
}

// NewTable creates a Table with a pre-populated root scope (§4.D).
func NewTable() *Table {
	t := &Table{
		scopes:  make(map[ScopeID]*Scope),
		modules: make(map[string]ScopeID),
	}
	root := t.newScope("", ScopeID(0), false, Public)
	t.root = root.id
	for _, name := range builtinAliases {
		root.symbols[name] = &Symbol{Kind: SymTypeAlias, Name: name, TypeAlias: builtinTypes[name]}
	}
	return t
}

func (t *Table) newScope(name string, parent ScopeID, hasParent bool, vis Visibility) *Scope {
	id := ScopeID(t.nextID)
	t.nextID++
	s := &Scope{
		id:              id,
		name:            name,
		parent:          parent,
		hasParent:       hasParent,
		visibility:      vis,
		symbols:         make(map[string]*Symbol),
		variables:       make(map[string]typeinfo.TypeInfo),
		methods:         make(map[string][]MethodInfo),
		resolvedImports: make(map[string]ResolvedImport),
	}
	if hasParent {
		parentScope := t.scopes[parent]
		if parentScope.fullPath == "" {
			s.fullPath = name
		} else {
			s.fullPath = parentScope.fullPath + "::" + name
		}
	}
	t.scopes[id] = s
	return s
}

// Root returns the root scope's id.
func (t *Table) Root() ScopeID { return t.root }

// Scope returns the scope for id. It panics if id is unknown, since scope
// ids are only ever handed out by this Table.
func (t *Table) Scope(id ScopeID) *Scope {
	s, ok := t.scopes[id]
	if !ok {
		panic(fmt.Sprintf("symbols: unknown scope id %d", id))
	}
	return s
}

// Push creates a new named child scope under parent and returns it. If
// name is empty, an `anonymous_<id>` name is generated. Scopes whose name
// looks module-like (non-anonymous) are also registered by name so
// qualified-name resolution can find them as import targets.
func (t *Table) Push(parent ScopeID, name string, vis Visibility) ScopeID {
	anonymous := name == ""
	child := t.newScope(name, parent, true, vis)
	if anonymous {
		child.name = fmt.Sprintf("anonymous_%d", child.id)
	} else {
		t.modules[child.fullPath] = child.id
	}
	t.scopes[parent].children = append(t.scopes[parent].children, child.id)
	return child.id
}

// ModuleByPath looks up a previously pushed named scope by its full path.
func (t *Table) ModuleByPath(path string) (ScopeID, bool) {
	id, ok := t.modules[path]
	return id, ok
}

// registrationError is returned by every Register* method on name
// collision; method registration is the sole exception (§4.D).
func registrationError(kind, name string) error {
	return fmt.Errorf("symbol already exists: %s %q", kind, name)
}

// RegisterTypeAlias binds name to a TypeAlias symbol in scope.
func (t *Table) RegisterTypeAlias(scope ScopeID, name string, ty typeinfo.TypeInfo) error {
	s := t.Scope(scope)
	if _, exists := s.symbols[name]; exists {
		return registrationError("type", name)
	}
	s.symbols[name] = &Symbol{Kind: SymTypeAlias, Name: name, TypeAlias: ty}
	return nil
}

// RegisterStruct binds name to a Struct symbol in scope.
func (t *Table) RegisterStruct(scope ScopeID, info *StructInfo) error {
	s := t.Scope(scope)
	if _, exists := s.symbols[info.Name]; exists {
		return registrationError("struct", info.Name)
	}
	info.DefiningScopeID = scope
	s.symbols[info.Name] = &Symbol{Kind: SymStruct, Name: info.Name, Struct: info}
	return nil
}

// RegisterEnum binds name to an Enum symbol in scope.
func (t *Table) RegisterEnum(scope ScopeID, info *EnumInfo) error {
	s := t.Scope(scope)
	if _, exists := s.symbols[info.Name]; exists {
		return registrationError("enum", info.Name)
	}
	info.DefiningScopeID = scope
	s.symbols[info.Name] = &Symbol{Kind: SymEnum, Name: info.Name, Enum: info}
	return nil
}

// RegisterSpec binds name to a Spec symbol in scope.
func (t *Table) RegisterSpec(scope ScopeID, info *SpecInfo) error {
	s := t.Scope(scope)
	if _, exists := s.symbols[info.Name]; exists {
		return registrationError("spec", info.Name)
	}
	s.symbols[info.Name] = &Symbol{Kind: SymSpec, Name: info.Name, Spec: info}
	return nil
}

// RegisterFunction binds name to a Function symbol in scope.
func (t *Table) RegisterFunction(scope ScopeID, info *FuncInfo) error {
	s := t.Scope(scope)
	if _, exists := s.symbols[info.Name]; exists {
		return registrationError("function", info.Name)
	}
	info.DefiningScopeID = scope
	s.symbols[info.Name] = &Symbol{Kind: SymFunction, Name: info.Name, Function: info}
	return nil
}

// RegisterMethod appends a method to typeName's method list in scope.
// Unlike the other Register* calls, this never fails on collision:
// multiple methods of the same type are expected, keyed by method name
// under the type (§4.D).
func (t *Table) RegisterMethod(scope ScopeID, typeName string, m MethodInfo) {
	s := t.Scope(scope)
	m.DefiningScopeID = scope
	s.methods[typeName] = append(s.methods[typeName], m)
}

// RegisterVariable binds name to a type in scope's variable map.
func (t *Table) RegisterVariable(scope ScopeID, name string, ty typeinfo.TypeInfo) error {
	s := t.Scope(scope)
	if _, exists := s.variables[name]; exists {
		return registrationError("variable", name)
	}
	s.variables[name] = ty
	return nil
}

// RegisterImport records an unresolved use-directive on scope, to be
// settled by the checker's resolve_imports phase.
func (t *Table) RegisterImport(scope ScopeID, imp UnresolvedImport) {
	s := t.Scope(scope)
	s.unresolvedImports = append(s.unresolvedImports, imp)
}

// NextID returns the id that would be assigned to the next pushed scope,
// i.e. one past the highest scope id handed out so far. The checker uses
// it to iterate every scope during import resolution.
func (t *Table) NextID() uint32 { return t.nextID }

// PendingImports returns scope's unresolved imports, in the order they
// were recorded.
func (t *Table) PendingImports(scope ScopeID) []UnresolvedImport {
	return t.Scope(scope).unresolvedImports
}

// BindResolvedImport binds name in scope to an imported symbol, making it
// visible to LookupSymbol the same as a locally defined one.
func (t *Table) BindResolvedImport(scope ScopeID, name string, imp ResolvedImport) {
	t.Scope(scope).resolvedImports[name] = imp
}

// LookupSymbol walks from scope to root looking for name, per §4.D.
// Imports resolved into a scope are visible the same as locally defined
// symbols, but report their original defining scope.
func (t *Table) LookupSymbol(scope ScopeID, name string) (*Symbol, ScopeID, bool) {
	for cur := scope; ; {
		s := t.Scope(cur)
		if sym, ok := s.symbols[name]; ok {
			return sym, cur, true
		}
		if imp, ok := s.resolvedImports[name]; ok {
			return imp.Symbol, imp.ScopeID, true
		}
		if !s.hasParent {
			return nil, 0, false
		}
		cur = s.parent
	}
}

// LookupVariable walks from scope to root looking for a variable binding.
func (t *Table) LookupVariable(scope ScopeID, name string) (typeinfo.TypeInfo, bool) {
	for cur := scope; ; {
		s := t.Scope(cur)
		if ty, ok := s.variables[name]; ok {
			return ty, true
		}
		if !s.hasParent {
			return typeinfo.TypeInfo{}, false
		}
		cur = s.parent
	}
}

// LookupMethod walks from scope to root looking for a method named
// methodName on typeName.
func (t *Table) LookupMethod(scope ScopeID, typeName, methodName string) (MethodInfo, bool) {
	for cur := scope; ; {
		s := t.Scope(cur)
		for _, m := range s.methods[typeName] {
			if m.Name == methodName {
				return m, true
			}
		}
		if !s.hasParent {
			return MethodInfo{}, false
		}
		cur = s.parent
	}
}

// LookupType looks up name as a symbol and returns its corresponding
// TypeInfo, falling back to a lowercase fold so built-ins still resolve
// when a CST capitalizes a primitive name (§4.D).
func (t *Table) LookupType(scope ScopeID, name string) (typeinfo.TypeInfo, bool) {
	if sym, _, ok := t.LookupSymbol(scope, name); ok {
		return symbolType(sym), true
	}
	lower := strings.ToLower(name)
	if lower == name {
		return typeinfo.TypeInfo{}, false
	}
	if sym, _, ok := t.LookupSymbol(scope, lower); ok {
		return symbolType(sym), true
	}
	return typeinfo.TypeInfo{}, false
}

func symbolType(sym *Symbol) typeinfo.TypeInfo {
	switch sym.Kind {
	case SymTypeAlias:
		return sym.TypeAlias
	case SymStruct:
		return typeinfo.Struct(sym.Struct.Name)
	case SymEnum:
		return typeinfo.Enum(sym.Enum.Name)
	case SymSpec:
		return typeinfo.Spec(sym.Spec.Name)
	case SymFunction:
		return typeinfo.Function(sym.Function.Name)
	}
	return typeinfo.Custom(sym.Name)
}

// ResolveQualifiedName resolves path per §4.D: starting at root (or at
// scope if path's first segment is "self"), descend into the child scope
// matching each non-final segment, then look up the final segment as a
// symbol in that scope.
func (t *Table) ResolveQualifiedName(scope ScopeID, path []string) (*Symbol, ScopeID, bool) {
	if len(path) == 0 {
		return nil, 0, false
	}

	cur := t.root
	segments := path
	if path[0] == "self" {
		cur = scope
		segments = path[1:]
		if len(segments) == 0 {
			return nil, 0, false
		}
	}

	for _, seg := range segments[:len(segments)-1] {
		next, ok := t.childByName(cur, seg)
		if !ok {
			return nil, 0, false
		}
		cur = next
	}

	last := segments[len(segments)-1]
	sym, ok := t.Scope(cur).symbols[last]
	if !ok {
		return nil, 0, false
	}
	return sym, cur, true
}

func (t *Table) childByName(scope ScopeID, name string) (ScopeID, bool) {
	for _, childID := range t.Scope(scope).children {
		if t.Scope(childID).name == name {
			return childID, true
		}
	}
	return 0, false
}

// PublicSymbols enumerates the public symbols visible in scope — both
// directly defined and re-exported through an already-resolved import —
// for glob-import expansion (§4.D).
func (t *Table) PublicSymbols(scope ScopeID) map[string]*Symbol {
	s := t.Scope(scope)
	out := make(map[string]*Symbol)
	for name, sym := range s.symbols {
		if sym.visibility() == Public {
			out[name] = sym
		}
	}
	for name, imp := range s.resolvedImports {
		if imp.Symbol != nil && imp.Symbol.visibility() == Public {
			out[name] = imp.Symbol
		}
	}
	return out
}

// IsVisible implements the visibility algorithm of §4.D: a symbol defined
// in scope D is visible from scope A iff D equals A or D is an ancestor
// of A. Public symbols are visible unconditionally. The walk from A to
// root is iterative to bound stack usage on deeply nested scopes.
func (t *Table) IsVisible(sym *Symbol, definingScope, fromScope ScopeID) bool {
	if sym.visibility() == Public {
		return true
	}
	for cur, ok := fromScope, true; ok; {
		if cur == definingScope {
			return true
		}
		s := t.Scope(cur)
		cur, ok = s.parent, s.hasParent
	}
	return false
}
