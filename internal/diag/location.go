// Package diag provides source locations and the compiler error taxonomy
// shared by the AST builder, the type checker, and the WASM translator.
package diag

import "fmt"

// Location describes a byte range and line/column span in a single source
// file, plus the raw slice of source text it covers. Lines and columns are
// 1-indexed.
type Location struct {
	Source      string
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
	StartOffset int
	EndOffset   int
}

// String renders the location the way diagnostics report it: "line:column".
func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.StartLine, l.StartColumn)
}

// Text returns the raw source slice this location covers.
func (l Location) Text() string {
	return l.Source
}
