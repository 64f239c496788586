package cst

import "sync"

// registry is a process-wide lookup from source extension to the Grammar
// that parses it, mirroring termfx-morfx's providers/catalog: a grammar
// package registers itself by extension in an init() function, and
// callers (the driver, cmd/infc) look it up by the extension of the file
// they're about to parse instead of importing a concrete grammar package
// directly.
var (
	mu       sync.RWMutex
	registry = make(map[string]Grammar)
)

// RegisterGrammar associates ext (e.g. ".inf") with grammar. Called from
// the init() of a grammar package; a later registration for the same
// extension overwrites the earlier one.
func RegisterGrammar(ext string, grammar Grammar) {
	mu.Lock()
	defer mu.Unlock()
	registry[ext] = grammar
}

// LookupGrammar returns the grammar registered for ext, if any.
func LookupGrammar(ext string) (Grammar, bool) {
	mu.RLock()
	defer mu.RUnlock()
	g, ok := registry[ext]
	return g, ok
}
