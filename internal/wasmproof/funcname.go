package wasmproof

import "strconv"

// funcNamer picks a function's Coq definition name: the debug name-map
// entry when present, else a generated name. The original translator
// suffixes generated names with a random UUID fragment (get_id());
// per §4.H's determinism note ("an implementation may substitute a
// deterministic counter for testability") this uses a plain incrementing
// counter instead, so Translate's output is fully reproducible.
type funcNamer struct {
	names   map[uint32]string
	counter int
}

func newFuncNamer(names map[uint32]string) *funcNamer {
	return &funcNamer{names: names}
}

func (n *funcNamer) nameFor(index uint32) string {
	if n.names != nil {
		if name, ok := n.names[index]; ok {
			return name
		}
	}
	name := "func_" + strconv.Itoa(n.counter)
	n.counter++
	return name
}
