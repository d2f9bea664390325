package minikanren

// SMap is a persistent substitution map from variable id to LTerm,
// implemented as a singly-linked association chain rather than a plain Go
// map: extension is then O(1) and shares the entire previous chain, so
// branching search into alternative states never has to copy what came
// before it.
type SMap struct {
	// entry is nil for the empty map.
	entry *smapEntry
}

type smapEntry struct {
	id     uint64
	term   LTerm
	parent *smapEntry
}

// NewSMap returns the empty substitution map.
func NewSMap() SMap { return SMap{} }

// Extend returns a new map with id bound to term, sharing the receiver's
// chain. Once id is bound it is never rebound within this map's lineage;
// callers (the unifier) are responsible for only ever extending, never
// overwriting.
func (m SMap) Extend(id uint64, term LTerm) SMap {
	return SMap{entry: &smapEntry{id: id, term: term, parent: m.entry}}
}

// Lookup returns the term bound to id and whether a binding exists.
func (m SMap) Lookup(id uint64) (LTerm, bool) {
	for e := m.entry; e != nil; e = e.parent {
		if e.id == id {
			return e.term, true
		}
	}
	return LTerm{}, false
}

// Len returns the number of bindings, including any that were later shadowed
// by a repeated Extend (which the unifier never does, but Len is exposed for
// diagnostics, not invariant-checking).
func (m SMap) Len() int {
	n := 0
	for e := m.entry; e != nil; e = e.parent {
		n++
	}
	return n
}

// Each walks every binding from most-recent to oldest.
func (m SMap) Each(f func(id uint64, term LTerm) bool) {
	for e := m.entry; e != nil; e = e.parent {
		if !f(e.id, e.term) {
			return
		}
	}
}

// Walk chases variable bindings until it reaches an unbound variable, a
// wildcard, or a non-variable term. Any is never a map key, so Walk(Any)
// always returns Any unchanged.
func (m SMap) Walk(t LTerm) LTerm {
	for t.kind == KindVar {
		bound, ok := m.Lookup(t.id)
		if !ok {
			return t
		}
		t = bound
	}
	return t
}

// WalkStar recursively resolves variables through cons structure, producing
// a term that is as ground as the current bindings allow. Termination
// follows from the chain never containing a cycle: the unifier only ever
// binds a variable id once, and never to a term built from that same id.
func (m SMap) WalkStar(t LTerm) LTerm {
	t = m.Walk(t)
	if !t.IsCons() {
		return t
	}
	return Cons(m.WalkStar(t.Head()), m.WalkStar(t.Tail()))
}

// freeVars collects the ids of every Var reachable from t by walking and
// descending into cons structure, used by Purify.
func (m SMap) freeVars(t LTerm, out map[uint64]bool) {
	for t.kind == KindVar {
		out[t.id] = true
		bound, ok := m.Lookup(t.id)
		if !ok {
			return
		}
		t = bound
	}
	if t.IsCons() {
		m.freeVars(t.Head(), out)
		m.freeVars(t.Tail(), out)
	}
}

// Purify keeps only the bindings whose key is reachable from roots by
// walking and descending into cons structure, used at reification time to
// drop internal bookkeeping variables that never reach a top-level query
// variable.
func (m SMap) Purify(roots []LTerm) SMap {
	live := map[uint64]bool{}
	for _, r := range roots {
		m.freeVars(r, live)
	}
	// A binding chain is rebuilt oldest-first so the result preserves the
	// original relative order of the surviving bindings.
	var entries []*smapEntry
	for e := m.entry; e != nil; e = e.parent {
		entries = append(entries, e)
	}
	out := NewSMap()
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if live[e.id] {
			out = out.Extend(e.id, e.term)
		}
	}
	return out
}
