package minikanren

// unifyLoop is the pure, state-free unification step: it walks u and v
// under smap and, on success, returns smap extended (via SMap.Extend, so
// the result shares smap's entire chain) with whatever new variable
// bindings were needed. It never touches a State, a constraint store, or
// the user hook — those are layered on top by State.Unify, so the same
// primitive also powers Disunify's "try into a throwaway extension" and
// the subsumption/rerun checks constraints need.
func unifyLoop(smap SMap, u, v LTerm) (SMap, bool) {
	u = smap.Walk(u)
	v = smap.Walk(v)

	switch {
	case u.kind == KindAny || v.kind == KindAny:
		// A wildcard matches anything and is never recorded as a binding.
		return smap, true
	case u.kind == KindVar && v.kind == KindVar && u.id == v.id:
		return smap, true
	case u.kind == KindVar:
		return smap.Extend(u.id, v), true
	case v.kind == KindVar:
		return smap.Extend(v.id, u), true
	case u.kind == KindVal && v.kind == KindVal:
		if u.atom == v.atom {
			return smap, true
		}
		return smap, false
	case u.kind == KindCons && v.kind == KindCons:
		next, ok := unifyLoop(smap, u.Head(), v.Head())
		if !ok {
			return smap, false
		}
		return unifyLoop(next, u.Tail(), v.Tail())
	default:
		return smap, false
	}
}

// extractDelta returns the bindings present in extended but not in base,
// assuming extended's chain was built directly on top of base's (true of
// every unifyLoop call rooted at base). This recovers "only the new
// information" a unification step produced, which is what both Disunify's
// constraint fragment and the user hook's delta argument need.
func extractDelta(extended, base SMap) SMap {
	var collected []*smapEntry
	for e := extended.entry; e != base.entry; e = e.parent {
		if e == nil {
			break
		}
		collected = append(collected, e)
	}
	out := NewSMap()
	for i := len(collected) - 1; i >= 0; i-- {
		out = out.Extend(collected[i].id, collected[i].term)
	}
	return out
}

// walkLayered walks t checking ext before base, so newly discovered
// bindings (recorded only in ext) take precedence without ever being
// merged into base's own chain.
func walkLayered(base, ext SMap, t LTerm) LTerm {
	for t.kind == KindVar {
		if bound, ok := ext.Lookup(t.id); ok {
			t = bound
			continue
		}
		bound, ok := base.Lookup(t.id)
		if !ok {
			return t
		}
		t = bound
	}
	return t
}

// unifyLayered unifies u and v, resolving variables against ext first and
// base second (see walkLayered), and recording any new binding into ext
// (never into base). This lets DisequalityConstraint.subsumes test "does
// walking my own pairs under other's fragment as a fixed base need any
// further information" without mutating or merging either fragment.
func unifyLayered(base, ext SMap, u, v LTerm) (SMap, bool) {
	u = walkLayered(base, ext, u)
	v = walkLayered(base, ext, v)
	switch {
	case u.kind == KindAny || v.kind == KindAny:
		return ext, true
	case u.kind == KindVar && v.kind == KindVar && u.id == v.id:
		return ext, true
	case u.kind == KindVar:
		return ext.Extend(u.id, v), true
	case v.kind == KindVar:
		return ext.Extend(v.id, u), true
	case u.kind == KindVal && v.kind == KindVal:
		if u.atom == v.atom {
			return ext, true
		}
		return ext, false
	case u.kind == KindCons && v.kind == KindCons:
		next, ok := unifyLayered(base, ext, u.Head(), v.Head())
		if !ok {
			return ext, false
		}
		return unifyLayered(base, next, u.Tail(), v.Tail())
	default:
		return ext, false
	}
}

// unifyInto unifies u against v using state's smap as a fixed base and ext
// as an already-accumulated trial extension recording only what base does
// not already resolve. It returns state unchanged (unify never commits to
// state.smap here) plus the updated extension and whether this step
// succeeded. DisequalityConstraint.subsumes uses this to test entailment
// without mutating or merging either fragment.
func unifyInto(state State, ext SMap, u, v LTerm) (State, SMap, bool) {
	next, ok := unifyLayered(state.smap, ext, u, v)
	return state, next, ok
}

// Unify computes the smallest extension of s.smap making u and v
// structurally equal, or reports failure. On success it invokes the user
// hook once with the aggregate delta, then runs constraint propagation to
// a fixed point.
func (s State) Unify(u, v LTerm) (State, bool) {
	extended, ok := unifyLoop(s.smap, u, v)
	if !ok {
		return s, false
	}
	delta := extractDelta(extended, s.smap)
	next := s.WithSMap(extended)
	if delta.Len() > 0 {
		next = next.user.OnExtend(next, delta, u, v)
	}
	return next.cstore.Propagate(next)
}

// Disunify attempts unification into a throwaway extension smap rather
// than committing it to the state. Three outcomes:
//   - unification is impossible under the current smap: the disequality is
//     already and permanently entailed (ground atoms never change), state
//     returned unchanged;
//   - unification succeeds with an empty extension: u and v are already
//     equal, so the disequality fails;
//   - otherwise: a DisequalityConstraint over the extension is installed.
func (s State) Disunify(u, v LTerm) (State, bool) {
	extended, ok := unifyLoop(s.smap, u, v)
	if !ok {
		return s, true
	}
	delta := extractDelta(extended, s.smap)
	if delta.Len() == 0 {
		return s, false
	}
	return s.cstore.addDisequality(s, DisequalityConstraint{frag: delta})
}
