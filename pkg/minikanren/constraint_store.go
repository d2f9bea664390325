package minikanren

import "sort"

// CStore is the constraint store threaded through State: the active
// disequalities (entailed or subsumed ones are dropped as they are found)
// plus finite-domain bookkeeping for the
// four FD relations. FD state is kept in dedicated maps/slices rather than
// as opaque Constraint values so propagation can look up "the current
// domain of variable v" in O(1) instead of scanning every stored
// constraint for one that mentions it.
type CStore struct {
	diseqs   []DisequalityConstraint
	domains  map[uint64]Domain
	distinct [][]uint64  // each element is a set of var ids, pairwise distinct
	lte      [][2]uint64 // [u, v]: u <= v
	plus     [][3]uint64 // [u, v, w]: u + v = w
}

// NewCStore returns an empty constraint store.
func NewCStore() CStore {
	return CStore{domains: map[uint64]Domain{}}
}

func (cs CStore) cloneDomains() map[uint64]Domain {
	out := make(map[uint64]Domain, len(cs.domains))
	for k, v := range cs.domains {
		out[k] = v
	}
	return out
}

// Constraints returns every currently active constraint in a deterministic
// order, for residual rendering: disequalities first (in insertion order),
// then one FDDomainConstraint per recorded domain (ordered by variable id),
// then distinct/lte/plus groups.
func (cs CStore) Constraints() []Constraint {
	var out []Constraint
	for _, d := range cs.diseqs {
		out = append(out, d)
	}
	ids := make([]uint64, 0, len(cs.domains))
	for id := range cs.domains {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		out = append(out, FDDomainConstraint{Var: LTerm{kind: KindVar, id: id}, Dom: cs.domains[id]})
	}
	for _, group := range cs.distinct {
		out = append(out, FDDistinctConstraint{Vars: idsToVars(group)})
	}
	for _, pair := range cs.lte {
		out = append(out, FDLteConstraint{U: LTerm{kind: KindVar, id: pair[0]}, V: LTerm{kind: KindVar, id: pair[1]}})
	}
	for _, triple := range cs.plus {
		out = append(out, FDPlusConstraint{
			U: LTerm{kind: KindVar, id: triple[0]},
			V: LTerm{kind: KindVar, id: triple[1]},
			W: LTerm{kind: KindVar, id: triple[2]},
		})
	}
	return out
}

func idsToVars(ids []uint64) []LTerm {
	out := make([]LTerm, len(ids))
	for i, id := range ids {
		out[i] = LTerm{kind: KindVar, id: id}
	}
	return out
}

// addDisequality installs c after checking subsumption both ways: an
// existing constraint that already subsumes c makes c redundant; c may
// itself subsume (and thus replace) existing, now-redundant entries.
func (cs CStore) addDisequality(state State, c DisequalityConstraint) (State, bool) {
	kept := cs.diseqs[:0:0]
	for _, existing := range cs.diseqs {
		if existing.subsumes(c) {
			return state, true
		}
		if !c.subsumes(existing) {
			kept = append(kept, existing)
		}
	}
	kept = append(kept, c)
	next := cs
	next.diseqs = kept
	return next.Propagate(state.WithCStore(next))
}

// addFDDomain intersects an `in(x, D)` assertion into the store: if x
// already walks to a ground value, the assertion is checked directly;
// otherwise the variable's recorded domain is narrowed to the
// intersection, failing if that leaves it empty.
func (cs CStore) addFDDomain(state State, v LTerm, d Domain) (State, bool) {
	walked := state.smap.Walk(v)
	if walked.kind == KindVal {
		n, ok := walked.Atom().(int)
		if !ok {
			// The variable is already bound, but to something that isn't an
			// integer at all. An FD assertion can never succeed or fail
			// meaningfully against that; it means the caller built a
			// relation that runs Infd over the wrong kind of term.
			diagLogger().Error(newProgrammingError("Infd", "variable is bound to a non-integer atom %#v", walked.Atom()).Error())
			return state, false
		}
		if !d.Has(n) {
			return state, false
		}
		return state, true
	}
	if walked.kind != KindVar {
		return state, false
	}
	cur, had := cs.domains[walked.id]
	merged := d
	if had {
		merged = cur.Intersect(d)
	}
	if merged.IsEmpty() {
		return state, false
	}
	next := cs
	next.domains = cs.cloneDomains()
	next.domains[walked.id] = merged
	return next.Propagate(state.WithCStore(next))
}

// addFDDistinct records a pairwise-distinct group over vars; diseqfd(u, v)
// calls this with a two-element group.
func (cs CStore) addFDDistinct(state State, vars []LTerm) (State, bool) {
	ids := make([]uint64, len(vars))
	for i, v := range vars {
		w := state.smap.Walk(v)
		if w.kind != KindVar {
			return state, false
		}
		ids[i] = w.id
	}
	next := cs
	next.distinct = append(append([][]uint64(nil), cs.distinct...), ids)
	return next.Propagate(state.WithCStore(next))
}

// addFDLte records u <= v.
func (cs CStore) addFDLte(state State, u, v LTerm) (State, bool) {
	uw, vw := state.smap.Walk(u), state.smap.Walk(v)
	if uw.kind != KindVar || vw.kind != KindVar {
		return state, false
	}
	next := cs
	next.lte = append(append([][2]uint64(nil), cs.lte...), [2]uint64{uw.id, vw.id})
	return next.Propagate(state.WithCStore(next))
}

// addFDPlus records u + v = w.
func (cs CStore) addFDPlus(state State, u, v, w LTerm) (State, bool) {
	uw, vw, ww := state.smap.Walk(u), state.smap.Walk(v), state.smap.Walk(w)
	if uw.kind != KindVar || vw.kind != KindVar || ww.kind != KindVar {
		return state, false
	}
	next := cs
	next.plus = append(append([][3]uint64(nil), cs.plus...), [3]uint64{uw.id, vw.id, ww.id})
	return next.Propagate(state.WithCStore(next))
}

// Propagate runs every active constraint to a fixed point: disequalities
// are rechecked against the current smap (narrowing or discharging them),
// FD domains are narrowed by distinct/lte/plus, and any variable whose
// domain collapses to a singleton is unified with that value, which may in
// turn trigger further narrowing elsewhere — hence the loop.
func (cs CStore) Propagate(state State) (State, bool) {
	for {
		next, changed, ok := cs.onePass(state)
		if !ok {
			return state, false
		}
		state = next
		cs = state.cstore
		if !changed {
			return state, true
		}
	}
}

func (cs CStore) onePass(state State) (State, bool, bool) {
	changed := false

	// Rerun disequalities.
	var kept []DisequalityConstraint
	for _, d := range cs.diseqs {
		newFrag, entailed, contradiction := diseqRecompute(state, d.frag)
		if contradiction {
			return state, false, false
		}
		if entailed {
			// Permanently impossible to violate from here on (ground atoms
			// never change), exactly like a Disunify call that finds
			// unification already impossible up front: drop it rather than
			// keep rechecking it forever or showing it as a residual.
			changed = true
			continue
		}
		if newFrag.Len() != d.frag.Len() {
			changed = true
		}
		kept = append(kept, DisequalityConstraint{frag: newFrag})
	}
	cs.diseqs = kept

	// Narrow FD domains against distinct/lte/plus, then unify any
	// singleton domain directly into smap. A variable bound to a ground
	// integer directly via Eq (not through Infd) still participates here:
	// effectiveDomain treats it as the singleton domain {that value}, so a
	// plain unification and an FD assertion can each observe the other's
	// narrowing regardless of which one ran first.
	domains := cs.cloneDomains()
	effectiveDomain := func(id uint64) (Domain, bool) {
		walked := state.smap.Walk(LTerm{kind: KindVar, id: id})
		if walked.kind == KindVal {
			if n, ok := walked.Atom().(int); ok {
				return NewDomain(n), true
			}
			return Domain{}, false
		}
		d, ok := domains[id]
		return d, ok
	}
	isGround := func(id uint64) bool {
		return state.smap.Walk(LTerm{kind: KindVar, id: id}).kind == KindVal
	}

	for _, group := range cs.distinct {
		singles := map[int]bool{}
		for _, id := range group {
			if d, ok := effectiveDomain(id); ok && d.IsSingleton() {
				if singles[d.SingletonValue()] {
					// Two members of the group are pinned to the same value.
					return state, false, false
				}
				singles[d.SingletonValue()] = true
			}
		}
		for _, id := range group {
			if isGround(id) {
				continue
			}
			d, ok := domains[id]
			if !ok || d.IsSingleton() {
				continue
			}
			for v := range singles {
				if d.Has(v) {
					d = d.Remove(v)
					changed = true
				}
			}
			if d.IsEmpty() {
				return state, false, false
			}
			domains[id] = d
		}
	}

	for _, pair := range cs.lte {
		u, uok := effectiveDomain(pair[0])
		v, vok := effectiveDomain(pair[1])
		if !uok || !vok {
			continue
		}
		if !isGround(pair[0]) {
			nu := u.RemoveAbove(v.Max())
			if nu.IsEmpty() {
				return state, false, false
			}
			if !nu.Equal(u) {
				domains[pair[0]] = nu
				changed = true
			}
		} else if u.Min() > v.Max() {
			return state, false, false
		}
		if !isGround(pair[1]) {
			nv := v.RemoveBelow(u.Min())
			if nv.IsEmpty() {
				return state, false, false
			}
			if !nv.Equal(v) {
				domains[pair[1]] = nv
				changed = true
			}
		} else if v.Max() < u.Min() {
			return state, false, false
		}
	}

	for _, triple := range cs.plus {
		u, uok := effectiveDomain(triple[0])
		v, vok := effectiveDomain(triple[1])
		w, wok := effectiveDomain(triple[2])
		if !uok || !vok || !wok {
			continue
		}
		if !isGround(triple[0]) {
			nu := u.RemoveBelow(w.Min() - v.Max()).RemoveAbove(w.Max() - v.Min())
			if nu.IsEmpty() {
				return state, false, false
			}
			if !nu.Equal(u) {
				domains[triple[0]] = nu
				changed = true
			}
		}
		if !isGround(triple[1]) {
			nv := v.RemoveBelow(w.Min() - u.Max()).RemoveAbove(w.Max() - u.Min())
			if nv.IsEmpty() {
				return state, false, false
			}
			if !nv.Equal(v) {
				domains[triple[1]] = nv
				changed = true
			}
		}
		if !isGround(triple[2]) {
			nw := w.RemoveBelow(u.Min() + v.Min()).RemoveAbove(u.Max() + v.Max())
			if nw.IsEmpty() {
				return state, false, false
			}
			if !nw.Equal(w) {
				domains[triple[2]] = nw
				changed = true
			}
		}
	}

	// Ground variables never need a domains-map entry of their own; drop
	// any that became ground through a plain Eq goal so later passes don't
	// keep re-deriving their effective domain from two places.
	for id := range domains {
		if isGround(id) {
			delete(domains, id)
			changed = true
		}
	}

	cs.domains = domains

	// Unify singleton domains into smap; this mutates state.smap, so it
	// must run inside this pass and retrigger the loop via `changed`.
	for id, d := range domains {
		if !d.IsSingleton() {
			continue
		}
		walked := state.smap.Walk(LTerm{kind: KindVar, id: id})
		if walked.kind != KindVar {
			continue
		}
		extended, ok := unifyLoop(state.smap, walked, FromAtom(d.SingletonValue()))
		if !ok {
			return state, false, false
		}
		if extended.Len() != state.smap.Len() {
			state = state.WithSMap(extended)
			delete(cs.domains, id)
			changed = true
		}
	}

	return state.WithCStore(cs), changed, true
}

// diseqRecompute re-derives a disequality's fragment against the current
// smap: each stored (id, term) pair is unified again, accumulating into a
// single shared trial extension. If any pair is outright impossible the
// disequality remains permanently entailed and is returned unchanged. If
// every pair unifies with no residual extension, the disequality is now
// violated. Otherwise the residual extension becomes the constraint's new,
// possibly narrower, fragment.
func diseqRecompute(state State, frag SMap) (newFrag SMap, entailed bool, contradiction bool) {
	var ids []uint64
	frag.Each(func(id uint64, term LTerm) bool { ids = append(ids, id); return true })

	combined := state.smap
	for i := len(ids) - 1; i >= 0; i-- {
		id := ids[i]
		term, _ := frag.Lookup(id)
		next, ok := unifyLoop(combined, LTerm{kind: KindVar, id: id}, term)
		if !ok {
			return frag, true, false
		}
		combined = next
	}
	delta := extractDelta(combined, state.smap)
	if delta.Len() == 0 {
		return SMap{}, false, true
	}
	return delta, false, false
}
