package minikanren

import (
	"sort"
	"strings"
)

// ConstraintKind tags the constraint variants the store can hold: tree
// disequality plus the four finite-domain relations. The store keeps each
// kind in its own field and propagates them kind by kind rather than
// through a per-constraint method, since the FD relations need to reason
// about each other's domains for the same variable, not just about
// themselves in isolation.
type ConstraintKind uint8

const (
	KindDisequality ConstraintKind = iota
	KindFDDomain
	KindFDDistinct
	KindFDLte
	KindFDPlus
)

// Constraint is the presentational contract every stored constraint
// satisfies: enough to support reification (Operands, String) and
// resolving bindings discovered after the constraint was recorded
// (WalkStar). Propagation itself is handled per-kind by CStore's Add
// methods and onePass, not through this interface, because the FD
// relations need shared access to the store's domain map.
type Constraint interface {
	Kind() ConstraintKind
	Operands() []LTerm
	WalkStar(smap SMap) Constraint
	String() string
}

// DisequalityConstraint asserts that simultaneously unifying every (u, v)
// pair in its fragment is impossible under the current substitution: it is
// the set of bindings that would have to all hold at once for the
// constraint to be violated.
type DisequalityConstraint struct {
	frag SMap
}

func (c DisequalityConstraint) Kind() ConstraintKind { return KindDisequality }

func (c DisequalityConstraint) Operands() []LTerm {
	var ops []LTerm
	c.frag.Each(func(id uint64, term LTerm) bool {
		ops = append(ops, LTerm{kind: KindVar, id: id}, term)
		return true
	})
	return ops
}

// WalkStar resolves every pair in the fragment against smap. A pair whose
// key walks to a non-variable under smap is dropped. Fragments are built
// from the non-empty extension of a successful unification, so their keys
// are unbound variables when the constraint is installed.
func (c DisequalityConstraint) WalkStar(smap SMap) Constraint {
	out := NewSMap()
	var ids []uint64
	c.frag.Each(func(id uint64, term LTerm) bool { ids = append(ids, id); return true })
	for i := len(ids) - 1; i >= 0; i-- {
		id := ids[i]
		term, _ := c.frag.Lookup(id)
		kwalk := smap.Walk(LTerm{kind: KindVar, id: id})
		vwalk := smap.WalkStar(term)
		if kwalk.kind == KindVar {
			out = out.Extend(kwalk.id, vwalk)
		}
	}
	return DisequalityConstraint{frag: out}
}

func (c DisequalityConstraint) String() string {
	var sb strings.Builder
	pairs := c.sortedPairs()
	for _, p := range pairs {
		sb.WriteString(p.u.String())
		sb.WriteString(" != ")
		sb.WriteString(p.v.String())
		sb.WriteString(",")
	}
	return sb.String()
}

type diseqPair struct{ u, v LTerm }

// sortedPairs returns the fragment's bindings ordered by variable id, so
// String output is deterministic regardless of insertion order.
func (c DisequalityConstraint) sortedPairs() []diseqPair {
	var out []diseqPair
	c.frag.Each(func(id uint64, term LTerm) bool {
		out = append(out, diseqPair{u: LTerm{kind: KindVar, id: id}, v: term})
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].u.id < out[j].u.id })
	return out
}

// subsumes reports whether c subsumes other: walking c's own (id, term)
// pairs with other's fragment as a fixed base resolves every one of them
// with nothing left over. A narrower, more specific fragment can serve as
// a base that already resolves a wider, more general one's pairs; the
// reverse does not hold, so direction matters here.
func (c DisequalityConstraint) subsumes(other DisequalityConstraint) bool {
	base := State{smap: other.frag}
	extension := NewSMap()
	failed := false
	c.frag.Each(func(id uint64, term LTerm) bool {
		var ok bool
		_, extension, ok = unifyInto(base, extension, LTerm{kind: KindVar, id: id}, term)
		if !ok {
			failed = true
			return false
		}
		return true
	})
	if failed {
		return false
	}
	return extension.Len() == 0
}

// FDDomainConstraint bounds a variable to a finite set of integers.
type FDDomainConstraint struct {
	Var LTerm
	Dom Domain
}

func (c FDDomainConstraint) Kind() ConstraintKind { return KindFDDomain }
func (c FDDomainConstraint) Operands() []LTerm    { return []LTerm{c.Var} }
func (c FDDomainConstraint) WalkStar(smap SMap) Constraint {
	return FDDomainConstraint{Var: smap.WalkStar(c.Var), Dom: c.Dom}
}
func (c FDDomainConstraint) String() string {
	return c.Var.String() + " in " + c.Dom.String()
}

// FDDistinctConstraint asserts pairwise inequality among a set of FD
// variables. diseqfd(u, v) is implemented as a two-variable
// FDDistinctConstraint: the propagation rule for two variables ("both
// singleton and equal -> fail") is exactly distinct's rule restricted to
// two operands, so no separate machinery is needed for it.
type FDDistinctConstraint struct {
	Vars []LTerm
}

func (c FDDistinctConstraint) Kind() ConstraintKind { return KindFDDistinct }
func (c FDDistinctConstraint) Operands() []LTerm    { return c.Vars }
func (c FDDistinctConstraint) WalkStar(smap SMap) Constraint {
	out := make([]LTerm, len(c.Vars))
	for i, v := range c.Vars {
		out[i] = smap.WalkStar(v)
	}
	return FDDistinctConstraint{Vars: out}
}
func (c FDDistinctConstraint) String() string {
	parts := make([]string, len(c.Vars))
	for i, v := range c.Vars {
		parts[i] = v.String()
	}
	return "distinct(" + strings.Join(parts, ",") + ")"
}

// FDLteConstraint asserts u <= v over finite domains.
type FDLteConstraint struct{ U, V LTerm }

func (c FDLteConstraint) Kind() ConstraintKind { return KindFDLte }
func (c FDLteConstraint) Operands() []LTerm    { return []LTerm{c.U, c.V} }
func (c FDLteConstraint) WalkStar(smap SMap) Constraint {
	return FDLteConstraint{U: smap.WalkStar(c.U), V: smap.WalkStar(c.V)}
}
func (c FDLteConstraint) String() string { return c.U.String() + " =< " + c.V.String() }

// FDPlusConstraint asserts u + v = w over finite domains.
type FDPlusConstraint struct{ U, V, W LTerm }

func (c FDPlusConstraint) Kind() ConstraintKind { return KindFDPlus }
func (c FDPlusConstraint) Operands() []LTerm    { return []LTerm{c.U, c.V, c.W} }
func (c FDPlusConstraint) WalkStar(smap SMap) Constraint {
	return FDPlusConstraint{U: smap.WalkStar(c.U), V: smap.WalkStar(c.V), W: smap.WalkStar(c.W)}
}
func (c FDPlusConstraint) String() string {
	return c.U.String() + " + " + c.V.String() + " = " + c.W.String()
}
