package minikanren

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMapExtendIsPersistent(t *testing.T) {
	x := Var("x")
	base := NewSMap()
	extended := base.Extend(x.ID(), FromAtom(1))

	_, ok := base.Lookup(x.ID())
	assert.False(t, ok, "extending must not mutate the receiver")

	term, ok := extended.Lookup(x.ID())
	require.True(t, ok)
	assert.Equal(t, 1, term.Atom())
	assert.Equal(t, 0, base.Len())
	assert.Equal(t, 1, extended.Len())
}

func TestWalkChasesOneLevel(t *testing.T) {
	x, y := Var("x"), Var("y")
	m := NewSMap().Extend(x.ID(), y).Extend(y.ID(), FromAtom(5))
	assert.Equal(t, 5, m.Walk(x).Atom())
}

func TestWalkLeavesUnboundVarAlone(t *testing.T) {
	x := Var("x")
	m := NewSMap()
	assert.True(t, m.Walk(x).Equal(x))
}

func TestWalkNeverChasesAny(t *testing.T) {
	a := Any()
	m := NewSMap()
	assert.True(t, m.Walk(a).Equal(a))
}

func TestWalkStarResolvesThroughCons(t *testing.T) {
	x, y := Var("x"), Var("y")
	m := NewSMap().Extend(x.ID(), FromAtom(1)).Extend(y.ID(), FromAtom(2))
	list := Cons(x, Cons(y, Nil()))
	got := m.WalkStar(list)
	items, tail, ok := got.Terms()
	require.True(t, ok)
	assert.True(t, tail.IsNil())
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Atom())
	assert.Equal(t, 2, items[1].Atom())
}

func TestPurifyDropsDeadBindings(t *testing.T) {
	root := Var("root")
	internal := Var("internal")
	m := NewSMap().Extend(internal.ID(), FromAtom(9)).Extend(root.ID(), FromAtom(1))

	purified := m.Purify([]LTerm{root})
	_, hasRoot := purified.Lookup(root.ID())
	_, hasInternal := purified.Lookup(internal.ID())
	assert.True(t, hasRoot)
	assert.False(t, hasInternal)
}

func TestPurifyKeepsBindingsReachableThroughCons(t *testing.T) {
	root := Var("root")
	elem := Var("elem")
	m := NewSMap().Extend(elem.ID(), FromAtom(7)).Extend(root.ID(), Cons(elem, Nil()))

	purified := m.Purify([]LTerm{root})
	_, hasElem := purified.Lookup(elem.ID())
	assert.True(t, hasElem)
}
