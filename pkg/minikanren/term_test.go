package minikanren

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarIdentityIsPerOccurrence(t *testing.T) {
	x := Var("x")
	y := Var("x")
	assert.False(t, x.Equal(y), "two Var calls must never share an id even with the same name")
	assert.NotEqual(t, x.ID(), y.ID())
}

func TestAnyIsDistinctPerOccurrence(t *testing.T) {
	a := Any()
	b := Any()
	assert.False(t, a.Equal(b))
	assert.True(t, a.IsAnyKind())
	assert.True(t, a.IsAny())
}

func TestIsAnyAlsoHoldsForUnboundVar(t *testing.T) {
	v := Var("q")
	assert.False(t, v.IsAnyKind())
	assert.True(t, v.IsAny(), "an unresolved variable reads as 'any' post-walk")
}

func TestNilIsAnAtomNotACons(t *testing.T) {
	n := Nil()
	require.True(t, n.IsVal())
	assert.True(t, n.IsNil())
	assert.False(t, n.IsCons())
	assert.Nil(t, n.Atom())
}

func TestFromAtomRejectsNilInFavorOfNilTerm(t *testing.T) {
	assert.True(t, FromAtom(nil).IsNil())
	assert.Equal(t, 3, FromAtom(3).Atom())
}

func TestConsAndTerms(t *testing.T) {
	list := FromSequence([]LTerm{FromAtom(1), FromAtom(2), FromAtom(3)})
	items, tail, ok := list.Terms()
	require.True(t, ok)
	require.Len(t, items, 3)
	assert.Equal(t, 1, items[0].Atom())
	assert.Equal(t, 2, items[1].Atom())
	assert.Equal(t, 3, items[2].Atom())
	assert.True(t, tail.IsNil())
}

func TestTermsOnImproperListReportsNotOK(t *testing.T) {
	improper := Cons(FromAtom(1), Var("rest"))
	items, tail, ok := improper.Terms()
	assert.False(t, ok)
	require.Len(t, items, 1)
	assert.True(t, tail.IsVar())
}

func TestStringRendersUnwalked(t *testing.T) {
	x := Var("x")
	assert.Contains(t, x.String(), "x")
	assert.Equal(t, "()", Nil().String())
	assert.Equal(t, "3", FromAtom(3).String())
}
