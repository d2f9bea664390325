package minikanren

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runGoal(g Goal) []State {
	return Take(g(NewState(nil)), -1)
}

func TestSucceedAndFail(t *testing.T) {
	assert.Len(t, runGoal(Succeed), 1)
	assert.Len(t, runGoal(Fail), 0)
}

func TestEqGoal(t *testing.T) {
	x := Var("x")
	results := runGoal(Eq(x, FromAtom(5)))
	require.Len(t, results, 1)
	assert.Equal(t, 5, results[0].SMap().Walk(x).Atom())
}

func TestDiseqGoalSucceedsWhenDistinguishable(t *testing.T) {
	results := runGoal(Diseq(FromAtom(1), FromAtom(2)))
	assert.Len(t, results, 1)
}

func TestDiseqGoalFailsWhenForcedEqual(t *testing.T) {
	x := Var("x")
	g := ConjMany(Eq(x, FromAtom(1)), Diseq(x, FromAtom(1)))
	assert.Len(t, runGoal(g), 0)
}

func TestConjBindsBothSides(t *testing.T) {
	x, y := Var("x"), Var("y")
	g := Conj(Eq(x, FromAtom(1)), Eq(y, FromAtom(2)))
	results := runGoal(g)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].SMap().Walk(x).Atom())
	assert.Equal(t, 2, results[0].SMap().Walk(y).Atom())
}

func TestDisjOffersEitherBranch(t *testing.T) {
	x := Var("x")
	g := Disj(Eq(x, FromAtom(1)), Eq(x, FromAtom(2)))
	results := runGoal(g)
	require.Len(t, results, 2)
	vals := []int{results[0].SMap().Walk(x).Atom().(int), results[1].SMap().Walk(x).Atom().(int)}
	assert.ElementsMatch(t, []int{1, 2}, vals)
}

func TestFreshIntroducesFreshVariables(t *testing.T) {
	g := Fresh(2, func(vars []LTerm) Goal {
		return Conj(Eq(vars[0], FromAtom(1)), Eq(vars[1], FromAtom(2)))
	})
	results := runGoal(g)
	assert.Len(t, results, 1)
}

func TestConjManyEmptyIsSucceed(t *testing.T) {
	assert.Len(t, runGoal(ConjMany()), 1)
}

func TestDisjManyEmptyIsFail(t *testing.T) {
	assert.Len(t, runGoal(DisjMany()), 0)
}

func TestConjManyNilEntryFails(t *testing.T) {
	g := ConjMany(Succeed, nil)
	assert.Len(t, runGoal(g), 0)
}

func TestEverygAppliesRelationToEachElement(t *testing.T) {
	list := FromSequence([]LTerm{FromAtom(1), FromAtom(1), FromAtom(1)})
	allOnes := func(v LTerm) Goal { return Eq(v, FromAtom(1)) }
	assert.Len(t, runGoal(Everyg(allOnes, list)), 1)
}

func TestEverygFailsOnMismatch(t *testing.T) {
	list := FromSequence([]LTerm{FromAtom(1), FromAtom(2)})
	allOnes := func(v LTerm) Goal { return Eq(v, FromAtom(1)) }
	assert.Len(t, runGoal(Everyg(allOnes, list)), 0)
}

func TestClosureDefersRecursiveConstruction(t *testing.T) {
	x := Var("x")
	var countdown func(n int) Goal
	countdown = func(n int) Goal {
		return Closure(func() Goal {
			if n == 0 {
				return Eq(x, FromAtom(0))
			}
			return countdown(n - 1)
		})
	}
	results := runGoal(countdown(50))
	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].SMap().Walk(x).Atom())
}

func TestInfdConstrainsDomain(t *testing.T) {
	x := Var("x")
	g := Infd(x, NewDomain(1, 2, 3))
	results := runGoal(g)
	require.Len(t, results, 1)
	walked := results[0].SMap().Walk(x)
	if walked.IsVar() {
		cs := results[0].CStore().Constraints()
		require.Len(t, cs, 1)
	}
}

func TestInfdRejectsOutOfDomainValue(t *testing.T) {
	x := Var("x")
	g := ConjMany(Eq(x, FromAtom(9)), Infd(x, NewDomain(1, 2, 3)))
	assert.Len(t, runGoal(g), 0)
}

func TestLtfdIsStrictOrder(t *testing.T) {
	x, y := Var("x"), Var("y")
	g := ConjMany(
		Infd(x, NewDomain(1, 2)),
		Infd(y, NewDomain(1, 2)),
		Ltfd(x, y),
		// Propagation alone leaves both domains at {1,2}; labeling
		// enumerates them and only x=1, y=2 survives.
		labelfd(x),
		labelfd(y),
	)
	results := runGoal(g)
	require.Len(t, results, 1)
	xv := results[0].SMap().Walk(x).Atom().(int)
	yv := results[0].SMap().Walk(y).Atom().(int)
	assert.Less(t, xv, yv)
}

func TestPlusfdConstrainsSum(t *testing.T) {
	x, y, z := Var("x"), Var("y"), Var("z")
	g := ConjMany(
		Infd(x, NewDomain(1, 2)),
		Infd(y, NewDomain(1, 2)),
		Infd(z, DomainRange(0, 10)),
		Plusfd(x, y, z),
		Eq(x, FromAtom(2)),
		Eq(y, FromAtom(2)),
	)
	results := runGoal(g)
	require.Len(t, results, 1)
	assert.Equal(t, 4, results[0].SMap().Walk(z).Atom())
}

func TestDistinctfdExcludesCollisions(t *testing.T) {
	x, y := Var("x"), Var("y")
	g := ConjMany(
		Infd(x, NewDomain(1, 2)),
		Infd(y, NewDomain(1, 2)),
		Distinctfd(x, y),
		Eq(x, FromAtom(1)),
	)
	results := runGoal(g)
	require.Len(t, results, 1)
	assert.Equal(t, 2, results[0].SMap().Walk(y).Atom())
}
