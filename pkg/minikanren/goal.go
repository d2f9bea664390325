package minikanren

// Goal is a function from a State to the (lazy) stream of states satisfying
// it. Every combinator below — conjunction, disjunction, fresh variables,
// constraints — is just a value of this one function type, composed by
// ordinary function calls rather than walked by a separate interpreter.
type Goal func(State) Stream

// Succeed is the goal that always succeeds, changing nothing.
func Succeed(s State) Stream { return UnitStream(s) }

// Fail is the goal that never succeeds.
func Fail(s State) Stream { return EmptyStream() }

// Eq unifies u and v.
func Eq(u, v LTerm) Goal {
	return func(s State) Stream {
		if next, ok := s.Unify(u, v); ok {
			return UnitStream(next)
		}
		return EmptyStream()
	}
}

// Diseq asserts u and v can never be unified.
func Diseq(u, v LTerm) Goal {
	return func(s State) Stream {
		if next, ok := s.Disunify(u, v); ok {
			return UnitStream(next)
		}
		return EmptyStream()
	}
}

// Conj is sequential composition: a state must satisfy a and then b,
// implemented as Bind over a's stream.
func Conj(a, b Goal) Goal {
	return func(s State) Stream { return Bind(a(s), b) }
}

// ConjMany folds Conj over goals left to right. Zero goals is Succeed, the
// identity of conjunction. A nil entry is a programming fault (a caller
// built its goal slice incorrectly, e.g. from a lookup that can miss); every
// nil entry is collected and logged rather than only the first one found,
// and the whole conjunction fails rather than panicking on a nil call.
func ConjMany(goals ...Goal) Goal {
	if fault := checkNoNils("ConjMany", goals); fault != nil {
		diagLogger().Error(fault.Error())
		return Fail
	}
	if len(goals) == 0 {
		return Succeed
	}
	g := goals[0]
	for _, next := range goals[1:] {
		g = Conj(g, next)
	}
	return g
}

// Disj is interleaving disjunction: a state satisfying either a or b,
// merging with MPlusBFS for fairness between branches, one of which may be
// infinite.
func Disj(a, b Goal) Goal {
	return func(s State) Stream { return MPlusBFS(a(s), b(s)) }
}

// DisjDFS is disjunction with the append discipline (MPlusDFS) instead of
// interleaving, for callers that want left-to-right exhaustion over
// fairness.
func DisjDFS(a, b Goal) Goal {
	return func(s State) Stream { return MPlusDFS(a(s), b(s)) }
}

// DisjMany folds Disj (interleaving) over goals. Zero goals is Fail, the
// identity of disjunction. See ConjMany on nil-entry handling.
func DisjMany(goals ...Goal) Goal {
	if fault := checkNoNils("DisjMany", goals); fault != nil {
		diagLogger().Error(fault.Error())
		return Fail
	}
	if len(goals) == 0 {
		return Fail
	}
	g := goals[0]
	for _, next := range goals[1:] {
		g = Disj(g, next)
	}
	return g
}

// checkNoNils aggregates one ProgrammingError per nil entry in goals into a
// single error via go-multierror, so ConjMany/DisjMany report every
// malformed entry at once instead of only the first.
func checkNoNils(op string, goals []Goal) error {
	var err error
	for i, g := range goals {
		if g == nil {
			err = appendFault(err, newProgrammingError(op, "goal at index %d is nil", i))
		}
	}
	return err
}

// Fresh introduces n new logic variables, scoped to the goal f builds from
// them. The body is constructed lazily inside a PauseStream so that
// recursive relations built with Fresh don't recurse during goal
// *construction*, only during search.
//
// n must be positive: a caller that asks for zero or negative fresh
// variables has a bug in the relation it's building, not an ordinary
// search failure, so the fault is logged and the goal simply never
// succeeds rather than silently proceeding with no variables at all.
func Fresh(n int, f func(vars []LTerm) Goal) Goal {
	if n <= 0 {
		diagLogger().Error(newProgrammingError("Fresh", "n must be positive, got %d", n).Error())
		return Fail
	}
	return func(s State) Stream {
		next, vars := s.Fresh(n)
		return PauseStream(func() Stream { return f(vars)(next) })
	}
}

// Closure defers goal construction until the goal actually runs, the
// mechanism recursive relations use to stay finite to build: a relation
// that calls itself directly inside a Go function body would recurse
// infinitely while the goal tree is still being assembled, before search
// ever begins.
func Closure(f func() Goal) Goal {
	return func(s State) Stream {
		return PauseStream(func() Stream { return f()(s) })
	}
}

// Everyg applies rel to every element of list, failing if list is not a
// proper list, conjoining all the resulting goals. Recursion goes through
// Closure so an unbounded list doesn't blow the Go call stack during
// construction.
func Everyg(rel func(LTerm) Goal, list LTerm) Goal {
	return Closure(func() Goal {
		return func(s State) Stream {
			w := s.SMap().WalkStar(list)
			switch {
			case w.IsNil():
				return Succeed(s)
			case w.IsCons():
				return Conj(rel(w.Head()), Everyg(rel, w.Tail()))(s)
			default:
				return Fail(s)
			}
		}
	})
}

// Infd asserts v's finite domain is (narrowed to) d.
func Infd(v LTerm, d Domain) Goal {
	return func(s State) Stream {
		if next, ok := s.cstore.addFDDomain(s, v, d); ok {
			return UnitStream(next)
		}
		return EmptyStream()
	}
}

// Distinctfd asserts every pair among vars is distinct under finite-domain
// propagation.
func Distinctfd(vars ...LTerm) Goal {
	return func(s State) Stream {
		if next, ok := s.cstore.addFDDistinct(s, vars); ok {
			return UnitStream(next)
		}
		return EmptyStream()
	}
}

// Ltefd asserts u <= v under finite-domain propagation.
func Ltefd(u, v LTerm) Goal {
	return func(s State) Stream {
		if next, ok := s.cstore.addFDLte(s, u, v); ok {
			return UnitStream(next)
		}
		return EmptyStream()
	}
}

// Plusfd asserts u + v = w under finite-domain propagation.
func Plusfd(u, v, w LTerm) Goal {
	return func(s State) Stream {
		if next, ok := s.cstore.addFDPlus(s, u, v, w); ok {
			return UnitStream(next)
		}
		return EmptyStream()
	}
}

// Diseqfd asserts u != v under finite-domain propagation: a two-variable
// distinct group, since "both singleton and equal -> fail" is exactly
// distinct's rule restricted to two operands.
func Diseqfd(u, v LTerm) Goal {
	return Distinctfd(u, v)
}

// Ltfd asserts strict u < v, defined as diseqfd(u, v) && ltefd(u, v).
func Ltfd(u, v LTerm) Goal {
	return Conj(Diseqfd(u, v), Ltefd(u, v))
}
