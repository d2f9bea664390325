package minikanren

// UserHook is a callback invoked at each substitution-map extension, seeded
// by an opaque, caller-supplied user value threaded through every State.
// Implementations with no use for it embed NoopUser.
type UserHook interface {
	// OnExtend is invoked after smap has been extended by delta (the
	// bindings added by this unification step, most recent first) while
	// unifying u against v. It returns the (possibly further modified)
	// state that solving continues with.
	OnExtend(state State, delta SMap, u, v LTerm) State
}

// NoopUser is the default UserHook: identity, no re-propagation triggered.
type NoopUser struct{}

// OnExtend implements UserHook by returning state unchanged.
func (NoopUser) OnExtend(state State, delta SMap, u, v LTerm) State { return state }

// State threads a substitution map, a constraint store, an opaque user
// value, and a variable counter through solving. States are persistent
// value-semantics: copying a State struct is a cheap shallow copy because
// SMap and CStore are themselves immutable, reference-sharing structures,
// so forking search into two branches never requires deep-copying either.
type State struct {
	smap    SMap
	cstore  CStore
	user    UserHook
	counter uint64
}

// NewState returns the initial state for a fresh query, seeded with user.
func NewState(user UserHook) State {
	if user == nil {
		user = NoopUser{}
	}
	return State{smap: NewSMap(), cstore: NewCStore(), user: user}
}

// SMap returns the state's current substitution map.
func (s State) SMap() SMap { return s.smap }

// CStore returns the state's current constraint store.
func (s State) CStore() CStore { return s.cstore }

// User returns the state's opaque user hook.
func (s State) User() UserHook { return s.user }

// Counter returns how many variables this state's lineage has allocated via
// Fresh so far.
func (s State) Counter() uint64 { return s.counter }

// WithSMap returns a copy of s with its substitution map replaced.
func (s State) WithSMap(m SMap) State {
	s.smap = m
	return s
}

// WithCStore returns a copy of s with its constraint store replaced.
func (s State) WithCStore(c CStore) State {
	s.cstore = c
	return s
}

// Fresh allocates n new anonymous logic variables, returning the updated
// state (counter advanced) and the variables. names, if non-empty, supplies
// a debug name per variable (padded with "" if shorter than n).
//
// n <= 0 is a caller bug, not an empty result: it is logged as a
// ProgrammingError and s is returned unchanged with no variables, since the
// Fresh goal constructor is expected to catch this before ever calling in.
func (s State) Fresh(n int, names ...string) (State, []LTerm) {
	if n <= 0 {
		diagLogger().Error(newProgrammingError("State.Fresh", "n must be positive, got %d", n).Error())
		return s, nil
	}
	vars := make([]LTerm, n)
	for i := 0; i < n; i++ {
		name := ""
		if i < len(names) {
			name = names[i]
		}
		vars[i] = Var(name)
		s.counter++
	}
	return s, vars
}
