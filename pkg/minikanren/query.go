package minikanren

import (
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// Binding is one reified answer component: a top-level query variable, the
// term it walk*-resolves to, and the (possibly empty) residual constraint
// text still attached to it.
type Binding struct {
	Name     string
	Term     LTerm
	Residual string
}

// Result is one complete answer to a Query: the bindings for every root
// variable named at construction time, in the order they were given.
type Result struct {
	Bindings []Binding
}

// Query pairs a goal with the root variables whose bindings the caller
// wants reified, plus a stamped identifier for correlating a run across
// logs and a logger for the handful of conditions that indicate a
// programming fault rather than an ordinary search failure.
type Query struct {
	id     uuid.UUID
	names  []string
	vars   []LTerm
	goal   Goal
	user   UserHook
	logger hclog.Logger
}

// NewQuery builds a query over goal, reifying the given named root
// variables on each answer. user seeds the State's UserHook; pass nil for
// NoopUser.
func NewQuery(goal Goal, user UserHook, roots ...Binding) Query {
	names := make([]string, len(roots))
	vars := make([]LTerm, len(roots))
	for i, r := range roots {
		names[i] = r.Name
		vars[i] = r.Term
	}
	return Query{
		id:     uuid.New(),
		names:  names,
		vars:   vars,
		goal:   goal,
		user:   user,
		logger: nullLogger(),
	}
}

// Named is a convenience constructor for NewQuery's roots argument.
func Named(name string, term LTerm) Binding {
	return Binding{Name: name, Term: term}
}

// ID returns the identifier stamped on this query at construction, for
// correlating its log lines across a run.
func (q Query) ID() uuid.UUID { return q.id }

// WithLogger returns a copy of q logging through logger instead of the
// default null logger.
func (q Query) WithLogger(logger hclog.Logger) Query {
	if logger == nil {
		logger = nullLogger()
	}
	q.logger = logger
	return q
}

// Run solves the query and returns up to n answers (n < 0 for all answers),
// each reified against the root variables named at construction.
func (q Query) Run(n int) []Result {
	if len(q.vars) == 0 {
		q.logger.Warn("query has no root variables to reify", "query_id", q.id.String())
	}
	state := NewState(q.user)
	states := Take(q.goal(state), n)
	results := make([]Result, len(states))
	for i, st := range states {
		results[i] = q.reify(st)
	}
	return results
}

// reify walks every root variable to its current value, purifies the
// substitution map against those roots, and renders any constraint still
// attached to a root as residual text.
func (q Query) reify(s State) Result {
	walked := make([]LTerm, len(q.vars))
	for i, v := range q.vars {
		walked[i] = s.smap.WalkStar(v)
	}
	purified := s.smap.Purify(walked)

	residualsByRoot := make(map[uint64][]string, len(q.vars))
	for _, c := range s.cstore.Constraints() {
		resolved := c.WalkStar(purified)
		text := resolved.String()
		for _, op := range resolved.Operands() {
			if op.kind == KindVar {
				residualsByRoot[op.id] = append(residualsByRoot[op.id], text)
			}
		}
	}

	bindings := make([]Binding, len(q.vars))
	for i := range q.vars {
		term := walked[i]
		// Gather the residuals of every variable left in the walked term, in
		// the order they occur, so a root resolved to a partially bound list
		// still carries the constraints on its unbound elements.
		var parts []string
		var collect func(t LTerm)
		collect = func(t LTerm) {
			switch {
			case t.kind == KindVar:
				parts = append(parts, residualsByRoot[t.id]...)
			case t.IsCons():
				collect(t.Head())
				collect(t.Tail())
			}
		}
		collect(term)
		residual := strings.Join(dedupe(parts), " ")
		name := ""
		if i < len(q.names) {
			name = q.names[i]
		}
		bindings[i] = Binding{Name: name, Term: term, Residual: residual}
	}
	return Result{Bindings: bindings}
}

func dedupe(ss []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range ss {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
