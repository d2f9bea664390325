package minikanren

import (
	"fmt"
	"sync/atomic"
)

// Kind discriminates the shapes an LTerm can take: a named variable, an
// anonymous wildcard, an atomic value, or a cons cell.
type Kind uint8

const (
	KindVar Kind = iota
	KindAny
	KindVal
	KindCons
)

// nextVarID backs every Var/Any allocation. A single process-wide counter
// is enough because unification and walk only ever need ids to be unique,
// never sequential or scoped to one solve; keeping it global means a fresh
// variable can be minted before any State exists, which query construction
// relies on.
var nextVarID uint64

func freshID() uint64 {
	return atomic.AddUint64(&nextVarID, 1)
}

// LTerm is the logic-term sum type every relation is built from: a
// variable, a wildcard, an atomic value, or a cons cell. It is a closed
// struct rather than an interface so the unifier and walk* can switch
// exhaustively over exactly these four shapes without a type-assertion
// fallback case.
type LTerm struct {
	kind Kind

	// KindVar / KindAny
	id   uint64
	name string

	// KindVal
	atom interface{}

	// KindCons
	head *LTerm
	tail *LTerm
}

// Var constructs a fresh named logic variable.
func Var(name string) LTerm {
	return LTerm{kind: KindVar, id: freshID(), name: name}
}

// Any constructs a fresh anonymous wildcard. Each call denotes its own
// slot: two wildcards never unify with each other as the same variable
// would, only independently with whatever they're each matched against.
func Any() LTerm {
	return LTerm{kind: KindAny, id: freshID()}
}

// FromAtom wraps an immutable atomic Go value (integer, bool, string/symbol)
// as an LTerm. nil is rejected in favor of the explicit Nil() empty list.
func FromAtom(v interface{}) LTerm {
	if v == nil {
		return Nil()
	}
	return LTerm{kind: KindVal, atom: v}
}

// Nil returns the empty-list atom, the conventional list terminator.
func Nil() LTerm {
	return LTerm{kind: KindVal, atom: nilAtom{}}
}

type nilAtom struct{}

// Cons builds a binary cons cell.
func Cons(head, tail LTerm) LTerm {
	h, t := head, tail
	return LTerm{kind: KindCons, head: &h, tail: &t}
}

// FromSequence builds a right-nested, nil-terminated list from items.
func FromSequence(items []LTerm) LTerm {
	result := Nil()
	for i := len(items) - 1; i >= 0; i-- {
		result = Cons(items[i], result)
	}
	return result
}

// IsVar reports whether t is a named logic variable.
func (t LTerm) IsVar() bool { return t.kind == KindVar }

// IsAnyKind reports whether t is literally the anonymous-wildcard variant,
// as opposed to IsAny (below), which also reports true for a variable that
// is still unresolved.
func (t LTerm) IsAnyKind() bool { return t.kind == KindAny }

// IsAny reports whether t carries no concrete information: either it is the
// wildcard variant, or it is a variable with no binding to walk to. A
// completely untouched query variable satisfies this after reification.
func (t LTerm) IsAny() bool { return t.kind == KindAny || t.kind == KindVar }

// IsAnyExcept reports whether t could still denote anything other than
// value: true for a wildcard or unresolved variable (which could still turn
// out to be anything), true for a value or cons structurally different from
// value, and false only when t is exactly the atom value.
func (t LTerm) IsAnyExcept(value interface{}) bool {
	if t.IsAny() {
		return true
	}
	if t.IsVal() {
		return t.Atom() != value
	}
	return true
}

// IsVal reports whether t is an atomic value, including Nil.
func (t LTerm) IsVal() bool { return t.kind == KindVal }

// IsNil reports whether t is the empty-list atom.
func (t LTerm) IsNil() bool {
	if t.kind != KindVal {
		return false
	}
	_, ok := t.atom.(nilAtom)
	return ok
}

// IsCons reports whether t is a cons cell.
func (t LTerm) IsCons() bool { return t.kind == KindCons }

// Atom returns the underlying value of a KindVal term (nil for Nil()).
func (t LTerm) Atom() interface{} {
	if t.IsNil() {
		return nil
	}
	return t.atom
}

// Head and Tail return the components of a cons cell. Behavior is undefined
// if t is not KindCons.
func (t LTerm) Head() LTerm { return *t.head }
func (t LTerm) Tail() LTerm { return *t.tail }

// ID returns the identity of a Var/Any term, used for map-keying and for
// ordering residual constraints deterministically.
func (t LTerm) ID() uint64 { return t.id }

// Name returns the human-readable hint attached at construction.
func (t LTerm) Name() string { return t.name }

// Equal is strict structural equality, distinct from unification: Var
// equality is by id, Any is never equal to anything but itself by id
// (every occurrence is its own slot), and Cons compares structurally.
func (t LTerm) Equal(other LTerm) bool {
	if t.kind != other.kind {
		return false
	}
	switch t.kind {
	case KindVar:
		return t.id == other.id
	case KindAny:
		return t.id == other.id
	case KindVal:
		return t.atom == other.atom
	case KindCons:
		return t.head.Equal(*other.head) && t.tail.Equal(*other.tail)
	default:
		return false
	}
}

// IsConstrained reports whether t, walked under s's substitution map, is a
// variable that still appears in one of s's active constraints. A resolved
// term (one that walks to a value or cons) is never "constrained" in this
// sense — it has already been decided.
func (t LTerm) IsConstrained(s State) bool {
	walked := s.SMap().Walk(t)
	if walked.kind != KindVar {
		return false
	}
	for _, c := range s.CStore().Constraints() {
		for _, op := range c.Operands() {
			if op.kind == KindVar && op.id == walked.id {
				return true
			}
		}
	}
	return false
}

// Terms decomposes a proper or improper cons-list into its element prefix
// and final tail. ok is true iff the list is proper (terminated by Nil()).
func (t LTerm) Terms() (items []LTerm, tail LTerm, ok bool) {
	cur := t
	for cur.IsCons() {
		items = append(items, cur.Head())
		cur = cur.Tail()
	}
	return items, cur, cur.IsNil()
}

// String renders t without resolving any bindings; callers that need
// bindings resolved should walk* first and then String the result.
func (t LTerm) String() string {
	switch t.kind {
	case KindVar:
		if t.name != "" {
			return fmt.Sprintf("_%s.%d", t.name, t.id)
		}
		return fmt.Sprintf("_.%d", t.id)
	case KindAny:
		return "_"
	case KindVal:
		if t.IsNil() {
			return "()"
		}
		return fmt.Sprintf("%v", t.atom)
	case KindCons:
		items, tail, proper := t.Terms()
		s := "("
		for i, it := range items {
			if i > 0 {
				s += " "
			}
			s += it.String()
		}
		if !proper {
			s += " . " + tail.String()
		}
		return s + ")"
	default:
		return "?"
	}
}
