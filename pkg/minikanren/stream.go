package minikanren

// streamKind discriminates the three shapes a lazy answer stream can take:
// the empty stream, a mature cons of a ready state onto the rest of the
// stream, and an immature suspension that must be forced to make progress.
// Suspensions are what let search over an infinite relation stay finite to
// construct — only forcing actually does work.
type streamKind uint8

const (
	streamEmpty streamKind = iota
	streamCons
	streamPause
)

// Stream is a lazy sequence of States, the result of running a Goal.
type Stream struct {
	kind  streamKind
	state State
	rest  *Stream
	thunk func() Stream
}

// EmptyStream is the stream with no answers.
func EmptyStream() Stream { return Stream{kind: streamEmpty} }

// ConsStream returns a mature stream whose first answer is state and whose
// remaining answers are rest.
func ConsStream(state State, rest Stream) Stream {
	return Stream{kind: streamCons, state: state, rest: &rest}
}

// UnitStream returns the single-answer stream [state].
func UnitStream(state State) Stream {
	return ConsStream(state, EmptyStream())
}

// PauseStream suspends a stream-producing computation, deferring it until
// something forces this stream. Goal constructors wrap recursive or
// unbounded search here so that search order (BFS/DFS) is driven by mplus
// instead of by Go's own call stack.
func PauseStream(thunk func() Stream) Stream {
	return Stream{kind: streamPause, thunk: thunk}
}

// Force repeatedly resolves suspensions until the stream is empty or mature,
// i.e. until an answer (or the lack of one) is actually needed.
func Force(s Stream) Stream {
	for s.kind == streamPause {
		s = s.thunk()
	}
	return s
}

// IsEmpty reports whether a forced stream has no more answers.
func (s Stream) IsEmpty() bool { return s.kind == streamEmpty }

// Head returns the first answer of a mature, non-empty stream. Behavior is
// undefined unless the stream has already been Force'd and is non-empty.
func (s Stream) Head() State { return s.state }

// Tail returns the remaining answers of a mature, non-empty stream.
func (s Stream) Tail() Stream { return *s.rest }

// MPlusBFS merges two streams with the interleaving discipline Disj uses by
// default: whenever the left stream is suspended, the two operands swap
// roles before resuming, so that an infinite left branch can never starve
// the right one of a turn.
func MPlusBFS(a, b Stream) Stream {
	switch a.kind {
	case streamEmpty:
		return b
	case streamPause:
		return PauseStream(func() Stream { return MPlusBFS(b, a.thunk()) })
	default:
		return ConsStream(a.state, MPlusBFS(b, *a.rest))
	}
}

// MPlusDFS merges two streams by plain append: every answer of a is
// delivered before any answer of b is attempted, trading fairness between
// branches for depth-first exhaustiveness.
func MPlusDFS(a, b Stream) Stream {
	switch a.kind {
	case streamEmpty:
		return b
	case streamPause:
		return PauseStream(func() Stream { return MPlusDFS(a.thunk(), b) })
	default:
		return ConsStream(a.state, MPlusDFS(*a.rest, b))
	}
}

// Bind runs g against every state s produces, merging the resulting streams
// with the interleaving discipline. Conj is built directly on top of this.
func Bind(s Stream, g Goal) Stream {
	switch s.kind {
	case streamEmpty:
		return EmptyStream()
	case streamPause:
		return PauseStream(func() Stream { return Bind(s.thunk(), g) })
	default:
		return MPlusBFS(g(s.state), Bind(*s.rest, g))
	}
}

// Take pulls up to n answers from a stream, forcing suspensions as needed.
// n < 0 means "all answers" (the caller is responsible for ensuring the
// stream is actually finite in that case).
func Take(s Stream, n int) []State {
	var out []State
	for n != 0 {
		s = Force(s)
		if s.IsEmpty() {
			break
		}
		out = append(out, s.Head())
		s = s.Tail()
		if n > 0 {
			n--
		}
	}
	return out
}
