package minikanren

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	multierror "github.com/hashicorp/go-multierror"
)

// ProgrammingError signals a malformed goal tree or a misused constraint
// constructor. It is distinct from logic failure: a ProgrammingError marks
// a bug in the caller's relation, not a branch of the search space that
// simply didn't pan out.
type ProgrammingError struct {
	Op  string // the constructor or operation that detected the fault
	Msg string
}

func (e *ProgrammingError) Error() string {
	return fmt.Sprintf("minikanren: %s: %s", e.Op, e.Msg)
}

func newProgrammingError(op, format string, args ...interface{}) *ProgrammingError {
	return &ProgrammingError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

// appendFault accumulates programming faults discovered while building a
// compound goal (ConjMany, DisjMany) so a caller sees every
// construction-time fault instead of only the first one found.
func appendFault(err error, fault error) error {
	if fault == nil {
		return err
	}
	return multierror.Append(err, fault)
}

// nullLogger is the default logger for a Query: the Query's own messages
// are dropped unless a caller opts in via Query.WithLogger. Faults found
// by goal constructors and the constraint store go through diagLogger.
func nullLogger() hclog.Logger {
	return hclog.NewNullLogger()
}

// diagLogger backs goal constructors (ConjMany, DisjMany) that can detect a
// programming fault before any Query exists to carry a logger. Unlike
// nullLogger it actually emits, at hclog's default level, since there is no
// later Query.WithLogger opt-in point for a fault caught this early.
func diagLogger() hclog.Logger {
	return hclog.Default()
}
