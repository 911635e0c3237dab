// Package commands holds the shared setup operations the suites compose:
// logins for each actor role and create/delete helpers for fixture admins.
// Commands establish preconditions, so any failure inside one is fatal to
// the calling case and is reported as a precondition failure rather than an
// assertion outcome.
package commands

import (
	"fmt"
)

// PreconditionError marks a setup command that failed. The runner reports
// these apart from the assertion a test actually wanted to make.
type PreconditionError struct {
	Op  string
	Err error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition %s: %v", e.Op, e.Err)
}

func (e *PreconditionError) Unwrap() error { return e.Err }

func precondition(op string, err error) error {
	return &PreconditionError{Op: op, Err: err}
}

func preconditionf(op, format string, args ...any) error {
	return &PreconditionError{Op: op, Err: fmt.Errorf(format, args...)}
}
