package session

import (
	"errors"
	"fmt"
)

// NotRunningError is returned when the job to attach to has not started.
type NotRunningError struct {
	JobID string
}

func (e *NotRunningError) Error() string {
	if e.JobID == "" {
		return "Your session hasn't started yet"
	}
	return fmt.Sprintf("Your session (job %s) hasn't started yet", e.JobID)
}

// AmbiguousOrNotRunningError is returned when no identifier was given and
// the queue does not hold exactly one job to pick.
type AmbiguousOrNotRunningError struct {
	Jobs int
}

func (e *AmbiguousOrNotRunningError) Error() string {
	if e.Jobs == 0 {
		return "I couldn't find a session to connect to, start one with 'new'"
	}
	return fmt.Sprintf("I couldn't figure out what you were trying to connect to (%d sessions), try specifying a jobid", e.Jobs)
}

// ExecError is returned when the remote login program could not replace
// the current process. It is not recoverable.
type ExecError struct {
	Path string
	Err  error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("exec %s: %v", e.Path, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// IsPrecondition reports whether err means an attach was refused because
// the queue was not in a state to attach to. Such errors are guidance for
// the user rather than failures.
func IsPrecondition(err error) bool {
	var notRunning *NotRunningError
	var ambiguous *AmbiguousOrNotRunningError
	return errors.As(err, &notRunning) || errors.As(err, &ambiguous)
}
