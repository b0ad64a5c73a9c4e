package slurm

import (
	"fmt"
	"strings"
)

// QueryError is returned when a squeue invocation fails or prints
// something that does not parse.
type QueryError struct {
	Line   string // offending line, empty when the command itself failed
	Reason string
	Err    error
}

func (e *QueryError) Error() string {
	if e.Line != "" {
		return fmt.Sprintf("scheduler query: %s: %q", e.Reason, e.Line)
	}
	if e.Err != nil {
		return fmt.Sprintf("scheduler query: %s: %v", e.Reason, e.Err)
	}
	return "scheduler query: " + e.Reason
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// SubmissionError is returned when sbatch rejects a job request.
// Stderr is the scheduler's message, shown to the user verbatim.
type SubmissionError struct {
	Stderr string
	Err    error
}

func (e *SubmissionError) Error() string {
	msg := "job submission failed"
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// NotFoundError is returned when an identifier matches no queued job.
type NotFoundError struct {
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s is not a job id or a job name", e.Query)
}
