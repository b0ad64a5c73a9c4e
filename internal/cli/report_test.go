package cli

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RevCBH/smux/internal/session"
	"github.com/RevCBH/smux/internal/slurm"
)

func TestReport_Nil(t *testing.T) {
	var buf bytes.Buffer
	Report(&buf, nil, "Usage: smux list")
	assert.Empty(t, buf.String())
}

func TestReport_Precondition(t *testing.T) {
	var buf bytes.Buffer
	err := fmt.Errorf("attach: %w", &session.NotRunningError{JobID: "42"})

	Report(&buf, err, "Usage: smux attach")

	assert.Equal(t, "attach: Your session (job 42) hasn't started yet\n", buf.String())
}

func TestReport_TraceAndUsage(t *testing.T) {
	var buf bytes.Buffer
	root := errors.New("exit status 1")
	err := &slurm.QueryError{Reason: "listing jobs", Err: root}

	Report(&buf, err, "Usage:\n  smux list [flags]\n")

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Error: scheduler query: listing jobs: exit status 1\n"))
	assert.Contains(t, out, "Diagnostic trace:")
	assert.Contains(t, out, "1. *slurm.QueryError: ")
	assert.Contains(t, out, "2. *errors.errorString: exit status 1")
	assert.True(t, strings.HasSuffix(out, "smux list [flags]\n"))
}

func TestReport_NoUsage(t *testing.T) {
	var buf bytes.Buffer
	Report(&buf, errors.New("boom"), "  ")
	assert.NotContains(t, buf.String(), "Usage")
	assert.True(t, strings.HasSuffix(buf.String(), "1. *errors.errorString: boom\n"))
}

func TestDiagnosticTrace_Joined(t *testing.T) {
	a := errors.New("first")
	b := errors.New("second")
	err := fmt.Errorf("validate config: %w", errors.Join(a, b))

	trace := diagnosticTrace(err)

	assert.Len(t, trace, 4)
	assert.Contains(t, trace[0], "validate config")
	assert.Contains(t, trace[2], "first")
	assert.Contains(t, trace[3], "second")
}
