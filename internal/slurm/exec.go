package slurm

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os/exec"
	"strings"
)

// Output holds what a scheduler command wrote to its two streams.
type Output struct {
	Stdout string
	Stderr string
}

// Runner executes scheduler commands.
type Runner interface {
	Exec(ctx context.Context, name string, args ...string) (Output, error)
	ExecWithStdin(ctx context.Context, stdin []byte, name string, args ...string) (Output, error)
}

// CommandError is returned when a command exits abnormally.
// Stderr holds whatever the command printed before failing.
type CommandError struct {
	Name   string
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s %s failed: %v", e.Name, strings.Join(e.Args, " "), e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += "\nstderr: " + s
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// OSRunner executes real commands via exec.CommandContext.
type OSRunner struct{}

func (OSRunner) Exec(ctx context.Context, name string, args ...string) (Output, error) {
	return run(ctx, nil, name, args...)
}

func (OSRunner) ExecWithStdin(ctx context.Context, stdin []byte, name string, args ...string) (Output, error) {
	return run(ctx, stdin, name, args...)
}

func run(ctx context.Context, stdin []byte, name string, args ...string) (Output, error) {
	log.Printf("running: %s %s", name, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	err := cmd.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		return out, &CommandError{
			Name:   name,
			Args:   append([]string(nil), args...),
			Stderr: out.Stderr,
			Err:    err,
		}
	}
	return out, nil
}

var _ Runner = OSRunner{}
