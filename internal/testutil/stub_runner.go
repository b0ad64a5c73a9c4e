package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/RevCBH/smux/internal/slurm"
)

// StubRunner is a slurm.Runner that replays queued responses keyed by the
// full command line ("squeue -u alice --noheader -o %A,%j,%t").
type StubRunner struct {
	mu       sync.Mutex
	stubs    map[string][]stubResponse
	defaults map[string]stubResponse
	calls    []string
	stdin    map[string][]byte
}

type stubResponse struct {
	out slurm.Output
	err error
}

func NewStubRunner() *StubRunner {
	return &StubRunner{
		stubs:    make(map[string][]stubResponse),
		defaults: make(map[string]stubResponse),
		stdin:    make(map[string][]byte),
	}
}

// Stub queues one response for the command line.
func (s *StubRunner) Stub(cmdline string, stdout string, err error) {
	s.StubOutput(cmdline, slurm.Output{Stdout: stdout}, err)
}

// StubOutput queues one response with both streams.
func (s *StubRunner) StubOutput(cmdline string, out slurm.Output, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stubs[cmdline] = append(s.stubs[cmdline], stubResponse{out: out, err: err})
}

// StubDefault sets the response used once the queue for cmdline is drained.
func (s *StubRunner) StubDefault(cmdline string, stdout string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaults[cmdline] = stubResponse{out: slurm.Output{Stdout: stdout}, err: err}
}

func (s *StubRunner) Exec(ctx context.Context, name string, args ...string) (slurm.Output, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, key)
	queue := s.stubs[key]
	if len(queue) == 0 {
		if resp, ok := s.defaults[key]; ok {
			return resp.out, resp.err
		}
		return slurm.Output{}, fmt.Errorf("unexpected command: %s", key)
	}
	resp := queue[0]
	s.stubs[key] = queue[1:]
	return resp.out, resp.err
}

func (s *StubRunner) ExecWithStdin(ctx context.Context, stdin []byte, name string, args ...string) (slurm.Output, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	s.mu.Lock()
	s.stdin[key] = append([]byte(nil), stdin...)
	s.mu.Unlock()
	return s.Exec(ctx, name, args...)
}

// CallsFor counts how many times the command line was executed.
func (s *StubRunner) CallsFor(cmdline string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, call := range s.calls {
		if call == cmdline {
			count++
		}
	}
	return count
}

// CallsWithPrefix counts executed command lines starting with prefix.
func (s *StubRunner) CallsWithPrefix(prefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, call := range s.calls {
		if strings.HasPrefix(call, prefix) {
			count++
		}
	}
	return count
}

// Stdin returns the input last piped to cmdline.
func (s *StubRunner) Stdin(cmdline string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stdin[cmdline]
}

var _ slurm.Runner = (*StubRunner)(nil)
