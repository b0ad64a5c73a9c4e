package slurm

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

type fakeRunner struct {
	mu        sync.Mutex
	responses map[string][]fakeResponse
	calls     []fakeCall
}

type fakeResponse struct {
	out Output
	err error
}

type fakeCall struct {
	cmdline string
	stdin   []byte
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		responses: make(map[string][]fakeResponse),
	}
}

func (f *fakeRunner) stub(cmdline string, stdout string, err error) {
	f.stubOutput(cmdline, Output{Stdout: stdout}, err)
}

func (f *fakeRunner) stubOutput(cmdline string, out Output, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[cmdline] = append(f.responses[cmdline], fakeResponse{out: out, err: err})
}

func (f *fakeRunner) Exec(ctx context.Context, name string, args ...string) (Output, error) {
	return f.ExecWithStdin(ctx, nil, name, args...)
}

func (f *fakeRunner) ExecWithStdin(ctx context.Context, stdin []byte, name string, args ...string) (Output, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fakeCall{cmdline: key, stdin: stdin})
	queue := f.responses[key]
	if len(queue) == 0 {
		return Output{}, fmt.Errorf("unexpected call: %s", key)
	}
	resp := queue[0]
	f.responses[key] = queue[1:]
	return resp.out, resp.err
}

func (f *fakeRunner) lastCall() fakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return fakeCall{}
	}
	return f.calls[len(f.calls)-1]
}
