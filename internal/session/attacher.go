package session

import (
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// Attacher hands the terminal over to a session on a compute node.
type Attacher interface {
	// Attach runs command on node in a pseudo-terminal. Implementations
	// that replace the process only return on failure.
	Attach(node, command string) error
}

// SSHAttacher replaces the current process with ssh. Once Attach succeeds
// nothing else in this process runs and ssh's exit status becomes smux's,
// so callers must finish any cleanup before calling it.
type SSHAttacher struct {
	command string
	exec    func(argv0 string, argv []string, envv []string) error
}

// NewSSHAttacher creates an attacher using the given ssh binary name or path.
func NewSSHAttacher(command string) *SSHAttacher {
	if command == "" {
		command = "ssh"
	}
	return &SSHAttacher{command: command, exec: unix.Exec}
}

// Argv returns the full argument vector passed to ssh.
func (a *SSHAttacher) Argv(node, command string) []string {
	return []string{filepath.Base(a.command), node, "-t", command}
}

func (a *SSHAttacher) Attach(node, command string) error {
	path, err := exec.LookPath(a.command)
	if err != nil {
		return &ExecError{Path: a.command, Err: err}
	}

	argv := a.Argv(node, command)
	log.Printf("exec: %s", strings.Join(argv, " "))

	if err := a.exec(path, argv, os.Environ()); err != nil {
		return &ExecError{Path: path, Err: err}
	}
	return nil
}

var _ Attacher = (*SSHAttacher)(nil)
