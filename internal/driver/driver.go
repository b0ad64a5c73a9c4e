// Package driver produces the job scripts that start a detachable terminal
// session on a compute node and the remote commands that reattach to it.
package driver

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// Kind selects the terminal multiplexer backing a session.
type Kind string

const (
	Dtach Kind = "dtach"
	Tmux  Kind = "tmux"
)

// DefaultKind is used when no driver is configured.
const DefaultKind = Dtach

// DefaultSocketDir holds dtach sockets, one per job name. Home directories
// are shared between login and compute nodes on the clusters smux targets.
const DefaultSocketDir = "~/.local/share/stach"

// ParseKind converts a user-supplied driver name into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case Dtach:
		return Dtach, nil
	case Tmux:
		return Tmux, nil
	default:
		return "", fmt.Errorf("unknown session driver %q (must be 'dtach' or 'tmux')", s)
	}
}

func (k Kind) String() string {
	return string(k)
}

// Set and Type let a Kind be bound directly as a command line flag.
func (k *Kind) Set(s string) error {
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func (k *Kind) Type() string {
	return "driver"
}

const dtachScript = `#!/bin/bash
sockdir=%s
mkdir -p "$sockdir"
dtach -n "$sockdir/$SLURM_JOB_NAME" bash
# Sleep until the dtach server exits
while [ -e "$sockdir/$SLURM_JOB_NAME" ]; do sleep 5; done
`

const tmuxScript = `#!/bin/bash
tmux new-session -d -s "$SLURM_JOB_NAME" bash
# determine the process id of the tmux server
pid=$( /bin/ps x | /bin/grep -i "[t]mux new-session -d -s" | sed 's/^ *//' | cut -f 1 -d " " )
ps x
# Sleep until the tmux server exits
while [ -e /proc/$pid ]; do sleep 5; done
`

// NewSessionScript returns the job body for kind. The job lives exactly as
// long as the multiplexer server it starts. socketDir is only used by dtach
// and must already be expanded.
func NewSessionScript(kind Kind, socketDir string) ([]byte, error) {
	switch kind {
	case Dtach:
		return []byte(fmt.Sprintf(dtachScript, ShellQuote(socketDir))), nil
	case Tmux:
		return []byte(tmuxScript), nil
	default:
		return nil, fmt.Errorf("unknown session driver %q", kind)
	}
}

// AttachCommand returns the command run on the compute node to reattach
// to the session started for the job called name.
func AttachCommand(kind Kind, socketDir, name string) (string, error) {
	switch kind {
	case Dtach:
		return "dtach -a " + ShellQuote(path.Join(socketDir, name)), nil
	case Tmux:
		return "tmux attach-session -t " + ShellQuote(name), nil
	default:
		return "", fmt.Errorf("unknown session driver %q", kind)
	}
}

// Prepare does the local setup a driver needs before a job is submitted.
// For dtach the socket directory is created if missing; racing invocations
// are harmless since MkdirAll tolerates an existing directory.
func Prepare(kind Kind, socketDir string) error {
	switch kind {
	case Dtach:
		if err := os.MkdirAll(socketDir, 0700); err != nil {
			return fmt.Errorf("create socket directory: %w", err)
		}
		return nil
	case Tmux:
		return nil
	default:
		return fmt.Errorf("unknown session driver %q", kind)
	}
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(dir string) string {
	if dir != "~" && !strings.HasPrefix(dir, "~/") {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return dir
	}
	return filepath.Join(home, dir[1:])
}

var shellSafe = regexp.MustCompile(`^[A-Za-z0-9_@%+=:,./-]+$`)

// ShellQuote quotes s for a POSIX shell unless it is already safe as a
// bare word.
func ShellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if shellSafe.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
