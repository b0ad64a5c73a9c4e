package session

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSHAttacher_Argv(t *testing.T) {
	a := NewSSHAttacher("/usr/bin/ssh")
	assert.Equal(t,
		[]string{"ssh", "m3a012", "-t", "dtach -a /home/alice/.local/share/stach/interactive_session"},
		a.Argv("m3a012", "dtach -a /home/alice/.local/share/stach/interactive_session"))
}

func TestSSHAttacher_DefaultCommand(t *testing.T) {
	a := NewSSHAttacher("")
	assert.Equal(t, "ssh", a.Argv("n", "c")[0])
}

func TestSSHAttacher_ExecsResolvedBinary(t *testing.T) {
	shPath, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}

	var gotPath string
	var gotArgv []string
	a := NewSSHAttacher("sh")
	a.exec = func(argv0 string, argv []string, envv []string) error {
		gotPath = argv0
		gotArgv = argv
		return nil
	}

	require.NoError(t, a.Attach("node01", "tmux attach-session -t s"))
	assert.Equal(t, shPath, gotPath)
	assert.Equal(t, []string{"sh", "node01", "-t", "tmux attach-session -t s"}, gotArgv)
}

func TestSSHAttacher_MissingBinary(t *testing.T) {
	a := NewSSHAttacher("definitely-not-a-real-ssh-binary")
	called := false
	a.exec = func(string, []string, []string) error {
		called = true
		return nil
	}

	err := a.Attach("node01", "cmd")

	var ee *ExecError
	require.ErrorAs(t, err, &ee)
	assert.False(t, called)
	assert.False(t, IsPrecondition(err))
}

func TestSSHAttacher_ExecFailure(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	a := NewSSHAttacher("sh")
	a.exec = func(string, []string, []string) error {
		return errors.New("permission denied")
	}

	err := a.Attach("node01", "cmd")

	var ee *ExecError
	require.ErrorAs(t, err, &ee)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestErrors_Messages(t *testing.T) {
	assert.Equal(t, "Your session hasn't started yet", (&NotRunningError{}).Error())
	assert.Contains(t, (&NotRunningError{JobID: "7"}).Error(), "job 7")
	assert.Contains(t, (&AmbiguousOrNotRunningError{Jobs: 3}).Error(), "try specifying a jobid")
	assert.Contains(t, (&AmbiguousOrNotRunningError{}).Error(), "new")
	assert.False(t, IsPrecondition(errors.New("other")))
}
