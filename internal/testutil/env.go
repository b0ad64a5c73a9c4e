package testutil

import "testing"

var smuxEnvVars = []string{
	"SMUX_DRIVER",
	"SMUX_ALL_USERS",
	"SMUX_SQUEUE_CMD",
	"SMUX_SBATCH_CMD",
	"SMUX_SSH_CMD",
	"SMUX_SOCKET_DIR",
	"SMUX_ACCOUNT",
	"SMUX_PARTITION",
}

// ClearSmuxEnv blanks environment variables that override configuration,
// restoring them when the test ends.
func ClearSmuxEnv(t *testing.T) {
	t.Helper()
	for _, key := range smuxEnvVars {
		t.Setenv(key, "")
	}
}
