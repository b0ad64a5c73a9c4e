package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/RevCBH/smux/internal/testutil"
)

// writeFile creates a file with the given content for testing
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	err := os.WriteFile(path, []byte(content), 0644)
	if err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	testutil.ClearSmuxEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USER", "tester")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Driver != DefaultDriver {
		t.Errorf("expected Driver to be %q, got %q", DefaultDriver, cfg.Driver)
	}
	expectedDir := filepath.Join(home, ".local", "share", "stach")
	if cfg.Dtach.SocketDir != expectedDir {
		t.Errorf("expected Dtach.SocketDir to be %q, got %q", expectedDir, cfg.Dtach.SocketDir)
	}
	if cfg.User == "" {
		t.Error("expected User to be resolved from the environment")
	}
	if cfg.Session.JobName != DefaultJobName {
		t.Errorf("expected Session.JobName to be %q, got %q", DefaultJobName, cfg.Session.JobName)
	}
}

func TestLoadConfig_FileOverrides(t *testing.T) {
	testutil.ClearSmuxEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	writeFile(t, path, `
driver: tmux
all_users: true
user: bob
commands:
  squeue: /opt/slurm/bin/squeue
dtach:
  socket_dir: /scratch/bob/sockets
session:
  partition: m3g
  gres: gpu:1
  time: "04:00:00"
wait:
  poll_attempts: 30
  poll_interval: 5s
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Driver != "tmux" {
		t.Errorf("expected Driver 'tmux', got %q", cfg.Driver)
	}
	if !cfg.AllUsers {
		t.Error("expected AllUsers true")
	}
	if cfg.User != "bob" {
		t.Errorf("expected User 'bob', got %q", cfg.User)
	}
	if cfg.Commands.Squeue != "/opt/slurm/bin/squeue" {
		t.Errorf("unexpected Commands.Squeue: %q", cfg.Commands.Squeue)
	}
	// Unset fields keep their defaults
	if cfg.Commands.Sbatch != DefaultSbatch {
		t.Errorf("expected Commands.Sbatch default, got %q", cfg.Commands.Sbatch)
	}
	if cfg.Session.Partition != "m3g" || cfg.Session.Gres != "gpu:1" || cfg.Session.Time != "04:00:00" {
		t.Errorf("session overrides not applied: %+v", cfg.Session)
	}
	if cfg.Session.NTasks != DefaultNTasks {
		t.Errorf("expected Session.NTasks default, got %d", cfg.Session.NTasks)
	}
	if cfg.Wait.PollAttempts != 30 || cfg.Wait.PollInterval != "5s" {
		t.Errorf("wait overrides not applied: %+v", cfg.Wait)
	}

	cc := cfg.ClientConfig()
	if cc.User != "bob" || !cc.AllUsers || cc.SqueueCommand != "/opt/slurm/bin/squeue" {
		t.Errorf("unexpected client config: %+v", cc)
	}
}

func TestLoadConfig_EnvBeatsFile(t *testing.T) {
	testutil.ClearSmuxEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "driver: tmux\n")
	t.Setenv("SMUX_DRIVER", "dtach")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	kind, err := cfg.DriverKind()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind != "dtach" {
		t.Errorf("expected env to win, got %q", kind)
	}
}

func TestLoadConfig_ExplicitMissingFile(t *testing.T) {
	testutil.ClearSmuxEnv(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
	if !strings.Contains(err.Error(), "read config") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	testutil.ClearSmuxEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "driver: [unclosed\n")

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	testutil.ClearSmuxEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "driver: screen\n")

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "validate config") {
		t.Errorf("unexpected error: %v", err)
	}
}
