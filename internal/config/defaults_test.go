package config

import "testing"

func TestDefaultConfig_Driver(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Driver != "dtach" {
		t.Errorf("expected Driver to be 'dtach', got %q", cfg.Driver)
	}
	if cfg.AllUsers {
		t.Error("expected AllUsers to default to false")
	}
}

func TestDefaultConfig_Commands(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Commands.Squeue != "squeue" {
		t.Errorf("expected Commands.Squeue to be 'squeue', got %q", cfg.Commands.Squeue)
	}
	if cfg.Commands.Sbatch != "sbatch" {
		t.Errorf("expected Commands.Sbatch to be 'sbatch', got %q", cfg.Commands.Sbatch)
	}
	if cfg.Commands.SSH != "ssh" {
		t.Errorf("expected Commands.SSH to be 'ssh', got %q", cfg.Commands.SSH)
	}
}

func TestDefaultConfig_Session(t *testing.T) {
	cfg := DefaultConfig()
	s := cfg.Session
	if s.NTasks != 1 {
		t.Errorf("expected Session.NTasks to be 1, got %d", s.NTasks)
	}
	if s.JobName != "interactive_session" {
		t.Errorf("expected Session.JobName to be 'interactive_session', got %q", s.JobName)
	}
	if s.Output != "smux-%j.out" {
		t.Errorf("expected Session.Output to be 'smux-%%j.out', got %q", s.Output)
	}
	if s.Error != "smux-%j.err" {
		t.Errorf("expected Session.Error to be 'smux-%%j.err', got %q", s.Error)
	}
	if s.Partition != "" || s.Account != "" || s.Nodes != 0 {
		t.Errorf("expected optional session fields to be unset, got %+v", s)
	}
}

func TestDefaultConfig_Wait(t *testing.T) {
	cfg := DefaultConfig()
	submit, poll, attach, err := cfg.Wait.Durations()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if submit.Seconds() != 1 {
		t.Errorf("expected submit delay 1s, got %v", submit)
	}
	if poll.Seconds() != 2 {
		t.Errorf("expected poll interval 2s, got %v", poll)
	}
	if attach.Seconds() != 1 {
		t.Errorf("expected attach delay 1s, got %v", attach)
	}
	if cfg.Wait.PollAttempts != 10 {
		t.Errorf("expected 10 poll attempts, got %d", cfg.Wait.PollAttempts)
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	if err := validateConfig(DefaultConfig()); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}
