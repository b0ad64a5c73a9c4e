package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/RevCBH/smux/internal/driver"
	"github.com/RevCBH/smux/internal/slurm"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for smux.
// It is immutable after creation via LoadConfig().
type Config struct {
	// Driver selects the session multiplexer: "dtach" (default) or "tmux"
	Driver string `yaml:"driver"`

	// AllUsers makes queue queries cover every user's jobs
	AllUsers bool `yaml:"all_users"`

	// User whose jobs are listed. Default: the invoking user.
	User string `yaml:"user,omitempty"`

	// Commands overrides the external binaries smux shells out to
	Commands CommandsConfig `yaml:"commands"`

	// Dtach contains dtach driver settings
	Dtach DtachConfig `yaml:"dtach"`

	// Session holds the default resource request for new sessions
	Session slurm.SubmitOptions `yaml:"session"`

	// Wait controls the polling performed after submission
	Wait WaitConfig `yaml:"wait"`

	// Verbose logs every scheduler command to stderr
	Verbose bool `yaml:"verbose"`
}

// CommandsConfig names the scheduler and remote login binaries.
type CommandsConfig struct {
	Squeue string `yaml:"squeue"`
	Sbatch string `yaml:"sbatch"`
	SSH    string `yaml:"ssh"`
}

// DtachConfig controls where dtach sockets live.
type DtachConfig struct {
	// SocketDir must be visible from both login and compute nodes.
	// A leading ~ is expanded.
	SocketDir string `yaml:"socket_dir"`
}

// WaitConfig controls how long `smux new` waits for a job to start.
type WaitConfig struct {
	// SubmitDelay is waited once when a fresh submission is not yet queued
	SubmitDelay string `yaml:"submit_delay"`

	// PollInterval is the time between queue checks
	PollInterval string `yaml:"poll_interval"`

	// PollAttempts bounds the number of queue checks
	PollAttempts int `yaml:"poll_attempts"`

	// AttachDelay is waited before handing off to ssh
	AttachDelay string `yaml:"attach_delay"`
}

// Durations parses the wait settings. LoadConfig has already validated
// them, so errors only surface for hand-built configs.
func (w WaitConfig) Durations() (submit, poll, attach time.Duration, err error) {
	if submit, err = time.ParseDuration(w.SubmitDelay); err != nil {
		return 0, 0, 0, fmt.Errorf("submit_delay: %w", err)
	}
	if poll, err = time.ParseDuration(w.PollInterval); err != nil {
		return 0, 0, 0, fmt.Errorf("poll_interval: %w", err)
	}
	if attach, err = time.ParseDuration(w.AttachDelay); err != nil {
		return 0, 0, 0, fmt.Errorf("attach_delay: %w", err)
	}
	return submit, poll, attach, nil
}

// DriverKind returns the configured driver.
func (c *Config) DriverKind() (driver.Kind, error) {
	return driver.ParseKind(c.Driver)
}

// ClientConfig returns the scheduler client settings.
func (c *Config) ClientConfig() slurm.ClientConfig {
	return slurm.ClientConfig{
		User:          c.User,
		AllUsers:      c.AllUsers,
		SqueueCommand: c.Commands.Squeue,
		SbatchCommand: c.Commands.Sbatch,
	}
}

// DefaultPath returns ~/.smux/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".smux", "config.yaml"), nil
}

// LoadConfig loads configuration from path, or from DefaultPath when path
// is empty. It applies defaults, then file values, then environment
// overrides, then validates.
//
// A missing file is not an error unless path was given explicitly.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		case os.IsNotExist(err) && !explicit:
			// Use defaults
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	cfg.Dtach.SocketDir = driver.ExpandHome(cfg.Dtach.SocketDir)

	if cfg.User == "" {
		cfg.User = currentUser()
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
