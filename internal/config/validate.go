package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/RevCBH/smux/internal/driver"
)

// ValidationError contains details about what failed validation.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config.%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// validateConfig checks all config values for validity.
// Returns nil if valid, or joined errors for all validation failures.
func validateConfig(cfg *Config) error {
	var errs []error

	if _, err := driver.ParseKind(cfg.Driver); err != nil {
		errs = append(errs, &ValidationError{
			Field:   "driver",
			Value:   cfg.Driver,
			Message: "must be 'dtach' or 'tmux'",
		})
	}

	commands := []struct {
		field string
		value string
	}{
		{"commands.squeue", cfg.Commands.Squeue},
		{"commands.sbatch", cfg.Commands.Sbatch},
		{"commands.ssh", cfg.Commands.SSH},
	}
	for _, c := range commands {
		if c.value == "" {
			errs = append(errs, &ValidationError{
				Field:   c.field,
				Value:   c.value,
				Message: "must not be empty",
			})
		}
	}

	if cfg.Dtach.SocketDir == "" {
		errs = append(errs, &ValidationError{
			Field:   "dtach.socket_dir",
			Value:   cfg.Dtach.SocketDir,
			Message: "must not be empty",
		})
	}

	errs = append(errs, validateSession(cfg)...)

	durations := []struct {
		field string
		value string
	}{
		{"wait.submit_delay", cfg.Wait.SubmitDelay},
		{"wait.poll_interval", cfg.Wait.PollInterval},
		{"wait.attach_delay", cfg.Wait.AttachDelay},
	}
	for _, d := range durations {
		parsed, err := time.ParseDuration(d.value)
		if err != nil {
			errs = append(errs, &ValidationError{
				Field:   d.field,
				Value:   d.value,
				Message: fmt.Sprintf("invalid duration: %v", err),
			})
			continue
		}
		if parsed < 0 {
			errs = append(errs, &ValidationError{
				Field:   d.field,
				Value:   d.value,
				Message: "must not be negative",
			})
		}
	}

	if cfg.Wait.PollAttempts < 0 {
		errs = append(errs, &ValidationError{
			Field:   "wait.poll_attempts",
			Value:   cfg.Wait.PollAttempts,
			Message: "must not be negative",
		})
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ValidateSession checks a resource request before it is sent to sbatch.
// Flags can change the request after LoadConfig, so the CLI calls this
// again on the final options.
func ValidateSession(cfg *Config) error {
	if errs := validateSession(cfg); len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func validateSession(cfg *Config) []error {
	var errs []error
	s := cfg.Session

	if s.NTasks < 1 {
		errs = append(errs, &ValidationError{
			Field:   "session.ntasks",
			Value:   s.NTasks,
			Message: "must be at least 1",
		})
	}
	if s.Nodes < 0 {
		errs = append(errs, &ValidationError{
			Field:   "session.nodes",
			Value:   s.Nodes,
			Message: "must not be negative",
		})
	}
	if s.CPUsPerTask < 0 {
		errs = append(errs, &ValidationError{
			Field:   "session.cpus_per_task",
			Value:   s.CPUsPerTask,
			Message: "must not be negative",
		})
	}
	if s.JobName == "" {
		errs = append(errs, &ValidationError{
			Field:   "session.job_name",
			Value:   s.JobName,
			Message: "must not be empty",
		})
	}
	if s.Output == "" {
		errs = append(errs, &ValidationError{
			Field:   "session.output",
			Value:   s.Output,
			Message: "must not be empty",
		})
	}
	if s.Error == "" {
		errs = append(errs, &ValidationError{
			Field:   "session.error",
			Value:   s.Error,
			Message: "must not be empty",
		})
	}
	return errs
}
