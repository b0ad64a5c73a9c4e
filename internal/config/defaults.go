package config

import (
	"github.com/RevCBH/smux/internal/driver"
	"github.com/RevCBH/smux/internal/slurm"
)

const (
	DefaultDriver       = string(driver.DefaultKind)
	DefaultSqueue       = slurm.DefaultSqueueCommand
	DefaultSbatch       = slurm.DefaultSbatchCommand
	DefaultSSH          = "ssh"
	DefaultSocketDir    = driver.DefaultSocketDir
	DefaultNTasks       = 1
	DefaultJobName      = "interactive_session"
	DefaultOutput       = "smux-%j.out"
	DefaultError        = "smux-%j.err"
	DefaultSubmitDelay  = "1s"
	DefaultPollInterval = "2s"
	DefaultPollAttempts = 10
	DefaultAttachDelay  = "1s"
)

// DefaultSessionOptions returns the resource request used by `smux new`
// when neither the config file nor flags say otherwise.
func DefaultSessionOptions() slurm.SubmitOptions {
	return slurm.SubmitOptions{
		NTasks:  DefaultNTasks,
		JobName: DefaultJobName,
		Output:  DefaultOutput,
		Error:   DefaultError,
	}
}

// DefaultConfig returns a Config with all default values applied.
func DefaultConfig() *Config {
	return &Config{
		Driver: DefaultDriver,
		Commands: CommandsConfig{
			Squeue: DefaultSqueue,
			Sbatch: DefaultSbatch,
			SSH:    DefaultSSH,
		},
		Dtach: DtachConfig{
			SocketDir: DefaultSocketDir,
		},
		Session: DefaultSessionOptions(),
		Wait: WaitConfig{
			SubmitDelay:  DefaultSubmitDelay,
			PollInterval: DefaultPollInterval,
			PollAttempts: DefaultPollAttempts,
			AttachDelay:  DefaultAttachDelay,
		},
	}
}
