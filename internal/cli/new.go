package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/RevCBH/smux/internal/config"
	"github.com/RevCBH/smux/internal/slurm"
)

// NewOptions holds the resource flags for the new command. They only
// override the configured defaults when set on the command line.
type NewOptions struct {
	NTasks      int
	Nodes       int
	Mem         string
	CPUsPerTask int
	QoS         string
	JobName     string
	Account     string
	Partition   string
	Reservation string
	Time        string
	Gres        string
	Output      string
	Error       string
}

// NewNewCmd creates the 'new' command for submitting a session job
func NewNewCmd(a *App) *cobra.Command {
	opts := NewOptions{}

	cmd := &cobra.Command{
		Use:     "new",
		Aliases: []string{"n", "new-session"},
		Short:   "Start a new interactive session",
		Long: `Submit a job that runs a detachable terminal session, wait for it to
start and connect to it.

If the job does not start within the wait budget it keeps waiting in the
queue; use list to see when it starts and attach to connect.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			submit := applyNewFlags(cmd, a.cfg.Session, opts)
			return a.runNew(cmd, submit)
		},
	}

	defaults := config.DefaultSessionOptions()
	flags := cmd.Flags()
	flags.IntVar(&opts.NTasks, "ntasks", defaults.NTasks, "The number of tasks you will launch")
	flags.IntVar(&opts.Nodes, "nodes", 0, "The number of nodes you need")
	flags.StringVar(&opts.Mem, "mem", "", "The amount of memory you need")
	flags.IntVar(&opts.CPUsPerTask, "cpuspertask", 0, "The number of cpus needed for each task")
	flags.StringVar(&opts.QoS, "qos", "", "The QoS (Quality of Service) for the job (some are only valid on some partitions)")
	flags.StringVarP(&opts.JobName, "jobname", "J", defaults.JobName, "The name of your job")
	flags.StringVarP(&opts.Account, "account", "A", "", "Specify your account")
	flags.StringVarP(&opts.Partition, "partition", "p", "", "The partition to execute on")
	flags.StringVarP(&opts.Reservation, "reservation", "r", "", "The reservation to use")
	flags.StringVarP(&opts.Time, "time", "t", "", "The amount of time to run for")
	flags.StringVar(&opts.Gres, "gres", "", "The type and number of gpus needed for each task")
	flags.StringVarP(&opts.Output, "output", "o", defaults.Output, "Standard output file name")
	flags.StringVarP(&opts.Error, "error", "e", defaults.Error, "Error output file name")

	return cmd
}

// applyNewFlags layers the flags the user actually set over base
func applyNewFlags(cmd *cobra.Command, base slurm.SubmitOptions, opts NewOptions) slurm.SubmitOptions {
	flags := cmd.Flags()
	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}

	set("ntasks", func() { base.NTasks = opts.NTasks })
	set("nodes", func() { base.Nodes = opts.Nodes })
	set("mem", func() { base.Mem = opts.Mem })
	set("cpuspertask", func() { base.CPUsPerTask = opts.CPUsPerTask })
	set("qos", func() { base.QoS = opts.QoS })
	set("jobname", func() { base.JobName = opts.JobName })
	set("account", func() { base.Account = opts.Account })
	set("partition", func() { base.Partition = opts.Partition })
	set("reservation", func() { base.Reservation = opts.Reservation })
	set("time", func() { base.Time = opts.Time })
	set("gres", func() { base.Gres = opts.Gres })
	set("output", func() { base.Output = opts.Output })
	set("error", func() { base.Error = opts.Error })

	return base
}

// runNew validates the request and runs the submit-wait-attach workflow
func (a *App) runNew(cmd *cobra.Command, submit slurm.SubmitOptions) error {
	check := *a.cfg
	check.Session = submit
	if err := config.ValidateSession(&check); err != nil {
		return err
	}

	orch, err := a.orchestrator(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	out := cmd.OutOrStdout()
	handler := NewSignalHandler(cancel, func(os.Signal) {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Stopped waiting. Your job is still in the queue;")
		fmt.Fprintf(out, "use %s list to check on it and %s attach <jobid> to connect.\n", programName(), programName())
	})
	handler.Start(a.notifySignals)
	defer handler.Stop()

	_, err = orch.NewSession(ctx, submit)
	if ctx.Err() != nil && cmd.Context().Err() == nil {
		// Interrupted by the user; the handler already explained
		return nil
	}
	return err
}
