package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

// NewAttachCmd creates the attach command for reconnecting to a session
func NewAttachCmd(a *App) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:     "attach [jobid|jobname]",
		Aliases: []string{"a", "attach-session"},
		Short:   "Connect to an existing session",
		Long: `Connect to the session running inside a job.

The job may be given by ID or name. It can be left out when you only have
one job in the queue.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if target != "" && target != args[0] {
					return errors.New("give the job either as an argument or with --target, not both")
				}
				target = args[0]
			}

			orch, err := a.orchestrator(cmd)
			if err != nil {
				return err
			}
			return orch.Connect(cmd.Context(), target)
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", "Job ID or job name to connect to")

	return cmd
}
