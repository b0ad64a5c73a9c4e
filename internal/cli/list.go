package cli

import (
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command
func NewListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "list-sessions"},
		Short:   "List your sessions",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := a.client()
			jobs, err := client.ListJobs(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			renderJobList(out, jobs, DisplayConfig{
				UseColor:    isTerminal(out),
				ProgramName: programName(),
				AllUsers:    client.AllUsers(),
			})
			return nil
		},
	}
}
