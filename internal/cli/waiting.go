package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// NewWaitingCmd creates the why-are-we-waiting command
func NewWaitingCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "why-are-we-waiting <jobid|jobname>",
		Short: "Explain why a session hasn't started yet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID, err := a.client().ResolveIdentifier(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			log.Printf("why-are-we-waiting: resolved %q to job %s", args[0], jobID)

			fmt.Fprintln(cmd.OutOrStdout(), "Sorry, I haven't written this function yet")
			return nil
		},
	}
}
