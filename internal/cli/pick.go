package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/RevCBH/smux/internal/cli/tui"
	"github.com/RevCBH/smux/internal/session"
	"github.com/RevCBH/smux/internal/slurm"
)

// errNoTerminal is returned when pick is run without an interactive terminal
var errNoTerminal = errors.New("pick needs an interactive terminal, use attach <jobid> instead")

// NewPickCmd creates the pick command, an interactive chooser over
// running sessions
func NewPickCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Choose a running session interactively and connect to it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := a.client()
			refresh := func() ([]slurm.Job, error) {
				jobs, err := client.ListJobs(cmd.Context())
				if err != nil {
					return nil, err
				}
				running, _ := splitJobs(jobs)
				return running, nil
			}

			jobs, err := refresh()
			if err != nil {
				return err
			}
			if len(jobs) == 0 {
				return &session.AmbiguousOrNotRunningError{Jobs: 0}
			}

			in, out := cmd.InOrStdin(), cmd.OutOrStdout()
			if !isTerminal(out) || !isTerminalReader(in) {
				return errNoTerminal
			}

			model := tui.NewModel(jobs, refresh)
			model.Title = fmt.Sprintf("%s sessions", programName())

			final, err := tea.NewProgram(model, tea.WithInput(in), tea.WithOutput(out)).Run()
			if err != nil {
				return fmt.Errorf("session picker: %w", err)
			}

			chosen := final.(*tui.Model).Chosen
			if chosen == nil {
				return nil
			}

			orch, err := a.orchestrator(cmd)
			if err != nil {
				return err
			}
			return orch.AttachJob(cmd.Context(), *chosen)
		},
	}
}

// isTerminalReader reports whether r is a terminal
func isTerminalReader(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && isTerminal(f)
}
