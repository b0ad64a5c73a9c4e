package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/RevCBH/smux/internal/slurm"
)

// DisplayConfig controls list output formatting
type DisplayConfig struct {
	UseColor    bool   // Style headings with lipgloss
	ProgramName string // Used in the guidance footer
	AllUsers    bool   // Headings talk about the whole queue
}

// StatusSymbol marks a job's state in listings
type StatusSymbol string

const (
	SymbolRunning StatusSymbol = "●"
	SymbolWaiting StatusSymbol = "○"
)

// SymbolFor returns the symbol for a job state
func SymbolFor(state slurm.State) StatusSymbol {
	if state.Running() {
		return SymbolRunning
	}
	return SymbolWaiting
}

var headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

// isTerminal reports whether w is attached to a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// splitJobs separates running jobs from everything else, keeping queue order
func splitJobs(jobs []slurm.Job) (running, waiting []slurm.Job) {
	for _, j := range jobs {
		if j.State.Running() {
			running = append(running, j)
		} else {
			waiting = append(waiting, j)
		}
	}
	return running, waiting
}

// renderJobList writes the running and not yet started sections followed
// by a short reminder of the other commands.
func renderJobList(w io.Writer, jobs []slurm.Job, cfg DisplayConfig) {
	heading := func(s string) string {
		if cfg.UseColor {
			return headingStyle.Render(s)
		}
		return s
	}

	owner := "You have"
	if cfg.AllUsers {
		owner = "The queue has"
	}

	running, waiting := splitJobs(jobs)

	fmt.Fprintln(w)
	fmt.Fprintln(w, heading(owner+" the following running jobs:"))
	renderJobTable(w, running)
	fmt.Fprintln(w)
	fmt.Fprintln(w, heading(owner+" the following not yet started jobs:"))
	renderJobTable(w, waiting)
	fmt.Fprintln(w)

	prog := cfg.ProgramName
	fmt.Fprintf(w, "Use the command %[1]s attach <jobid> or %[1]s attach <jobname> to connect\n", prog)
	fmt.Fprintf(w, "Or use the command %s new to start a new interactive session\n", prog)
	fmt.Fprintf(w, "Or use the command %s why-are-we-waiting <jobid> to find out why a session hasn't started yet\n", prog)
}

// renderJobTable renders jobs in tabular format using tabwriter.
// Columns: ID, Name, State
func renderJobTable(out io.Writer, jobs []slurm.Job) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "JOB ID\tJOB NAME\tSTATE")
	for _, j := range jobs {
		fmt.Fprintf(w, "%s\t%s\t%s %s\n", j.ID, j.Name, SymbolFor(j.State), j.State)
	}
}
