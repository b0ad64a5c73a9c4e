package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/RevCBH/smux/internal/slurm"
)

// RefreshFunc re-queries the scheduler for sessions to offer.
type RefreshFunc func() ([]slurm.Job, error)

// Model is the bubbletea model for the session picker
type Model struct {
	// Configuration
	Title   string
	Styles  Styles
	refresh RefreshFunc

	// State
	Jobs   []slurm.Job
	Cursor int
	Err    error

	// Control
	Chosen   *slurm.Job
	Quitting bool
}

// NewModel creates a picker over jobs. refresh may be nil, in which case
// the r key does nothing.
func NewModel(jobs []slurm.Job, refresh RefreshFunc) *Model {
	return &Model{
		Title:   "smux sessions",
		Styles:  DefaultStyles(),
		refresh: refresh,
		Jobs:    jobs,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// JobsMsg carries a refreshed job list
type JobsMsg struct {
	Jobs []slurm.Job
	Err  error
}

// refreshCmd queries the scheduler off the UI goroutine
func (m *Model) refreshCmd() tea.Cmd {
	if m.refresh == nil {
		return nil
	}
	refresh := m.refresh
	return func() tea.Msg {
		jobs, err := refresh()
		return JobsMsg{Jobs: jobs, Err: err}
	}
}

// Selected returns the job under the cursor.
func (m *Model) Selected() (slurm.Job, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Jobs) {
		return slurm.Job{}, false
	}
	return m.Jobs[m.Cursor], true
}
