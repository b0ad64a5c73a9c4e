package tui

import "github.com/charmbracelet/lipgloss"

// Styles contains all lipgloss styles for the picker
type Styles struct {
	Title lipgloss.Style

	// Job lines
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Running  lipgloss.Style
	Pending  lipgloss.Style
	State    lipgloss.Style
	Empty    lipgloss.Style
	Error    lipgloss.Style

	// Footer styling
	Footer    lipgloss.Style
	FooterKey lipgloss.Style
}

// DefaultStyles returns the default picker styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),

		Cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Selected: lipgloss.NewStyle().Bold(true),
		Running:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Pending:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		State:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),

		Footer:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")).MarginTop(1),
		FooterKey: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	}
}

// Icons used in the picker
const (
	IconCursor  = "›"
	IconRunning = "●"
	IconPending = "○"
)
