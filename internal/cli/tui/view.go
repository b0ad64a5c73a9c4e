package tui

import (
	"fmt"
	"strings"
)

// View implements tea.Model
func (m *Model) View() string {
	if m.Chosen != nil || m.Quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.Styles.Title.Render(m.Title))
	b.WriteString("\n\n")

	if len(m.Jobs) == 0 {
		b.WriteString(m.Styles.Empty.Render("  No sessions in the queue"))
		b.WriteString("\n")
	}

	for i, job := range m.Jobs {
		b.WriteString(m.renderJob(i == m.Cursor, job.ID, job.Name, job.State.Running(), string(job.State)))
		b.WriteString("\n")
	}

	if m.Err != nil {
		b.WriteString("\n")
		b.WriteString(m.Styles.Error.Render(fmt.Sprintf("refresh failed: %v", m.Err)))
		b.WriteString("\n")
	}

	b.WriteString(m.renderFooter())
	return b.String()
}

// renderJob renders one line of the picker
func (m *Model) renderJob(selected bool, id, name string, running bool, state string) string {
	cursor := "  "
	if selected {
		cursor = m.Styles.Cursor.Render(IconCursor) + " "
	}

	icon := m.Styles.Pending.Render(IconPending)
	if running {
		icon = m.Styles.Running.Render(IconRunning)
	}

	line := fmt.Sprintf("%-10s %s", id, name)
	if selected {
		line = m.Styles.Selected.Render(line)
	}
	return fmt.Sprintf("%s%s %s %s", cursor, icon, line, m.Styles.State.Render(state))
}

// renderFooter renders the key help line
func (m *Model) renderFooter() string {
	keys := []string{
		m.Styles.FooterKey.Render("enter") + " attach",
		m.Styles.FooterKey.Render("r") + " refresh",
		m.Styles.FooterKey.Render("q") + " quit",
	}
	return m.Styles.Footer.Render(strings.Join(keys, "  "))
}
