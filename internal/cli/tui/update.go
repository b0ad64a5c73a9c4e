package tui

import tea "github.com/charmbracelet/bubbletea"

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.Quitting = true
			return m, tea.Quit

		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}

		case "down", "j":
			if m.Cursor < len(m.Jobs)-1 {
				m.Cursor++
			}

		case "enter":
			job, ok := m.Selected()
			if !ok {
				return m, nil
			}
			if !job.State.Running() {
				// Pending sessions cannot be attached to yet
				return m, nil
			}
			m.Chosen = &job
			return m, tea.Quit

		case "r":
			return m, m.refreshCmd()
		}

	case JobsMsg:
		m.Err = msg.Err
		if msg.Err == nil {
			m.Jobs = msg.Jobs
			if m.Cursor >= len(m.Jobs) {
				m.Cursor = max(len(m.Jobs)-1, 0)
			}
		}
	}

	return m, nil
}
