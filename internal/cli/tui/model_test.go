package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RevCBH/smux/internal/slurm"
)

var testJobs = []slurm.Job{
	{ID: "101", Name: "interactive_session", State: slurm.StateRunning},
	{ID: "102", Name: "queued", State: slurm.StatePending},
	{ID: "103", Name: "gpu_dev", State: slurm.StateRunning},
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_Navigation(t *testing.T) {
	m := NewModel(testJobs, nil)

	m.Update(key("down"))
	m.Update(key("j"))
	assert.Equal(t, 2, m.Cursor)

	// Clamped at the bottom
	m.Update(key("down"))
	assert.Equal(t, 2, m.Cursor)

	m.Update(key("up"))
	m.Update(key("k"))
	m.Update(key("k"))
	assert.Equal(t, 0, m.Cursor)
}

func TestModel_EnterChoosesRunningJob(t *testing.T) {
	m := NewModel(testJobs, nil)
	m.Update(key("down"))
	m.Update(key("down"))

	_, cmd := m.Update(key("enter"))
	require.NotNil(t, m.Chosen)
	assert.Equal(t, "103", m.Chosen.ID)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_EnterIgnoresPendingJob(t *testing.T) {
	m := NewModel(testJobs, nil)
	m.Update(key("down"))

	_, cmd := m.Update(key("enter"))
	assert.Nil(t, m.Chosen)
	assert.Nil(t, cmd)
}

func TestModel_Quit(t *testing.T) {
	for _, k := range []string{"q", "esc"} {
		m := NewModel(testJobs, nil)
		_, cmd := m.Update(key(k))
		assert.True(t, m.Quitting, "key %s should quit", k)
		assert.Nil(t, m.Chosen)
		require.NotNil(t, cmd)
		assert.Empty(t, m.View())
	}
}

func TestModel_Refresh(t *testing.T) {
	calls := 0
	m := NewModel(testJobs, func() ([]slurm.Job, error) {
		calls++
		return testJobs[:1], nil
	})
	m.Cursor = 2

	_, cmd := m.Update(key("r"))
	require.NotNil(t, cmd)
	msg := cmd()
	m.Update(msg)

	assert.Equal(t, 1, calls)
	assert.Len(t, m.Jobs, 1)
	assert.Equal(t, 0, m.Cursor, "cursor clamped to shorter list")
}

func TestModel_RefreshError(t *testing.T) {
	m := NewModel(testJobs, nil)
	m.Update(JobsMsg{Err: errors.New("squeue timed out")})

	assert.Len(t, m.Jobs, 3, "jobs kept on failure")
	assert.Contains(t, m.View(), "squeue timed out")
}

func TestModel_RefreshWithoutFunc(t *testing.T) {
	m := NewModel(testJobs, nil)
	_, cmd := m.Update(key("r"))
	assert.Nil(t, cmd)
}

func TestModel_View(t *testing.T) {
	m := NewModel(testJobs, nil)
	view := m.View()

	for _, job := range testJobs {
		assert.Contains(t, view, job.ID)
		assert.Contains(t, view, job.Name)
	}
	assert.Contains(t, view, "attach")
	assert.Contains(t, view, "quit")
}

func TestModel_ViewEmpty(t *testing.T) {
	m := NewModel(nil, nil)
	assert.True(t, strings.Contains(m.View(), "No sessions"))
	_, ok := m.Selected()
	assert.False(t, ok)
}
