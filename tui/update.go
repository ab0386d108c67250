package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"autoblog/pipeline"
)

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case TickMsg:
		return m, tea.Batch(pollStatus(m.Client), tickCmd())
	case StatusUpdateMsg:
		return m.handleStatus(msg), nil
	case StartRunMsg:
		if msg.Err != nil {
			m.Notice = "Start rejected: " + msg.Err.Error()
		} else {
			m.Notice = "Pipeline started"
		}
		return m, pollStatus(m.Client)
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "s", "S":
		if m.Connected && m.Status.State != pipeline.StateRunning {
			m.Notice = "Starting pipeline..."
			return m, triggerRun(m.Client)
		}
	case "r":
		return m, pollStatus(m.Client)
	}
	return m, nil
}

func (m Model) handleStatus(msg StatusUpdateMsg) Model {
	if msg.Err != nil {
		m.Connected = false
		m.Err = msg.Err
		return m
	}
	m.Connected = true
	m.Err = nil
	if msg.Status != nil {
		m.Status = *msg.Status
	}
	return m
}
