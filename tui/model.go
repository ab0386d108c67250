// Package tui is a terminal monitor for the autoblog status server.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"autoblog/pipeline"
)

// Model is the monitor state, synced from the status server on every poll
type Model struct {
	Client *StatusClient

	Status    pipeline.StatusResponse
	Connected bool
	Err       error
	// Notice is the outcome of the last start request
	Notice string
}

// NewModel creates a monitor for the server at baseURL
func NewModel(baseURL string) Model {
	return Model{
		Client: NewStatusClient(baseURL),
		Status: pipeline.StatusResponse{State: pipeline.StateIdle},
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(pollStatus(m.Client), tickCmd())
}

func (m Model) stateText() string {
	if !m.Connected {
		msg := "Not connected to status server"
		if m.Err != nil {
			msg += ": " + m.Err.Error()
		}
		return ErrorStyle.Render(msg)
	}

	switch m.Status.State {
	case pipeline.StateIdle:
		return HighlightStyle.Render("Idle") + "  " + InfoStyle.Render("no run since the server started")
	case pipeline.StateRunning:
		step := m.Status.CurrentStep
		if step == "" {
			step = "starting"
		}
		return StatusStyle.Render(fmt.Sprintf("Running: %s", step))
	case pipeline.StateComplete:
		return HighlightStyle.Render("Complete")
	case pipeline.StateError:
		return ErrorStyle.Render("Failed: " + m.Status.Error)
	default:
		return string(m.Status.State)
	}
}
