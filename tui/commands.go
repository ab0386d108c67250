package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const pollInterval = time.Second

func pollStatus(client *StatusClient) tea.Cmd {
	return func() tea.Msg {
		status, err := client.GetStatus(context.Background())
		return StatusUpdateMsg{Status: status, Err: err}
	}
}

func triggerRun(client *StatusClient) tea.Cmd {
	return func() tea.Msg {
		return StartRunMsg{Err: client.Start(context.Background())}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
