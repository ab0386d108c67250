package tui

import (
	"fmt"
	"strings"
	"time"

	"autoblog/events"
	"autoblog/pipeline"
)

const (
	footerIdle    = "Press 's' to start a run | 'r' to refresh | 'q' to quit"
	footerRunning = "Press 'q' to quit (the run continues on the server)"
)

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("autoblog monitor"))
	b.WriteString("\n")
	b.WriteString(m.stateText())
	b.WriteString("\n")
	if m.Status.RunID != "" {
		b.WriteString(InfoStyle.Render("run " + m.Status.RunID))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.Status.Steps) > 0 {
		b.WriteString(BoxStyle.Render(renderSteps(m.Status.Steps)))
		b.WriteString("\n\n")
	}

	if len(m.Status.Logs) > 0 {
		b.WriteString(InfoStyle.Render("Recent activity:"))
		b.WriteString("\n")
		for _, entry := range m.Status.Logs {
			line := fmt.Sprintf("   %s %s", entry.Timestamp.Local().Format("15:04:05"), entry.Message)
			b.WriteString(InfoStyle.Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.Notice != "" {
		b.WriteString(WarnStyle.Render(m.Notice))
		b.WriteString("\n")
	}

	if m.Status.State == pipeline.StateRunning {
		b.WriteString(InfoStyle.Render(footerRunning))
	} else {
		b.WriteString(InfoStyle.Render(footerIdle))
	}
	return b.String()
}

func renderSteps(steps []pipeline.StepResult) string {
	lines := make([]string, 0, len(steps))
	for _, s := range steps {
		var status string
		switch s.Status {
		case events.StatusSucceeded:
			status = StatusStyle.Render(s.Status)
		case events.StatusFailed:
			status = ErrorStyle.Render(s.Status)
		default:
			status = WarnStyle.Render(s.Status)
		}
		line := fmt.Sprintf("%-24s %s %s", s.Name, status, InfoStyle.Render(s.Duration.Round(time.Millisecond).String()))
		if s.Error != "" {
			line += "\n    " + ErrorStyle.Render(s.Error)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
