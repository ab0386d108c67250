package tui

import (
	"time"

	"autoblog/pipeline"
)

// StatusUpdateMsg carries the result of one status poll
type StatusUpdateMsg struct {
	Status *pipeline.StatusResponse
	Err    error
}

// TickMsg is sent periodically to trigger polling
type TickMsg struct {
	Time time.Time
}

// StartRunMsg is sent when a start request returns
type StartRunMsg struct {
	Err error
}
