// Package events announces pipeline progress to other systems.
package events

import (
	"context"
	"time"
)

// Step statuses
const (
	StatusStarted   = "started"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
)

// RunStep is the step name used for events about the run as a whole.
const RunStep = "run"

// StepEvent reports one transition of a pipeline step.
type StepEvent struct {
	RunID      string    `json:"run_id"`
	Step       string    `json:"step"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	DurationMs int64     `json:"duration_ms,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Publisher delivers step events. Publishing is best effort: callers log
// failures and carry on.
type Publisher interface {
	Publish(ctx context.Context, event StepEvent) error
	Close() error
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, event StepEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
