package pipeline

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"autoblog/config"
)

// State represents the pipeline run state
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StateComplete State = "complete"
	StateError    State = "error"
)

// LogEntry represents a single log line with timestamp
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// StepResult is the outcome of one step in a run.
type StepResult struct {
	Name      string        `json:"name"`
	Status    string        `json:"status"`
	Error     string        `json:"error,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration_ns"`
}

// StatusResponse is the JSON response for GET /api/status
type StatusResponse struct {
	State       State        `json:"state"`
	RunID       string       `json:"run_id,omitempty"`
	CurrentStep string       `json:"current_step,omitempty"`
	StartedAt   *time.Time   `json:"started_at,omitempty"`
	FinishedAt  *time.Time   `json:"finished_at,omitempty"`
	Steps       []StepResult `json:"steps"`
	Logs        []LogEntry   `json:"logs"`
	Error       string       `json:"error,omitempty"`
}

// Status holds the state of the current or last run with thread-safe
// access. It is also a logrus hook: attached to a logger it keeps the most
// recent lines for the status API.
type Status struct {
	mu sync.RWMutex

	state       State
	runID       string
	currentStep string
	startedAt   time.Time
	finishedAt  time.Time
	steps       []StepResult

	// Logs (ring buffer)
	logs    []LogEntry
	maxLogs int
	lastErr error
}

// NewStatus creates an idle status tracker
func NewStatus() *Status {
	return &Status{
		state:   StateIdle,
		logs:    make([]LogEntry, 0),
		maxLogs: config.StatusLogLines,
	}
}

// AddLog adds a log entry (thread-safe)
func (s *Status) AddLog(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendLog(time.Now(), message)
}

// must hold lock
func (s *Status) appendLog(at time.Time, message string) {
	s.logs = append(s.logs, LogEntry{Timestamp: at, Message: message})
	if len(s.logs) > s.maxLogs {
		s.logs = s.logs[len(s.logs)-s.maxLogs:]
	}
}

// Levels implements logrus.Hook.
func (s *Status) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel, logrus.WarnLevel, logrus.InfoLevel}
}

// Fire implements logrus.Hook.
func (s *Status) Fire(entry *logrus.Entry) error {
	msg := entry.Message
	if step, ok := entry.Data["step"]; ok {
		msg = fmt.Sprintf("[%v] %s", step, msg)
	}
	if err, ok := entry.Data[logrus.ErrorKey]; ok {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendLog(entry.Time, msg)
	return nil
}

// Begin marks a new run as started. It reports false when a run is
// already in progress.
func (s *Status) Begin(runID string, at time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateRunning {
		return false
	}
	s.state = StateRunning
	s.runID = runID
	s.currentStep = ""
	s.startedAt = at
	s.finishedAt = time.Time{}
	s.steps = nil
	s.lastErr = nil
	return true
}

// StartStep records the step now running.
func (s *Status) StartStep(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentStep = name
}

// FinishStep appends a step result.
func (s *Status) FinishStep(result StepResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentStep = ""
	s.steps = append(s.steps, result)
}

// Finish ends the run; a non-nil err puts the tracker in the error state.
func (s *Status) Finish(at time.Time, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finishedAt = at
	s.currentStep = ""
	if err != nil {
		s.state = StateError
		s.lastErr = err
		s.appendLog(at, fmt.Sprintf("Error: %v", err))
		return
	}
	s.state = StateComplete
}

// Running reports whether a run is in progress.
func (s *Status) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == StateRunning
}

// Snapshot returns a copy of the current state (thread-safe)
func (s *Status) Snapshot() StatusResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resp := StatusResponse{
		State:       s.state,
		RunID:       s.runID,
		CurrentStep: s.currentStep,
		Steps:       append([]StepResult{}, s.steps...),
		Logs:        append([]LogEntry{}, s.logs...),
	}
	if !s.startedAt.IsZero() {
		t := s.startedAt
		resp.StartedAt = &t
	}
	if !s.finishedAt.IsZero() {
		t := s.finishedAt
		resp.FinishedAt = &t
	}
	if s.lastErr != nil {
		resp.Error = s.lastErr.Error()
	}
	return resp
}
