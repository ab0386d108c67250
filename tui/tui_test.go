package tui

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoblog/events"
	"autoblog/pipeline"
)

func statusServer(t *testing.T, status pipeline.StatusResponse, startCode int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/status":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(status)
		case r.Method == http.MethodPost && r.URL.Path == "/api/start":
			w.WriteHeader(startCode)
			_, _ = w.Write([]byte(`{"error":"pipeline is already running"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPollUpdatesModel(t *testing.T) {
	srv := statusServer(t, pipeline.StatusResponse{
		State:       pipeline.StateRunning,
		RunID:       "run-1",
		CurrentStep: "dispatch-x",
		Steps: []pipeline.StepResult{
			{Name: "generate-article", Status: events.StatusSucceeded, Duration: 2 * time.Second},
		},
		Logs: []pipeline.LogEntry{{Timestamp: time.Now(), Message: "[generate-article] Article saved"}},
	}, http.StatusAccepted)

	m := NewModel(srv.URL)
	msg := pollStatus(m.Client)()
	updated, _ := m.Update(msg)
	got := updated.(Model)

	require.True(t, got.Connected)
	assert.Equal(t, pipeline.StateRunning, got.Status.State)

	view := got.View()
	assert.Contains(t, view, "Running: dispatch-x")
	assert.Contains(t, view, "generate-article")
	assert.Contains(t, view, "Article saved")
	assert.Contains(t, view, footerRunning)
}

func TestPollErrorMarksDisconnected(t *testing.T) {
	m := NewModel("http://127.0.0.1:1")
	m.Connected = true

	updated, _ := m.Update(StatusUpdateMsg{Err: errors.New("connection refused")})
	got := updated.(Model)

	assert.False(t, got.Connected)
	assert.Contains(t, got.View(), "Not connected")
}

func TestStartKeyOnlyWhenIdle(t *testing.T) {
	m := NewModel("http://example.invalid")
	m.Connected = true
	m.Status.State = pipeline.StateRunning

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	assert.Nil(t, cmd)

	m.Status.State = pipeline.StateComplete
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	assert.NotNil(t, cmd)
	assert.Equal(t, "Starting pipeline...", updated.(Model).Notice)
}

func TestStartConflictIsReported(t *testing.T) {
	srv := statusServer(t, pipeline.StatusResponse{State: pipeline.StateRunning}, http.StatusConflict)
	m := NewModel(srv.URL)

	msg := triggerRun(m.Client)()
	updated, _ := m.Update(msg)

	assert.Contains(t, updated.(Model).Notice, "409")
}

func TestQuitKey(t *testing.T) {
	m := NewModel("http://example.invalid")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
