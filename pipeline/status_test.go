package pipeline

import (
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoblog/config"
)

func TestStatusKeepsLastLogLines(t *testing.T) {
	s := NewStatus()
	for i := 0; i < config.StatusLogLines+10; i++ {
		s.AddLog(fmt.Sprintf("line %d", i))
	}
	logs := s.Snapshot().Logs
	require.Len(t, logs, config.StatusLogLines)
	assert.Equal(t, "line 10", logs[0].Message)
	assert.Equal(t, fmt.Sprintf("line %d", config.StatusLogLines+9), logs[len(logs)-1].Message)
}

func TestStatusAsLogHook(t *testing.T) {
	s := NewStatus()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.AddHook(s)

	logger.WithField("step", "reflect").WithError(errors.New("quota")).Error("Step failed")
	logger.Debug("not kept")

	logs := s.Snapshot().Logs
	require.Len(t, logs, 1)
	assert.Equal(t, "[reflect] Step failed: quota", logs[0].Message)
}

func TestStatusLifecycle(t *testing.T) {
	s := NewStatus()
	assert.Equal(t, StateIdle, s.Snapshot().State)

	at := time.Date(2026, 2, 10, 6, 0, 0, 0, time.UTC)
	require.True(t, s.Begin("run-1", at))
	assert.False(t, s.Begin("run-2", at))
	s.StartStep("build-site")
	assert.Equal(t, "build-site", s.Snapshot().CurrentStep)
	s.FinishStep(StepResult{Name: "build-site", Status: "succeeded"})
	s.Finish(at.Add(time.Minute), nil)

	snap := s.Snapshot()
	assert.Equal(t, StateComplete, snap.State)
	assert.Equal(t, "run-1", snap.RunID)
	assert.Empty(t, snap.CurrentStep)
	require.NotNil(t, snap.FinishedAt)
	assert.True(t, s.Begin("run-2", at))
	assert.Empty(t, s.Snapshot().Steps)
}
