package site

import (
	"context"
	"os/exec"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLogsCommandOutput(t *testing.T) {
	if _, err := exec.LookPath("echo"); err != nil {
		t.Skip("echo not available")
	}
	logger, hook := test.NewNullLogger()

	b := NewBuilder("echo built ok", t.TempDir(), logger)
	require.NoError(t, b.Build(context.Background()))

	var lines []string
	for _, e := range hook.AllEntries() {
		lines = append(lines, e.Message)
	}
	assert.Contains(t, lines, "   built ok")
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
}

func TestBuildFailures(t *testing.T) {
	logger, _ := test.NewNullLogger()

	err := NewBuilder("  ", t.TempDir(), logger).Build(context.Background())
	assert.ErrorIs(t, err, ErrNoBuildCommand)

	err = NewBuilder("autoblog-no-such-binary --flag", t.TempDir(), logger).Build(context.Background())
	assert.Error(t, err)
}
