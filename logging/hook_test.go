package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyFileHookRollsOverByDate(t *testing.T) {
	dir := t.TempDir()
	day := time.Date(2026, 2, 10, 23, 59, 0, 0, time.UTC)

	hook := NewDailyFileHook(dir)
	hook.now = func() time.Time { return day }

	logger := Discard()
	logger.AddHook(hook)

	logger.WithField("step", "generate-article").Info("step started")
	day = day.Add(2 * time.Minute)
	logger.Warn("next day")

	first, err := os.ReadFile(filepath.Join(dir, "2026-02-10.log"))
	require.NoError(t, err)
	assert.Contains(t, string(first), "step started")
	assert.Contains(t, string(first), "step=generate-article")
	assert.NotContains(t, string(first), "next day")

	second, err := os.ReadFile(filepath.Join(dir, "2026-02-11.log"))
	require.NoError(t, err)
	assert.Contains(t, string(second), "level=warning")
}

func TestNewLoggerFormat(t *testing.T) {
	l := NewLogger("json")
	entry := l.WithField("k", "v")
	assert.NotNil(t, entry)
}
