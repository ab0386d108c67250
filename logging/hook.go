package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DailyFileHook appends each entry to <dir>/YYYY-MM-DD.log, rolling over to
// a new file when the date changes.
type DailyFileHook struct {
	dir       string
	now       func() time.Time
	formatter logrus.Formatter

	mu sync.Mutex
}

// NewDailyFileHook creates a hook writing under dir.
func NewDailyFileHook(dir string) *DailyFileHook {
	return &DailyFileHook{
		dir: dir,
		now: time.Now,
		formatter: &logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		},
	}
}

// Levels implements logrus.Hook.
func (h *DailyFileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook. Write failures are reported on stderr only;
// a broken log directory must not fail the step being logged.
func (h *DailyFileHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "run log: %v\n", err)
		return nil
	}
	f, err := os.OpenFile(h.Path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "run log: %v\n", err)
		return nil
	}
	defer f.Close()
	_, _ = f.Write(line)
	return nil
}

// Path returns today's log file.
func (h *DailyFileHook) Path() string {
	return filepath.Join(h.dir, h.now().Format("2006-01-02")+".log")
}
