// Package scheduler registers the daily pipeline and the dispatch slots
// with the host's crontab as a single marked block.
package scheduler

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/robfig/cron/v3"

	"autoblog/config"
)

// Block markers delimiting the managed section of the crontab.
const (
	BeginMarker = "# BEGIN autoblog (managed by `autoblog schedule`)"
	EndMarker   = "# END autoblog"
)

// Entry is one scheduled invocation of the binary.
type Entry struct {
	Name     string
	Schedule string
	Args     []string
}

// Entries returns the configured schedule: the daily pipeline, then one
// single-unit, randomly delayed X dispatch per slot.
func Entries(cfg *config.Config) []Entry {
	entries := []Entry{{Name: "daily pipeline", Schedule: cfg.DailySchedule, Args: []string{"pipeline"}}}
	for i, spec := range cfg.DispatchSchedules {
		entries = append(entries, Entry{
			Name:     fmt.Sprintf("x dispatch %d", i+1),
			Schedule: spec,
			Args:     []string{"post-x", "--single", "--delay"},
		})
	}
	return entries
}

// RenderBlock builds the managed block. Every schedule must be a standard
// five-field cron expression.
func RenderBlock(binary, root string, entries []Entry) (string, error) {
	logFile := filepath.Join(root, config.LogDir, "cron.log")

	var b strings.Builder
	b.WriteString(BeginMarker + "\n")
	for _, e := range entries {
		if _, err := cron.ParseStandard(e.Schedule); err != nil {
			return "", fmt.Errorf("scheduler: %s: invalid schedule %q: %w", e.Name, e.Schedule, err)
		}
		args := make([]string, 0, len(e.Args)+1)
		args = append(args, shellQuote(binary))
		for _, a := range e.Args {
			args = append(args, shellQuote(a))
		}
		fmt.Fprintf(&b, "# %s\n", e.Name)
		fmt.Fprintf(&b, "%s cd %s && %s >> %s 2>&1\n", e.Schedule, shellQuote(root), strings.Join(args, " "), shellQuote(logFile))
	}
	b.WriteString(EndMarker + "\n")
	return b.String(), nil
}

// ExtractBlock returns the managed block in crontab, if present.
func ExtractBlock(crontab string) (string, bool) {
	start := strings.Index(crontab, BeginMarker)
	if start < 0 {
		return "", false
	}
	rest := crontab[start:]
	end := strings.Index(rest, EndMarker)
	if end < 0 {
		return rest, true
	}
	return rest[:end+len(EndMarker)] + "\n", true
}

// RemoveBlock returns crontab without the managed block and whether one
// was there. Other lines are kept as they are.
func RemoveBlock(crontab string) (string, bool) {
	lines := strings.Split(crontab, "\n")
	out := make([]string, 0, len(lines))
	inside, found := false, false
	for _, line := range lines {
		switch {
		case strings.TrimSpace(line) == BeginMarker:
			inside, found = true, true
		case inside && strings.TrimSpace(line) == EndMarker:
			inside = false
		case !inside:
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n"), found
}

// ReplaceBlock installs block into crontab, replacing an earlier managed
// block so repeated installs leave exactly one.
func ReplaceBlock(crontab, block string) string {
	rest, _ := RemoveBlock(crontab)
	rest = strings.TrimRight(rest, "\n")
	if rest == "" {
		return block
	}
	return rest + "\n" + block
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
