package store

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"autoblog/config"
	"autoblog/types"
)

// LoadStats reads the stats document. A missing file is zero stats; a
// corrupt one is zero stats plus a *StateParseError.
func (s *Store) LoadStats() (*types.Stats, error) {
	var stats types.Stats
	err := readJSON(s.Path(config.StatsFile), &stats)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = nil
		}
		stats = types.Stats{}
	}
	if stats.History == nil {
		stats.History = []types.DayStats{}
	}
	return &stats, err
}

// RecordStats adds one event of kind to the totals and to now's day bucket.
// A corrupt stats file is set aside as stats.json.corrupt and counting
// restarts from zero.
func (s *Store) RecordStats(kind types.StatKind, now time.Time) error {
	path := s.Path(config.StatsFile)
	stats, err := s.LoadStats()
	if err != nil {
		if renameErr := os.Rename(path, path+".corrupt"); renameErr != nil {
			return renameErr
		}
	}
	stats.Record(kind, now.Format("2006-01-02"))
	return writeJSON(path, stats)
}
