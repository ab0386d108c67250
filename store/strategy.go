package store

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"

	"autoblog/config"
	"autoblog/types"
)

// LoadStrategy reads the current strategy, or nil when there is none.
func (s *Store) LoadStrategy() (*types.Strategy, error) {
	var st types.Strategy
	if err := readJSON(s.Path(config.StrategyFile), &st); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return &st, nil
}

// SaveStrategy replaces the current strategy wholesale.
func (s *Store) SaveStrategy(st *types.Strategy) error {
	return writeJSON(s.Path(config.StrategyFile), st)
}

// SaveReflection writes the record for rec.Date, replacing any earlier
// record for the same date.
func (s *Store) SaveReflection(rec *types.ReflectionRecord) error {
	return writeJSON(filepath.Join(s.ReflectionsDir(), rec.Date+".json"), rec)
}

// LoadReflections returns up to n records, newest first. Unreadable records
// are skipped and reported through the returned error slice.
func (s *Store) LoadReflections(n int) ([]types.ReflectionRecord, []error) {
	names, err := listNames(s.ReflectionsDir(), ".json")
	if err != nil {
		return nil, []error{err}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	var (
		out  []types.ReflectionRecord
		errs []error
	)
	for _, name := range names {
		if len(out) >= n {
			break
		}
		var rec types.ReflectionRecord
		if err := readJSON(filepath.Join(s.ReflectionsDir(), name), &rec); err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, rec)
	}
	return out, errs
}
