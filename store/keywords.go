package store

import (
	"autoblog/config"
	"autoblog/types"
)

// LoadKeywords reads the keyword pool. The pool is required: a missing or
// corrupt file is a *StateParseError.
func (s *Store) LoadKeywords() (*types.KeywordPool, error) {
	var pool types.KeywordPool
	if err := readJSON(s.Path(config.KeywordsFile), &pool); err != nil {
		return nil, err
	}
	if pool.UsedKeywords == nil {
		pool.UsedKeywords = []string{}
	}
	return &pool, nil
}

// SaveKeywords overwrites the keyword pool.
func (s *Store) SaveKeywords(pool *types.KeywordPool) error {
	return writeJSON(s.Path(config.KeywordsFile), pool)
}
