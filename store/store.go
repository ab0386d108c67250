// Package store keeps the pipeline's durable state as JSON and Markdown
// documents under a single root directory. Every write replaces a whole file
// atomically; callers serialise writers with Lock.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"autoblog/config"
)

// Store reads and writes the state documents under Root.
type Store struct {
	Root string
}

// New returns a store rooted at root.
func New(root string) *Store {
	return &Store{Root: root}
}

// Path resolves a slash-separated path relative to the root.
func (s *Store) Path(rel string) string {
	return filepath.Join(s.Root, filepath.FromSlash(rel))
}

// PostsDir is where articles live.
func (s *Store) PostsDir() string { return s.Path(config.PostsDir) }

// QueueDir is where queue items live.
func (s *Store) QueueDir() string { return s.Path(config.QueueDir) }

// ReflectionsDir is where reflection records live.
func (s *Store) ReflectionsDir() string { return s.Path(config.ReflectionsDir) }

// LogDir is where dated run logs live.
func (s *Store) LogDir() string { return s.Path(config.LogDir) }

func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// readJSON decodes path into v. Missing files and bad JSON both come back
// as *StateParseError; errors.Is(err, fs.ErrNotExist) tells them apart.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &StateParseError{Path: path, Cause: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &StateParseError{Path: path, Cause: err}
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := encodeJSON(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", filepath.Base(path), err)
	}
	return writeAtomic(path, data)
}

// writeAtomic replaces path with data via a temp file and rename.
func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("store: mkdir %s: %w", filepath.Dir(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("store: write tmp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("store: rename: %w", err)
	}
	return nil
}

// createExclusive writes data to dir/<base><ext>, or to <base>-2<ext>,
// <base>-3<ext>... when the name is taken. Existing files are never
// replaced. It returns the file name used.
func createExclusive(dir, base, ext string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("store: mkdir %s: %w", dir, err)
	}
	tmp := filepath.Join(dir, "."+base+ext+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("store: write tmp: %w", err)
	}
	defer os.Remove(tmp)

	for n := 1; ; n++ {
		name := base + ext
		if n > 1 {
			name = base + "-" + strconv.Itoa(n) + ext
		}
		err := os.Link(tmp, filepath.Join(dir, name))
		if err == nil {
			return name, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("store: create %s: %w", name, err)
		}
	}
}

// listNames returns the sorted names in dir with the given suffix. A missing
// directory is empty.
func listNames(dir, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: list %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, suffix) {
			continue
		}
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		return nameBefore(names[i], names[j], suffix)
	})
	return names, nil
}

// nameBefore orders names by creation: a collision copy <base>-N sorts
// right after <base> and its lower-numbered copies.
func nameBefore(a, b, suffix string) bool {
	baseA, nA := splitCopy(strings.TrimSuffix(a, suffix))
	baseB, nB := splitCopy(strings.TrimSuffix(b, suffix))
	if baseA != baseB {
		return baseA < baseB
	}
	return nA < nB
}

// splitCopy splits a createExclusive copy number off stem; a plain stem is
// copy 1.
func splitCopy(stem string) (string, int) {
	i := strings.LastIndexByte(stem, '-')
	if i < 0 || i == len(stem)-1 || stem[i+1] == '0' {
		return stem, 1
	}
	n, err := strconv.Atoi(stem[i+1:])
	if err != nil || n < 2 {
		return stem, 1
	}
	return stem[:i], n
}
