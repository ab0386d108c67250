package store

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"autoblog/types"
)

// QueueEntry is one queue file. Err is set, and Item nil, when the file
// could not be decoded.
type QueueEntry struct {
	Name string
	Item *types.QueueItem
	Err  error
}

// ListQueue returns every queue file in filename order, which is creation order.
func (s *Store) ListQueue() ([]QueueEntry, error) {
	names, err := listNames(s.QueueDir(), ".json")
	if err != nil {
		return nil, err
	}
	entries := make([]QueueEntry, 0, len(names))
	for _, name := range names {
		var item types.QueueItem
		if err := readJSON(filepath.Join(s.QueueDir(), name), &item); err != nil {
			entries = append(entries, QueueEntry{Name: name, Err: err})
			continue
		}
		entries = append(entries, QueueEntry{Name: name, Item: &item})
	}
	return entries, nil
}

// QueueFileBase names a queue file after its creation time and type, keeping
// lexical order equal to creation order.
func QueueFileBase(createdAt time.Time, kind string) string {
	ts := createdAt.UTC().Format("2006-01-02T15:04:05.000Z")
	ts = strings.NewReplacer(":", "-", ".", "-").Replace(ts)
	return ts + "-" + kind
}

// AppendQueueItem creates a new queue file for item and returns its name.
func (s *Store) AppendQueueItem(item *types.QueueItem) (string, error) {
	data, err := encodeJSON(item)
	if err != nil {
		return "", fmt.Errorf("store: encode queue item: %w", err)
	}
	return createExclusive(s.QueueDir(), QueueFileBase(item.CreatedAt, item.Type), ".json", data)
}

// SaveQueueItem rewrites an existing queue file after a delivery.
func (s *Store) SaveQueueItem(name string, item *types.QueueItem) error {
	return writeJSON(filepath.Join(s.QueueDir(), name), item)
}
