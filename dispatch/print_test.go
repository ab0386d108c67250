package dispatch

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"autoblog/store"
	"autoblog/types"
)

func TestPrintQueue(t *testing.T) {
	var buf bytes.Buffer
	PrintQueue(&buf, nil, types.PlatformX)
	assert.Contains(t, buf.String(), "Queue is empty")

	raw := types.Unstructured("not json")
	item := listItem(time.Now(), 2)
	item.SetMarker(types.PlatformX, types.PendingAt(1))
	entries := []store.QueueEntry{
		{Name: "a.json", Item: item},
		{Name: "b.json", Item: types.NewQueueItem(types.ItemArticleShare, time.Now(), types.QueueContent{X: &raw}, types.PlatformX)},
		{Name: "c.json", Err: assert.AnError},
	}
	buf.Reset()
	PrintQueue(&buf, entries, types.PlatformX)
	out := buf.String()
	assert.Contains(t, out, "pending@1")
	assert.Contains(t, out, "#AI")
	assert.Contains(t, out, "(unparsed) not json")
	assert.Contains(t, out, "unreadable")
}
