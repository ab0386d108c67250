package trends

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rssTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>%s</title>
<item><title>%s older</title><link>https://example.com/1</link><pubDate>Mon, 09 Feb 2026 09:00:00 +0000</pubDate></item>
<item><title>%s newer</title><link>https://example.com/2</link><pubDate>Tue, 10 Feb 2026 09:00:00 +0000</pubDate></item>
</channel></rss>`

func feedServer(name string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprintf(w, rssTemplate, name, name, name)
	}))
}

func TestLatestMergesNewestFirst(t *testing.T) {
	a := feedServer("Alpha")
	defer a.Close()
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()

	f := NewFetcher([]string{a.URL, broken.URL})
	headlines, err := f.Latest(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, headlines, 2)
	assert.Equal(t, "Alpha newer", headlines[0].Title)
	assert.Equal(t, "Alpha", headlines[0].Source)
	assert.Equal(t, "https://example.com/1", headlines[1].URL)
}

func TestLatestFailsWhenEveryFeedFails(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer broken.Close()

	_, err := NewFetcher([]string{broken.URL}).Latest(context.Background(), 5)
	assert.Error(t, err)
}

func TestResolveFeedURL(t *testing.T) {
	assert.Equal(t, "https://www.technologyreview.com/feed/", ResolveFeedURL("tr"))
	assert.Equal(t, "https://example.com/rss", ResolveFeedURL("https://example.com/rss"))
	assert.Len(t, NewFetcher(nil).Feeds, len(DefaultFeeds))
}

func TestLatestCollapsesSyndicatedStories(t *testing.T) {
	a := feedServer("Alpha")
	defer a.Close()
	b := feedServer("Beta")
	defer b.Close()

	headlines, err := NewFetcher([]string{a.URL, b.URL}).Latest(context.Background(), 10)
	require.NoError(t, err)
	// Both feeds link the same two stories.
	assert.Len(t, headlines, 2)
}
