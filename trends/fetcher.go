// Package trends collects recent headlines from RSS/Atom feeds so the
// reflection step can ground its trend analysis in current news.
package trends

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mmcdole/gofeed"
)

// Headline is one feed entry.
type Headline struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"publishedAt"`
	Excerpt     string    `json:"excerpt,omitempty"`
}

// Fetcher reads a fixed set of feeds.
type Fetcher struct {
	Feeds   []string
	Timeout time.Duration
	// ExtractTop is how many of the newest headlines get a page excerpt.
	ExtractTop int
	Extractor  *Extractor
	parser     *gofeed.Parser
}

// NewFetcher resolves preset names in feeds; an empty list uses DefaultFeeds.
func NewFetcher(feeds []string) *Fetcher {
	if len(feeds) == 0 {
		feeds = DefaultFeeds
	}
	urls := make([]string, 0, len(feeds))
	for _, f := range feeds {
		urls = append(urls, ResolveFeedURL(f))
	}
	return &Fetcher{Feeds: urls, Timeout: 20 * time.Second, Extractor: NewExtractor(), parser: gofeed.NewParser()}
}

// FetchFeed retrieves and parses one feed, returning at most maxCount headlines.
func (f *Fetcher) FetchFeed(ctx context.Context, feedURL string, maxCount int) ([]Headline, error) {
	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()

	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	count := min(len(feed.Items), maxCount)
	headlines := make([]Headline, 0, count)
	for i := 0; i < count; i++ {
		item := feed.Items[i]

		var publishedAt time.Time
		if item.PublishedParsed != nil {
			publishedAt = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			publishedAt = *item.UpdatedParsed
		}

		headlines = append(headlines, Headline{
			Title:       item.Title,
			URL:         item.Link,
			Source:      feed.Title,
			PublishedAt: publishedAt,
		})
	}
	return headlines, nil
}

// Latest merges every feed and returns the newest limit distinct headlines.
// Feeds that fail are skipped; an error is returned only when all of them fail.
func (f *Fetcher) Latest(ctx context.Context, limit int) ([]Headline, error) {
	var (
		all  []Headline
		errs []error
	)
	for _, url := range f.Feeds {
		items, err := f.FetchFeed(ctx, url, limit)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", url, err))
			continue
		}
		all = append(all, items...)
	}
	if len(all) == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].PublishedAt.After(all[j].PublishedAt)
	})
	all = Dedupe(all)
	if len(all) > limit {
		all = all[:limit]
	}
	if f.Extractor != nil {
		f.Extractor.Enrich(ctx, all, f.ExtractTop)
	}
	return all, nil
}
