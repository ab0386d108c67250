package reflection

import (
	"context"
	"sort"
	"time"

	"autoblog/config"
	"autoblog/trends"
	"autoblog/types"
)

// ArticleSummary is what the reflection prompt sees of one article.
type ArticleSummary struct {
	Filename string    `json:"filename"`
	Title    string    `json:"title"`
	Keyword  string    `json:"keyword"`
	Date     time.Time `json:"date"`
	Length   int       `json:"length"`
	Preview  string    `json:"preview"`
}

// QueueSummary is what the reflection prompt sees of one queue item.
type QueueSummary struct {
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	CreatedAt time.Time       `json:"createdAt"`
	Delivered map[string]bool `json:"delivered"`
}

// Snapshot is the state of the system gathered before a reflection.
type Snapshot struct {
	At                  time.Time
	TotalArticles       int
	RecentArticles      []ArticleSummary
	TotalQueueItems     int
	RecentQueueItems    []QueueSummary
	Stats               types.Stats
	DaysSinceStart      int
	UsedKeywords        []string
	RemainingKeywords   []string
	PreviousStrategy    *types.Strategy
	PreviousReflections []types.ReflectionRecord
	Headlines           []trends.Headline
}

// Collect gathers the snapshot. Every source is optional: anything that
// cannot be read is logged and left empty.
func (e *Engine) Collect(ctx context.Context) *Snapshot {
	snap := &Snapshot{At: e.Now()}
	e.collectArticles(snap)
	e.collectQueue(snap)

	if stats, err := e.Store.LoadStats(); err != nil {
		e.Logger.WithError(err).Warn("Stats unavailable for reflection")
	} else {
		snap.Stats = *stats
		snap.DaysSinceStart = len(stats.History)
	}

	if pool, err := e.Store.LoadKeywords(); err != nil {
		e.Logger.WithError(err).Warn("Keyword pool unavailable for reflection")
	} else {
		snap.UsedKeywords = append([]string(nil), pool.UsedKeywords...)
		snap.RemainingKeywords = pool.Unused()
	}

	if st, err := e.Store.LoadStrategy(); err != nil {
		e.Logger.WithError(err).Warn("Ignoring unreadable strategy")
	} else {
		snap.PreviousStrategy = st
	}

	records, errs := e.Store.LoadReflections(config.RecentReflectionsWindow)
	for _, err := range errs {
		e.Logger.WithError(err).Warn("Skipping unreadable reflection")
	}
	snap.PreviousReflections = records

	if e.Trends != nil && e.TrendLimit > 0 {
		headlines, err := e.Trends.Latest(ctx, e.TrendLimit)
		if err != nil {
			e.Logger.WithError(err).Warn("Trend headlines unavailable")
		}
		snap.Headlines = headlines
	}
	return snap
}

func (e *Engine) collectArticles(snap *Snapshot) {
	names, err := e.Store.ListArticles()
	if err != nil {
		e.Logger.WithError(err).Warn("Articles unavailable for reflection")
		return
	}
	snap.TotalArticles = len(names)
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	for _, name := range names {
		if len(snap.RecentArticles) >= config.RecentArticlesWindow {
			break
		}
		a, err := e.Store.ReadArticle(name)
		if err != nil {
			e.Logger.WithError(err).WithField("file", name).Warn("Skipping unreadable article")
			continue
		}
		snap.RecentArticles = append(snap.RecentArticles, ArticleSummary{
			Filename: name,
			Title:    a.Title,
			Keyword:  a.Keyword,
			Date:     a.Date,
			Length:   a.Length(),
			Preview:  a.Preview(config.ArticlePreviewLength),
		})
	}
}

func (e *Engine) collectQueue(snap *Snapshot) {
	entries, err := e.Store.ListQueue()
	if err != nil {
		e.Logger.WithError(err).Warn("Queue unavailable for reflection")
		return
	}
	snap.TotalQueueItems = len(entries)

	for i := len(entries) - 1; i >= 0 && len(snap.RecentQueueItems) < config.RecentQueueWindow; i-- {
		entry := entries[i]
		summary := QueueSummary{Name: entry.Name, Delivered: map[string]bool{}}
		if entry.Item != nil {
			summary.Type = entry.Item.Type
			summary.CreatedAt = entry.Item.CreatedAt
			for platform, m := range entry.Item.Posted {
				summary.Delivered[platform] = m.IsDelivered()
			}
		}
		snap.RecentQueueItems = append(snap.RecentQueueItems, summary)
	}
}
