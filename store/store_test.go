package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoblog/config"
	"autoblog/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(t.TempDir())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadKeywordsRequired(t *testing.T) {
	s := newTestStore(t)

	_, err := s.LoadKeywords()
	var parseErr *StateParseError
	require.True(t, errors.As(err, &parseErr))
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	writeFile(t, s.Path(config.KeywordsFile), "{not json")
	_, err = s.LoadKeywords()
	require.True(t, errors.As(err, &parseErr))
	assert.False(t, errors.Is(err, fs.ErrNotExist))
}

func TestKeywordsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	writeFile(t, s.Path(config.KeywordsFile), `{"categories":[{"name":"tools","keywords":["ChatGPT"]}]}`)

	pool, err := s.LoadKeywords()
	require.NoError(t, err)
	assert.NotNil(t, pool.UsedKeywords)

	pool.MarkUsed("ChatGPT")
	require.NoError(t, s.SaveKeywords(pool))

	again, err := s.LoadKeywords()
	require.NoError(t, err)
	assert.Equal(t, []string{"ChatGPT"}, again.UsedKeywords)

	_, err = os.Stat(s.Path(config.KeywordsFile) + ".tmp")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestRecordStats(t *testing.T) {
	s := newTestStore(t)
	day1 := time.Date(2026, 2, 10, 9, 0, 0, 0, time.Local)
	day2 := day1.Add(24 * time.Hour)

	require.NoError(t, s.RecordStats(types.StatArticle, day1))
	require.NoError(t, s.RecordStats(types.StatSNS, day1))
	require.NoError(t, s.RecordStats(types.StatSNS, day2))

	stats, err := s.LoadStats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Articles)
	assert.Equal(t, 2, stats.SnsPosts)
	assert.Len(t, stats.History, 2)
	assert.Equal(t, 1, stats.Day("2026-02-10").SnsPosts)
}

func TestRecordStatsSetsCorruptFileAside(t *testing.T) {
	s := newTestStore(t)
	path := s.Path(config.StatsFile)
	writeFile(t, path, "garbage")

	_, err := s.LoadStats()
	var parseErr *StateParseError
	require.True(t, errors.As(err, &parseErr))

	require.NoError(t, s.RecordStats(types.StatArticle, time.Now()))
	stats, err := s.LoadStats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Articles)

	kept, err := os.ReadFile(path + ".corrupt")
	require.NoError(t, err)
	assert.Equal(t, "garbage", string(kept))
}

func TestStrategyOptional(t *testing.T) {
	s := newTestStore(t)

	st, err := s.LoadStrategy()
	require.NoError(t, err)
	assert.Nil(t, st)

	want := &types.Strategy{
		LastUpdated: time.Date(2026, 2, 10, 6, 0, 0, 0, time.UTC),
		Strategy:    types.Recommendation{PriorityKeyword: "Gemini"},
	}
	require.NoError(t, s.SaveStrategy(want))
	st, err = s.LoadStrategy()
	require.NoError(t, err)
	assert.Equal(t, "Gemini", st.PriorityKeyword())
}

func TestReflectionsNewestFirstAndSameDayOverwrite(t *testing.T) {
	s := newTestStore(t)
	for _, d := range []string{"2026-02-08", "2026-02-09", "2026-02-10"} {
		require.NoError(t, s.SaveReflection(&types.ReflectionRecord{Date: d, Summary: "first " + d}))
	}
	require.NoError(t, s.SaveReflection(&types.ReflectionRecord{Date: "2026-02-10", Summary: "second"}))
	writeFile(t, filepath.Join(s.ReflectionsDir(), "2026-02-07.json"), "{")

	recs, errs := s.LoadReflections(2)
	assert.Empty(t, errs)
	require.Len(t, recs, 2)
	assert.Equal(t, "second", recs[0].Summary)
	assert.Equal(t, "2026-02-09", recs[1].Date)

	recs, errs = s.LoadReflections(10)
	assert.Len(t, recs, 3)
	assert.Len(t, errs, 1)
}

func TestQueueAppendListSave(t *testing.T) {
	s := newTestStore(t)
	created := time.Date(2026, 2, 10, 6, 0, 0, 123e6, time.UTC)
	x := types.Structured(types.Post{Text: "hello"})
	item := types.NewQueueItem(types.ItemArticleShare, created, types.QueueContent{X: &x}, types.PlatformX, types.PlatformInstagram)

	name, err := s.AppendQueueItem(item)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-10T06-00-00-123Z-article-share.json", name)

	dup, err := s.AppendQueueItem(item)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-10T06-00-00-123Z-article-share-2.json", dup)

	writeFile(t, filepath.Join(s.QueueDir(), "2026-02-11T00-00-00-000Z-standalone.json"), "[broken")

	entries, err := s.ListQueue()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, name, entries[0].Name)
	assert.NotNil(t, entries[0].Item)
	assert.Error(t, entries[2].Err)

	entries[0].Item.SetMarker(types.PlatformX, types.Delivered())
	require.NoError(t, s.SaveQueueItem(name, entries[0].Item))

	entries, err = s.ListQueue()
	require.NoError(t, err)
	assert.True(t, entries[0].Item.Marker(types.PlatformX).IsDelivered())
	assert.False(t, entries[0].Item.Marker(types.PlatformInstagram).IsDelivered())
}

func TestArticlesNeverOverwritten(t *testing.T) {
	s := newTestStore(t)
	date := time.Date(2026, 2, 10, 6, 0, 0, 0, time.UTC)
	a := &types.Article{
		Layout:  config.ArticleLayout,
		Title:   "ChatGPTの使い方",
		Tags:    []string{"AI"},
		Date:    date,
		Keyword: "ChatGPT",
		Body:    "## はじめに\n本文",
	}

	name, err := s.CreateArticle("2026-02-10-ChatGPT", a)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-10-ChatGPT.md", name)

	b := *a
	b.Title = "second"
	name2, err := s.CreateArticle("2026-02-10-ChatGPT", &b)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-10-ChatGPT-2.md", name2)

	first, err := s.ReadArticle(name)
	require.NoError(t, err)
	assert.Equal(t, "ChatGPTの使い方", first.Title)
	assert.Equal(t, "ChatGPT", first.Keyword)
	assert.Equal(t, config.ArticleLayout, first.Layout)
	assert.True(t, date.Equal(first.Date))
	assert.Equal(t, "## はじめに\n本文", first.Body)

	names, err := s.ListArticles()
	require.NoError(t, err)
	assert.Len(t, names, 2)
}

func TestLatestArticle(t *testing.T) {
	s := newTestStore(t)
	latest, err := s.LatestArticle()
	require.NoError(t, err)
	assert.Nil(t, latest)

	writeFile(t, filepath.Join(s.PostsDir(), "2026-02-09-a.md"), "---\ntitle: \"older\"\n---\nbody")
	writeFile(t, filepath.Join(s.PostsDir(), "2026-02-10-b.md"), "---\ntitle: \"newer\"\ndate: 2026-02-10T06:00:00.000Z\n---\nbody")

	latest, err = s.LatestArticle()
	require.NoError(t, err)
	assert.Equal(t, "newer", latest.Title)
	assert.Equal(t, 2026, latest.Date.Year())
}

func TestLatestArticleAfterNameCollision(t *testing.T) {
	s := newTestStore(t)
	date := time.Date(2026, 2, 10, 6, 0, 0, 0, time.UTC)
	for _, title := range []string{"first", "second", "third"} {
		_, err := s.CreateArticle("2026-02-10-ChatGPT", &types.Article{Title: title, Date: date, Keyword: "ChatGPT", Body: "本文"})
		require.NoError(t, err)
	}
	writeFile(t, filepath.Join(s.PostsDir(), "2026-02-09-GPT-4.md"), "---\ntitle: \"older\"\n---\nbody")

	names, err := s.ListArticles()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2026-02-09-GPT-4.md",
		"2026-02-10-ChatGPT.md",
		"2026-02-10-ChatGPT-2.md",
		"2026-02-10-ChatGPT-3.md",
	}, names)

	latest, err := s.LatestArticle()
	require.NoError(t, err)
	assert.Equal(t, "third", latest.Title)
}

func TestNameOrderKeepsCopiesAfterOriginal(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"x.json", "x-2.json", true},
		{"x-2.json", "x.json", false},
		{"x-2.json", "x-10.json", true},
		{"2026-02-09-z.json", "2026-02-10-a.json", true},
		{"x-article-share.json", "x-standalone.json", true},
	}
	for _, tt := range tests {
		t.Run(tt.a+"<"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, nameBefore(tt.a, tt.b, ".json"))
		})
	}
}

func TestLockExcludesSecondHolder(t *testing.T) {
	s := newTestStore(t)

	unlock, err := s.Lock()
	require.NoError(t, err)

	_, err = New(s.Root).Lock()
	assert.ErrorIs(t, err, ErrLocked)

	unlock()
	unlock2, err := s.Lock()
	require.NoError(t, err)
	unlock2()
}
