package reflection

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoblog/config"
	"autoblog/llm"
	"autoblog/logging"
	"autoblog/store"
	"autoblog/trends"
	"autoblog/types"
)

var fixedNow = time.Date(2026, 2, 10, 22, 0, 0, 0, time.UTC)

const goodResponse = "```json\n" + `{
  "reflection": {"good_points": ["具体例が多い"], "content_quality_score": 14, "keyword_strategy_score": 6, "overall_assessment": "良好"},
  "trend_analysis": {"hot_topics": ["AIエージェント"]},
  "strategy": {"priority_keyword": "AIエージェント 使い方", "sns_strategy": "質問形式で締める", "new_keywords_to_add": ["A", "AIエージェント 使い方"]},
  "summary": "方向性は良い"
}` + "\n```"

type staticHeadlines struct {
	headlines []trends.Headline
	err       error
}

func (s staticHeadlines) Latest(ctx context.Context, limit int) ([]trends.Headline, error) {
	return s.headlines, s.err
}

func newTestEngine(t *testing.T, completer llm.Completer) *Engine {
	t.Helper()
	st := store.New(t.TempDir())
	require.NoError(t, st.SaveKeywords(&types.KeywordPool{
		Categories:   []types.KeywordCategory{{Name: "c", Keywords: []string{"A", "B"}}},
		UsedKeywords: []string{"A"},
	}))
	return &Engine{
		Store:  st,
		LLM:    completer,
		Logger: logging.Discard(),
		Now:    func() time.Time { return fixedNow },
	}
}

func TestReflectAndPlanPersistsRecordStrategyAndKeywords(t *testing.T) {
	completer := llm.NewScripted(goodResponse)
	e := newTestEngine(t, completer)
	e.Trends = staticHeadlines{headlines: []trends.Headline{{Title: "New model released", Source: "Feed"}}}
	e.TrendLimit = 5

	rec, strategy, err := e.ReflectAndPlan(context.Background())
	require.NoError(t, err)
	assert.False(t, rec.Degraded())
	assert.Equal(t, "2026-02-10", rec.Date)
	require.NotNil(t, rec.Reflection.ContentQualityScore)
	assert.Equal(t, 10.0, *rec.Reflection.ContentQualityScore)

	require.Len(t, completer.Prompts, 1)
	assert.Contains(t, completer.Prompts[0], "New model released")
	assert.Contains(t, completer.Prompts[0], "2026年2月時点")

	saved, err := e.Store.LoadStrategy()
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "AIエージェント 使い方", saved.PriorityKeyword())
	assert.Equal(t, "方向性は良い", saved.ReflectionSummary)
	assert.Equal(t, []string{"AIエージェント"}, saved.TrendAnalysis.HotTopics)
	assert.Equal(t, strategy.Strategy, saved.Strategy)

	records, errs := e.Store.LoadReflections(5)
	require.Empty(t, errs)
	require.Len(t, records, 1)
	assert.Equal(t, "方向性は良い", records[0].Summary)

	pool, err := e.Store.LoadKeywords()
	require.NoError(t, err)
	require.Len(t, pool.Categories, 2)
	assert.Equal(t, config.ProposedKeywordsCategory, pool.Categories[1].Name)
	assert.Equal(t, []string{"AIエージェント 使い方"}, pool.Categories[1].Keywords)
}

func TestReflectAndPlanDegradesOnUnparseableResponse(t *testing.T) {
	e := newTestEngine(t, llm.NewScripted("今日は良い一日でした。"))

	rec, strategy, err := e.ReflectAndPlan(context.Background())
	require.NoError(t, err)
	assert.True(t, rec.Degraded())
	assert.Equal(t, "今日は良い一日でした。", rec.Raw)
	assert.Equal(t, "今日は良い一日でした。", rec.Reflection.OverallAssessment)
	assert.Equal(t, DegradedSummary, rec.Summary)
	assert.Equal(t, config.DefaultContentDirection, strategy.Strategy.ContentDirection)

	pool, err := e.Store.LoadKeywords()
	require.NoError(t, err)
	idx := pool.EnsureCategory(config.ProposedKeywordsCategory)
	assert.Equal(t, 1, idx, "proposed category exists even with nothing to add")
	assert.Empty(t, pool.Categories[idx].Keywords)
}

func TestReflectAndPlanCompletionFailureWritesNothing(t *testing.T) {
	completer := llm.NewScripted()
	completer.Err = errors.New("quota exceeded")
	e := newTestEngine(t, completer)

	_, _, err := e.ReflectAndPlan(context.Background())
	var genErr *llm.GenerationError
	require.ErrorAs(t, err, &genErr)

	st, err := e.Store.LoadStrategy()
	require.NoError(t, err)
	assert.Nil(t, st)
	_, err = os.Stat(e.Store.ReflectionsDir())
	assert.True(t, os.IsNotExist(err))
}

func TestPersistSameDayReplacesRecord(t *testing.T) {
	e := newTestEngine(t, nil)

	_, err := e.Persist(&types.ReflectionRecord{Summary: "first"})
	require.NoError(t, err)
	_, err = e.Persist(&types.ReflectionRecord{Summary: "second"})
	require.NoError(t, err)

	records, errs := e.Store.LoadReflections(5)
	require.Empty(t, errs)
	require.Len(t, records, 1)
	assert.Equal(t, "second", records[0].Summary)
}

func TestPersistCreatesPoolWhenMissing(t *testing.T) {
	e := &Engine{
		Store:  store.New(t.TempDir()),
		Logger: logging.Discard(),
		Now:    func() time.Time { return fixedNow },
	}
	_, err := e.Persist(&types.ReflectionRecord{Strategy: types.Recommendation{NewKeywordsToAdd: []string{"X"}}})
	require.NoError(t, err)

	pool, err := e.Store.LoadKeywords()
	require.NoError(t, err)
	assert.Equal(t, []string{"X"}, pool.Universe())
}

func TestCollectSnapshot(t *testing.T) {
	e := newTestEngine(t, nil)
	e.Trends = staticHeadlines{err: errors.New("offline")}
	e.TrendLimit = 3

	_, err := e.Store.CreateArticle("2026-02-09-a", &types.Article{Title: "T1", Keyword: "A", Body: "本文です"})
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(e.Store.PostsDir(), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(e.Store.PostsDir(), "2026-02-10-broken.md"), []byte("no front matter"), 0o644))

	item := types.NewQueueItem(types.ItemStandalone, fixedNow, types.QueueContent{}, types.PlatformX)
	item.SetMarker(types.PlatformX, types.Delivered())
	_, err = e.Store.AppendQueueItem(item)
	require.NoError(t, err)
	require.NoError(t, e.Store.RecordStats(types.StatArticle, fixedNow))

	snap := e.Collect(context.Background())
	assert.Equal(t, 2, snap.TotalArticles)
	require.Len(t, snap.RecentArticles, 1)
	assert.Equal(t, "T1", snap.RecentArticles[0].Title)
	assert.Equal(t, 4, snap.RecentArticles[0].Length)
	assert.Equal(t, 1, snap.TotalQueueItems)
	assert.True(t, snap.RecentQueueItems[0].Delivered[types.PlatformX])
	assert.Equal(t, 1, snap.DaysSinceStart)
	assert.Equal(t, []string{"A"}, snap.UsedKeywords)
	assert.Equal(t, []string{"B"}, snap.RemainingKeywords)
	assert.Nil(t, snap.PreviousStrategy)
	assert.Empty(t, snap.Headlines)
}
