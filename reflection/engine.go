// Package reflection reviews recent output, asks the model for a
// self-assessment and a plan, and stores the plan as the current strategy.
package reflection

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/sirupsen/logrus"

	"autoblog/config"
	"autoblog/llm"
	"autoblog/store"
	"autoblog/trends"
	"autoblog/types"
)

// HeadlineSource supplies current news headlines.
type HeadlineSource interface {
	Latest(ctx context.Context, limit int) ([]trends.Headline, error)
}

// Engine runs one reflection per call to ReflectAndPlan.
type Engine struct {
	Store      *store.Store
	LLM        llm.Completer
	Trends     HeadlineSource
	TrendLimit int
	Logger     logrus.FieldLogger
	Now        func() time.Time
}

// NewEngine creates an engine with a wall clock. headlines may be nil.
func NewEngine(st *store.Store, completer llm.Completer, headlines HeadlineSource, logger logrus.FieldLogger) *Engine {
	return &Engine{
		Store:      st,
		LLM:        completer,
		Trends:     headlines,
		TrendLimit: 10,
		Logger:     logger,
		Now:        time.Now,
	}
}

// ReflectAndPlan collects a snapshot, asks for a reflection and persists the
// result. An unparseable response is stored in degraded form rather than
// failing; only completion and store errors are returned.
func (e *Engine) ReflectAndPlan(ctx context.Context) (*types.ReflectionRecord, *types.Strategy, error) {
	snap := e.Collect(ctx)
	e.Logger.WithFields(logrus.Fields{
		"articles": snap.TotalArticles,
		"queue":    snap.TotalQueueItems,
		"days":     snap.DaysSinceStart,
	}).Info("Collected reflection snapshot")

	text, err := e.LLM.Complete(ctx, BuildPrompt(snap))
	if err != nil {
		return nil, nil, err
	}

	rec := ParseReflection(text)
	if rec.Degraded() {
		e.Logger.WithField("received", types.Truncate(rec.Raw, 200)).Warn("Reflection response was malformed; keeping raw text")
	}

	strategy, err := e.Persist(rec)
	if err != nil {
		return rec, nil, err
	}

	e.Logger.WithFields(logrus.Fields{
		"priority_keyword": strategy.Strategy.PriorityKeyword,
		"summary":          rec.Summary,
	}).Info("Strategy updated")
	return rec, strategy, nil
}

// Persist writes the dated record, replaces the strategy, and files proposed
// keywords under the proposed-keywords category, in that order. The category
// exists afterwards even when nothing new was proposed.
func (e *Engine) Persist(rec *types.ReflectionRecord) (*types.Strategy, error) {
	now := e.Now()
	rec.Date = now.Format("2006-01-02")
	rec.GeneratedAt = now

	if err := e.Store.SaveReflection(rec); err != nil {
		return nil, fmt.Errorf("reflection: save record: %w", err)
	}

	strategy := &types.Strategy{
		LastUpdated:       now,
		Strategy:          rec.Strategy,
		TrendAnalysis:     rec.TrendAnalysis,
		ReflectionSummary: rec.Summary,
	}
	if err := e.Store.SaveStrategy(strategy); err != nil {
		return nil, fmt.Errorf("reflection: save strategy: %w", err)
	}

	pool, err := e.Store.LoadKeywords()
	if errors.Is(err, fs.ErrNotExist) {
		pool, err = &types.KeywordPool{UsedKeywords: []string{}}, nil
	}
	if err != nil {
		return strategy, fmt.Errorf("reflection: load keywords: %w", err)
	}
	added := pool.AddToCategory(config.ProposedKeywordsCategory, rec.Strategy.NewKeywordsToAdd)
	if err := e.Store.SaveKeywords(pool); err != nil {
		return strategy, fmt.Errorf("reflection: save keywords: %w", err)
	}
	if len(added) > 0 {
		e.Logger.WithField("keywords", added).Info("Added proposed keywords")
	}
	return strategy, nil
}
