// Package content generates blog articles from the keyword pool.
package content

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"autoblog/config"
	"autoblog/llm"
	"autoblog/store"
	"autoblog/types"
)

// ErrEmptyPool is returned when the keyword pool has no keywords at all.
var ErrEmptyPool = errors.New("content: keyword pool is empty")

// Generator writes one article per call to Generate.
type Generator struct {
	Store  *store.Store
	LLM    llm.Completer
	Logger logrus.FieldLogger
	Now    func() time.Time
	Rand   *rand.Rand
}

// NewGenerator creates a generator with a wall clock and a time-seeded source.
func NewGenerator(st *store.Store, completer llm.Completer, logger logrus.FieldLogger) *Generator {
	return &Generator{
		Store:  st,
		LLM:    completer,
		Logger: logger,
		Now:    time.Now,
		Rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SelectKeyword picks the next keyword and persists the updated used-set
// before returning.
func (g *Generator) SelectKeyword() (string, error) {
	return g.selectKeyword(g.loadStrategy())
}

func (g *Generator) selectKeyword(strategy *types.Strategy) (string, error) {
	pool, err := g.Store.LoadKeywords()
	if err != nil {
		return "", err
	}

	keyword, recycled, err := pick(pool, strategy, g.Rand)
	if err != nil {
		return "", err
	}
	if err := g.Store.SaveKeywords(pool); err != nil {
		return "", fmt.Errorf("content: save keyword pool: %w", err)
	}

	log := g.Logger.WithField("keyword", keyword)
	switch {
	case keyword == strategy.PriorityKeyword():
		log.Info("Using strategy priority keyword")
	case recycled:
		log.Info("All keywords used; used-set reset")
	default:
		log.Info("Selected keyword")
	}
	return keyword, nil
}

// pick applies the selection rules to pool in place: an unused strategy
// priority keyword first, then a random unused keyword, then a full recycle.
// The picked keyword is always in the used-set afterwards.
func pick(pool *types.KeywordPool, strategy *types.Strategy, rng *rand.Rand) (keyword string, recycled bool, err error) {
	if pk := strategy.PriorityKeyword(); pk != "" && !pool.IsUsed(pk) {
		pool.MarkUsed(pk)
		return pk, false, nil
	}

	unused := pool.Unused()
	if len(unused) == 0 {
		universe := pool.Universe()
		if len(universe) == 0 {
			return "", false, ErrEmptyPool
		}
		pool.ResetUsed()
		keyword = universe[rng.Intn(len(universe))]
		pool.MarkUsed(keyword)
		return keyword, true, nil
	}

	keyword = unused[rng.Intn(len(unused))]
	pool.MarkUsed(keyword)
	return keyword, false, nil
}

func (g *Generator) loadStrategy() *types.Strategy {
	strategy, err := g.Store.LoadStrategy()
	if err != nil {
		g.Logger.WithError(err).Warn("Ignoring unreadable strategy")
		return nil
	}
	return strategy
}

// Generate selects a keyword, asks the model for an article, and stores it.
// The keyword stays consumed even when generation fails.
func (g *Generator) Generate(ctx context.Context) (*types.Article, error) {
	strategy := g.loadStrategy()

	keyword, err := g.selectKeyword(strategy)
	if err != nil {
		return nil, err
	}

	g.Logger.WithField("keyword", keyword).Info("Generating article")
	text, err := g.LLM.Complete(ctx, BuildPrompt(keyword, strategy))
	if err != nil {
		return nil, err
	}

	gen, err := ParseGeneration(text, keyword)
	if err != nil {
		g.Logger.WithField("received", types.Truncate(text, 200)).Warn("Article response was malformed")
		return nil, err
	}

	now := g.Now()
	article := &types.Article{
		Layout:      config.ArticleLayout,
		Title:       gen.Title,
		Description: gen.Description,
		Tags:        gen.Tags,
		Date:        now,
		Keyword:     keyword,
		Body:        gen.Body,
	}
	name, err := g.Store.CreateArticle(ArticleBase(now, keyword), article)
	if err != nil {
		return nil, err
	}
	if err := g.Store.RecordStats(types.StatArticle, now); err != nil {
		g.Logger.WithError(err).WithField("file", name).Warn("Article written but stats were not recorded")
	}

	g.Logger.WithFields(logrus.Fields{
		"file":    name,
		"title":   article.Title,
		"keyword": keyword,
		"length":  article.Length(),
	}).Info("Article written")
	return article, nil
}
