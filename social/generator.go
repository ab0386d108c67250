// Package social drafts platform posts and appends them to the delivery queue.
package social

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

// ErrSkipped means there was nothing to share yet. It is expected on the
// first run and is not a failure.
var ErrSkipped = errors.New("social: no article to share yet")

// Generator drafts social posts with the completion API.
type Generator struct {
	Store  *store.Store
	LLM    llm.Completer
	Logger logrus.FieldLogger
	Now    func() time.Time
	Rand   *rand.Rand
	Topics []string
}

// NewGenerator creates a generator over the built-in evergreen topics.
func NewGenerator(st *store.Store, completer llm.Completer, logger logrus.FieldLogger) *Generator {
	return &Generator{
		Store:  st,
		LLM:    completer,
		Logger: logger,
		Now:    time.Now,
		Rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
		Topics: config.EvergreenTopics,
	}
}

// FromLatestArticle drafts an X post and an Instagram caption for the most
// recent article and queues them as one item.
func (g *Generator) FromLatestArticle(ctx context.Context) (*types.QueueItem, string, error) {
	article, err := g.Store.LatestArticle()
	if err != nil {
		return nil, "", err
	}
	if article == nil {
		return nil, "", ErrSkipped
	}
	guidance := g.guidance()
	excerpt := types.Truncate(article.Body, config.ArticleExcerptLength)

	log := g.Logger.WithField("article", article.Filename)
	log.Info("Drafting X post")
	xText, err := g.LLM.Complete(ctx, XPrompt(article.Title, excerpt, guidance))
	if err != nil {
		return nil, "", err
	}
	log.Info("Drafting Instagram caption")
	igText, err := g.LLM.Complete(ctx, InstagramPrompt(article.Title, excerpt, guidance))
	if err != nil {
		return nil, "", err
	}

	x := types.ParsePlatformContent(xText)
	ig := types.ParsePlatformContent(igText)
	warnUnstructured(log, types.PlatformX, x)
	warnUnstructured(log, types.PlatformInstagram, ig)

	item := types.NewQueueItem(types.ItemArticleShare, g.Now(), types.QueueContent{
		X:         &x,
		Instagram: &ig,
		Title:     article.Title,
	}, types.PlatformX, types.PlatformInstagram)
	return g.enqueue(item)
}

// Standalone drafts one X post on a random evergreen topic.
func (g *Generator) Standalone(ctx context.Context) (*types.QueueItem, string, error) {
	if len(g.Topics) == 0 {
		return nil, "", errors.New("social: no evergreen topics configured")
	}
	topic := g.Topics[g.Rand.Intn(len(g.Topics))]

	log := g.Logger.WithField("topic", topic)
	log.Info("Drafting standalone X post")
	text, err := g.LLM.Complete(ctx, StandalonePrompt(topic, g.guidance()))
	if err != nil {
		return nil, "", err
	}
	x := types.ParsePlatformContent(text)
	warnUnstructured(log, types.PlatformX, x)

	item := types.NewQueueItem(types.ItemStandalone, g.Now(), types.QueueContent{
		X:     &x,
		Topic: topic,
	}, types.PlatformX)
	return g.enqueue(item)
}

func (g *Generator) enqueue(item *types.QueueItem) (*types.QueueItem, string, error) {
	name, err := g.Store.AppendQueueItem(item)
	if err != nil {
		return nil, "", fmt.Errorf("social: queue item: %w", err)
	}
	g.Logger.WithFields(logrus.Fields{"item": name, "type": item.Type}).Info("Queued social posts")
	return item, name, nil
}

// guidance returns the current strategy's SNS advice, if any.
func (g *Generator) guidance() string {
	strategy, err := g.Store.LoadStrategy()
	if err != nil {
		g.Logger.WithError(err).Warn("Ignoring unreadable strategy")
		return ""
	}
	if strategy == nil {
		return ""
	}
	return strategy.Strategy.SNSStrategy
}

func warnUnstructured(log logrus.FieldLogger, platform string, c types.PlatformContent) {
	if !c.IsStructured() {
		log.WithField("platform", platform).Warn("Response was not JSON; stored raw and will be skipped at dispatch")
	}
}
