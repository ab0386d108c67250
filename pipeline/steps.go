package pipeline

import (
	"context"
	"errors"

	"autoblog/dispatch"
	"autoblog/site"
	"autoblog/social"
	"autoblog/types"
)

// Step names, in run order.
const (
	StepGenerateArticle    = "generate-article"
	StepGenerateShare      = "generate-article-share"
	StepGenerateStandalone = "generate-standalone"
	StepDispatchX          = "dispatch-x"
	StepDispatchInstagram  = "dispatch-instagram"
	StepBuildSite          = "build-site"
	StepReflect            = "reflect"
)

// ArticleGenerator writes one article per call.
type ArticleGenerator interface {
	Generate(ctx context.Context) (*types.Article, error)
}

// SocialGenerator queues social posts and returns the item with its file name.
type SocialGenerator interface {
	FromLatestArticle(ctx context.Context) (*types.QueueItem, string, error)
	Standalone(ctx context.Context) (*types.QueueItem, string, error)
}

// QueueProcessor drains the queue for one platform.
type QueueProcessor interface {
	ProcessQueue(ctx context.Context) (dispatch.Report, error)
}

// SiteBuilder regenerates the static site.
type SiteBuilder interface {
	Build(ctx context.Context) error
}

// Reflector reviews recent output and writes the next strategy.
type Reflector interface {
	ReflectAndPlan(ctx context.Context) (*types.ReflectionRecord, *types.Strategy, error)
}

// Components are the collaborators of the daily run. Factories are called
// inside their step so a configuration error fails only that step.
type Components struct {
	Articles          ArticleGenerator
	Social            SocialGenerator
	DispatchX         func() (QueueProcessor, error)
	DispatchInstagram func() (QueueProcessor, error)
	Builder           SiteBuilder
	Publisher         func(ctx context.Context) (site.Publisher, error)
	Reflector         Reflector
}

// DailySteps returns the fixed daily sequence. The article-share post is
// only generated when the article step succeeded in the same run.
func DailySteps(c Components) []Step {
	return []Step{
		{Name: StepGenerateArticle, Run: func(ctx context.Context) error {
			_, err := c.Articles.Generate(ctx)
			return err
		}},
		{Name: StepGenerateShare, After: StepGenerateArticle, Run: func(ctx context.Context) error {
			_, _, err := c.Social.FromLatestArticle(ctx)
			if errors.Is(err, social.ErrSkipped) {
				return ErrStepSkipped
			}
			return err
		}},
		{Name: StepGenerateStandalone, Run: func(ctx context.Context) error {
			_, _, err := c.Social.Standalone(ctx)
			return err
		}},
		{Name: StepDispatchX, Run: dispatchStep(c.DispatchX)},
		{Name: StepDispatchInstagram, Run: dispatchStep(c.DispatchInstagram)},
		{Name: StepBuildSite, Run: func(ctx context.Context) error {
			if err := c.Builder.Build(ctx); err != nil {
				return err
			}
			publisher, err := c.Publisher(ctx)
			if err != nil {
				return err
			}
			return publisher.Publish(ctx)
		}},
		{Name: StepReflect, Run: func(ctx context.Context) error {
			_, _, err := c.Reflector.ReflectAndPlan(ctx)
			return err
		}},
	}
}

func dispatchStep(factory func() (QueueProcessor, error)) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		d, err := factory()
		if err != nil {
			return err
		}
		_, err = d.ProcessQueue(ctx)
		return err
	}
}
