package site

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"autoblog/config"
)

// Publisher ships the built site somewhere visitors can reach it.
type Publisher interface {
	Publish(ctx context.Context) error
}

// NoopPublisher leaves the built site where it is.
type NoopPublisher struct{}

// Publish implements Publisher.
func (NoopPublisher) Publish(ctx context.Context) error { return nil }

// NewPublisher returns the publisher selected by the site publish mode.
func NewPublisher(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (Publisher, error) {
	switch cfg.Site.PublishMode {
	case config.PublishGit:
		return NewGitPublisher(cfg.Root, cfg.Site.GitRemote, cfg.Site.GitBranch, logger), nil
	case config.PublishS3:
		if err := cfg.RequireS3(); err != nil {
			return nil, err
		}
		return NewS3Publisher(ctx, cfg.Site, logger)
	case config.PublishNone, "":
		return NoopPublisher{}, nil
	default:
		return nil, &config.ConfigurationError{Key: "SITE_PUBLISH", Invalid: fmt.Sprintf("unknown publish mode %q", cfg.Site.PublishMode)}
	}
}
