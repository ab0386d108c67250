package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"

	"autoblog/config"
)

// GitPublisher commits the working tree and pushes it, for hosts that
// deploy from a branch.
type GitPublisher struct {
	Dir    string
	Remote string
	Branch string
	Logger logrus.FieldLogger
	Now    func() time.Time
}

// NewGitPublisher creates a publisher for the repository at dir.
func NewGitPublisher(dir, remote, branch string, logger logrus.FieldLogger) *GitPublisher {
	return &GitPublisher{Dir: dir, Remote: remote, Branch: branch, Logger: logger, Now: time.Now}
}

// Publish stages everything, and commits and pushes only when the staged
// tree differs from HEAD. A missing git binary skips publishing.
func (g *GitPublisher) Publish(ctx context.Context) error {
	if _, err := exec.LookPath("git"); err != nil {
		g.Logger.Warn("git not found; skipping publish")
		return nil
	}

	if _, err := g.git(ctx, "add", "-A"); err != nil {
		return err
	}

	changed, err := g.hasStagedChanges(ctx)
	if err != nil {
		return err
	}
	if !changed {
		g.Logger.Info("No changes to publish")
		return nil
	}

	msg := fmt.Sprintf("%s %s", config.CommitMessagePrefix, g.Now().Format("2006-01-02"))
	if _, err := g.git(ctx, "commit", "-m", msg); err != nil {
		return err
	}
	if _, err := g.git(ctx, "push", g.Remote, g.Branch); err != nil {
		return err
	}
	g.Logger.WithFields(logrus.Fields{"remote": g.Remote, "branch": g.Branch}).Info("Site published")
	return nil
}

// hasStagedChanges runs `git diff --staged --quiet`, which exits 1 when
// something is staged.
func (g *GitPublisher) hasStagedChanges(ctx context.Context) (bool, error) {
	_, err := g.git(ctx, "diff", "--staged", "--quiet")
	if err == nil {
		return false, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return true, nil
	}
	return false, err
}

func (g *GitPublisher) git(ctx context.Context, args ...string) (string, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.Dir
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return out.String(), fmt.Errorf("site: git %s: %w: %s", args[0], err, bytes.TrimSpace(out.Bytes()))
	}
	return out.String(), nil
}
