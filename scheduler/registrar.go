package scheduler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// Crontab reads and replaces the current user's crontab.
type Crontab interface {
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, content string) error
}

// SystemCrontab uses the crontab(1) command.
type SystemCrontab struct{}

// Read returns the current crontab; a user without one has an empty crontab.
func (SystemCrontab) Read(ctx context.Context) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "crontab", "-l")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && strings.Contains(stderr.String(), "no crontab") {
			return "", nil
		}
		return "", fmt.Errorf("scheduler: crontab -l: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// Write replaces the crontab with content.
func (SystemCrontab) Write(ctx context.Context, content string) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "crontab", "-")
	cmd.Stdin = strings.NewReader(content)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("scheduler: crontab -: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// Registrar installs, removes and reports the managed block.
type Registrar struct {
	Binary  string
	Root    string
	Entries []Entry
	Crontab Crontab
	Logger  logrus.FieldLogger
}

// Install writes the managed block, replacing any earlier one.
func (r *Registrar) Install(ctx context.Context) error {
	block, err := RenderBlock(r.Binary, r.Root, r.Entries)
	if err != nil {
		return err
	}
	current, err := r.Crontab.Read(ctx)
	if err != nil {
		return err
	}
	if err := r.Crontab.Write(ctx, ReplaceBlock(current, block)); err != nil {
		return err
	}
	for _, e := range r.Entries {
		r.Logger.WithFields(logrus.Fields{"schedule": e.Schedule, "args": strings.Join(e.Args, " ")}).Info("Registered " + e.Name)
	}
	return nil
}

// Remove deletes the managed block. It reports whether there was one.
func (r *Registrar) Remove(ctx context.Context) (bool, error) {
	current, err := r.Crontab.Read(ctx)
	if err != nil {
		return false, err
	}
	rest, found := RemoveBlock(current)
	if !found {
		r.Logger.Info("No scheduled tasks registered")
		return false, nil
	}
	if err := r.Crontab.Write(ctx, rest); err != nil {
		return false, err
	}
	r.Logger.Info("Scheduled tasks removed")
	return true, nil
}

// Check returns the installed block, if any.
func (r *Registrar) Check(ctx context.Context) (string, bool, error) {
	current, err := r.Crontab.Read(ctx)
	if err != nil {
		return "", false, err
	}
	block, ok := ExtractBlock(current)
	return block, ok, nil
}
