// Package site rebuilds the static site from the posts directory and
// publishes the result.
package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// ErrNoBuildCommand is returned when no build command is configured.
var ErrNoBuildCommand = errors.New("site: build command is empty")

// Builder runs the static-site generator in the repository root.
type Builder struct {
	Command string
	Dir     string
	Logger  logrus.FieldLogger
}

// NewBuilder creates a builder for command run in dir.
func NewBuilder(command, dir string, logger logrus.FieldLogger) *Builder {
	return &Builder{Command: command, Dir: dir, Logger: logger}
}

// Build runs the build command and logs its output line by line.
func (b *Builder) Build(ctx context.Context) error {
	args := strings.Fields(b.Command)
	if len(args) == 0 {
		return ErrNoBuildCommand
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = b.Dir
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	logOutput(b.Logger.WithField("command", args[0]), out.String())
	if err != nil {
		return fmt.Errorf("site: build: %w", err)
	}
	b.Logger.Info("Site built")
	return nil
}

func logOutput(log logrus.FieldLogger, output string) {
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line = strings.TrimRight(line, "\r"); line != "" {
			log.Info("   " + line)
		}
	}
}
