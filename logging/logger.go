package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"autoblog/config"
)

// Fields represents structured logging fields
type Fields = logrus.Fields

// NewLogger creates a logger writing to stderr in the configured format.
func NewLogger(format string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	logger.SetLevel(config.GetLogLevel())
	return logger
}

// NewRunLogger creates a logger that also appends every entry to the dated
// run log under dir.
func NewRunLogger(format, dir string) *logrus.Logger {
	logger := NewLogger(format)
	logger.AddHook(NewDailyFileHook(dir))
	return logger
}

// Discard returns a logger that drops everything; handy in tests.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
