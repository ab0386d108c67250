package cli

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"autoblog/config"
	"autoblog/llm"
	"autoblog/logging"
	"autoblog/metrics"
	"autoblog/store"
)

// app is what every command needs: configuration, a logger writing the
// dated run log, and the store.
type app struct {
	cfg     *config.Config
	logger  *logrus.Logger
	store   *store.Store
	metrics *metrics.Collector
}

func (o *rootOptions) load() (*app, error) {
	config.LoadEnv(nil, o.envFile)
	if o.root != "" {
		if err := os.Setenv("AUTOBLOG_ROOT", o.root); err != nil {
			return nil, err
		}
	}
	cfg := config.Load()
	if o.logFormat != "" {
		cfg.LogFormat = o.logFormat
	}

	logger := logging.NewRunLogger(cfg.LogFormat, filepath.Join(cfg.Root, config.LogDir))
	return &app{
		cfg:     cfg,
		logger:  logger,
		store:   store.New(cfg.Root),
		metrics: metrics.New(),
	}, nil
}

// completer checks the provider settings before building the client, so a
// missing key fails before anything is written.
func (a *app) completer() (llm.Completer, error) {
	if err := a.cfg.RequireLLM(); err != nil {
		return nil, err
	}
	return llm.New(a.cfg.LLM)
}

// locked runs fn while holding the store's run lock.
func (a *app) locked(fn func() error) error {
	unlock, err := a.store.Lock()
	if err != nil {
		return err
	}
	defer unlock()
	return fn()
}
