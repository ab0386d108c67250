// Package api serves the pipeline status over HTTP and runs the daily
// schedules in-process for serve mode.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"autoblog/metrics"
	"autoblog/pipeline"
	"autoblog/store"
)

// DispatchJob runs one scheduled dispatch slot.
type DispatchJob func(ctx context.Context) error

// Server is the status server and in-process scheduler
type Server struct {
	runner     *pipeline.Runner
	store      *store.Store
	metrics    *metrics.Collector
	dispatch   DispatchJob
	logger     logrus.FieldLogger
	httpServer *http.Server
	cron       *cron.Cron
	mu         sync.Mutex
}

// NewServer creates a server for runner. dispatch may be nil when no
// dispatch slots are scheduled.
func NewServer(runner *pipeline.Runner, st *store.Store, m *metrics.Collector, dispatch DispatchJob, logger logrus.FieldLogger) *Server {
	return &Server{
		runner:   runner,
		store:    st,
		metrics:  m,
		dispatch: dispatch,
		logger:   logger,
		cron:     cron.New(),
	}
}

// NewRouter constructs a Gin engine with registered routes.
func (s *Server) NewRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", handleHealth)
	s.registerPipelineRoutes(r)
	s.registerQueueRoutes(r)
	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}
	return r
}

// Start starts the HTTP server on addr
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.WithField("addr", addr).Info("Starting status server")

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.WithError(err).Error("HTTP server error")
		}
	}()
	return nil
}

// StartCron schedules the daily pipeline and the dispatch slots. A slot that
// fires while a run is in progress is skipped.
func (s *Server) StartCron(daily string, dispatchSlots []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if daily != "" {
		if _, err := s.cron.AddFunc(daily, s.runScheduledPipeline); err != nil {
			return fmt.Errorf("failed to add pipeline schedule %q: %w", daily, err)
		}
	}
	if s.dispatch != nil {
		for _, spec := range dispatchSlots {
			if _, err := s.cron.AddFunc(spec, s.runScheduledDispatch); err != nil {
				return fmt.Errorf("failed to add dispatch schedule %q: %w", spec, err)
			}
		}
	}

	s.cron.Start()
	s.logger.WithFields(logrus.Fields{"daily": daily, "dispatch": dispatchSlots}).Info("Schedules started")
	return nil
}

func (s *Server) runScheduledPipeline() {
	if s.runner.Status.Running() {
		s.logger.Info("Cron skipped: pipeline is busy")
		return
	}
	s.logger.Info("Cron triggered: starting daily pipeline")
	if _, err := s.runner.Run(context.Background()); err != nil {
		s.logger.WithError(err).Warn("Scheduled pipeline did not run")
	}
}

func (s *Server) runScheduledDispatch() {
	if s.runner.Status.Running() {
		s.logger.Info("Cron skipped: pipeline is busy")
		return
	}
	if err := s.dispatch(context.Background()); err != nil {
		if errors.Is(err, store.ErrLocked) {
			s.logger.Info("Cron skipped: another run holds the lock")
			return
		}
		s.logger.WithError(err).Error("Scheduled dispatch failed")
	}
}

// Shutdown stops the schedules, waits for running jobs, and stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down status server")

	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
	}

	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
