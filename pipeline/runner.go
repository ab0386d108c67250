// Package pipeline runs the daily content pipeline: a fixed sequence of
// independent steps under the store's run lock.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"autoblog/config"
	"autoblog/events"
	"autoblog/metrics"
	"autoblog/store"
)

var (
	// ErrBusy is returned when a run is already in progress in this process.
	ErrBusy = errors.New("pipeline: a run is already in progress")

	// ErrStepSkipped lets a step report that it had nothing to do.
	ErrStepSkipped = errors.New("pipeline: step skipped")
)

// Step is one named unit of the pipeline. When After is set, the step only
// runs if the named step succeeded earlier in the same run.
type Step struct {
	Name  string
	After string
	Run   func(ctx context.Context) error
}

// RunReport is the outcome of one run.
type RunReport struct {
	RunID      string       `json:"run_id"`
	DryRun     bool         `json:"dry_run"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Steps      []StepResult `json:"steps"`
}

// Failed lists the names of the steps that failed.
func (r *RunReport) Failed() []string {
	var out []string
	for _, s := range r.Steps {
		if s.Status == events.StatusFailed {
			out = append(out, s.Name)
		}
	}
	return out
}

// Runner executes the steps in order, isolating each one.
type Runner struct {
	Store       *store.Store
	Steps       []Step
	Events      events.Publisher
	Metrics     *metrics.Collector
	Status      *Status
	Logger      logrus.FieldLogger
	StepTimeout time.Duration
	Now         func() time.Time
	// DryRun records every step as skipped without running it or taking
	// the lock.
	DryRun bool
}

// NewRunner creates a runner with the default step timeout and no event sink.
func NewRunner(st *store.Store, steps []Step, logger logrus.FieldLogger) *Runner {
	return &Runner{
		Store:       st,
		Steps:       steps,
		Events:      events.NoopPublisher{},
		Status:      NewStatus(),
		Logger:      logger,
		StepTimeout: config.StepTimeout,
		Now:         time.Now,
	}
}

// Run executes one pipeline run. Step failures are recorded in the report
// and never stop later steps; an error is returned only when the run could
// not start.
func (r *Runner) Run(ctx context.Context) (*RunReport, error) {
	report := &RunReport{
		RunID:     uuid.NewString(),
		DryRun:    r.DryRun,
		StartedAt: r.Now(),
	}
	log := r.Logger.WithField("run_id", report.RunID)

	if !r.Status.Begin(report.RunID, report.StartedAt) {
		return nil, ErrBusy
	}

	if !r.DryRun {
		unlock, err := r.Store.Lock()
		if err != nil {
			r.Status.Finish(r.Now(), err)
			return nil, err
		}
		defer unlock()
	}

	log.Info("Daily pipeline started")
	r.publish(ctx, events.StepEvent{RunID: report.RunID, Step: events.RunStep, Status: events.StatusStarted, Timestamp: report.StartedAt})

	succeeded := make(map[string]bool, len(r.Steps))
	for _, step := range r.Steps {
		result := r.runStep(ctx, report.RunID, step, succeeded)
		succeeded[step.Name] = result.Status == events.StatusSucceeded
		report.Steps = append(report.Steps, result)
	}

	report.FinishedAt = r.Now()
	r.Status.Finish(report.FinishedAt, nil)
	r.Metrics.MarkRun(report.FinishedAt)
	r.publish(ctx, events.StepEvent{
		RunID:      report.RunID,
		Step:       events.RunStep,
		Status:     events.StatusSucceeded,
		DurationMs: report.FinishedAt.Sub(report.StartedAt).Milliseconds(),
		Timestamp:  report.FinishedAt,
	})

	log.WithFields(logrus.Fields{
		"steps":  len(report.Steps),
		"failed": report.Failed(),
	}).Info("Daily pipeline finished")
	return report, nil
}

func (r *Runner) runStep(ctx context.Context, runID string, step Step, succeeded map[string]bool) StepResult {
	log := r.Logger.WithFields(logrus.Fields{"run_id": runID, "step": step.Name})
	result := StepResult{Name: step.Name, StartedAt: r.Now()}

	r.Status.StartStep(step.Name)
	defer func() { r.Status.FinishStep(result) }()

	switch {
	case r.DryRun:
		result.Status = events.StatusSkipped
		log.Info("Dry run; step not executed")
	case step.After != "" && !succeeded[step.After]:
		result.Status = events.StatusSkipped
		log.WithField("after", step.After).Info("Skipping step; prerequisite did not succeed")
	default:
		log.Info("Step started")
		r.publish(ctx, events.StepEvent{RunID: runID, Step: step.Name, Status: events.StatusStarted, Timestamp: result.StartedAt})

		err := r.guard(ctx, step)
		result.Duration = r.Now().Sub(result.StartedAt)
		switch {
		case err == nil:
			result.Status = events.StatusSucceeded
			log.WithField("duration", result.Duration.String()).Info("Step succeeded")
		case errors.Is(err, ErrStepSkipped):
			result.Status = events.StatusSkipped
			log.WithError(err).Info("Step had nothing to do")
		default:
			result.Status = events.StatusFailed
			result.Error = err.Error()
			log.WithError(err).Error("Step failed")
		}
	}

	r.Metrics.ObserveStep(step.Name, result.Status, result.Duration)
	r.publish(ctx, events.StepEvent{
		RunID:      runID,
		Step:       step.Name,
		Status:     result.Status,
		Error:      result.Error,
		DurationMs: result.Duration.Milliseconds(),
		Timestamp:  r.Now(),
	})
	return result
}

// guard runs the step under the step timeout, turning panics into errors.
func (r *Runner) guard(ctx context.Context, step Step) (err error) {
	if r.StepTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.StepTimeout)
		defer cancel()
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic in step %s: %v", step.Name, rec)
		}
	}()
	return step.Run(ctx)
}

func (r *Runner) publish(ctx context.Context, event events.StepEvent) {
	if r.Events == nil {
		return
	}
	if err := r.Events.Publish(ctx, event); err != nil {
		r.Logger.WithError(err).WithField("step", event.Step).Warn("Failed to publish step event")
	}
}
