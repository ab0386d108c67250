package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoblog/config"
	"autoblog/dispatch"
	"autoblog/events"
	"autoblog/metrics"
	"autoblog/site"
	"autoblog/social"
	"autoblog/store"
	"autoblog/types"
)

type recordingEvents struct {
	mu     sync.Mutex
	events []events.StepEvent
}

func (r *recordingEvents) Publish(ctx context.Context, e events.StepEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordingEvents) Close() error { return nil }

type fakes struct {
	calls      []string
	articleErr error
	shareErr   error
	panicIn    string
	configErr  error
}

func (f *fakes) record(name string) {
	f.calls = append(f.calls, name)
	if f.panicIn == name {
		panic("boom")
	}
}

func (f *fakes) Generate(ctx context.Context) (*types.Article, error) {
	f.record(StepGenerateArticle)
	return &types.Article{}, f.articleErr
}

func (f *fakes) FromLatestArticle(ctx context.Context) (*types.QueueItem, string, error) {
	f.record(StepGenerateShare)
	return nil, "", f.shareErr
}

func (f *fakes) Standalone(ctx context.Context) (*types.QueueItem, string, error) {
	f.record(StepGenerateStandalone)
	return &types.QueueItem{}, "q.json", nil
}

func (f *fakes) Build(ctx context.Context) error {
	f.record(StepBuildSite)
	return nil
}

func (f *fakes) Publish(ctx context.Context) error { return nil }

func (f *fakes) ReflectAndPlan(ctx context.Context) (*types.ReflectionRecord, *types.Strategy, error) {
	f.record(StepReflect)
	return &types.ReflectionRecord{}, &types.Strategy{}, nil
}

type fakeQueue struct {
	f    *fakes
	name string
}

func (q fakeQueue) ProcessQueue(ctx context.Context) (dispatch.Report, error) {
	q.f.record(q.name)
	return dispatch.Report{}, nil
}

func (f *fakes) components() Components {
	return Components{
		Articles: f,
		Social:   f,
		DispatchX: func() (QueueProcessor, error) {
			return fakeQueue{f, StepDispatchX}, nil
		},
		DispatchInstagram: func() (QueueProcessor, error) {
			if f.configErr != nil {
				return nil, f.configErr
			}
			return fakeQueue{f, StepDispatchInstagram}, nil
		},
		Builder:   f,
		Publisher: func(ctx context.Context) (site.Publisher, error) { return f, nil },
		Reflector: f,
	}
}

func newTestRunner(t *testing.T, f *fakes) (*Runner, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	r := NewRunner(store.New(t.TempDir()), DailySteps(f.components()), logger)
	r.Now = func() time.Time { return time.Date(2026, 2, 10, 6, 0, 0, 0, time.UTC) }
	return r, hook
}

func statuses(report *RunReport) map[string]string {
	out := map[string]string{}
	for _, s := range report.Steps {
		out[s.Name] = s.Status
	}
	return out
}

func TestRunExecutesStepsInOrder(t *testing.T) {
	f := &fakes{}
	r, _ := newTestRunner(t, f)
	rec := &recordingEvents{}
	r.Events = rec
	r.Metrics = metrics.New()

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		StepGenerateArticle, StepGenerateShare, StepGenerateStandalone,
		StepDispatchX, StepDispatchInstagram, StepBuildSite, StepReflect,
	}, f.calls)
	assert.Empty(t, report.Failed())
	assert.NotEmpty(t, report.RunID)

	require.NotEmpty(t, rec.events)
	assert.Equal(t, events.RunStep, rec.events[0].Step)
	assert.Equal(t, events.StatusStarted, rec.events[0].Status)
	last := rec.events[len(rec.events)-1]
	assert.Equal(t, events.RunStep, last.Step)
	assert.Equal(t, events.StatusSucceeded, last.Status)
	for _, e := range rec.events {
		assert.Equal(t, report.RunID, e.RunID)
	}

	snap := r.Status.Snapshot()
	assert.Equal(t, StateComplete, snap.State)
	assert.Len(t, snap.Steps, 7)
}

func TestFailedArticleSkipsShareButNotLaterSteps(t *testing.T) {
	f := &fakes{articleErr: errors.New("model unavailable")}
	r, _ := newTestRunner(t, f)

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	got := statuses(report)
	assert.Equal(t, events.StatusFailed, got[StepGenerateArticle])
	assert.Equal(t, events.StatusSkipped, got[StepGenerateShare])
	assert.Equal(t, events.StatusSucceeded, got[StepGenerateStandalone])
	assert.Equal(t, events.StatusSucceeded, got[StepReflect])
	assert.NotContains(t, f.calls, StepGenerateShare)
	assert.Equal(t, []string{StepGenerateArticle}, report.Failed())
}

func TestNoArticleToShareIsSkipped(t *testing.T) {
	f := &fakes{shareErr: social.ErrSkipped}
	r, _ := newTestRunner(t, f)

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, events.StatusSkipped, statuses(report)[StepGenerateShare])
	assert.Empty(t, report.Failed())
}

func TestPanicAndConfigErrorAreIsolated(t *testing.T) {
	f := &fakes{panicIn: StepDispatchX, configErr: &config.ConfigurationError{Key: "INSTAGRAM_ACCESS_TOKEN"}}
	r, hook := newTestRunner(t, f)

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	got := statuses(report)
	assert.Equal(t, events.StatusFailed, got[StepDispatchX])
	assert.Equal(t, events.StatusFailed, got[StepDispatchInstagram])
	assert.Equal(t, events.StatusSucceeded, got[StepBuildSite])
	assert.Equal(t, events.StatusSucceeded, got[StepReflect])

	var failures int
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel && e.Message == "Step failed" {
			failures++
		}
	}
	assert.Equal(t, 2, failures)
}

func TestRunRefusesWhenLocked(t *testing.T) {
	f := &fakes{}
	r, _ := newTestRunner(t, f)
	unlock, err := r.Store.Lock()
	require.NoError(t, err)
	defer unlock()

	_, err = r.Run(context.Background())
	assert.ErrorIs(t, err, store.ErrLocked)
	assert.Empty(t, f.calls)
	assert.Equal(t, StateError, r.Status.Snapshot().State)
}

func TestRunRefusesWhileBusy(t *testing.T) {
	f := &fakes{}
	r, _ := newTestRunner(t, f)
	require.True(t, r.Status.Begin("other", time.Now()))

	_, err := r.Run(context.Background())
	assert.ErrorIs(t, err, ErrBusy)
	assert.Empty(t, f.calls)
}

func TestDryRunExecutesNothing(t *testing.T) {
	f := &fakes{}
	r, _ := newTestRunner(t, f)
	r.DryRun = true

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Empty(t, f.calls)
	for _, s := range report.Steps {
		assert.Equal(t, events.StatusSkipped, s.Status, s.Name)
	}
}
