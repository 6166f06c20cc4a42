package automation_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/eliezerb2/presence/internal/attendance"
	"github.com/eliezerb2/presence/internal/automation"
	automationerrors "github.com/eliezerb2/presence/internal/automation/errors"
	"github.com/eliezerb2/presence/internal/calendar"
	"github.com/eliezerb2/presence/internal/claim"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeSweeper struct {
	mu    sync.Mutex
	calls []time.Time
	err   error
}

func (f *fakeSweeper) RunDailySweep(ctx context.Context, date, now time.Time) (automation.SweepResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, now)
	return automation.SweepResult{Date: calendar.FormatDate(date)}, f.err
}

func (f *fakeSweeper) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeEvaluator struct {
	mu     sync.Mutex
	months []string
	errs   []error
}

func (f *fakeEvaluator) EvaluateMonth(ctx context.Context, ym calendar.YearMonth, evaluatedOn time.Time) (claim.EvaluationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.months = append(f.months, ym.String())
	var err error
	if len(f.errs) > 0 {
		err, f.errs = f.errs[0], f.errs[1:]
	}
	return claim.EvaluationResult{Period: ym.String()}, err
}

func newScheduler(sweeper automation.Sweeper, evaluator claim.Evaluator, interval time.Duration) *automation.Scheduler {
	return automation.NewScheduler(
		sweeper,
		evaluator,
		attendance.DefaultSchedule(time.UTC),
		automation.SchedulerConfig{
			SweepInterval: interval,
			EvaluateAt:    attendance.ClockTime{Hour: 17, Minute: 0},
		},
		nil,
		zap.NewNop(),
	)
}

func TestScheduler_Tick(t *testing.T) {
	ctx := context.Background()

	t.Run("evaluates once a day after the cutoff", func(t *testing.T) {
		sweeper, evaluator := &fakeSweeper{}, &fakeEvaluator{}
		s := newScheduler(sweeper, evaluator, time.Minute)

		s.Tick(ctx, time.Date(2026, 10, 15, 16, 59, 0, 0, time.UTC))
		s.Tick(ctx, time.Date(2026, 10, 15, 17, 0, 0, 0, time.UTC))
		s.Tick(ctx, time.Date(2026, 10, 15, 17, 1, 0, 0, time.UTC))
		s.Tick(ctx, time.Date(2026, 10, 16, 17, 5, 0, 0, time.UTC))

		assert.Equal(t, 4, sweeper.count())
		assert.Equal(t, []string{"2026-10", "2026-10"}, evaluator.months)
	})

	t.Run("first of the month closes the previous month", func(t *testing.T) {
		sweeper, evaluator := &fakeSweeper{}, &fakeEvaluator{}
		s := newScheduler(sweeper, evaluator, time.Minute)

		s.Tick(ctx, time.Date(2026, 11, 1, 18, 0, 0, 0, time.UTC))

		assert.Equal(t, []string{"2026-10", "2026-11"}, evaluator.months)
	})

	t.Run("failed evaluation retries on the next tick", func(t *testing.T) {
		sweeper := &fakeSweeper{}
		evaluator := &fakeEvaluator{errs: []error{errors.New("settings not configured")}}
		s := newScheduler(sweeper, evaluator, time.Minute)

		s.Tick(ctx, time.Date(2026, 10, 15, 17, 0, 0, 0, time.UTC))
		s.Tick(ctx, time.Date(2026, 10, 15, 17, 1, 0, 0, time.UTC))
		s.Tick(ctx, time.Date(2026, 10, 15, 17, 2, 0, 0, time.UTC))

		assert.Equal(t, []string{"2026-10", "2026-10"}, evaluator.months)
	})

	t.Run("sweep errors do not block evaluation", func(t *testing.T) {
		sweeper := &fakeSweeper{err: automationerrors.ErrSweepInProgress}
		evaluator := &fakeEvaluator{}
		s := newScheduler(sweeper, evaluator, time.Minute)

		s.Tick(ctx, time.Date(2026, 10, 15, 17, 30, 0, 0, time.UTC))

		assert.Equal(t, []string{"2026-10"}, evaluator.months)
	})
}

func TestScheduler_RunStopsOnCancel(t *testing.T) {
	sweeper := &fakeSweeper{}
	s := newScheduler(sweeper, &fakeEvaluator{}, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Run(ctx, func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) })
	}()

	assert.Eventually(t, func() bool { return sweeper.count() >= 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
