package automation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/eliezerb2/presence/internal/attendance"
	automationerrors "github.com/eliezerb2/presence/internal/automation/errors"
	"github.com/eliezerb2/presence/internal/calendar"
	"github.com/eliezerb2/presence/internal/claim"
	"go.uber.org/zap"
)

type SchedulerConfig struct {
	// SweepInterval is how often the daily sweep is re-run.
	SweepInterval time.Duration
	// EvaluateAt is the school-local time of the daily claim evaluation.
	EvaluateAt attendance.ClockTime
}

func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		SweepInterval: time.Minute,
		EvaluateAt:    attendance.ClockTime{Hour: 17, Minute: 0},
	}
}

// Scheduler drives the sweep and the claim evaluation from a ticker.
type Scheduler struct {
	sweeper   Sweeper
	evaluator claim.Evaluator
	schedule  attendance.Schedule
	cfg       SchedulerConfig
	metrics   *Metrics
	logger    *zap.Logger

	mu            sync.Mutex
	lastEvaluated time.Time
}

func NewScheduler(
	sweeper Sweeper,
	evaluator claim.Evaluator,
	schedule attendance.Schedule,
	cfg SchedulerConfig,
	metrics *Metrics,
	logger ...*zap.Logger,
) *Scheduler {
	l := zap.L().Named("automation.scheduler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("automation.scheduler")
	}
	if schedule.Location == nil {
		schedule.Location = time.UTC
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = DefaultSchedulerConfig().SweepInterval
	}
	return &Scheduler{
		sweeper:   sweeper,
		evaluator: evaluator,
		schedule:  schedule,
		cfg:       cfg,
		metrics:   metrics,
		logger:    l,
	}
}

// Run ticks until ctx is cancelled. now is read once per tick.
func (s *Scheduler) Run(ctx context.Context, now func() time.Time) {
	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	s.logger.Info("scheduler started",
		zap.Duration("sweep_interval", s.cfg.SweepInterval),
		zap.String("evaluate_at", s.cfg.EvaluateAt.String()),
	)

	s.Tick(ctx, now())
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.Tick(ctx, now())
		}
	}
}

// Tick sweeps today and, once per day after EvaluateAt, evaluates the current
// month. On the first day of a month the previous month is evaluated too.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) {
	now = now.In(s.schedule.Location)
	date := s.schedule.DateOf(now)

	if _, err := s.sweeper.RunDailySweep(ctx, date, now); err != nil {
		if errors.Is(err, automationerrors.ErrSweepInProgress) {
			s.logger.Debug("sweep already running elsewhere", zap.String("date", calendar.FormatDate(date)))
		} else {
			s.logger.Error("daily sweep failed", zap.String("date", calendar.FormatDate(date)), zap.Error(err))
		}
	}

	if now.Before(s.cfg.EvaluateAt.On(date, s.schedule.Location)) || !s.claimEvaluation(date) {
		return
	}

	months := []calendar.YearMonth{calendar.YearMonthOf(date)}
	if date.Day() == 1 {
		months = append([]calendar.YearMonth{calendar.YearMonthOf(date).Previous()}, months...)
	}
	for _, ym := range months {
		res, err := s.evaluator.EvaluateMonth(ctx, ym, now)
		if err != nil {
			s.metrics.IncrementEvaluation("error")
			s.logger.Error("claim evaluation failed", zap.String("period", ym.String()), zap.Error(err))
			// Retry on the next tick.
			s.resetEvaluation()
			continue
		}
		s.metrics.IncrementEvaluation("completed")
		s.logger.Info("claim evaluation done",
			zap.String("period", res.Period),
			zap.Int("created", len(res.Created)),
		)
	}
}

func (s *Scheduler) claimEvaluation(date time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastEvaluated.Equal(date) {
		return false
	}
	s.lastEvaluated = date
	return true
}

func (s *Scheduler) resetEvaluation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastEvaluated = time.Time{}
}
