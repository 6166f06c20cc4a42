package automation

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/eliezerb2/presence/internal/attendance"
	"github.com/eliezerb2/presence/internal/audit"
	automationerrors "github.com/eliezerb2/presence/internal/automation/errors"
	"github.com/eliezerb2/presence/internal/calendar"
	"github.com/eliezerb2/presence/internal/notification"
	"github.com/eliezerb2/presence/internal/permanentabsence"
	"github.com/eliezerb2/presence/internal/shared/contextutil"
	"github.com/eliezerb2/presence/internal/student"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	stepPermanentAbsence = "permanent_absence"
	stepSeed             = "seed"
)

// Sweeper runs the daily automation for one date.
//
//go:generate mockgen -source=automation_sweep.go -destination=mock/automation_sweep_mock.go -package=mock
type Sweeper interface {
	RunDailySweep(ctx context.Context, date, now time.Time) (SweepResult, error)
}

type DailySweeper struct {
	db         *sql.DB
	attendance attendance.Repository
	calendar   calendar.Resolver
	absences   permanentabsence.Resolver
	students   student.Directory
	audit      audit.Recorder
	dispatcher notification.Dispatcher
	schedule   attendance.Schedule

	lock     RunLock
	ledger   ReminderLedger
	fallback *MemoryReminderLedger
	metrics  *Metrics
	logger   *zap.Logger
}

func NewSweeper(
	db *sql.DB,
	attendanceRepo attendance.Repository,
	calendarResolver calendar.Resolver,
	absences permanentabsence.Resolver,
	students student.Directory,
	auditRecorder audit.Recorder,
	dispatcher notification.Dispatcher,
	schedule attendance.Schedule,
	logger ...*zap.Logger,
) *DailySweeper {
	l := zap.L().Named("automation.sweeper")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("automation.sweeper")
	}
	fallback := NewMemoryReminderLedger()
	return &DailySweeper{
		db:         db,
		attendance: attendanceRepo,
		calendar:   calendarResolver,
		absences:   absences,
		students:   students,
		audit:      auditRecorder,
		dispatcher: dispatcher,
		schedule:   schedule,
		lock:       NewLocalRunLock(),
		ledger:     fallback,
		fallback:   fallback,
		logger:     l,
	}
}

func (s *DailySweeper) WithRunLock(lock RunLock) *DailySweeper {
	if lock != nil {
		s.lock = lock
	}
	return s
}

func (s *DailySweeper) WithReminderLedger(ledger ReminderLedger) *DailySweeper {
	if ledger != nil {
		s.ledger = ledger
	}
	return s
}

func (s *DailySweeper) WithMetrics(m *Metrics) *DailySweeper {
	s.metrics = m
	return s
}

// RunDailySweep applies every automation step for date against the single
// instant now:
//
//	calendar -> permanent absences -> seeding -> 09:30 reminder
//	         -> 10:00 late -> 10:30 Yom-Lo-Ba-Li -> 16:00 auto close
//
// Each record write is its own transaction. A failing record is audited and
// the sweep moves on; only failures that leave the roster unknown abort it.
func (s *DailySweeper) RunDailySweep(ctx context.Context, date, now time.Time) (SweepResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	started := time.Now()

	date = calendar.DateOf(date)
	result := SweepResult{
		Date:        calendar.FormatDate(date),
		At:          now.Format(time.RFC3339),
		Transitions: map[string]int{},
	}

	key := SweepLockKey(date)
	acquired, err := s.lock.Acquire(ctx, key)
	if err != nil {
		s.metrics.ObserveSweep("error", time.Since(started))
		return result, err
	}
	if !acquired {
		s.metrics.ObserveSweep("locked", time.Since(started))
		return result, automationerrors.ErrSweepInProgress
	}
	defer func() {
		if err := s.lock.Release(context.WithoutCancel(ctx), key); err != nil {
			log.Warn("release sweep lock failed", zap.String("key", key), zap.Error(err))
		}
	}()

	if !s.calendar.IsSchoolDay(ctx, date) {
		log.Info("sweep skipped, not a school day", zap.String("date", result.Date))
		s.metrics.ObserveSweep("non_school_day", time.Since(started))
		return result, nil
	}
	result.SchoolDay = true

	if err := s.run(ctx, date, now, &result); err != nil {
		s.metrics.ObserveSweep("error", time.Since(started))
		log.Error("sweep aborted", zap.String("date", result.Date), zap.Error(err))
		return result, err
	}

	s.metrics.ObserveSweep("completed", time.Since(started))
	log.Info("sweep completed",
		zap.String("date", result.Date),
		zap.Time("at", now),
		zap.Int("permanent_absence", result.PermanentAbsence),
		zap.Int("seeded", result.Seeded),
		zap.Int("reminded", result.Reminded),
		zap.Any("transitions", result.Transitions),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

func (s *DailySweeper) run(ctx context.Context, date, now time.Time, result *SweepResult) error {
	day := s.schedule.Day(date)

	pa, err := s.absences.ResolveForDate(ctx, date, now)
	if err != nil {
		return err
	}
	result.PermanentAbsence = pa.Created + pa.Applied
	result.Failed += pa.Failed
	s.metrics.AddTransitions(stepPermanentAbsence, result.PermanentAbsence)

	roster, err := s.students.ListActive(ctx)
	if err != nil {
		return err
	}
	for _, st := range roster {
		created, err := s.seed(ctx, st.ID, date, now)
		if err != nil {
			s.recordFailure(ctx, st.ID.String(), err, now, result)
			continue
		}
		if created {
			result.Seeded++
		}
	}
	s.metrics.AddTransitions(stepSeed, result.Seeded)

	records, err := s.attendance.FindAllByDate(ctx, date)
	if err != nil {
		return err
	}

	if day.InReminderWindow(now) {
		result.Reminded = s.remind(ctx, roster, records, date, now)
	}

	// Bucket by rule so each step runs over the roster before the next one.
	pending := make(map[attendance.Rule][]attendance.Record, 3)
	for _, r := range records {
		if rule, ok := attendance.NextTransition(r, now, day); ok {
			pending[rule] = append(pending[rule], r)
		}
	}
	for _, rule := range attendance.Rules() {
		applied := 0
		for _, r := range pending[rule] {
			ok, err := s.transition(ctx, r.ID.String(), rule, now, day)
			if err != nil {
				s.recordFailure(ctx, r.ID.String(), err, now, result)
				continue
			}
			if ok {
				applied++
			}
		}
		result.Transitions[string(rule)] = applied
		s.metrics.AddTransitions(string(rule), applied)
	}
	return nil
}

// seed creates the NOT_REPORTED record that marks the first automation touch.
func (s *DailySweeper) seed(ctx context.Context, studentID uuid.UUID, date, now time.Time) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	r := attendance.NewRecord(studentID, date)
	created, err := s.attendance.WithTx(tx).CreateIfAbsent(ctx, r)
	if err != nil || !created {
		return false, err
	}

	if err := s.audit.Record(ctx, tx, audit.Entry{
		Actor:      audit.ActorAuto,
		Action:     audit.ActionSeedNotReported,
		Entity:     audit.EntityAttendance,
		EntityID:   r.ID.String(),
		After:      r.Snapshot(),
		OccurredAt: now,
	}); err != nil {
		return false, err
	}
	return true, tx.Commit()
}

// transition re-reads the record under a row lock and applies rule only if it
// still holds. It reports false when the record moved on in the meantime.
func (s *DailySweeper) transition(ctx context.Context, recordID string, rule attendance.Rule, now time.Time, day attendance.Day) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	qtx := s.attendance.WithTx(tx)

	r, err := qtx.FindByIDForUpdate(ctx, recordID)
	if err != nil {
		return false, err
	}
	if current, ok := attendance.NextTransition(*r, now, day); !ok || current != rule {
		return false, nil
	}

	before := r.Snapshot()
	attendance.Apply(r, rule, now, day)

	if err := qtx.Update(ctx, r); err != nil {
		return false, err
	}

	if err := s.audit.Record(ctx, tx, audit.Entry{
		Actor:      audit.ActorAuto,
		Action:     rule.AuditAction(),
		Entity:     audit.EntityAttendance,
		EntityID:   recordID,
		Before:     before,
		After:      r.Snapshot(),
		OccurredAt: now,
	}); err != nil {
		return false, err
	}
	return true, tx.Commit()
}

func (s *DailySweeper) remind(ctx context.Context, roster []student.Student, records []attendance.Record, date, now time.Time) int {
	byStudent := make(map[uuid.UUID]attendance.Record, len(records))
	for _, r := range records {
		byStudent[r.StudentID] = r
	}

	sent := 0
	for _, st := range roster {
		r, ok := byStudent[st.ID]
		if !ok || r.Status != attendance.StatusNotReported || r.OverrideLocked {
			continue
		}

		ledger := s.ledger
		fresh, err := ledger.Reserve(ctx, st.ID, date)
		if err != nil {
			s.logger.Warn("reminder ledger unavailable, using local guard",
				zap.String("student_id", st.ID.String()),
				zap.Error(err),
			)
			ledger = s.fallback
			fresh, _ = ledger.Reserve(ctx, st.ID, date)
		}
		if !fresh {
			s.metrics.IncrementReminder("duplicate")
			continue
		}

		recipients := []notification.Recipient{
			{Role: notification.RoleStudent, Name: st.FullName(), Phone: st.Phone},
		}
		payload := map[string]string{
			"student_id":   st.ID.String(),
			"student_name": st.FullName(),
			"date":         calendar.FormatDate(date),
			"late_at":      s.schedule.Checkpoints.Late.String(),
		}
		if err := s.dispatcher.Notify(ctx, notification.KindAttendanceReminder, recipients, payload); err != nil {
			s.metrics.IncrementReminder("error")
			s.logger.Warn("reminder dispatch failed", zap.String("student_id", st.ID.String()), zap.Error(err))
			// A later sweep inside the window may try again.
			if rerr := ledger.Release(ctx, st.ID, date); rerr != nil {
				s.logger.Warn("release reminder reservation failed", zap.Error(rerr))
			}
			s.recordError(ctx, audit.ActionReminderDispatchError, r.ID.String(), err, now)
			continue
		}
		s.metrics.IncrementReminder("sent")
		sent++
	}
	return sent
}

func (s *DailySweeper) recordFailure(ctx context.Context, entityID string, cause error, now time.Time, result *SweepResult) {
	result.Failed++
	s.metrics.IncrementRecordFailure()
	contextutil.GetLogger(ctx, s.logger).Error("sweep record failed",
		zap.String("entity_id", entityID),
		zap.Error(cause),
	)
	s.recordError(ctx, audit.ActionSweepRecordError, entityID, cause, now)
}

func (s *DailySweeper) recordError(ctx context.Context, action, entityID string, cause error, now time.Time) {
	if errors.Is(cause, context.Canceled) {
		return
	}
	err := s.audit.Record(ctx, nil, audit.Entry{
		Actor:      audit.ActorAuto,
		Action:     action,
		Entity:     audit.EntityAttendance,
		EntityID:   entityID,
		Detail:     cause.Error(),
		OccurredAt: now,
	})
	if err != nil {
		s.logger.Error("audit sweep error failed", zap.String("action", action), zap.Error(err))
	}
}
