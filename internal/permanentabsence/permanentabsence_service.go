package permanentabsence

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/eliezerb2/presence/internal/attendance"
	"github.com/eliezerb2/presence/internal/audit"
	"github.com/eliezerb2/presence/internal/calendar"
	permanentabsenceerrors "github.com/eliezerb2/presence/internal/permanentabsence/errors"
	"github.com/eliezerb2/presence/internal/shared/apperror"
	"github.com/eliezerb2/presence/internal/shared/connection"
	"github.com/eliezerb2/presence/internal/shared/contextutil"
	"github.com/eliezerb2/presence/internal/student"
	studenterrors "github.com/eliezerb2/presence/internal/student/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Resolver applies standing weekday exemptions to a day's attendance.
//
//go:generate mockgen -source=permanentabsence_service.go -destination=mock/permanentabsence_service_mock.go -package=mock
type Resolver interface {
	ResolveForDate(ctx context.Context, date, now time.Time) (ResolveResult, error)
}

type Service interface {
	Resolver
	Create(ctx context.Context, req CreatePermanentAbsenceRequest) (PermanentAbsenceResponse, error)
	List(ctx context.Context, studentID string) ([]PermanentAbsenceResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db         *sql.DB
	repo       Repository
	attendance attendance.Repository
	calendar   calendar.Resolver
	students   student.Directory
	audit      audit.Recorder
	weekend    calendar.Weekend
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	attendanceRepo attendance.Repository,
	calendarResolver calendar.Resolver,
	students student.Directory,
	auditRecorder audit.Recorder,
	weekend calendar.Weekend,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("permanentabsence.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("permanentabsence.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		attendance: attendanceRepo,
		calendar:   calendarResolver,
		students:   students,
		audit:      auditRecorder,
		weekend:    weekend,
		logger:     l,
	}
}

type outcome int

const (
	outcomeUnchanged outcome = iota
	outcomeCreated
	outcomeApplied
	outcomeSkipped
)

// ResolveForDate marks every exempt active student PERMANENT_ABSENCE for
// date. Each student is its own transaction; a failure is audited and the
// pass continues with the next student.
func (s *service) ResolveForDate(ctx context.Context, date, now time.Time) (ResolveResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	date = calendar.DateOf(date)

	result := ResolveResult{Date: calendar.FormatDate(date)}
	if !s.calendar.IsSchoolDay(ctx, date) {
		log.Debug("not a school day, skipping permanent absences", zap.String("date", result.Date))
		return result, nil
	}
	result.SchoolDay = true

	absences, err := s.repo.FindByWeekday(ctx, date.Weekday())
	if err != nil {
		return result, err
	}

	for _, pa := range absences {
		st, err := s.students.Get(ctx, pa.StudentID)
		if err != nil {
			if errors.Is(err, studenterrors.ErrStudentNotFound) {
				continue
			}
			result.Failed++
			log.Error("load student for permanent absence failed",
				zap.String("student_id", pa.StudentID.String()),
				zap.String("date", result.Date),
				zap.Error(err),
			)
			s.recordFailure(ctx, pa, date, now, err)
			continue
		}
		if !st.IsActive() {
			continue
		}

		out, err := s.applyOne(ctx, pa.StudentID, date, now)
		if err != nil {
			result.Failed++
			log.Error("apply permanent absence failed",
				zap.String("student_id", pa.StudentID.String()),
				zap.String("date", result.Date),
				zap.Error(err),
			)
			s.recordFailure(ctx, pa, date, now, err)
			continue
		}
		switch out {
		case outcomeCreated:
			result.Created++
		case outcomeApplied:
			result.Applied++
		case outcomeSkipped:
			result.Skipped++
		default:
			result.Unchanged++
		}
	}

	log.Info("permanent absences resolved",
		zap.String("date", result.Date),
		zap.Int("created", result.Created),
		zap.Int("applied", result.Applied),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

func (s *service) applyOne(ctx context.Context, studentID uuid.UUID, date, now time.Time) (outcome, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return outcomeUnchanged, err
	}
	defer tx.Rollback()

	qtx := s.attendance.WithTx(tx)

	var (
		rec     *attendance.Record
		before  audit.Snapshot
		created bool
	)
	rec, err = qtx.FindByStudentAndDateForUpdate(ctx, studentID, date)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		rec = attendance.NewRecord(studentID, date)
		rec.Status = attendance.StatusPermanentAbsence
		created, err = qtx.CreateIfAbsent(ctx, rec)
		if err != nil {
			return outcomeUnchanged, err
		}
		if !created {
			// Inserted concurrently; treat it like any existing record.
			if rec, err = qtx.FindByStudentAndDateForUpdate(ctx, studentID, date); err != nil {
				return outcomeUnchanged, err
			}
		}
	case err != nil:
		return outcomeUnchanged, err
	}

	if !created {
		if rec.OverrideLocked {
			return outcomeSkipped, nil
		}
		if rec.Status == attendance.StatusPermanentAbsence {
			return outcomeUnchanged, nil
		}
		before = rec.Snapshot()
		rec.Status = attendance.StatusPermanentAbsence
		rec.SubStatus = attendance.SubStatusNone
		rec.ReportedBy = attendance.ReportedByAuto
		if err := qtx.Update(ctx, rec); err != nil {
			return outcomeUnchanged, err
		}
	}

	if err := s.audit.Record(ctx, tx, audit.Entry{
		Actor:      audit.ActorAuto,
		Action:     audit.ActionPermanentAbsenceApply,
		Entity:     audit.EntityAttendance,
		EntityID:   rec.ID.String(),
		Before:     before,
		After:      rec.Snapshot(),
		OccurredAt: now,
	}); err != nil {
		return outcomeUnchanged, err
	}

	if err := tx.Commit(); err != nil {
		return outcomeUnchanged, err
	}
	if created {
		return outcomeCreated, nil
	}
	return outcomeApplied, nil
}

func (s *service) recordFailure(ctx context.Context, pa PermanentAbsence, date, now time.Time, cause error) {
	err := s.audit.Record(ctx, nil, audit.Entry{
		Actor:      audit.ActorAuto,
		Action:     audit.ActionSweepRecordError,
		Entity:     audit.EntityPermanentAbsence,
		EntityID:   pa.ID.String(),
		Detail:     calendar.FormatDate(date) + ": " + cause.Error(),
		OccurredAt: now,
	})
	if err != nil {
		s.logger.Error("audit permanent absence failure failed", zap.Error(err))
	}
}

func (s *service) Create(ctx context.Context, req CreatePermanentAbsenceRequest) (PermanentAbsenceResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return PermanentAbsenceResponse{}, apperror.InvalidField("student_id")
	}
	weekday, err := calendar.ParseWeekday(req.Weekday)
	if err != nil {
		return PermanentAbsenceResponse{}, err
	}
	if s.weekend.Contains(weekday) {
		return PermanentAbsenceResponse{}, permanentabsenceerrors.ErrWeekdayNotSchoolDay
	}
	if _, err := s.students.Get(ctx, studentID); err != nil {
		if errors.Is(err, studenterrors.ErrStudentNotFound) {
			return PermanentAbsenceResponse{}, studenterrors.ErrUnknownStudent
		}
		return PermanentAbsenceResponse{}, err
	}

	pa := PermanentAbsence{
		ID:        uuid.New(),
		StudentID: studentID,
		Weekday:   weekday,
		Reason:    strings.TrimSpace(req.Reason),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PermanentAbsenceResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, &pa); err != nil {
		if _, dup := connection.UniqueViolation(err); dup {
			return PermanentAbsenceResponse{}, permanentabsenceerrors.ErrPermanentAbsenceExists
		}
		log.Error("create permanent absence failed", zap.Error(err))
		return PermanentAbsenceResponse{}, err
	}

	if err := s.audit.Record(ctx, tx, audit.Entry{
		Actor:    actorOf(ctx),
		Action:   audit.ActionPermanentAbsenceAdd,
		Entity:   audit.EntityPermanentAbsence,
		EntityID: pa.ID.String(),
		After:    pa.Snapshot(),
	}); err != nil {
		return PermanentAbsenceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PermanentAbsenceResponse{}, err
	}

	log.Info("permanent absence created",
		zap.String("id", pa.ID.String()),
		zap.String("student_id", studentID.String()),
		zap.String("weekday", weekday.String()),
	)
	return mapToResponse(pa), nil
}

func (s *service) List(ctx context.Context, studentID string) ([]PermanentAbsenceResponse, error) {
	var filter *uuid.UUID
	if studentID != "" {
		id, err := uuid.Parse(studentID)
		if err != nil {
			return nil, apperror.InvalidField("student_id")
		}
		filter = &id
	}

	list, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]PermanentAbsenceResponse, 0, len(list))
	for _, pa := range list {
		resp = append(resp, mapToResponse(pa))
	}
	return resp, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.InvalidField("id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return permanentabsenceerrors.ErrPermanentAbsenceNotFound
		}
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return permanentabsenceerrors.ErrPermanentAbsenceNotFound
		}
		return err
	}

	if err := s.audit.Record(ctx, tx, audit.Entry{
		Actor:    actorOf(ctx),
		Action:   audit.ActionPermanentAbsenceDrop,
		Entity:   audit.EntityPermanentAbsence,
		EntityID: id,
		Before:   existing.Snapshot(),
	}); err != nil {
		return err
	}

	return tx.Commit()
}

func actorOf(ctx context.Context) string {
	if a := contextutil.GetActor(ctx); a != "" {
		return a
	}
	return audit.ActorManager
}

func mapToResponse(p PermanentAbsence) PermanentAbsenceResponse {
	return PermanentAbsenceResponse{
		ID:        p.ID.String(),
		StudentID: p.StudentID.String(),
		Weekday:   strings.ToLower(p.Weekday.String()),
		Reason:    p.Reason,
	}
}
