package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "github.com/eliezerb2/presence/internal/attendance/errors"
	"github.com/eliezerb2/presence/internal/audit"
	"github.com/eliezerb2/presence/internal/calendar"
	"github.com/eliezerb2/presence/internal/shared/apperror"
	"github.com/eliezerb2/presence/internal/shared/connection"
	"github.com/eliezerb2/presence/internal/shared/contextutil"
	"github.com/eliezerb2/presence/internal/student"
	studenterrors "github.com/eliezerb2/presence/internal/student/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, studentID string, by ReportedBy, at time.Time) (RecordResponse, error)
	CheckOut(ctx context.Context, studentID string, by ReportedBy, at time.Time) (RecordResponse, error)
	ManagerOverride(ctx context.Context, recordID string, req OverrideRequest, now time.Time) (RecordResponse, error)
	ManagerOverrideForStudent(ctx context.Context, studentID, date string, req OverrideRequest, now time.Time) (RecordResponse, error)
	ClearOverrideLock(ctx context.Context, recordID string, now time.Time) (RecordResponse, error)
	GetByID(ctx context.Context, id string) (RecordResponse, error)
	ListByDate(ctx context.Context, date string) ([]RecordResponse, error)
	DailySummary(ctx context.Context, date string) (SummaryResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	students student.Directory
	audit    audit.Recorder
	schedule Schedule
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	students student.Directory,
	auditRecorder audit.Recorder,
	schedule Schedule,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		students: students,
		audit:    auditRecorder,
		schedule: schedule,
		logger:   l,
	}
}

func (s *service) lookupStudent(ctx context.Context, studentID string) (*student.Student, error) {
	id, err := uuid.Parse(studentID)
	if err != nil {
		return nil, apperror.InvalidField("student_id")
	}
	st, err := s.students.Get(ctx, id)
	if err != nil {
		if errors.Is(err, studenterrors.ErrStudentNotFound) {
			return nil, studenterrors.ErrUnknownStudent
		}
		return nil, err
	}
	return st, nil
}

func (s *service) CheckIn(ctx context.Context, studentID string, by ReportedBy, at time.Time) (RecordResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("check in requested", zap.String("student_id", studentID), zap.String("by", string(by)))

	st, err := s.lookupStudent(ctx, studentID)
	if err != nil {
		return RecordResponse{}, err
	}
	if !st.IsActive() {
		return RecordResponse{}, attendanceerrors.ErrStudentInactive
	}

	date := s.schedule.DateOf(at)
	day := s.schedule.Day(date)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("check in begin tx failed", zap.Error(err))
		return RecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rec, created, err := s.findOrNew(ctx, qtx, st.ID, date)
	if err != nil {
		return RecordResponse{}, err
	}
	if rec.OverrideLocked {
		log.Info("check in rejected, record locked", zap.String("record_id", rec.ID.String()))
		return RecordResponse{}, attendanceerrors.ErrRecordLocked
	}
	// A second tap by the same reporter changes nothing.
	if !created && rec.Status == StatusPresent && rec.CheckOutTime == nil && rec.ReportedBy == by {
		return mapToResponse(*rec), nil
	}

	var before audit.Snapshot
	if !created {
		before = rec.Snapshot()
	}

	firstArrival := at
	if rec.CheckInTime != nil && rec.CheckInTime.Before(at) {
		firstArrival = *rec.CheckInTime
	}
	checkIn := at
	rec.Status = StatusPresent
	rec.SubStatus = SubStatusNone
	if day.IsLate(firstArrival) {
		rec.SubStatus = SubStatusLate
	}
	rec.ReportedBy = by
	rec.CheckInTime = &checkIn
	rec.CheckOutTime = nil
	rec.ClosedReason = ClosedReasonNA

	if err := s.persist(ctx, qtx, rec, created); err != nil {
		log.Error("check in persist failed", zap.Error(err))
		return RecordResponse{}, err
	}

	if err := s.audit.Record(ctx, tx, audit.Entry{
		Actor:      by.Actor(),
		Action:     audit.ActionCheckIn,
		Entity:     audit.EntityAttendance,
		EntityID:   rec.ID.String(),
		Before:     before,
		After:      rec.Snapshot(),
		OccurredAt: at,
	}); err != nil {
		return RecordResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("check in commit failed", zap.Error(err))
		return RecordResponse{}, err
	}

	log.Info("check in success",
		zap.String("record_id", rec.ID.String()),
		zap.String("student_id", studentID),
		zap.String("sub_status", string(rec.SubStatus)),
	)
	return mapToResponse(*rec), nil
}

func (s *service) CheckOut(ctx context.Context, studentID string, by ReportedBy, at time.Time) (RecordResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	st, err := s.lookupStudent(ctx, studentID)
	if err != nil {
		return RecordResponse{}, err
	}

	date := s.schedule.DateOf(at)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("check out begin tx failed", zap.Error(err))
		return RecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rec, err := qtx.FindByStudentAndDateForUpdate(ctx, st.ID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RecordResponse{}, attendanceerrors.ErrNoRecordForDate
		}
		return RecordResponse{}, err
	}
	if rec.OverrideLocked {
		log.Info("check out rejected, record locked", zap.String("record_id", rec.ID.String()))
		return RecordResponse{}, attendanceerrors.ErrRecordLocked
	}

	before := rec.Snapshot()
	checkOut := at
	rec.Status = StatusLeft
	rec.ReportedBy = by
	rec.CheckOutTime = &checkOut
	rec.ClosedReason = ClosedReasonManual

	if err := qtx.Update(ctx, rec); err != nil {
		log.Error("check out persist failed", zap.Error(err))
		return RecordResponse{}, err
	}

	if err := s.audit.Record(ctx, tx, audit.Entry{
		Actor:      by.Actor(),
		Action:     audit.ActionCheckOut,
		Entity:     audit.EntityAttendance,
		EntityID:   rec.ID.String(),
		Before:     before,
		After:      rec.Snapshot(),
		OccurredAt: at,
	}); err != nil {
		return RecordResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("check out commit failed", zap.Error(err))
		return RecordResponse{}, err
	}

	log.Info("check out success", zap.String("record_id", rec.ID.String()), zap.String("student_id", studentID))
	return mapToResponse(*rec), nil
}

func (s *service) ManagerOverride(ctx context.Context, recordID string, req OverrideRequest, now time.Time) (RecordResponse, error) {
	if _, err := uuid.Parse(recordID); err != nil {
		return RecordResponse{}, apperror.InvalidField("record_id")
	}
	return s.override(ctx, req, now, func(qtx Repository) (*Record, bool, error) {
		rec, err := qtx.FindByIDForUpdate(ctx, recordID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, false, attendanceerrors.ErrRecordNotFound
			}
			return nil, false, err
		}
		return rec, false, nil
	})
}

// ManagerOverrideForStudent patches the record of (student, date), creating
// it first when the day has no record yet (e.g. an approved absence entered
// in advance).
func (s *service) ManagerOverrideForStudent(ctx context.Context, studentID, date string, req OverrideRequest, now time.Time) (RecordResponse, error) {
	st, err := s.lookupStudent(ctx, studentID)
	if err != nil {
		return RecordResponse{}, err
	}
	d, err := calendar.ParseDate(date)
	if err != nil {
		return RecordResponse{}, err
	}
	return s.override(ctx, req, now, func(qtx Repository) (*Record, bool, error) {
		return s.findOrNew(ctx, qtx, st.ID, d)
	})
}

type overridePatch struct {
	status       *Status
	subStatus    *SubStatus
	closedReason *ClosedReason
}

func parseOverride(req OverrideRequest) (overridePatch, error) {
	var p overridePatch
	if req.Status != nil {
		st := Status(*req.Status)
		if !st.Valid() {
			return p, attendanceerrors.ErrInvalidStatus
		}
		p.status = &st
	}
	if req.SubStatus != nil {
		sub := SubStatus(*req.SubStatus)
		if !sub.Valid() {
			return p, attendanceerrors.ErrInvalidSubStatus
		}
		p.subStatus = &sub
	}
	if req.ClosedReason != nil {
		cr := ClosedReason(*req.ClosedReason)
		if !cr.Valid() {
			return p, attendanceerrors.ErrInvalidClosedReason
		}
		p.closedReason = &cr
	}
	return p, nil
}

func (s *service) override(
	ctx context.Context,
	req OverrideRequest,
	now time.Time,
	load func(qtx Repository) (*Record, bool, error),
) (RecordResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	patch, err := parseOverride(req)
	if err != nil {
		return RecordResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("override begin tx failed", zap.Error(err))
		return RecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rec, created, err := load(qtx)
	if err != nil {
		return RecordResponse{}, err
	}

	var before audit.Snapshot
	if !created {
		before = rec.Snapshot()
	}

	if patch.status != nil {
		rec.Status = *patch.status
	}
	if patch.subStatus != nil {
		rec.SubStatus = *patch.subStatus
	}
	if patch.closedReason != nil {
		rec.ClosedReason = *patch.closedReason
	}
	if req.CheckInTime != nil {
		t := *req.CheckInTime
		rec.CheckInTime = &t
	}
	if req.CheckOutTime != nil {
		t := *req.CheckOutTime
		rec.CheckOutTime = &t
	}
	if req.ClearCheckIn {
		rec.CheckInTime = nil
	}
	if req.ClearCheckOut {
		rec.CheckOutTime = nil
	}
	if rec.CheckInTime != nil && rec.CheckOutTime != nil && rec.CheckOutTime.Before(*rec.CheckInTime) {
		return RecordResponse{}, attendanceerrors.ErrCheckOutBeforeCheckIn
	}

	lockedAt := now
	rec.ReportedBy = ReportedByManager
	rec.OverrideLocked = true
	rec.OverrideLockedAt = &lockedAt

	if err := s.persist(ctx, qtx, rec, created); err != nil {
		log.Error("override persist failed", zap.Error(err))
		return RecordResponse{}, err
	}

	if err := s.audit.Record(ctx, tx, audit.Entry{
		Actor:      audit.ActorManager,
		Action:     audit.ActionOverrideUpdate,
		Entity:     audit.EntityAttendance,
		EntityID:   rec.ID.String(),
		Before:     before,
		After:      rec.Snapshot(),
		OccurredAt: now,
	}); err != nil {
		return RecordResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("override commit failed", zap.Error(err))
		return RecordResponse{}, err
	}

	log.Info("override applied",
		zap.String("record_id", rec.ID.String()),
		zap.String("status", string(rec.Status)),
	)
	return mapToResponse(*rec), nil
}

func (s *service) ClearOverrideLock(ctx context.Context, recordID string, now time.Time) (RecordResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(recordID); err != nil {
		return RecordResponse{}, apperror.InvalidField("record_id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rec, err := qtx.FindByIDForUpdate(ctx, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RecordResponse{}, attendanceerrors.ErrRecordNotFound
		}
		return RecordResponse{}, err
	}
	if !rec.OverrideLocked {
		return mapToResponse(*rec), nil
	}

	before := rec.Snapshot()
	rec.OverrideLocked = false
	rec.OverrideLockedAt = nil

	if err := qtx.Update(ctx, rec); err != nil {
		log.Error("clear lock persist failed", zap.Error(err))
		return RecordResponse{}, err
	}

	if err := s.audit.Record(ctx, tx, audit.Entry{
		Actor:      audit.ActorManager,
		Action:     audit.ActionOverrideUnlock,
		Entity:     audit.EntityAttendance,
		EntityID:   rec.ID.String(),
		Before:     before,
		After:      rec.Snapshot(),
		OccurredAt: now,
	}); err != nil {
		return RecordResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return RecordResponse{}, err
	}

	log.Info("override lock cleared", zap.String("record_id", rec.ID.String()))
	return mapToResponse(*rec), nil
}

func (s *service) GetByID(ctx context.Context, id string) (RecordResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return RecordResponse{}, apperror.InvalidField("id")
	}
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RecordResponse{}, attendanceerrors.ErrRecordNotFound
		}
		return RecordResponse{}, err
	}
	return mapToResponse(*rec), nil
}

func (s *service) ListByDate(ctx context.Context, date string) ([]RecordResponse, error) {
	d, err := calendar.ParseDate(date)
	if err != nil {
		return nil, err
	}
	records, err := s.repo.FindAllByDate(ctx, d)
	if err != nil {
		return nil, err
	}
	resp := make([]RecordResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, mapToResponse(r))
	}
	return resp, nil
}

func (s *service) DailySummary(ctx context.Context, date string) (SummaryResponse, error) {
	d, err := calendar.ParseDate(date)
	if err != nil {
		return SummaryResponse{}, err
	}
	records, err := s.repo.FindAllByDate(ctx, d)
	if err != nil {
		return SummaryResponse{}, err
	}

	summary := SummaryResponse{
		Date:     calendar.FormatDate(d),
		Total:    len(records),
		ByStatus: make(map[string]int, len(AllStatuses())),
	}
	for _, st := range AllStatuses() {
		summary.ByStatus[string(st)] = 0
	}
	for _, r := range records {
		summary.ByStatus[string(r.Status)]++
		if r.SubStatus == SubStatusLate {
			summary.Late++
		}
		if r.OverrideLocked {
			summary.Locked++
		}
	}
	return summary, nil
}

// findOrNew loads (student, date) under a row lock, or returns an unsaved
// NOT_REPORTED record when none exists.
func (s *service) findOrNew(ctx context.Context, qtx Repository, studentID uuid.UUID, date time.Time) (*Record, bool, error) {
	rec, err := qtx.FindByStudentAndDateForUpdate(ctx, studentID, date)
	if err == nil {
		return rec, false, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewRecord(studentID, date), true, nil
	}
	return nil, false, err
}

func (s *service) persist(ctx context.Context, qtx Repository, rec *Record, created bool) error {
	if !created {
		return qtx.Update(ctx, rec)
	}
	if err := qtx.Create(ctx, rec); err != nil {
		if _, dup := connection.UniqueViolation(err); dup {
			return attendanceerrors.ErrRecordExists
		}
		return err
	}
	return nil
}

func mapToResponse(r Record) RecordResponse {
	return RecordResponse{
		ID:               r.ID.String(),
		StudentID:        r.StudentID.String(),
		Date:             calendar.FormatDate(r.Date),
		Status:           string(r.Status),
		SubStatus:        string(r.SubStatus),
		ReportedBy:       string(r.ReportedBy),
		CheckInTime:      r.CheckInTime,
		CheckOutTime:     r.CheckOutTime,
		ClosedReason:     string(r.ClosedReason),
		OverrideLocked:   r.OverrideLocked,
		OverrideLockedAt: r.OverrideLockedAt,
	}
}
