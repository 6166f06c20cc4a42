package claim

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/eliezerb2/presence/internal/attendance"
	"github.com/eliezerb2/presence/internal/audit"
	"github.com/eliezerb2/presence/internal/calendar"
	claimerrors "github.com/eliezerb2/presence/internal/claim/errors"
	"github.com/eliezerb2/presence/internal/notification"
	"github.com/eliezerb2/presence/internal/settings"
	"github.com/eliezerb2/presence/internal/shared/apperror"
	"github.com/eliezerb2/presence/internal/shared/connection"
	"github.com/eliezerb2/presence/internal/shared/contextutil"
	"github.com/eliezerb2/presence/internal/student"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Evaluator turns a month of attendance into claims.
//
//go:generate mockgen -source=claim_service.go -destination=mock/claim_service_mock.go -package=mock
type Evaluator interface {
	EvaluateMonth(ctx context.Context, ym calendar.YearMonth, evaluatedOn time.Time) (EvaluationResult, error)
}

type Service interface {
	Evaluator
	CloseClaim(ctx context.Context, id string, now time.Time) (ClaimResponse, error)
	GetByID(ctx context.Context, id string) (ClaimResponse, error)
	List(ctx context.Context, req ListRequest) ([]ClaimResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	attendance attendance.Repository
	settings   settings.Provider
	students   student.Directory
	audit      audit.Recorder
	dispatcher notification.Dispatcher
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	attendanceRepo attendance.Repository,
	settingsProvider settings.Provider,
	students student.Directory,
	auditRecorder audit.Recorder,
	dispatcher notification.Dispatcher,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("claim.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("claim.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		attendance: attendanceRepo,
		settings:   settingsProvider,
		students:   students,
		audit:      auditRecorder,
		dispatcher: dispatcher,
		logger:     l,
	}
}

type violation struct {
	reason    Reason
	count     int
	threshold int
}

// violations applies the decision rule: lateness must exceed its threshold,
// Yom-Lo-Ba-Li only has to reach it.
func violations(c attendance.MonthlyCount, t settings.Thresholds) []violation {
	var out []violation
	if c.LateCount > t.Late {
		out = append(out, violation{reason: ReasonLateThreshold, count: c.LateCount, threshold: t.Late})
	}
	if c.YomCount >= t.YomLoBaLi {
		out = append(out, violation{reason: ReasonThirdYomLoBaLi, count: c.YomCount, threshold: t.YomLoBaLi})
	}
	return out
}

func (s *service) EvaluateMonth(ctx context.Context, ym calendar.YearMonth, evaluatedOn time.Time) (EvaluationResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	result := EvaluationResult{Period: ym.String(), Created: []ClaimResponse{}}

	defaults, err := s.settings.GetDefaults(ctx)
	if err != nil {
		return result, err
	}
	overrides, err := s.settings.OverridesForMonth(ctx, ym)
	if err != nil {
		return result, err
	}
	students, err := s.students.ListActive(ctx)
	if err != nil {
		return result, err
	}
	counts, err := s.attendance.CountMonthly(ctx, ym.Start(), ym.End())
	if err != nil {
		return result, err
	}
	byStudent := make(map[uuid.UUID]attendance.MonthlyCount, len(counts))
	for _, c := range counts {
		byStudent[c.StudentID] = c
	}

	dateOpened := calendar.DateOf(evaluatedOn)
	for _, st := range students {
		result.Evaluated++

		var override *settings.StudentMonthlyOverride
		if o, ok := overrides[st.ID]; ok {
			override = &o
		}
		count := byStudent[st.ID]
		count.StudentID = st.ID

		for _, v := range violations(count, defaults.Resolve(override)) {
			c, created, err := s.open(ctx, st, v, ym, dateOpened, defaults, evaluatedOn)
			if err != nil {
				result.Failed++
				log.Error("open claim failed",
					zap.String("student_id", st.ID.String()),
					zap.String("reason", string(v.reason)),
					zap.Error(err),
				)
				s.recordError(ctx, audit.ActionSweepRecordError, st.ID.String(), err, evaluatedOn)
				continue
			}
			if !created {
				result.Existing++
				continue
			}
			result.Created = append(result.Created, mapToResponse(*c))
			s.notify(ctx, *c, st, defaults, evaluatedOn)
		}
	}

	log.Info("month evaluated",
		zap.String("period", result.Period),
		zap.Int("students", result.Evaluated),
		zap.Int("created", len(result.Created)),
		zap.Int("existing", result.Existing),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

func recipientsFor(st student.Student, defaults settings.Settings) []notification.Recipient {
	return []notification.Recipient{
		{Role: notification.RoleManager, Name: defaults.ManagerName, Phone: defaults.ManagerPhone},
		{Role: notification.RoleStudent, Name: st.FullName(), Phone: st.Phone},
		{Role: notification.RoleCourtChair, Name: defaults.CourtChairName, Phone: defaults.CourtChairPhone},
	}
}

// open creates the claim unless an OPEN one already covers it. It reports
// false when nothing was created.
func (s *service) open(
	ctx context.Context,
	st student.Student,
	v violation,
	ym calendar.YearMonth,
	dateOpened time.Time,
	defaults settings.Settings,
	now time.Time,
) (*Claim, bool, error) {
	openedMonth := calendar.YearMonthOf(dateOpened).String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	_, err = qtx.FindOpen(ctx, st.ID, v.reason, openedMonth, ym.String())
	if err == nil {
		return nil, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	c := &Claim{
		ID:          uuid.New(),
		StudentID:   st.ID,
		Reason:      v.reason,
		OpenedMonth: openedMonth,
		Period:      ym.String(),
		Status:      StatusOpen,
		DateOpened:  dateOpened,
		NotifiedTo:  notification.Roles(recipientsFor(st, defaults)),
		Count:       v.count,
		Threshold:   v.threshold,
	}
	if err := qtx.Create(ctx, c); err != nil {
		// Another evaluator opened it first.
		if _, dup := connection.UniqueViolation(err); dup {
			return nil, false, nil
		}
		return nil, false, err
	}

	if err := s.audit.Record(ctx, tx, audit.Entry{
		Actor:      audit.ActorAuto,
		Action:     audit.ActionCreateClaim,
		Entity:     audit.EntityClaim,
		EntityID:   c.ID.String(),
		After:      c.Snapshot(),
		OccurredAt: now,
	}); err != nil {
		return nil, false, err
	}

	if err := tx.Commit(); err != nil {
		return nil, false, err
	}
	return c, true, nil
}

// notify runs after the claim is committed; a failed dispatch is audited and
// the claim stays open.
func (s *service) notify(ctx context.Context, c Claim, st student.Student, defaults settings.Settings, now time.Time) {
	payload := map[string]string{
		"claim_id":     c.ID.String(),
		"student_id":   st.ID.String(),
		"student_name": st.FullName(),
		"reason":       string(c.Reason),
		"period":       c.Period,
		"count":        strconv.Itoa(c.Count),
		"threshold":    strconv.Itoa(c.Threshold),
		"date_opened":  calendar.FormatDate(c.DateOpened),
	}
	if err := s.dispatcher.Notify(ctx, notification.KindClaimOpened, recipientsFor(st, defaults), payload); err != nil {
		s.logger.Warn("claim notification failed", zap.String("claim_id", c.ID.String()), zap.Error(err))
		s.recordError(ctx, audit.ActionClaimNotifyError, c.ID.String(), err, now)
	}
}

func (s *service) recordError(ctx context.Context, action, entityID string, cause error, now time.Time) {
	err := s.audit.Record(ctx, nil, audit.Entry{
		Actor:      audit.ActorAuto,
		Action:     action,
		Entity:     audit.EntityClaim,
		EntityID:   entityID,
		Detail:     cause.Error(),
		OccurredAt: now,
	})
	if err != nil {
		s.logger.Error("audit claim error failed", zap.String("action", action), zap.Error(err))
	}
}

func (s *service) CloseClaim(ctx context.Context, id string, now time.Time) (ClaimResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return ClaimResponse{}, apperror.InvalidField("id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ClaimResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	c, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ClaimResponse{}, claimerrors.ErrClaimNotFound
		}
		return ClaimResponse{}, err
	}
	if c.Status == StatusClosed {
		return ClaimResponse{}, claimerrors.ErrClaimAlreadyClosed
	}

	before := c.Snapshot()
	closedAt := now
	c.Status = StatusClosed
	c.ClosedAt = &closedAt

	if err := qtx.Update(ctx, c); err != nil {
		log.Error("close claim failed", zap.String("claim_id", id), zap.Error(err))
		return ClaimResponse{}, err
	}

	if err := s.audit.Record(ctx, tx, audit.Entry{
		Actor:      audit.ActorManager,
		Action:     audit.ActionCloseClaim,
		Entity:     audit.EntityClaim,
		EntityID:   id,
		Before:     before,
		After:      c.Snapshot(),
		OccurredAt: now,
	}); err != nil {
		return ClaimResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ClaimResponse{}, err
	}

	log.Info("claim closed", zap.String("claim_id", id))
	return mapToResponse(*c), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ClaimResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ClaimResponse{}, apperror.InvalidField("id")
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ClaimResponse{}, claimerrors.ErrClaimNotFound
		}
		return ClaimResponse{}, err
	}
	return mapToResponse(*c), nil
}

func (s *service) List(ctx context.Context, req ListRequest) ([]ClaimResponse, error) {
	var f Filter
	if req.Status != "" {
		f.Status = Status(req.Status)
		if !f.Status.Valid() {
			return nil, claimerrors.ErrInvalidClaimStatus
		}
	}
	if req.Reason != "" {
		f.Reason = Reason(req.Reason)
		if !f.Reason.Valid() {
			return nil, claimerrors.ErrInvalidClaimReason
		}
	}
	if req.Month != "" {
		ym, err := calendar.ParseYearMonth(req.Month)
		if err != nil {
			return nil, err
		}
		f.Period = ym.String()
	}
	if req.StudentID != "" {
		id, err := uuid.Parse(req.StudentID)
		if err != nil {
			return nil, apperror.InvalidField("student_id")
		}
		f.StudentID = &id
	}

	claims, err := s.repo.Find(ctx, f)
	if err != nil {
		return nil, err
	}
	resp := make([]ClaimResponse, 0, len(claims))
	for _, c := range claims {
		resp = append(resp, mapToResponse(c))
	}
	return resp, nil
}

func mapToResponse(c Claim) ClaimResponse {
	resp := ClaimResponse{
		ID:         c.ID.String(),
		StudentID:  c.StudentID.String(),
		Reason:     string(c.Reason),
		Status:     string(c.Status),
		Period:     c.Period,
		DateOpened: calendar.FormatDate(c.DateOpened),
		NotifiedTo: c.NotifiedTo,
		Count:      c.Count,
		Threshold:  c.Threshold,
	}
	if c.ClosedAt != nil {
		closed := c.ClosedAt.UTC().Format(time.RFC3339)
		resp.ClosedAt = &closed
	}
	return resp
}
