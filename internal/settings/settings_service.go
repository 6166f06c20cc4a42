package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/eliezerb2/presence/internal/audit"
	"github.com/eliezerb2/presence/internal/calendar"
	settingserrors "github.com/eliezerb2/presence/internal/settings/errors"
	"github.com/eliezerb2/presence/internal/shared/apperror"
	"github.com/eliezerb2/presence/internal/shared/contextutil"
	"github.com/eliezerb2/presence/internal/student"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	DefaultsKey      = "settings:defaults"
	defaultsCacheTTL = 10 * time.Minute

	initialLatenessThreshold  = 3
	initialYomLoBaLiThreshold = 3
)

// Provider is what the monthly evaluator reads.
//
//go:generate mockgen -source=settings_service.go -destination=mock/settings_service_mock.go -package=mock
type Provider interface {
	GetDefaults(ctx context.Context) (Settings, error)
	GetOverride(ctx context.Context, studentID uuid.UUID, ym calendar.YearMonth) (*StudentMonthlyOverride, error)
	OverridesForMonth(ctx context.Context, ym calendar.YearMonth) (map[uuid.UUID]StudentMonthlyOverride, error)
}

type Service interface {
	Provider
	GetSettings(ctx context.Context) (SettingsResponse, error)
	UpdateDefaults(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
	UpsertOverride(ctx context.Context, req UpsertOverrideRequest) (OverrideResponse, error)
	ListOverrides(ctx context.Context, month string) ([]OverrideResponse, error)
	DeleteOverride(ctx context.Context, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	students student.Directory
	audit    audit.Recorder
	rdb      *redis.Client
	sf       *singleflight.Group
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	students student.Directory,
	auditRecorder audit.Recorder,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("settings.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("settings.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		students: students,
		audit:    auditRecorder,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		logger:   l,
	}
}

func (s *service) GetDefaults(ctx context.Context) (Settings, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, DefaultsKey).Result()
		if err == nil {
			var st Settings
			if err := json.Unmarshal([]byte(cached), &st); err == nil {
				return st, nil
			}
		}
	}

	v, err, _ := s.sf.Do(DefaultsKey, func() (interface{}, error) {
		st, err := s.repo.Get(ctx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, settingserrors.ErrSettingsNotConfigured
			}
			return nil, err
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(st); err == nil {
				s.rdb.Set(ctx, DefaultsKey, payload, defaultsCacheTTL)
			}
		}
		return *st, nil
	})
	if err != nil {
		return Settings{}, err
	}
	return v.(Settings), nil
}

// GetOverride returns nil without error when no override exists.
func (s *service) GetOverride(ctx context.Context, studentID uuid.UUID, ym calendar.YearMonth) (*StudentMonthlyOverride, error) {
	o, err := s.repo.FindOverride(ctx, studentID, ym.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return o, nil
}

func (s *service) OverridesForMonth(ctx context.Context, ym calendar.YearMonth) (map[uuid.UUID]StudentMonthlyOverride, error) {
	overrides, err := s.repo.FindOverridesByMonth(ctx, ym.String())
	if err != nil {
		return nil, err
	}
	byStudent := make(map[uuid.UUID]StudentMonthlyOverride, len(overrides))
	for _, o := range overrides {
		byStudent[o.StudentID] = o
	}
	return byStudent, nil
}

func (s *service) GetSettings(ctx context.Context) (SettingsResponse, error) {
	st, err := s.GetDefaults(ctx)
	if err != nil {
		return SettingsResponse{}, err
	}
	return mapToResponse(st), nil
}

func (s *service) UpdateDefaults(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error) {
	if req.LatenessThresholdDefault != nil && *req.LatenessThresholdDefault < 0 {
		return SettingsResponse{}, settingserrors.ErrInvalidLatenessThreshold
	}
	if req.YomLoBaLiThresholdDefault != nil && *req.YomLoBaLiThresholdDefault < 1 {
		return SettingsResponse{}, settingserrors.ErrInvalidYomLoBaLiThreshold
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update settings begin tx failed", zap.Error(err))
		return SettingsResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	current, err := qtx.Get(ctx)
	var before audit.Snapshot
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		current = &Settings{
			ID:                        SingletonID,
			LatenessThresholdDefault:  initialLatenessThreshold,
			YomLoBaLiThresholdDefault: initialYomLoBaLiThreshold,
		}
	case err != nil:
		s.logger.Error("update settings load failed", zap.Error(err))
		return SettingsResponse{}, err
	default:
		before = current.Snapshot()
	}

	applyUpdate(current, req)

	if err := qtx.Save(ctx, current); err != nil {
		s.logger.Error("update settings persist failed", zap.Error(err))
		return SettingsResponse{}, err
	}

	if err := s.audit.Record(ctx, tx, audit.Entry{
		Actor:    actorOf(ctx),
		Action:   audit.ActionSettingsUpdate,
		Entity:   audit.EntitySettings,
		EntityID: "1",
		Before:   before,
		After:    current.Snapshot(),
	}); err != nil {
		return SettingsResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update settings commit failed", zap.Error(err))
		return SettingsResponse{}, err
	}

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, DefaultsKey).Err(); err != nil {
			s.logger.Error("failed to invalidate settings cache", zap.Error(err))
		}
	}

	s.logger.Info("settings updated",
		zap.Int("lateness_threshold_default", current.LatenessThresholdDefault),
		zap.Int("yom_lo_ba_li_threshold_default", current.YomLoBaLiThresholdDefault),
	)
	return mapToResponse(*current), nil
}

func applyUpdate(st *Settings, req UpdateSettingsRequest) {
	if req.LatenessThresholdDefault != nil {
		st.LatenessThresholdDefault = *req.LatenessThresholdDefault
	}
	if req.YomLoBaLiThresholdDefault != nil {
		st.YomLoBaLiThresholdDefault = *req.YomLoBaLiThresholdDefault
	}
	if req.ManagerName != nil {
		st.ManagerName = *req.ManagerName
	}
	if req.ManagerPhone != nil {
		st.ManagerPhone = *req.ManagerPhone
	}
	if req.CourtChairName != nil {
		st.CourtChairName = *req.CourtChairName
	}
	if req.CourtChairPhone != nil {
		st.CourtChairPhone = *req.CourtChairPhone
	}
}

func (s *service) UpsertOverride(ctx context.Context, req UpsertOverrideRequest) (OverrideResponse, error) {
	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return OverrideResponse{}, apperror.InvalidField("student_id")
	}
	ym, err := calendar.ParseYearMonth(req.YearMonth)
	if err != nil {
		return OverrideResponse{}, err
	}
	if req.LatenessThreshold != nil && *req.LatenessThreshold < 0 {
		return OverrideResponse{}, settingserrors.ErrInvalidLatenessThreshold
	}
	if req.YomLoBaLiThreshold != nil && *req.YomLoBaLiThreshold < 1 {
		return OverrideResponse{}, settingserrors.ErrInvalidYomLoBaLiThreshold
	}

	if _, err := s.students.Get(ctx, studentID); err != nil {
		if apperror.Is(err, apperror.CodeNotFound) {
			return OverrideResponse{}, apperror.InvalidField("student_id")
		}
		return OverrideResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return OverrideResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	o := &StudentMonthlyOverride{
		ID:                 uuid.New(),
		StudentID:          studentID,
		YearMonth:          ym.String(),
		LatenessThreshold:  req.LatenessThreshold,
		YomLoBaLiThreshold: req.YomLoBaLiThreshold,
	}

	var before audit.Snapshot
	existing, err := qtx.FindOverride(ctx, studentID, ym.String())
	switch {
	case err == nil:
		before = existing.Snapshot()
		o.ID = existing.ID
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return OverrideResponse{}, err
	}

	if err := qtx.UpsertOverride(ctx, o); err != nil {
		s.logger.Error("upsert override persist failed", zap.Error(err))
		return OverrideResponse{}, err
	}

	if err := s.audit.Record(ctx, tx, audit.Entry{
		Actor:    actorOf(ctx),
		Action:   audit.ActionMonthlyOverrideUpsert,
		Entity:   audit.EntityMonthlyOverride,
		EntityID: o.ID.String(),
		Before:   before,
		After:    o.Snapshot(),
	}); err != nil {
		return OverrideResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return OverrideResponse{}, err
	}

	return mapOverrideToResponse(*o), nil
}

func (s *service) ListOverrides(ctx context.Context, month string) ([]OverrideResponse, error) {
	ym, err := calendar.ParseYearMonth(month)
	if err != nil {
		return nil, err
	}
	overrides, err := s.repo.FindOverridesByMonth(ctx, ym.String())
	if err != nil {
		return nil, err
	}
	resp := make([]OverrideResponse, 0, len(overrides))
	for _, o := range overrides {
		resp = append(resp, mapOverrideToResponse(o))
	}
	return resp, nil
}

func (s *service) DeleteOverride(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.InvalidField("id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindOverrideByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return settingserrors.ErrOverrideNotFound
		}
		return err
	}

	if err := qtx.DeleteOverride(ctx, id); err != nil {
		return err
	}

	if err := s.audit.Record(ctx, tx, audit.Entry{
		Actor:    actorOf(ctx),
		Action:   audit.ActionMonthlyOverrideDelete,
		Entity:   audit.EntityMonthlyOverride,
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

func mapToResponse(s Settings) SettingsResponse {
	return SettingsResponse{
		LatenessThresholdDefault:  s.LatenessThresholdDefault,
		YomLoBaLiThresholdDefault: s.YomLoBaLiThresholdDefault,
		ManagerName:               s.ManagerName,
		ManagerPhone:              s.ManagerPhone,
		CourtChairName:            s.CourtChairName,
		CourtChairPhone:           s.CourtChairPhone,
	}
}

func mapOverrideToResponse(o StudentMonthlyOverride) OverrideResponse {
	return OverrideResponse{
		ID:                 o.ID.String(),
		StudentID:          o.StudentID.String(),
		YearMonth:          o.YearMonth,
		LatenessThreshold:  o.LatenessThreshold,
		YomLoBaLiThreshold: o.YomLoBaLiThreshold,
	}
}
