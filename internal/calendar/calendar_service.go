package calendar

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	calendarerrors "github.com/eliezerb2/presence/internal/calendar/errors"
	"github.com/eliezerb2/presence/internal/shared/apperror"
	"github.com/eliezerb2/presence/internal/shared/connection"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	HolidaysKeyPrefix = "calendar:holidays:"
	holidaysCacheTTL  = 6 * time.Hour
)

func GetHolidaysKey(year int) string {
	return fmt.Sprintf("%s%d", HolidaysKeyPrefix, year)
}

// Resolver answers whether a date is a school day. It never fails: missing
// holiday data is treated as "not a holiday".
//
//go:generate mockgen -source=calendar_service.go -destination=mock/calendar_service_mock.go -package=mock
type Resolver interface {
	IsSchoolDay(ctx context.Context, date time.Time) bool
}

type Service interface {
	Resolver
	CheckDate(ctx context.Context, date string) (SchoolDayResponse, error)
	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	ListHolidays(ctx context.Context, year int) ([]HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	rdb     *redis.Client
	sf      *singleflight.Group
	weekend Weekend
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, weekend Weekend, logger ...*zap.Logger) Service {
	l := zap.L().Named("calendar.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("calendar.service")
	}
	if weekend == nil {
		weekend = DefaultWeekend()
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, weekend: weekend, logger: l}
}

func (s *service) IsSchoolDay(ctx context.Context, date time.Time) bool {
	date = DateOf(date)
	if s.weekend.Contains(date.Weekday()) {
		return false
	}

	holidays, err := s.holidaysOf(ctx, date.Year())
	if err != nil {
		s.logger.Warn("holiday lookup failed, treating date as regular",
			zap.String("date", FormatDate(date)),
			zap.Error(err),
		)
		return true
	}
	_, isHoliday := holidays[FormatDate(date)]
	return !isHoliday
}

func (s *service) CheckDate(ctx context.Context, date string) (SchoolDayResponse, error) {
	d, err := ParseDate(date)
	if err != nil {
		return SchoolDayResponse{}, err
	}
	return SchoolDayResponse{
		Date:      FormatDate(d),
		Weekday:   d.Weekday().String(),
		SchoolDay: s.IsSchoolDay(ctx, d),
	}, nil
}

func (s *service) holidaysOf(ctx context.Context, year int) (map[string]struct{}, error) {
	cacheKey := GetHolidaysKey(year)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var dates []string
			if err := json.Unmarshal([]byte(cached), &dates); err == nil {
				return toSet(dates), nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Debug("holiday cache read failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		holidays, err := s.repo.FindAllByYear(ctx, year)
		if err != nil {
			return nil, err
		}

		dates := make([]string, 0, len(holidays))
		for _, h := range holidays {
			dates = append(dates, FormatDate(h.Date))
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(dates); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, payload, holidaysCacheTTL).Err(); err != nil {
					s.logger.Debug("holiday cache write failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return dates, nil
	})
	if err != nil {
		return nil, err
	}

	return toSet(v.([]string)), nil
}

func toSet(dates []string) map[string]struct{} {
	set := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		set[d] = struct{}{}
	}
	return set
}

func (s *service) invalidate(ctx context.Context, year int) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetHolidaysKey(year)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate holiday cache", zap.String("key", cacheKey), zap.Error(err))
	}
}

func (s *service) CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error) {
	date, err := ParseDate(req.Date)
	if err != nil {
		return HolidayResponse{}, err
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return HolidayResponse{}, apperror.RequiredField("description")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create holiday begin tx failed", zap.Error(err))
		return HolidayResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	h := &SchoolHoliday{
		ID:          uuid.New(),
		Date:        date,
		Description: description,
	}
	if err := qtx.Create(ctx, h); err != nil {
		if _, dup := connection.UniqueViolation(err); dup {
			return HolidayResponse{}, calendarerrors.ErrHolidayExists
		}
		s.logger.Error("create holiday persist failed", zap.Error(err))
		return HolidayResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create holiday commit failed", zap.Error(err))
		return HolidayResponse{}, err
	}

	s.invalidate(ctx, date.Year())
	s.logger.Info("holiday created", zap.String("date", req.Date))

	return mapToResponse(*h), nil
}

func (s *service) ListHolidays(ctx context.Context, year int) ([]HolidayResponse, error) {
	holidays, err := s.repo.FindAllByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	resp := make([]HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		resp = append(resp, mapToResponse(h))
	}
	return resp, nil
}

func (s *service) DeleteHoliday(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.InvalidField("id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	h, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return calendarerrors.ErrHolidayNotFound
		}
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return calendarerrors.ErrHolidayNotFound
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidate(ctx, h.Date.Year())
	return nil
}

func mapToResponse(h SchoolHoliday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID.String(),
		Date:        FormatDate(h.Date),
		Description: h.Description,
	}
}
