package calendar_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/eliezerb2/presence/internal/calendar"
	calendarerrors "github.com/eliezerb2/presence/internal/calendar/errors"
	"github.com/eliezerb2/presence/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeHolidayRepository struct {
	createFn        func(ctx context.Context, h *calendar.SchoolHoliday) error
	findByIDFn      func(ctx context.Context, id string) (*calendar.SchoolHoliday, error)
	findAllByYearFn func(ctx context.Context, year int) ([]calendar.SchoolHoliday, error)
	deleteFn        func(ctx context.Context, id string) error
	yearLookups     int
}

func (f *fakeHolidayRepository) WithTx(tx *sql.Tx) calendar.Repository {
	return f
}

func (f *fakeHolidayRepository) Create(ctx context.Context, h *calendar.SchoolHoliday) error {
	if f.createFn != nil {
		return f.createFn(ctx, h)
	}
	return nil
}

func (f *fakeHolidayRepository) FindByID(ctx context.Context, id string) (*calendar.SchoolHoliday, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeHolidayRepository) FindAllByYear(ctx context.Context, year int) ([]calendar.SchoolHoliday, error) {
	f.yearLookups++
	if f.findAllByYearFn != nil {
		return f.findAllByYearFn(ctx, year)
	}
	return nil, nil
}

func (f *fakeHolidayRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func date(s string) time.Time {
	d, _ := calendar.ParseDate(s)
	return d
}

func TestCalendarService_IsSchoolDay(t *testing.T) {
	ctx := context.Background()

	repo := &fakeHolidayRepository{
		findAllByYearFn: func(ctx context.Context, year int) ([]calendar.SchoolHoliday, error) {
			assert.Equal(t, 2026, year)
			return []calendar.SchoolHoliday{{ID: uuid.New(), Date: date("2026-10-19"), Description: "Sukkot break"}}, nil
		},
	}
	svc := calendar.NewService(nil, repo, nil, calendar.DefaultWeekend())

	assert.True(t, svc.IsSchoolDay(ctx, date("2026-10-15")), "thursday")
	assert.False(t, svc.IsSchoolDay(ctx, date("2026-10-16")), "friday is weekend")
	assert.False(t, svc.IsSchoolDay(ctx, date("2026-10-17")), "saturday is weekend")
	assert.True(t, svc.IsSchoolDay(ctx, date("2026-10-18")), "sunday is a school day")
	assert.False(t, svc.IsSchoolDay(ctx, date("2026-10-19")), "holiday")

	t.Run("lookup failure is not a holiday", func(t *testing.T) {
		failing := &fakeHolidayRepository{
			findAllByYearFn: func(ctx context.Context, year int) ([]calendar.SchoolHoliday, error) {
				return nil, errors.New("db down")
			},
		}
		svc := calendar.NewService(nil, failing, nil, calendar.DefaultWeekend())
		assert.True(t, svc.IsSchoolDay(ctx, date("2026-10-19")))
	})

	t.Run("timestamps use their local date", func(t *testing.T) {
		loc := time.FixedZone("IDT", 3*60*60)
		// 2026-10-18 23:30 UTC is Monday the 19th locally, a holiday.
		ts := time.Date(2026, 10, 19, 2, 30, 0, 0, loc)
		assert.False(t, svc.IsSchoolDay(ctx, ts))
	})
}

func TestCalendarService_IsSchoolDay_Cache(t *testing.T) {
	ctx := context.Background()
	rdb, redisMock := redismock.NewClientMock()

	repo := &fakeHolidayRepository{
		findAllByYearFn: func(ctx context.Context, year int) ([]calendar.SchoolHoliday, error) {
			return []calendar.SchoolHoliday{{Date: date("2026-10-19")}}, nil
		},
	}
	svc := calendar.NewService(nil, repo, rdb, calendar.DefaultWeekend())
	key := calendar.GetHolidaysKey(2026)

	t.Run("miss fills the cache", func(t *testing.T) {
		redisMock.ExpectGet(key).RedisNil()
		redisMock.ExpectSet(key, []byte(`["2026-10-19"]`), 6*time.Hour).SetVal("OK")

		assert.False(t, svc.IsSchoolDay(ctx, date("2026-10-19")))
		assert.Equal(t, 1, repo.yearLookups)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("hit skips the repository", func(t *testing.T) {
		redisMock.ExpectGet(key).SetVal(`["2026-10-19"]`)

		assert.True(t, svc.IsSchoolDay(ctx, date("2026-10-20")))
		assert.Equal(t, 1, repo.yearLookups)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestCalendarService_CreateHoliday(t *testing.T) {
	ctx := context.Background()

	t.Run("success invalidates the year", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		rdb, redisMock := redismock.NewClientMock()

		repo := &fakeHolidayRepository{
			createFn: func(ctx context.Context, h *calendar.SchoolHoliday) error {
				assert.Equal(t, date("2026-12-25"), h.Date)
				assert.Equal(t, "Hanukkah", h.Description)
				return nil
			},
		}
		svc := calendar.NewService(db, repo, rdb, nil)

		expectTx(t, sqlMock, true)
		redisMock.ExpectDel(calendar.GetHolidaysKey(2026)).SetVal(1)

		resp, err := svc.CreateHoliday(ctx, calendar.CreateHolidayRequest{Date: "2026-12-25", Description: " Hanukkah "})
		assert.NoError(t, err)
		assert.Equal(t, "2026-12-25", resp.Date)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("duplicate date is a conflict", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo := &fakeHolidayRepository{
			createFn: func(ctx context.Context, h *calendar.SchoolHoliday) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: "uq_school_holiday_date"}
			},
		}
		svc := calendar.NewService(db, repo, nil, nil)

		expectTx(t, sqlMock, false)

		_, err = svc.CreateHoliday(ctx, calendar.CreateHolidayRequest{Date: "2026-12-25", Description: "Hanukkah"})
		assert.ErrorIs(t, err, calendarerrors.ErrHolidayExists)
		assert.True(t, apperror.Is(err, apperror.CodeConflict))
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("malformed date", func(t *testing.T) {
		svc := calendar.NewService(nil, &fakeHolidayRepository{}, nil, nil)
		_, err := svc.CreateHoliday(ctx, calendar.CreateHolidayRequest{Date: "25-12-2026", Description: "x"})
		assert.ErrorIs(t, err, calendarerrors.ErrInvalidDateFormat)
	})
}

func TestCalendarService_DeleteHoliday(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		svc := calendar.NewService(db, &fakeHolidayRepository{}, nil, nil)
		expectTx(t, sqlMock, false)

		err = svc.DeleteHoliday(ctx, uuid.New().String())
		assert.ErrorIs(t, err, calendarerrors.ErrHolidayNotFound)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid id", func(t *testing.T) {
		svc := calendar.NewService(nil, &fakeHolidayRepository{}, nil, nil)
		err := svc.DeleteHoliday(ctx, "nope")
		assert.True(t, apperror.Is(err, apperror.CodeInvalidInput))
	})
}
