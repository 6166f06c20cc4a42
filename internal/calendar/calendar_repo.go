package calendar

import (
	"context"
	"database/sql"

	"github.com/eliezerb2/presence/internal/shared/connection"
	"gorm.io/gorm"
)

//go:generate mockgen -source=calendar_repo.go -destination=mock/calendar_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, h *SchoolHoliday) error
	FindByID(ctx context.Context, id string) (*SchoolHoliday, error)
	FindAllByYear(ctx context.Context, year int) ([]SchoolHoliday, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.BindTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, h *SchoolHoliday) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*SchoolHoliday, error) {
	var h SchoolHoliday
	err := r.db.WithContext(ctx).First(&h, "id = ?", id).Error
	return &h, err
}

func (r *repository) FindAllByYear(ctx context.Context, year int) ([]SchoolHoliday, error) {
	var holidays []SchoolHoliday
	ym := YearMonth{Year: year, Month: 1}
	err := r.db.WithContext(ctx).
		Where("holiday_date >= ? AND holiday_date < ?", ym.Start(), ym.Start().AddDate(1, 0, 0)).
		Order("holiday_date ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&SchoolHoliday{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
