package settings

import (
	"context"
	"database/sql"

	"github.com/eliezerb2/presence/internal/shared/connection"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=settings_repo.go -destination=mock/settings_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Get(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, s *Settings) error
	FindOverride(ctx context.Context, studentID uuid.UUID, yearMonth string) (*StudentMonthlyOverride, error)
	FindOverrideByID(ctx context.Context, id string) (*StudentMonthlyOverride, error)
	FindOverridesByMonth(ctx context.Context, yearMonth string) ([]StudentMonthlyOverride, error)
	UpsertOverride(ctx context.Context, o *StudentMonthlyOverride) error
	DeleteOverride(ctx context.Context, id string) error
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

func (r *repository) Get(ctx context.Context) (*Settings, error) {
	var s Settings
	err := r.db.WithContext(ctx).First(&s, "id = ?", SingletonID).Error
	return &s, err
}

func (r *repository) Save(ctx context.Context, s *Settings) error {
	s.ID = SingletonID
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) FindOverride(ctx context.Context, studentID uuid.UUID, yearMonth string) (*StudentMonthlyOverride, error) {
	var o StudentMonthlyOverride
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Where("year_month = ?", yearMonth).
		First(&o).Error
	return &o, err
}

func (r *repository) FindOverrideByID(ctx context.Context, id string) (*StudentMonthlyOverride, error) {
	var o StudentMonthlyOverride
	err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error
	return &o, err
}

func (r *repository) FindOverridesByMonth(ctx context.Context, yearMonth string) ([]StudentMonthlyOverride, error) {
	var overrides []StudentMonthlyOverride
	err := r.db.WithContext(ctx).
		Where("year_month = ?", yearMonth).
		Order("student_id").
		Find(&overrides).Error
	return overrides, err
}

// UpsertOverride inserts or replaces both thresholds of the
// (student_id, year_month) row; o.ID is refreshed from storage.
func (r *repository) UpsertOverride(ctx context.Context, o *StudentMonthlyOverride) error {
	return r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "student_id"}, {Name: "year_month"}},
				DoUpdates: clause.AssignmentColumns([]string{"lateness_threshold", "yom_lo_ba_li_threshold", "updated_at"}),
			},
			clause.Returning{Columns: []clause.Column{{Name: "id"}}},
		).
		Create(o).Error
}

func (r *repository) DeleteOverride(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&StudentMonthlyOverride{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
