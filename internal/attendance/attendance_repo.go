package attendance

import (
	"context"
	"database/sql"
	"time"

	"github.com/eliezerb2/presence/internal/shared/connection"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MonthlyCount aggregates one student's records over a month.
type MonthlyCount struct {
	StudentID uuid.UUID `gorm:"column:student_id"`
	LateCount int       `gorm:"column:late_count"`
	YomCount  int       `gorm:"column:yom_count"`
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *Record) error
	CreateIfAbsent(ctx context.Context, r *Record) (bool, error)
	FindByID(ctx context.Context, id string) (*Record, error)
	FindByIDForUpdate(ctx context.Context, id string) (*Record, error)
	FindByStudentAndDate(ctx context.Context, studentID uuid.UUID, date time.Time) (*Record, error)
	FindByStudentAndDateForUpdate(ctx context.Context, studentID uuid.UUID, date time.Time) (*Record, error)
	FindAllByDate(ctx context.Context, date time.Time) ([]Record, error)
	CountMonthly(ctx context.Context, from, to time.Time) ([]MonthlyCount, error)
	Update(ctx context.Context, r *Record) error
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

func (r *repository) Create(ctx context.Context, rec *Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

// CreateIfAbsent inserts rec unless a record for (student, date) exists.
// It reports whether a row was written.
func (r *repository) CreateIfAbsent(ctx context.Context, rec *Record) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "attendance_date"}},
			DoNothing: true,
		}).
		Create(rec)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Record, error) {
	var rec Record
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	return &rec, err
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Record, error) {
	var rec Record
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&rec, "id = ?", id).Error
	return &rec, err
}

func (r *repository) FindByStudentAndDate(ctx context.Context, studentID uuid.UUID, date time.Time) (*Record, error) {
	var rec Record
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Where("attendance_date = ?", date.Format("2006-01-02")).
		First(&rec).Error
	return &rec, err
}

func (r *repository) FindByStudentAndDateForUpdate(ctx context.Context, studentID uuid.UUID, date time.Time) (*Record, error) {
	var rec Record
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("student_id = ?", studentID).
		Where("attendance_date = ?", date.Format("2006-01-02")).
		First(&rec).Error
	return &rec, err
}

func (r *repository) FindAllByDate(ctx context.Context, date time.Time) ([]Record, error) {
	var rows []Record
	err := r.db.WithContext(ctx).
		Where("attendance_date = ?", date.Format("2006-01-02")).
		Order("student_id").
		Find(&rows).Error
	return rows, err
}

// CountMonthly counts LATE sub-statuses and YOM_LO_BA_LI statuses per
// student for dates in [from, to).
func (r *repository) CountMonthly(ctx context.Context, from, to time.Time) ([]MonthlyCount, error) {
	var counts []MonthlyCount
	err := r.db.WithContext(ctx).
		Model(&Record{}).
		Select(
			"student_id, "+
				"COUNT(*) FILTER (WHERE sub_status = ?) AS late_count, "+
				"COUNT(*) FILTER (WHERE status = ?) AS yom_count",
			SubStatusLate, StatusYomLoBaLi,
		).
		Where("attendance_date >= ? AND attendance_date < ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Group("student_id").
		Scan(&counts).Error
	return counts, err
}

func (r *repository) Update(ctx context.Context, rec *Record) error {
	return r.db.WithContext(ctx).Save(rec).Error
}
