package student

import (
	"context"
	"database/sql"

	"github.com/eliezerb2/presence/internal/shared/connection"
	"gorm.io/gorm"
)

//go:generate mockgen -source=student_repo.go -destination=mock/student_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *Student) error
	FindByID(ctx context.Context, id string) (*Student, error)
	FindAll(ctx context.Context, status string) ([]Student, error)
	UpdateStatus(ctx context.Context, id, status string) error
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

func (r *repository) Create(ctx context.Context, s *Student) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Student, error) {
	var s Student
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

// FindAll returns students ordered by number; an empty status returns all.
func (r *repository) FindAll(ctx context.Context, status string) ([]Student, error) {
	var students []Student
	db := r.db.WithContext(ctx)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	err := db.Order("student_number ASC").Find(&students).Error
	return students, err
}

func (r *repository) UpdateStatus(ctx context.Context, id, status string) error {
	res := r.db.WithContext(ctx).
		Model(&Student{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
