package permanentabsence

import (
	"context"
	"database/sql"
	"time"

	"github.com/eliezerb2/presence/internal/shared/connection"
	"github.com/eliezerb2/presence/internal/student"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=permanentabsence_repo.go -destination=mock/permanentabsence_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *PermanentAbsence) error
	FindByID(ctx context.Context, id string) (*PermanentAbsence, error)
	FindAll(ctx context.Context, studentID *uuid.UUID) ([]PermanentAbsence, error)
	FindByWeekday(ctx context.Context, weekday time.Weekday) ([]PermanentAbsence, error)
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

func (r *repository) Create(ctx context.Context, p *PermanentAbsence) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*PermanentAbsence, error) {
	var p PermanentAbsence
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) FindAll(ctx context.Context, studentID *uuid.UUID) ([]PermanentAbsence, error) {
	var list []PermanentAbsence
	err := r.db.WithContext(ctx).
		Scopes(student.Scope(studentID)).
		Order("student_id ASC, weekday ASC").
		Find(&list).Error
	return list, err
}

func (r *repository) FindByWeekday(ctx context.Context, weekday time.Weekday) ([]PermanentAbsence, error) {
	var list []PermanentAbsence
	err := r.db.WithContext(ctx).
		Where("weekday = ?", int(weekday)).
		Order("student_id ASC").
		Find(&list).Error
	return list, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&PermanentAbsence{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
