package claim

import (
	"context"
	"database/sql"

	"github.com/eliezerb2/presence/internal/shared/connection"
	"github.com/eliezerb2/presence/internal/student"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Filter struct {
	Status    Status
	Period    string
	StudentID *uuid.UUID
	Reason    Reason
}

//go:generate mockgen -source=claim_repo.go -destination=mock/claim_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *Claim) error
	FindByID(ctx context.Context, id string) (*Claim, error)
	FindByIDForUpdate(ctx context.Context, id string) (*Claim, error)
	// FindOpen returns the OPEN claim for (student, reason) opened in
	// openedMonth or covering period, if any.
	FindOpen(ctx context.Context, studentID uuid.UUID, reason Reason, openedMonth, period string) (*Claim, error)
	Find(ctx context.Context, f Filter) ([]Claim, error)
	Update(ctx context.Context, c *Claim) error
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

func (r *repository) Create(ctx context.Context, c *Claim) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Claim, error) {
	var c Claim
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Claim, error) {
	var c Claim
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) FindOpen(ctx context.Context, studentID uuid.UUID, reason Reason, openedMonth, period string) (*Claim, error) {
	var c Claim
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND reason = ? AND status = ?", studentID, reason, StatusOpen).
		Where("opened_month = ? OR period = ?", openedMonth, period).
		First(&c).Error
	return &c, err
}

func (r *repository) Find(ctx context.Context, f Filter) ([]Claim, error) {
	var claims []Claim
	q := r.db.WithContext(ctx).Model(&Claim{}).Scopes(student.Scope(f.StudentID))
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Period != "" {
		q = q.Where("period = ?", f.Period)
	}
	if f.Reason != "" {
		q = q.Where("reason = ?", f.Reason)
	}
	err := q.Order("date_opened DESC, created_at DESC").Find(&claims).Error
	return claims, err
}

func (r *repository) Update(ctx context.Context, c *Claim) error {
	return r.db.WithContext(ctx).Save(c).Error
}
