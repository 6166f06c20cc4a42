package audit

import (
	"context"
	"database/sql"

	"github.com/eliezerb2/presence/internal/shared/connection"
	"gorm.io/gorm"
)

type Filter struct {
	Entity   string
	EntityID string
	Actor    string
	Action   string
	Limit    int
}

//go:generate mockgen -source=audit_repo.go -destination=mock/audit_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Entry) error
	Find(ctx context.Context, f Filter) ([]Entry, error)
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

func (r *repository) Create(ctx context.Context, e *Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) Find(ctx context.Context, f Filter) ([]Entry, error) {
	db := r.db.WithContext(ctx).Model(&Entry{})
	if f.Entity != "" {
		db = db.Where("entity = ?", f.Entity)
	}
	if f.EntityID != "" {
		db = db.Where("entity_id = ?", f.EntityID)
	}
	if f.Actor != "" {
		db = db.Where("actor = ?", f.Actor)
	}
	if f.Action != "" {
		db = db.Where("action = ?", f.Action)
	}
	if f.Limit > 0 {
		db = db.Limit(f.Limit)
	}

	var entries []Entry
	err := db.Order("occurred_at DESC").Order("id").Find(&entries).Error
	return entries, err
}
