package audit

import (
	"context"
	"database/sql"
	"time"

	"github.com/eliezerb2/presence/internal/shared/contextutil"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultQueryLimit = 100
	maxQueryLimit     = 1000
)

// Recorder appends entries. When tx is non-nil the entry is written inside
// it so it commits or rolls back together with the mutation it describes.
//
//go:generate mockgen -source=audit_service.go -destination=mock/audit_service_mock.go -package=mock
type Recorder interface {
	Record(ctx context.Context, tx *sql.Tx, e Entry) error
}

type Service interface {
	Recorder
	Query(ctx context.Context, req QueryRequest) ([]EntryResponse, error)
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, now: time.Now, logger: l}
}

func (s *service) Record(ctx context.Context, tx *sql.Tx, e Entry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = s.now()
	}
	if e.Changes == nil {
		e.Changes = Diff(e.Before, e.After)
	}
	if e.RequestID == "" {
		e.RequestID = contextutil.GetRequestID(ctx)
	}

	repo := s.repo
	if tx != nil {
		repo = repo.WithTx(tx)
	}
	if err := repo.Create(ctx, &e); err != nil {
		s.logger.Error("audit append failed",
			zap.String("action", e.Action),
			zap.String("entity", e.Entity),
			zap.String("entity_id", e.EntityID),
			zap.Error(err),
		)
		return err
	}

	contextutil.GetLogger(ctx, s.logger).Debug("audit appended",
		zap.String("actor", e.Actor),
		zap.String("action", e.Action),
		zap.String("entity", e.Entity),
		zap.String("entity_id", e.EntityID),
		zap.Int("changes", len(e.Changes)),
	)
	return nil
}

func (s *service) Query(ctx context.Context, req QueryRequest) ([]EntryResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	if limit > maxQueryLimit {
		limit = maxQueryLimit
	}

	entries, err := s.repo.Find(ctx, Filter{
		Entity:   req.Entity,
		EntityID: req.EntityID,
		Actor:    req.Actor,
		Action:   req.Action,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	resp := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, mapToResponse(e))
	}
	return resp, nil
}

func mapToResponse(e Entry) EntryResponse {
	changes := e.Changes
	if changes == nil {
		changes = []FieldChange{}
	}
	return EntryResponse{
		ID:         e.ID.String(),
		Actor:      e.Actor,
		Action:     e.Action,
		Entity:     e.Entity,
		EntityID:   e.EntityID,
		Before:     e.Before,
		After:      e.After,
		Changes:    changes,
		Detail:     e.Detail,
		OccurredAt: e.OccurredAt.Format(time.RFC3339),
	}
}
