package kafka

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
	OutboxStatusDead    = "dead"
	OutboxStatusExpired = "expired"
)

// MaxOutboxAttempts is the number of publish failures after which an event
// is parked as dead.
const MaxOutboxAttempts = 10

// OutboxEvent is one queued message. ExpiresAt is set for messages that are
// worthless after a deadline, such as a morning reminder.
type OutboxEvent struct {
	ID            string
	RequestID     string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	Payload       []byte
	Status        string
	RetryCount    int
	ExpiresAt     *time.Time
}

// NewOutboxEvent marshals payload into a pending event.
func NewOutboxEvent(topic, eventType, aggregateType, aggregateID, requestID string, payload any) (OutboxEvent, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return OutboxEvent{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       body,
		Status:        OutboxStatusPending,
	}, nil
}

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock
type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Create(ctx context.Context, event OutboxEvent) error
	// ClaimBatch leases up to limit due events for lease so concurrent
	// workers never publish the same row.
	ClaimBatch(ctx context.Context, limit int, lease time.Duration) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
	ExpireStale(ctx context.Context) (int64, error)
}

type outboxRepository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewOutboxRepository(db *sql.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) WithTx(tx *sql.Tx) OutboxRepository {
	return &outboxRepository{db: r.db, tx: tx}
}

func (r *outboxRepository) Create(ctx context.Context, event OutboxEvent) error {
	if err := ValidateOutboxEvent(event); err != nil {
		return err
	}
	if event.Status != OutboxStatusPending {
		return fmt.Errorf("new outbox event must be %s, got %s", OutboxStatusPending, event.Status)
	}

	query := `
INSERT INTO outbox_events (
	id, request_id, aggregate_type, aggregate_id, event_type, topic, payload, status, expires_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	_, err := r.execer().ExecContext(
		ctx, query,
		event.ID, event.RequestID, event.AggregateType, event.AggregateID,
		event.EventType, event.Topic, event.Payload, event.Status, nullTime(event.ExpiresAt),
	)
	return err
}

func (r *outboxRepository) ClaimBatch(ctx context.Context, limit int, lease time.Duration) ([]OutboxEvent, error) {
	query := `
UPDATE outbox_events o
SET
	next_retry_at = NOW() + ($4 * INTERVAL '1 millisecond'),
	updated_at = NOW()
FROM (
	SELECT id
	FROM outbox_events
	WHERE status IN ($1, $2)
		AND (next_retry_at IS NULL OR next_retry_at <= NOW())
		AND (expires_at IS NULL OR expires_at > NOW())
	ORDER BY created_at ASC
	LIMIT $3
	FOR UPDATE SKIP LOCKED
) due
WHERE o.id = due.id
RETURNING
	o.id::text,
	COALESCE(o.request_id, ''),
	o.aggregate_type,
	o.aggregate_id,
	o.event_type,
	o.topic,
	o.payload,
	o.status,
	o.retry_count,
	o.expires_at
`
	rows, err := r.db.QueryContext(ctx, query, OutboxStatusPending, OutboxStatusFailed, limit, lease.Milliseconds())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]OutboxEvent, 0, limit)
	for rows.Next() {
		var (
			e         OutboxEvent
			expiresAt sql.NullTime
		)
		if err := rows.Scan(
			&e.ID,
			&e.RequestID,
			&e.AggregateType,
			&e.AggregateID,
			&e.EventType,
			&e.Topic,
			&e.Payload,
			&e.Status,
			&e.RetryCount,
			&expiresAt,
		); err != nil {
			return nil, err
		}
		if expiresAt.Valid {
			t := expiresAt.Time
			e.ExpiresAt = &t
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	query := `
UPDATE outbox_events
SET
	status = $2,
	processed_at = NOW(),
	error_message = NULL,
	updated_at = NOW()
WHERE id = $1
`
	_, err := r.execer().ExecContext(ctx, query, id, OutboxStatusSent)
	return err
}

// MarkFailed records a publish failure. Retries back off linearly in 15s
// steps and stop once MaxOutboxAttempts is reached.
func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	query := `
UPDATE outbox_events
SET
	retry_count = retry_count + 1,
	status = CASE WHEN retry_count + 1 >= $3 THEN $4 ELSE $2 END,
	error_message = LEFT($5, 500),
	next_retry_at = NOW() + ((retry_count + 1) * INTERVAL '15 seconds'),
	updated_at = NOW()
WHERE id = $1
`
	_, err := r.execer().ExecContext(ctx, query, id, OutboxStatusFailed, MaxOutboxAttempts, OutboxStatusDead, reason)
	return err
}

// ExpireStale parks undelivered events whose deadline has passed.
func (r *outboxRepository) ExpireStale(ctx context.Context) (int64, error) {
	query := `
UPDATE outbox_events
SET
	status = $1,
	updated_at = NOW()
WHERE status IN ($2, $3)
	AND expires_at IS NOT NULL
	AND expires_at <= NOW()
`
	res, err := r.execer().ExecContext(ctx, query, OutboxStatusExpired, OutboxStatusPending, OutboxStatusFailed)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *outboxRepository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func ValidateOutboxEvent(event OutboxEvent) error {
	if event.ID == "" {
		return errors.New("outbox id is required")
	}
	if event.Topic == "" {
		return errors.New("outbox topic is required")
	}
	if len(event.Payload) == 0 {
		return errors.New("outbox payload is required")
	}
	switch event.Status {
	case OutboxStatusPending, OutboxStatusSent, OutboxStatusFailed, OutboxStatusDead, OutboxStatusExpired:
		return nil
	default:
		return fmt.Errorf("invalid outbox status: %s", event.Status)
	}
}
