package notification

import (
	"context"
	"time"

	"github.com/eliezerb2/presence/internal/events"
	"github.com/eliezerb2/presence/internal/messaging/kafka"
	"github.com/eliezerb2/presence/internal/shared/apperror"
	"github.com/eliezerb2/presence/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const aggregateType = "notification"

// reminderTTL bounds how late a check-in reminder may still be delivered.
const reminderTTL = 90 * time.Minute

// OutboxDispatcher queues notifications in the outbox table; the worker
// publishes them to Kafka and the consumer delivers them.
type OutboxDispatcher struct {
	outbox kafka.OutboxRepository
	ttl    map[Kind]time.Duration
	now    func() time.Time
	logger *zap.Logger
}

func NewOutboxDispatcher(outbox kafka.OutboxRepository, logger ...*zap.Logger) *OutboxDispatcher {
	l := zap.L().Named("notification.dispatcher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.dispatcher")
	}
	return &OutboxDispatcher{
		outbox: outbox,
		ttl:    map[Kind]time.Duration{KindAttendanceReminder: reminderTTL},
		now:    time.Now,
		logger: l,
	}
}

func (d *OutboxDispatcher) Notify(ctx context.Context, kind Kind, recipients []Recipient, payload map[string]string) error {
	log := contextutil.GetLogger(ctx, d.logger)

	id := uuid.NewString()
	requestID := contextutil.GetRequestID(ctx)
	now := d.now().UTC()
	event := events.NotificationRequestedEvent{
		EventType:      events.NotificationRequestedEventType,
		NotificationID: id,
		Kind:           string(kind),
		Recipients:     toEventRecipients(recipients),
		Payload:        payload,
		RequestID:      requestID,
		OccurredAt:     now,
	}

	outboxEvent, err := kafka.NewOutboxEvent(
		events.NotificationRequestedTopic,
		events.NotificationRequestedEventType,
		aggregateType,
		id,
		requestID,
		event,
	)
	if err != nil {
		return apperror.External(err, "notification could not be encoded")
	}
	if ttl, ok := d.ttl[kind]; ok {
		expires := now.Add(ttl)
		outboxEvent.ExpiresAt = &expires
	}
	if err := d.outbox.Create(ctx, outboxEvent); err != nil {
		log.Error("queue notification failed", zap.String("kind", string(kind)), zap.Error(err))
		return apperror.External(err, "notification could not be queued")
	}

	log.Debug("notification queued",
		zap.String("notification_id", id),
		zap.String("kind", string(kind)),
		zap.Strings("roles", Roles(recipients)),
	)
	return nil
}

func toEventRecipients(recipients []Recipient) []events.NotificationRecipient {
	out := make([]events.NotificationRecipient, 0, len(recipients))
	for _, r := range recipients {
		out = append(out, events.NotificationRecipient{Role: r.Role, Name: r.Name, Phone: r.Phone})
	}
	return out
}

// FromEvent rebuilds the notification carried by a consumed event.
func FromEvent(e events.NotificationRequestedEvent) Notification {
	recipients := make([]Recipient, 0, len(e.Recipients))
	for _, r := range e.Recipients {
		recipients = append(recipients, Recipient{Role: r.Role, Name: r.Name, Phone: r.Phone})
	}
	return Notification{
		ID:          e.NotificationID,
		Kind:        Kind(e.Kind),
		Recipients:  recipients,
		Payload:     e.Payload,
		RequestID:   e.RequestID,
		RequestedAt: e.OccurredAt,
	}
}
