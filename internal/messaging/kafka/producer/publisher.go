package producer

import (
	"context"
	"errors"
	"time"

	"github.com/eliezerb2/presence/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafkago.Writer the outbox worker uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

func toMessage(event kafka.OutboxEvent) kafkago.Message {
	headers := []kafkago.Header{
		{Key: "event_type", Value: []byte(event.EventType)},
		{Key: "aggregate_type", Value: []byte(event.AggregateType)},
	}
	if event.RequestID != "" {
		headers = append(headers, kafkago.Header{Key: "request_id", Value: []byte(event.RequestID)})
	}
	if event.ExpiresAt != nil {
		headers = append(headers, kafkago.Header{Key: "expires_at", Value: []byte(event.ExpiresAt.UTC().Format(time.RFC3339))})
	}

	return kafkago.Message{
		Topic:   event.Topic,
		Key:     []byte(event.AggregateID),
		Value:   event.Payload,
		Headers: headers,
	}
}

// writeBatch publishes msgs in one call and returns the error for each
// message by index. A batch-level failure is reported for every message.
func writeBatch(ctx context.Context, writer MessageWriter, msgs []kafkago.Message) []error {
	errs := make([]error, len(msgs))
	err := writer.WriteMessages(ctx, msgs...)
	if err == nil {
		return errs
	}

	var writeErrs kafkago.WriteErrors
	if errors.As(err, &writeErrs) && len(writeErrs) == len(msgs) {
		copy(errs, writeErrs)
		return errs
	}
	for i := range errs {
		errs[i] = err
	}
	return errs
}
