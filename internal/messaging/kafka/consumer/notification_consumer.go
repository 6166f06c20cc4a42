package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/eliezerb2/presence/internal/events"
	"github.com/eliezerb2/presence/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeNotificationRequested delivers queued notifications through sender.
// A message that fails to send is left uncommitted. Undecodable and expired
// messages are committed and dropped.
func ConsumeNotificationRequested(
	ctx context.Context,
	reader MessageReader,
	sender notification.Sender,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.notification")
	log.Info("notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("notification consumer stopped")
				return
			}
			log.Error("fetch notification message failed", zap.Error(err))
			continue
		}

		if deadline, ok := expiresAt(msg); ok && time.Now().After(deadline) {
			log.Info("notification expired before delivery", zap.Int64("offset", msg.Offset), zap.Time("expires_at", deadline))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		var event events.NotificationRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode notification event failed", zap.Int64("offset", msg.Offset), zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		n := notification.FromEvent(event)
		if err := sender.Send(ctx, n); err != nil {
			log.Error("send notification failed",
				zap.String("notification_id", n.ID),
				zap.String("kind", string(n.Kind)),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit notification message failed", zap.Error(err))
			continue
		}

		log.Info("notification sent",
			zap.String("notification_id", n.ID),
			zap.String("kind", string(n.Kind)),
			zap.Int("recipients", len(n.Recipients)),
		)
	}
}

func expiresAt(msg kafkago.Message) (time.Time, bool) {
	for _, h := range msg.Headers {
		if h.Key != "expires_at" {
			continue
		}
		t, err := time.Parse(time.RFC3339, string(h.Value))
		return t, err == nil
	}
	return time.Time{}, false
}
