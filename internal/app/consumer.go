package app

import (
	"context"
	"fmt"

	"github.com/eliezerb2/presence/internal/bootstrap"
	"github.com/eliezerb2/presence/internal/events"
	"github.com/eliezerb2/presence/internal/messaging/kafka/consumer"
	"github.com/eliezerb2/presence/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const notificationConsumerGroup = "presence-notification-delivery"

// RunConsumer hands queued notifications to the delivery sender.
func RunConsumer(cfg Config) error {
	logger := zap.L().Named("app.consumer")
	lifecycle := bootstrap.NewZapAuditLogger("consumer")

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.NotificationRequestedTopic,
		GroupID:        notificationConsumerGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeNotificationRequested(ctx, reader, notification.NewLogSender(), logger)
	lifecycle.Log(ctx, bootstrap.AuditLog{
		Action:  "CONSUMER_START",
		Message: "Consumer is starting",
		Meta: map[string]any{
			"topic": events.NotificationRequestedTopic,
			"group": notificationConsumerGroup,
		},
	})

	bootstrap.AwaitShutdown(lifecycle, "CONSUMER_SHUTDOWN")
	logger.Info("consumer shutting down")
	cancel()

	return nil
}
