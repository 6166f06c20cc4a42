package producer

import (
	"context"
	"time"

	"github.com/eliezerb2/presence/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	batchSize = 50
	// claimLease must outlast one publish pass; a crashed worker's rows
	// become due again once it runs out.
	claimLease = time.Minute
)

// PassResult summarises one publish pass.
type PassResult struct {
	Sent    int
	Failed  int
	Expired int64
}

// ProcessOutboxEvents publishes queued notification requests until ctx is
// cancelled.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("kafka.producer.worker")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if _, err := ProcessPendingEvents(ctx, repo, writer, log); err != nil {
				log.Error("process outbox events failed", zap.Error(err))
			}
		}
	}
}

// ProcessPendingEvents expires stale events, then leases and publishes one
// batch of due events.
func ProcessPendingEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
) (PassResult, error) {
	var result PassResult

	expired, err := repo.ExpireStale(ctx)
	if err != nil {
		logger.Warn("expire stale outbox events failed", zap.Error(err))
	} else if expired > 0 {
		logger.Info("outbox events expired", zap.Int64("count", expired))
		result.Expired = expired
	}

	events, err := repo.ClaimBatch(ctx, batchSize, claimLease)
	if err != nil {
		return result, err
	}
	if len(events) == 0 {
		return result, nil
	}

	msgs := make([]kafkago.Message, len(events))
	for i, event := range events {
		msgs[i] = toMessage(event)
	}
	errs := writeBatch(ctx, writer, msgs)

	for i, event := range events {
		if errs[i] != nil {
			result.Failed++
			logger.Error("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.Int("attempt", event.RetryCount+1),
				zap.Bool("dead", event.RetryCount+1 >= kafka.MaxOutboxAttempts),
				zap.Error(errs[i]),
			)
			if markErr := repo.MarkFailed(ctx, event.ID, errs[i].Error()); markErr != nil {
				logger.Error("mark outbox failed failed", zap.String("outbox_id", event.ID), zap.Error(markErr))
			}
			continue
		}

		// A failed MarkSent leaves the lease to expire and the event is
		// published again.
		if err := repo.MarkSent(ctx, event.ID); err != nil {
			logger.Error("mark outbox sent failed", zap.String("outbox_id", event.ID), zap.Error(err))
			continue
		}
		result.Sent++
	}

	logger.Info("outbox pass finished",
		zap.Int("claimed", len(events)),
		zap.Int("sent", result.Sent),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}
