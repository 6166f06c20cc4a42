package app

import (
	"context"
	"time"

	"github.com/eliezerb2/presence/internal/automation"
	"github.com/eliezerb2/presence/internal/bootstrap"
	"github.com/eliezerb2/presence/internal/messaging/kafka/producer"
	"github.com/eliezerb2/presence/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker drives the daily sweep and claim evaluation and, when
// notifications are enabled, publishes the outbox to Kafka.
func RunWorker(cfg Config) error {
	logger := zap.L().Named("app.worker")
	lifecycle := bootstrap.NewZapAuditLogger("worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	infra, modules, err := Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer infra.Close()

	scheduler := automation.NewScheduler(
		modules.Sweeper,
		modules.Claims,
		cfg.Schedule(),
		cfg.SchedulerConfig(),
		modules.Metrics,
		logger,
	)
	go scheduler.Run(ctx, time.Now)
	lifecycle.Log(ctx, bootstrap.AuditLog{
		Action:  "WORKER_START",
		Message: "Worker is starting",
		Meta: map[string]any{
			"sweep_interval": cfg.SweepInterval.String(),
			"notify":         cfg.NotifyEnabled,
		},
	})

	if cfg.NotifyEnabled {
		kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, 5)
		if err != nil {
			return err
		}
		defer kafkaWriter.Close()

		go producer.ProcessOutboxEvents(
			ctx,
			modules.Outbox,
			kafkaWriter,
			logger,
			3*time.Second,
		)
	}

	bootstrap.AwaitShutdown(lifecycle, "WORKER_SHUTDOWN")
	logger.Info("worker shutting down")
	cancel()

	return nil
}
