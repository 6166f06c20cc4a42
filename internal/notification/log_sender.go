package notification

import (
	"context"

	"go.uber.org/zap"
)

// LogSender writes each notification to the log instead of delivering it.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger ...*zap.Logger) *LogSender {
	l := zap.L().Named("notification.sender")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.sender")
	}
	return &LogSender{logger: l}
}

func (s *LogSender) Send(ctx context.Context, n Notification) error {
	for _, r := range n.Recipients {
		s.logger.Info("notification delivered",
			zap.String("notification_id", n.ID),
			zap.String("kind", string(n.Kind)),
			zap.String("role", r.Role),
			zap.String("name", r.Name),
			zap.String("phone", r.Phone),
			zap.Any("payload", n.Payload),
		)
	}
	return nil
}

// NoopDispatcher drops every request. Used when notifications are disabled.
type NoopDispatcher struct {
	logger *zap.Logger
}

func NewNoopDispatcher(logger ...*zap.Logger) *NoopDispatcher {
	l := zap.L().Named("notification.noop")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.noop")
	}
	return &NoopDispatcher{logger: l}
}

func (d *NoopDispatcher) Notify(ctx context.Context, kind Kind, recipients []Recipient, payload map[string]string) error {
	d.logger.Debug("notification dropped", zap.String("kind", string(kind)), zap.Int("recipients", len(recipients)))
	return nil
}
