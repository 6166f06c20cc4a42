package bootstrap

import (
	"context"
	"os"
	"time"

	"github.com/eliezerb2/presence/internal/shared/contextutil"

	"go.uber.org/zap"
)

// ZapAuditLogger writes lifecycle events for one named process (api,
// worker, consumer) so restarts can be lined up against sweep runs.
type ZapAuditLogger struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewZapAuditLogger(process string, logger ...*zap.Logger) *ZapAuditLogger {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	host, _ := os.Hostname()
	return &ZapAuditLogger{
		logger: l.Named("lifecycle").With(
			zap.String("process", process),
			zap.String("host", host),
			zap.Int("pid", os.Getpid()),
		),
		now: time.Now,
	}
}

func (l *ZapAuditLogger) Log(ctx context.Context, entry AuditLog) {
	fields := []zap.Field{
		zap.String("action", entry.Action),
		zap.Time("at", l.now().UTC()),
	}
	if rid := contextutil.GetRequestID(ctx); rid != "" {
		fields = append(fields, zap.String("request_id", rid))
	}
	for k, v := range entry.Meta {
		fields = append(fields, zap.Any(k, v))
	}
	l.logger.Info(entry.Message, fields...)
}
