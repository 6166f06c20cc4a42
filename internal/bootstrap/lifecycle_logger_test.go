package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapAuditLogger_Log(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	at := time.Date(2024, 3, 4, 6, 0, 0, 0, time.UTC)

	var logger AuditLogger = func() *ZapAuditLogger {
		l := NewZapAuditLogger("worker", zap.New(core))
		l.now = func() time.Time { return at }
		return l
	}()

	logger.Log(context.Background(), AuditLog{
		Action:  "SERVER_SHUTDOWN",
		Message: "Server is shutting down",
		Meta:    map[string]any{"signal": "terminated"},
	})

	entries := logs.FilterMessage("Server is shutting down").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "lifecycle", entries[0].LoggerName)

	fields := entries[0].ContextMap()
	assert.Equal(t, "SERVER_SHUTDOWN", fields["action"])
	assert.Equal(t, "worker", fields["process"])
	assert.Equal(t, "terminated", fields["signal"])
	assert.Equal(t, at, fields["at"])
	assert.NotContains(t, fields, "request_id")
}
