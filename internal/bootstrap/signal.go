package bootstrap

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// AwaitShutdown blocks until SIGINT or SIGTERM and records action with the
// received signal.
func AwaitShutdown(auditLogger AuditLogger, action string) os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	sig := <-quit
	auditLogger.Log(context.Background(), AuditLog{
		Action:  action,
		Message: "Shutdown signal received",
		Meta:    map[string]any{"signal": sig.String()},
	})
	return sig
}
