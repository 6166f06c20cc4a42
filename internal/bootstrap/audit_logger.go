package bootstrap

import "context"

// AuditLog is a process lifecycle event, separate from the attendance audit
// trail.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
