package middleware

import (
	"strings"

	"github.com/eliezerb2/presence/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	HeaderRequestID  = "X-Request-ID"
	ContextRequestID = "request_id"
)

// RequestID echoes the caller's X-Request-ID or mints one. Overlong ids are
// replaced so they cannot bloat logs and audit rows.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if rid == "" || len(rid) > 64 {
			rid = uuid.NewString()
		}

		c.Set(ContextRequestID, rid)
		c.Header(HeaderRequestID, rid)
		c.Request = c.Request.WithContext(contextutil.WithRequestID(c.Request.Context(), rid))

		c.Next()
	}
}

// ContextLogger binds a request-scoped logger carrying the request id, the
// actor role and the route. Must run after RequestID and Actor.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		fields := []zap.Field{
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("actor", c.GetString(ContextActor)),
			zap.String("route", c.FullPath()),
		}
		if name := c.GetString(ContextActorName); name != "" {
			fields = append(fields, zap.String("actor_name", name))
		}

		c.Request = c.Request.WithContext(contextutil.WithLogger(ctx, logger.With(fields...)))
		c.Next()
	}
}
