package middleware

import (
	"strings"

	"github.com/eliezerb2/presence/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
)

const (
	ContextActor     = "actor"
	ContextActorName = "actor_name"
)

// Actor tags every request of a route group with the role performing it
// (student on the kiosk, manager on the board). Identity verification is
// out of scope; the optional X-Actor-Name header is only recorded.
func Actor(actor string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextActor, actor)
		if name := strings.TrimSpace(c.GetHeader("X-Actor-Name")); name != "" {
			c.Set(ContextActorName, name)
		}

		ctx := contextutil.WithActor(c.Request.Context(), actor)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
