package settings

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/settings", handler.Get)
	r.PUT("/settings", handler.Update)

	overrides := r.Group("/monthly-overrides")
	{
		overrides.GET("", handler.ListOverrides)
		overrides.PUT("", handler.UpsertOverride)
		overrides.DELETE("/:id", handler.DeleteOverride)
	}
}
