package claim

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	claims := r.Group("/claims")
	{
		claims.GET("", handler.List)
		claims.POST("/evaluate", handler.Evaluate)
		claims.GET("/:id", handler.GetByID)
		claims.POST("/:id/close", handler.Close)
	}
}
