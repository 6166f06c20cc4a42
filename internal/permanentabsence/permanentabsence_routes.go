package permanentabsence

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	pa := r.Group("/permanent-absences")
	{
		pa.GET("", handler.List)
		pa.POST("", handler.Create)
		pa.POST("/resolve", handler.Resolve)
		pa.DELETE("/:id", handler.Delete)
	}
}
