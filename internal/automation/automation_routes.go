package automation

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	automation := r.Group("/automation")
	{
		automation.POST("/sweep", handler.Sweep)
	}
}
