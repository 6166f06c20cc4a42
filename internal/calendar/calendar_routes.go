package calendar

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	cal := r.Group("/calendar")
	{
		cal.GET("/school-days/:date", handler.CheckDate)
		cal.GET("/holidays", handler.ListHolidays)
		cal.POST("/holidays", handler.CreateHoliday)
		cal.DELETE("/holidays/:id", handler.DeleteHoliday)
	}
}
