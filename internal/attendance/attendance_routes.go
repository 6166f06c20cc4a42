package attendance

import (
	"time"

	"github.com/eliezerb2/presence/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RegisterKioskRoutes exposes self check-in/out. Each student may tap at
// most once every few seconds.
func RegisterKioskRoutes(r *gin.RouterGroup, handler *Handler) {
	kiosk := r.Group("/students/:student_id")
	kiosk.Use(middleware.RateLimitByParam("student_id", rate.Every(3*time.Second), 2))
	{
		kiosk.POST("/check-in", handler.CheckIn)
		kiosk.POST("/check-out", handler.CheckOut)
	}
}

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	att := r.Group("/attendance")
	{
		att.GET("", handler.ListByDate)
		att.GET("/summary", handler.DailySummary)
		att.GET("/:id", handler.GetByID)
		att.PATCH("/:id/override", handler.Override)
		att.DELETE("/:id/override", handler.ClearLock)
		att.PUT("/students/:student_id/dates/:date", handler.OverrideForStudent)
		att.POST("/students/:student_id/check-in", handler.CheckIn)
		att.POST("/students/:student_id/check-out", handler.CheckOut)
	}
}
