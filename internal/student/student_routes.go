package student

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	students := r.Group("/students")
	{
		students.GET("", handler.List)
		students.GET("/:student_id", handler.GetByID)
		students.POST("", handler.Create)
		students.PATCH("/:student_id/status", handler.UpdateStatus)
	}
}
