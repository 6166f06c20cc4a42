package attendance

import (
	"net/http"
	"time"

	"github.com/eliezerb2/presence/internal/audit"
	"github.com/eliezerb2/presence/internal/calendar"
	"github.com/eliezerb2/presence/internal/middleware"
	"github.com/eliezerb2/presence/internal/shared/apperror"
	"github.com/eliezerb2/presence/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	now     func() time.Time
	logger  *zap.Logger
}

// NewHandler reads the wall clock in loc, the school's time zone.
func NewHandler(service Service, loc *time.Location, logger ...*zap.Logger) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{
		service: service,
		now:     func() time.Time { return time.Now().In(loc) },
		logger:  l,
	}
}

func reporterOf(c *gin.Context) ReportedBy {
	if c.GetString(middleware.ContextActor) == audit.ActorManager {
		return ReportedByManager
	}
	return ReportedByStudent
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("attendance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) CheckIn(c *gin.Context) {
	resp, err := h.service.CheckIn(c.Request.Context(), c.Param("student_id"), reporterOf(c), h.now())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CheckOut(c *gin.Context) {
	resp, err := h.service.CheckOut(c.Request.Context(), c.Param("student_id"), reporterOf(c), h.now())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = calendar.FormatDate(h.now())
	}
	resp, err := h.service.ListByDate(c.Request.Context(), date)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DailySummary(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = calendar.FormatDate(h.now())
	}
	resp, err := h.service.DailySummary(c.Request.Context(), date)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Override(c *gin.Context) {
	var req OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http override validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.ManagerOverride(c.Request.Context(), c.Param("id"), req, h.now())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) OverrideForStudent(c *gin.Context) {
	var req OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.ManagerOverrideForStudent(c.Request.Context(), c.Param("student_id"), c.Param("date"), req, h.now())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ClearLock(c *gin.Context) {
	resp, err := h.service.ClearOverrideLock(c.Request.Context(), c.Param("id"), h.now())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
