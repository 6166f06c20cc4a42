package permanentabsence

import (
	"net/http"
	"time"

	"github.com/eliezerb2/presence/internal/calendar"
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
	l := zap.L().Named("permanentabsence.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("permanentabsence.handler")
	}
	return &Handler{
		service: service,
		now:     func() time.Time { return time.Now().In(loc) },
		logger:  l,
	}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("permanent absence request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreatePermanentAbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context(), c.Query("student_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil, nil)
}

// Resolve re-applies exemptions for ?date (default today) on demand.
func (h *Handler) Resolve(c *gin.Context) {
	now := h.now()
	date := calendar.DateOf(now)
	if raw := c.Query("date"); raw != "" {
		d, err := calendar.ParseDate(raw)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		date = d
	}

	resp, err := h.service.ResolveForDate(c.Request.Context(), date, now)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
