package claim

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
	l := zap.L().Named("claim.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("claim.handler")
	}
	return &Handler{
		service: service,
		now:     func() time.Time { return time.Now().In(loc) },
		logger:  l,
	}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("claim request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) List(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.List(c.Request.Context(), req)
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

func (h *Handler) Close(c *gin.Context) {
	resp, err := h.service.CloseClaim(c.Request.Context(), c.Param("id"), h.now())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// Evaluate runs the monthly evaluation for ?month (default current month).
func (h *Handler) Evaluate(c *gin.Context) {
	now := h.now()
	ym := calendar.YearMonthOf(now)
	if raw := c.Query("month"); raw != "" {
		parsed, err := calendar.ParseYearMonth(raw)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		ym = parsed
	}

	resp, err := h.service.EvaluateMonth(c.Request.Context(), ym, now)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
