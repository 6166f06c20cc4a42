package automation

import (
	"net/http"
	"time"

	"github.com/eliezerb2/presence/internal/attendance"
	"github.com/eliezerb2/presence/internal/calendar"
	"github.com/eliezerb2/presence/internal/shared/apperror"
	"github.com/eliezerb2/presence/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	sweeper  Sweeper
	schedule attendance.Schedule
	now      func() time.Time
	logger   *zap.Logger
}

func NewHandler(sweeper Sweeper, schedule attendance.Schedule, logger ...*zap.Logger) *Handler {
	if schedule.Location == nil {
		schedule.Location = time.UTC
	}
	l := zap.L().Named("automation.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("automation.handler")
	}
	loc := schedule.Location
	return &Handler{
		sweeper:  sweeper,
		schedule: schedule,
		now:      func() time.Time { return time.Now().In(loc) },
		logger:   l,
	}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("automation request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Sweep runs the daily sweep for ?date (default today) as of ?at, a
// school-local HH:MM on that date (default the current time).
func (h *Handler) Sweep(c *gin.Context) {
	now := h.now()
	date := h.schedule.DateOf(now)

	if raw := c.Query("date"); raw != "" {
		parsed, err := calendar.ParseDate(raw)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		date = parsed
	}
	if raw := c.Query("at"); raw != "" {
		at, err := attendance.ParseClockTime(raw)
		if err != nil {
			h.writeServiceError(c, apperror.InvalidField("at"))
			return
		}
		now = at.On(date, h.schedule.Location)
	}

	resp, err := h.sweeper.RunDailySweep(c.Request.Context(), date, now)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
