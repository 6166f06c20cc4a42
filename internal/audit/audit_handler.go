package audit

import (
	"net/http"

	"github.com/eliezerb2/presence/internal/shared/apperror"
	"github.com/eliezerb2/presence/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("audit.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Query(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.Query(c.Request.Context(), req)
	if err != nil {
		h.logger.Warn("audit query failed", zap.Error(err))
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
