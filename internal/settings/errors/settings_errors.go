package settingserrors

import (
	"net/http"

	"github.com/eliezerb2/presence/internal/shared/apperror"
)

var (
	ErrSettingsNotConfigured = apperror.New(
		apperror.CodeInvalidState,
		"settings have not been configured",
		http.StatusConflict,
	)
	ErrInvalidLatenessThreshold = apperror.New(
		apperror.CodeInvalidInput,
		"lateness threshold must be zero or greater",
		http.StatusBadRequest,
	)
	ErrInvalidYomLoBaLiThreshold = apperror.New(
		apperror.CodeInvalidInput,
		"yom lo ba li threshold must be at least 1",
		http.StatusBadRequest,
	)
	ErrOverrideNotFound = apperror.New(
		apperror.CodeNotFound,
		"monthly override not found",
		http.StatusNotFound,
	)
)
