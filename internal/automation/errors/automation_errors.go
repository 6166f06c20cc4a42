package automationerrors

import (
	"net/http"

	"github.com/eliezerb2/presence/internal/shared/apperror"
)

var (
	ErrSweepInProgress = apperror.New(
		apperror.CodeConflict,
		"a sweep for this date is already running",
		http.StatusConflict,
	)
)
