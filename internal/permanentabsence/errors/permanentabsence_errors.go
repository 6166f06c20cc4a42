package permanentabsenceerrors

import (
	"net/http"

	"github.com/eliezerb2/presence/internal/shared/apperror"
)

var (
	ErrPermanentAbsenceNotFound = apperror.New(
		apperror.CodeNotFound,
		"permanent absence not found",
		http.StatusNotFound,
	)
	ErrPermanentAbsenceExists = apperror.New(
		apperror.CodeConflict,
		"student already has a permanent absence on this weekday",
		http.StatusConflict,
	)
	ErrWeekdayNotSchoolDay = apperror.New(
		apperror.CodeInvalidInput,
		"weekday is part of the weekend",
		http.StatusBadRequest,
	)
)
