package calendarerrors

import (
	"net/http"

	"github.com/eliezerb2/presence/internal/shared/apperror"
)

var (
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidMonthFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid month format, expected YYYY-MM",
		http.StatusBadRequest,
	)
	ErrInvalidWeekday = apperror.New(
		apperror.CodeInvalidInput,
		"invalid weekday",
		http.StatusBadRequest,
	)
	ErrHolidayExists = apperror.New(
		apperror.CodeConflict,
		"a school holiday already exists on this date",
		http.StatusConflict,
	)
	ErrHolidayNotFound = apperror.New(
		apperror.CodeNotFound,
		"school holiday not found",
		http.StatusNotFound,
	)
)
