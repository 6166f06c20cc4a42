package attendanceerrors

import (
	"net/http"

	"github.com/eliezerb2/presence/internal/shared/apperror"
)

var (
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"attendance record not found",
		http.StatusNotFound,
	)
	ErrNoRecordForDate = apperror.New(
		apperror.CodeNotFound,
		"no attendance record for this student today",
		http.StatusNotFound,
	)
	ErrRecordExists = apperror.New(
		apperror.CodeConflict,
		"an attendance record already exists for this student and date",
		http.StatusConflict,
	)
	ErrRecordLocked = apperror.New(
		apperror.CodeLocked,
		"attendance record is locked by a manager override",
		http.StatusLocked,
	)
	ErrStudentInactive = apperror.New(
		apperror.CodeInvalidState,
		"student is not active",
		http.StatusConflict,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"invalid attendance status",
		http.StatusBadRequest,
	)
	ErrInvalidSubStatus = apperror.New(
		apperror.CodeInvalidInput,
		"invalid attendance sub status",
		http.StatusBadRequest,
	)
	ErrInvalidClosedReason = apperror.New(
		apperror.CodeInvalidInput,
		"invalid closed reason",
		http.StatusBadRequest,
	)
	ErrEmptyOverride = apperror.New(
		apperror.CodeInvalidInput,
		"override must change at least one field",
		http.StatusBadRequest,
	)
	ErrCheckOutBeforeCheckIn = apperror.New(
		apperror.CodeInvalidInput,
		"check out time is before check in time",
		http.StatusBadRequest,
	)
)
