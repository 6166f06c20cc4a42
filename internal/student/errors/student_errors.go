package studenterrors

import (
	"net/http"

	"github.com/eliezerb2/presence/internal/shared/apperror"
)

var (
	ErrStudentNotFound = apperror.New(
		apperror.CodeNotFound,
		"student not found",
		http.StatusNotFound,
	)
	// ErrUnknownStudent is returned when another operation references a
	// student id that does not exist.
	ErrUnknownStudent = apperror.New(
		apperror.CodeInvalidInput,
		"unknown student",
		http.StatusBadRequest,
	)
	ErrStudentNumberExists = apperror.New(
		apperror.CodeConflict,
		"student number already exists",
		http.StatusConflict,
	)
)
