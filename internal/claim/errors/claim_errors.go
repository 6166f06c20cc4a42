package claimerrors

import (
	"net/http"

	"github.com/eliezerb2/presence/internal/shared/apperror"
)

var (
	ErrClaimNotFound = apperror.New(
		apperror.CodeNotFound,
		"claim not found",
		http.StatusNotFound,
	)
	ErrClaimAlreadyClosed = apperror.New(
		apperror.CodeInvalidState,
		"claim is already closed",
		http.StatusConflict,
	)
	ErrInvalidClaimStatus = apperror.New(
		apperror.CodeInvalidInput,
		"invalid claim status",
		http.StatusBadRequest,
	)
	ErrInvalidClaimReason = apperror.New(
		apperror.CodeInvalidInput,
		"invalid claim reason",
		http.StatusBadRequest,
	)
)
