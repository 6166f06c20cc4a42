package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"
	CodeLocked       = "RECORD_LOCKED"

	// Server errors (5xx)
	CodeInternalError        = "INTERNAL_ERROR"
	CodeExternalServiceError = "EXTERNAL_SERVICE_ERROR"
	CodeServiceUnavailable   = "SERVICE_UNAVAILABLE"
)
