package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type overrideInput struct {
	StudentID string `json:"student_id" validate:"required,uuid"`
	Threshold int    `json:"lateness_threshold" validate:"min=0"`
	Status    string `form:"status" validate:"omitempty,oneof=OPEN CLOSED"`
}

func TestMapValidationError(t *testing.T) {
	v := validator.New()
	useJSONNames(v)

	tests := []struct {
		name    string
		in      overrideInput
		message string
		fields  []FieldError
	}{
		{
			name:    "required reported first",
			in:      overrideInput{Threshold: -1},
			message: "Student Id is required",
			fields: []FieldError{
				{Field: "student_id", Rule: "required"},
				{Field: "lateness_threshold", Rule: "min", Param: "0"},
			},
		},
		{
			name:    "uuid",
			in:      overrideInput{StudentID: "abc"},
			message: "Student Id must be a UUID",
			fields:  []FieldError{{Field: "student_id", Rule: "uuid"}},
		},
		{
			name:    "oneof uses form name",
			in:      overrideInput{StudentID: "6f1c1f51-8a52-4b5e-9a57-3c8bb3c3f0a1", Status: "DONE"},
			message: "Status must be one of OPEN CLOSED",
			fields:  []FieldError{{Field: "status", Rule: "oneof", Param: "OPEN CLOSED"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapValidationError(v.Struct(tt.in))

			httpErr := ToHTTP(err)
			assert.Equal(t, http.StatusBadRequest, httpErr.Status)
			assert.Equal(t, CodeInvalidInput, httpErr.Code)
			assert.Equal(t, tt.message, httpErr.Message)
			assert.Equal(t, tt.fields, httpErr.Details)
		})
	}
}

func TestMapValidationError_NonValidationError(t *testing.T) {
	httpErr := ToHTTP(MapValidationError(errors.New("unexpected EOF")))

	assert.Equal(t, CodeInvalidInput, httpErr.Code)
	assert.Equal(t, "Invalid input", httpErr.Message)
	assert.Nil(t, httpErr.Details)
}

func TestToHTTP(t *testing.T) {
	t.Run("wrapped app error keeps code", func(t *testing.T) {
		err := fmt.Errorf("close claim: %w", ErrLocked)

		httpErr := ToHTTP(err)
		assert.Equal(t, http.StatusLocked, httpErr.Status)
		assert.Equal(t, CodeLocked, httpErr.Code)
		assert.True(t, Is(err, CodeLocked))
	})

	t.Run("unknown error is hidden", func(t *testing.T) {
		httpErr := ToHTTP(errors.New("pq: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, ErrInternal.Message, httpErr.Message)
	})
}

func TestWrap(t *testing.T) {
	require.Nil(t, Wrap(nil, CodeInternalError, "x", http.StatusInternalServerError))

	cause := errors.New("broker down")
	err := External(cause, "notification delivery failed")
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusBadGateway, err.HTTPStatus)
	assert.Equal(t, "notification delivery failed: broker down", err.Error())
}

func TestWithDetails_DoesNotMutateSentinel(t *testing.T) {
	withDetails := ErrInvalidInput.WithDetails([]FieldError{{Field: "date", Rule: "required"}})

	assert.Nil(t, ErrInvalidInput.Details)
	assert.ErrorIs(t, withDetails, ErrInvalidInput)
}
