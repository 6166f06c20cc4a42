package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FieldError is one failed binding rule, keyed by the json field name.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

func formatFieldName(s string) string {
	// year_month -> Year Month. Casers are stateful, so one per call.
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}

func ruleMessage(e validator.FieldError) string {
	field := formatFieldName(e.Field())
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, e.Param())
	case "uuid":
		return fmt.Sprintf("%s must be a UUID", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// MapValidationError turns a gin binding failure into INVALID_INPUT. The
// message names the first failing field and Details lists all of them.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		fields := make([]FieldError, 0, len(errs))
		for _, e := range errs {
			fields = append(fields, FieldError{Field: e.Field(), Rule: e.Tag(), Param: e.Param()})
		}
		return New(CodeInvalidInput, ruleMessage(errs[0]), http.StatusBadRequest).WithDetails(fields)
	}

	return New(
		CodeInvalidInput,
		"Invalid input",
		http.StatusBadRequest,
	)
}
