package serrors

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Base is an error with a stable machine-readable code alongside the
// human-readable message. Controllers surface the code so callers can react
// programmatically instead of parsing text.
type Base struct {
	Code    string
	Message string
}

func (e *Base) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code, message string) *Base {
	return &Base{Code: code, Message: message}
}

type ValidationErrors map[string]string

// ProcessValidatorErrors flattens validator.ValidationErrors into a
// field -> message map.
func ProcessValidatorErrors(errs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for _, err := range errs {
		switch err.Tag() {
		case "required":
			out[err.Field()] = fmt.Sprintf("%s is required", err.Field())
		default:
			out[err.Field()] = fmt.Sprintf("%s is invalid", err.Field())
		}
	}
	return out
}

// First returns an arbitrary-but-stable single message for callers that only
// surface one error at a time. Preference order follows the given fields.
func (v ValidationErrors) First(fields ...string) string {
	for _, f := range fields {
		if msg, ok := v[f]; ok {
			return msg
		}
	}
	for _, msg := range v {
		return msg
	}
	return ""
}
