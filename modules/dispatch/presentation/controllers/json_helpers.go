package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/taskdesk/taskdesk/modules/dispatch/presentation/controllers/dtos"
	"github.com/taskdesk/taskdesk/pkg/middleware"
	"github.com/taskdesk/taskdesk/pkg/serrors"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		panic(err)
	}
}

// validationMessage turns a validator error into a single field message,
// falling back when the error carries no field detail.
func validationMessage(err error, fallback string) string {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return fallback
	}
	if msg := serrors.ProcessValidatorErrors(vErrs).First(); msg != "" {
		return msg
	}
	return fallback
}

func writeAPIError(w http.ResponseWriter, r *http.Request, status int, code string, message string) {
	meta := map[string]string{
		"request_id": middleware.RequestID(w, r),
	}
	writeJSON(w, status, dtos.APIError{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}
