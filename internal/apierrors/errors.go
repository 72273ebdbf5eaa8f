// Package apierrors provides structured API error handling.
package apierrors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/finopsmind/costmeter/internal/correlation"
	"github.com/finopsmind/costmeter/internal/costclient"
	"github.com/finopsmind/costmeter/internal/form"
)

// APIError represents a structured API error.
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Details    any    `json:"details,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Write writes the error response.
func (e *APIError) Write(w http.ResponseWriter, r *http.Request) {
	e.RequestID = correlation.GetID(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	json.NewEncoder(w).Encode(e)
}

// Common errors

func NewBadRequestError(message string) *APIError {
	return &APIError{
		Code:       "BAD_REQUEST",
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewConflictError(message string) *APIError {
	return &APIError{
		Code:       "CONFLICT",
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewValidationError(message string, details any) *APIError {
	return &APIError{
		Code:       "VALIDATION_ERROR",
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Details:    details,
	}
}

func NewInternalError(message string) *APIError {
	return &APIError{
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
	}
}

// NewBackendError reports a failed call to the cost service. The raw body
// stays in the server log; callers get the status only.
func NewBackendError(status int) *APIError {
	e := &APIError{
		Code:       "BACKEND_ERROR",
		Message:    "The cost service could not produce a forecast",
		StatusCode: http.StatusBadGateway,
	}
	if status != 0 {
		e.Details = map[string]int{"backend_status": status}
	}
	return e
}

func NewMalformedResponseError() *APIError {
	return &APIError{
		Code:       "MALFORMED_RESPONSE",
		Message:    "The cost service returned an unreadable forecast",
		StatusCode: http.StatusBadGateway,
	}
}

// FromError converts an error to an APIError.
func FromError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var fieldErr *form.FieldError
	if errors.As(err, &fieldErr) {
		return NewValidationError(fieldErr.Error(), map[string]string{
			"field": string(fieldErr.Field),
			"value": fieldErr.Value,
		})
	}

	var backendErr *costclient.BackendError
	if errors.As(err, &backendErr) {
		return NewBackendError(backendErr.StatusCode)
	}

	var malformedErr *costclient.MalformedResponseError
	if errors.As(err, &malformedErr) {
		return NewMalformedResponseError()
	}

	return NewInternalError("An unexpected error occurred")
}
