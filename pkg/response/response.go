// Package response writes the JSON envelope every endpoint uses and maps
// the apperr taxonomy onto HTTP status codes.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shashiranjanraj/dinehub/pkg/apperr"
)

type envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func write(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a 200 JSON response with data.
func Success(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusOK, envelope{Status: http.StatusOK, Data: data})
}

// Created sends a 201 JSON response with data.
func Created(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusCreated, envelope{Status: http.StatusCreated, Data: data})
}

// Error sends a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, envelope{Status: status, Message: message})
}

// ValidationError sends a 422 with field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	write(w, http.StatusUnprocessableEntity, envelope{
		Status:  http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "Unauthorized")
}

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter) {
	Error(w, http.StatusForbidden, "Forbidden")
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "Not found")
}

// FromError maps a domain error onto the right HTTP response.
//
//	ValidationError          → 422 with field map
//	ErrNotFound              → 404
//	InvalidTransitionError   → 409 naming the attempted edge
//	ErrUnauthenticated       → 401
//	ErrForbidden             → 403
//	PersistenceError / other → 503 / 500 (retryable vs. not)
func FromError(w http.ResponseWriter, err error) {
	var (
		ve *apperr.ValidationError
		te *apperr.InvalidTransitionError
		pe *apperr.PersistenceError
	)

	switch {
	case errors.As(err, &ve):
		ValidationError(w, ve.Fields)
	case errors.Is(err, apperr.ErrNotFound):
		NotFound(w)
	case errors.As(err, &te):
		Error(w, http.StatusConflict, te.Error())
	case errors.Is(err, apperr.ErrUnauthenticated):
		Unauthorized(w)
	case errors.Is(err, apperr.ErrForbidden):
		Forbidden(w)
	case errors.As(err, &pe):
		Error(w, http.StatusServiceUnavailable, "Storage temporarily unavailable, retry later")
	default:
		Error(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
