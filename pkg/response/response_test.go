package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shashiranjanraj/dinehub/pkg/apperr"
	"github.com/shashiranjanraj/dinehub/pkg/response"
)

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Success(rec, map[string]string{"hello": "world"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: %q", ct)
	}

	var body struct {
		Status int               `json:"status"`
		Data   map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Status != 200 || body.Data["hello"] != "world" {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestFromErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", &apperr.ValidationError{Fields: map[string]string{"type": "bad"}}, http.StatusUnprocessableEntity},
		{"not found", apperr.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("orders: %w", apperr.ErrNotFound), http.StatusNotFound},
		{"invalid transition", &apperr.InvalidTransitionError{From: "pending", To: "delivered"}, http.StatusConflict},
		{"unauthenticated", apperr.ErrUnauthenticated, http.StatusUnauthorized},
		{"forbidden", apperr.ErrForbidden, http.StatusForbidden},
		{"persistence", apperr.Persistence("orders.create", errors.New("conn reset")), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			response.FromError(rec, tt.err)
			if rec.Code != tt.code {
				t.Errorf("got %d, want %d (body: %s)", rec.Code, tt.code, rec.Body.String())
			}
		})
	}
}

func TestValidationErrorCarriesFieldMap(t *testing.T) {
	rec := httptest.NewRecorder()
	response.FromError(rec, &apperr.ValidationError{Fields: map[string]string{
		"tableNumber": "The table number is required for dine-in orders.",
	}})

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Errors["tableNumber"] == "" {
		t.Errorf("missing field error: %s", rec.Body.String())
	}
}

func TestConflictNamesTheEdge(t *testing.T) {
	rec := httptest.NewRecorder()
	response.FromError(rec, &apperr.InvalidTransitionError{From: "pending", To: "delivered"})

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Message == "" {
		t.Error("conflict response must name the attempted edge")
	}
}

func TestPersistenceErrorPassesThroughDomainErrors(t *testing.T) {
	// Persistence must not mask a not-found from the repository layer.
	err := apperr.Persistence("orders.find", apperr.ErrNotFound)

	rec := httptest.NewRecorder()
	response.FromError(rec, err)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
