package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructorsMapToStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code string
		want int
	}{
		{"not found", NotFound("Record"), CodeNotFound, http.StatusNotFound},
		{"not found with id", NotFoundWithID("Record", "abc"), CodeNotFound, http.StatusNotFound},
		{"invalid input", InvalidInput("bad page"), CodeInvalidInput, http.StatusBadRequest},
		{"validation", Validation("missing fields", nil), CodeValidation, http.StatusBadRequest},
		{"unauthorized", Unauthorized("no token"), CodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", Forbidden("admin only"), CodeForbidden, http.StatusForbidden},
		{"internal", Internal("boom", errors.New("cause")), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if tt.err.StatusCode() != tt.want {
				t.Errorf("expected status %d, got %d", tt.want, tt.err.StatusCode())
			}
		})
	}
}

func TestUnwrapPreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal("store call failed", cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
	if wrapped := fmt.Errorf("outer: %w", err); !errors.Is(wrapped, cause) {
		t.Error("expected cause to survive further wrapping")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("Record")
	if got := AsAppError(appErr); got != appErr {
		t.Error("expected AsAppError to return the same AppError")
	}

	plain := errors.New("something broke")
	got := AsAppError(plain)
	if got.Code != CodeInternal || got.StatusCode() != http.StatusInternalServerError {
		t.Errorf("expected plain errors to map to internal, got %+v", got)
	}
}
