package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/dafibh/pfd/pfd-backend/internal/domain"
)

func TestHandleServiceError_Categories(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		status      int
		problemType string
	}{
		{"validation", domain.ErrInvalidAmount, http.StatusBadRequest, ErrorTypeValidation},
		{"wrapped validation", fmt.Errorf("create: %w", domain.ErrNameRequired), http.StatusBadRequest, ErrorTypeValidation},
		{"not found", domain.ErrBillNotFound, http.StatusNotFound, ErrorTypeNotFound},
		{"invalid format", domain.ErrNotAnObject, http.StatusBadRequest, ErrorTypeInvalidFormat},
		{"store read", fmt.Errorf("load: %w", domain.ErrStoreRead), http.StatusInternalServerError, ErrorTypeInternal},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, ErrorTypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			c, rec := env.newRequest(http.MethodGet, "/api/v1/anything", "")

			if err := handleServiceError(c, tt.err, "Failed to do the thing"); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}

			problem := expectProblem(t, rec, tt.status, tt.problemType)
			if problem.Instance != "/api/v1/anything" {
				t.Errorf("Expected instance path, got %q", problem.Instance)
			}
			if tt.status == http.StatusInternalServerError && problem.Detail != "Failed to do the thing" {
				t.Errorf("Expected internal detail hidden, got %q", problem.Detail)
			}
		})
	}
}

func TestAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input    string
		expected Amount
		wantErr  bool
	}{
		{`"12.50"`, "12.50", false},
		{`12.5`, "12.5", false},
		{`-3`, "-3", false},
		{`null`, "", false},
		{`""`, "", false},
		{`true`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var a Amount
			err := json.Unmarshal([]byte(tt.input), &a)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %s", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if a != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, a)
			}
		})
	}
}

func TestParseMoney(t *testing.T) {
	if d, ok := parseMoney(" 10.25 "); !ok || d.String() != "10.25" {
		t.Errorf("Expected 10.25, got %s (%v)", d, ok)
	}
	if _, ok := parseMoney("ten"); ok {
		t.Error("Expected malformed input to fail")
	}
	if _, ok := parseMoney(""); ok {
		t.Error("Expected empty input to fail")
	}
}
