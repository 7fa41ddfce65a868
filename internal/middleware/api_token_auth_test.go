package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dafibh/pfd/pfd-backend/internal/problem"
	"github.com/labstack/echo/v4"
)

func TestAPITokenAuth_Authenticate(t *testing.T) {
	e := echo.New()
	m := NewAPITokenAuthMiddleware("pfd_secret")

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid token", header: "Bearer pfd_secret", wantStatus: http.StatusOK},
		{name: "wrong token", header: "Bearer pfd_other", wantStatus: http.StatusUnauthorized},
		{name: "missing prefix", header: "Bearer secret", wantStatus: http.StatusUnauthorized},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := func(c echo.Context) error {
				if !IsAPITokenAuth(c) {
					t.Error("Expected API token auth flag")
				}
				if got := GetSubject(c); got != APITokenSubject {
					t.Errorf("Expected subject %q, got %q", APITokenSubject, got)
				}
				return c.NoContent(http.StatusOK)
			}

			if err := m.Authenticate()(handler)(c); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestAPITokenAuth_EmptyConfiguredTokenRejectsAll(t *testing.T) {
	e := echo.New()
	m := NewAPITokenAuthMiddleware("")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer pfd_")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		t.Error("Handler should not be called")
		return nil
	}
	if err := m.Authenticate()(handler)(c); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
	var body problem.Details
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode problem: %v", err)
	}
	if body.Type != problem.TypeUnauthorized || body.Title != "Unauthorized" || body.Detail != "Invalid API token" {
		t.Errorf("Unexpected problem %+v", body)
	}
}

func TestIsAPITokenAuth_DefaultFalse(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if IsAPITokenAuth(c) {
		t.Error("Expected false without API token auth")
	}
}
