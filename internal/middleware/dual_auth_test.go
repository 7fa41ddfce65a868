package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func serveDual(t *testing.T, m *DualAuthMiddleware, header string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var subject string
	handler := func(c echo.Context) error {
		subject = GetSubject(c)
		return c.NoContent(http.StatusOK)
	}
	if err := m.Authenticate()(handler)(c); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return rec, subject
}

func TestDualAuth_OpenWhenNothingConfigured(t *testing.T) {
	m := NewDualAuthMiddleware(nil, nil)
	if !m.Open() {
		t.Fatal("Expected open mode")
	}

	rec, subject := serveDual(t, m, "")
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if subject != LocalSubject {
		t.Errorf("Expected subject %q, got %q", LocalSubject, subject)
	}
}

func TestDualAuth_RoutesByTokenFormat(t *testing.T) {
	m := NewDualAuthMiddleware(newTestAuthMiddleware(), NewAPITokenAuthMiddleware("pfd_secret"))

	tests := []struct {
		name        string
		header      string
		wantStatus  int
		wantSubject string
	}{
		{name: "jwt", header: "Bearer good.jwt.token", wantStatus: http.StatusOK, wantSubject: "auth0|12345"},
		{name: "api token", header: "Bearer pfd_secret", wantStatus: http.StatusOK, wantSubject: APITokenSubject},
		{name: "api token without bearer", header: "pfd_secret", wantStatus: http.StatusOK, wantSubject: APITokenSubject},
		{name: "bad api token", header: "Bearer pfd_nope", wantStatus: http.StatusUnauthorized},
		{name: "bad jwt", header: "Bearer forged", wantStatus: http.StatusUnauthorized},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "bad format", header: "Token abc", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, subject := serveDual(t, m, tt.header)
			if rec.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if subject != tt.wantSubject {
				t.Errorf("Expected subject %q, got %q", tt.wantSubject, subject)
			}
		})
	}
}

func TestDualAuth_DisabledMethodRejected(t *testing.T) {
	jwtOnly := NewDualAuthMiddleware(newTestAuthMiddleware(), nil)
	rec, _ := serveDual(t, jwtOnly, "Bearer pfd_secret")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected API token rejected, got %d", rec.Code)
	}

	tokenOnly := NewDualAuthMiddleware(nil, NewAPITokenAuthMiddleware("pfd_secret"))
	rec, _ = serveDual(t, tokenOnly, "Bearer good.jwt.token")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected JWT rejected, got %d", rec.Code)
	}
}
