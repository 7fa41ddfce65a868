// Package problem writes RFC 7807 problem responses shared by the handlers
// and the middleware.
package problem

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const typeBase = "https://pfd.app/errors/"

// Problem types
const (
	TypeValidation    = typeBase + "validation"
	TypeInvalidFormat = typeBase + "invalid-format"
	TypeNotFound      = typeBase + "not-found"
	TypeInternal      = typeBase + "internal"
	TypeUnauthorized  = typeBase + "unauthorized"
	TypeRateLimit     = typeBase + "rate-limit"
)

var titles = map[string]string{
	TypeValidation:    "Validation Error",
	TypeInvalidFormat: "Invalid Format",
	TypeNotFound:      "Not Found",
	TypeInternal:      "Internal Server Error",
	TypeUnauthorized:  "Unauthorized",
	TypeRateLimit:     "Rate Limit Exceeded",
}

// Details is the problem response body
type Details struct {
	Type     string       `json:"type"`
	Title    string       `json:"title"`
	Status   int          `json:"status"`
	Detail   string       `json:"detail,omitempty"`
	Instance string       `json:"instance,omitempty"`
	Errors   []FieldError `json:"errors,omitempty"`
}

// FieldError is one invalid request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New builds a problem of the given type for the current request
func New(c echo.Context, status int, problemType, detail string) Details {
	title, ok := titles[problemType]
	if !ok {
		title = http.StatusText(status)
	}
	return Details{
		Type:     problemType,
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	}
}

// Write sends a problem response
func Write(c echo.Context, status int, problemType, detail string) error {
	return c.JSON(status, New(c, status, problemType, detail))
}

// Unauthorized sends a 401 problem
func Unauthorized(c echo.Context, detail string) error {
	return Write(c, http.StatusUnauthorized, TypeUnauthorized, detail)
}
