package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/dafibh/pfd/pfd-backend/internal/problem"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails = problem.Details

// ValidationError represents a single validation error
type ValidationError = problem.FieldError

// Error types
const (
	ErrorTypeValidation    = problem.TypeValidation
	ErrorTypeInvalidFormat = problem.TypeInvalidFormat
	ErrorTypeNotFound      = problem.TypeNotFound
	ErrorTypeInternal      = problem.TypeInternal
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	body := problem.New(c, http.StatusBadRequest, ErrorTypeValidation, detail)
	body.Errors = errors
	return c.JSON(http.StatusBadRequest, body)
}

// NewInvalidFormatError creates a response for unparseable import data
func NewInvalidFormatError(c echo.Context, detail string) error {
	return problem.Write(c, http.StatusBadRequest, ErrorTypeInvalidFormat, detail)
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return problem.Write(c, http.StatusNotFound, ErrorTypeNotFound, detail)
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return problem.Write(c, http.StatusInternalServerError, ErrorTypeInternal, detail)
}

// handleServiceError maps a service error to a response by its category.
// Uncategorized errors are logged and reported as failure.
func handleServiceError(c echo.Context, err error, failure string) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return NewValidationError(c, err.Error(), nil)
	case errors.Is(err, domain.ErrNotFound):
		return NewNotFoundError(c, err.Error())
	case errors.Is(err, domain.ErrInvalidFormat):
		return NewInvalidFormatError(c, err.Error())
	}
	log.Error().Err(err).Str("path", c.Request().URL.Path).Msg(failure)
	return NewInternalError(c, failure)
}

// parseMoney parses a decimal request field. ok is false for malformed input.
func parseMoney(raw string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func invalidAmount(c echo.Context, field string) error {
	return NewValidationError(c, "Validation failed", []ValidationError{
		{Field: field, Message: "Must be a valid decimal number"},
	})
}
