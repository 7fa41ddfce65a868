package middleware

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/dafibh/pfd/pfd-backend/internal/problem"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const (
	// APITokenPrefix starts every static API token
	APITokenPrefix = "pfd_"
	// APITokenSubject is the subject of requests authenticated by API token
	APITokenSubject = "api-token"
	// IsAPITokenAuthKey is the context key indicating API token authentication
	IsAPITokenAuthKey contextKey = "is_api_token_auth"
)

// APITokenAuthMiddleware accepts a single preconfigured API token
type APITokenAuthMiddleware struct {
	token string
}

// NewAPITokenAuthMiddleware creates a new APITokenAuthMiddleware
func NewAPITokenAuthMiddleware(token string) *APITokenAuthMiddleware {
	return &APITokenAuthMiddleware{token: token}
}

// Authenticate returns an Echo middleware that validates the API token
func (m *APITokenAuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c)
			if !ok {
				return problem.Unauthorized(c, "Missing or malformed authorization header")
			}
			return m.authenticateWithToken(token)(next)(c)
		}
	}
}

func (m *APITokenAuthMiddleware) authenticateWithToken(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !strings.HasPrefix(token, APITokenPrefix) {
				return problem.Unauthorized(c, "Invalid token format")
			}
			if m.token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(m.token)) != 1 {
				log.Debug().Msg("API token rejected")
				return problem.Unauthorized(c, "Invalid API token")
			}

			ctx := context.WithValue(c.Request().Context(), SubjectKey, APITokenSubject)
			ctx = context.WithValue(ctx, IsAPITokenAuthKey, true)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// IsAPITokenAuth checks if the request was authenticated via API token
func IsAPITokenAuth(c echo.Context) bool {
	if isAPIToken, ok := c.Request().Context().Value(IsAPITokenAuthKey).(bool); ok {
		return isAPIToken
	}
	return false
}
