package middleware

import (
	"context"
	"strings"

	"github.com/dafibh/pfd/pfd-backend/internal/problem"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// DualAuthMiddleware accepts either JWT or API token authentication. Either
// may be nil; when both are nil every request passes as LocalSubject.
type DualAuthMiddleware struct {
	jwtAuth      *AuthMiddleware
	apiTokenAuth *APITokenAuthMiddleware
}

// NewDualAuthMiddleware creates a new DualAuthMiddleware
func NewDualAuthMiddleware(jwtAuth *AuthMiddleware, apiTokenAuth *APITokenAuthMiddleware) *DualAuthMiddleware {
	return &DualAuthMiddleware{
		jwtAuth:      jwtAuth,
		apiTokenAuth: apiTokenAuth,
	}
}

// Open reports whether no authentication is configured
func (m *DualAuthMiddleware) Open() bool {
	return m.jwtAuth == nil && m.apiTokenAuth == nil
}

// Authenticate returns an Echo middleware that routes API tokens to token
// auth and everything else to JWT auth
func (m *DualAuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.Open() {
				ctx := context.WithValue(c.Request().Context(), SubjectKey, LocalSubject)
				c.SetRequest(c.Request().WithContext(ctx))
				return next(c)
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return problem.Unauthorized(c, "Missing authorization header")
			}

			var token string
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
				token = parts[1]
			} else if strings.HasPrefix(authHeader, APITokenPrefix) {
				// Accept API tokens without Bearer prefix (for Swagger/simple clients)
				token = authHeader
			} else {
				return problem.Unauthorized(c, "Invalid authorization header format")
			}

			if strings.HasPrefix(token, APITokenPrefix) {
				if m.apiTokenAuth == nil {
					return problem.Unauthorized(c, "API token authentication is not enabled")
				}
				log.Debug().Msg("Attempting API token authentication")
				return m.apiTokenAuth.authenticateWithToken(token)(next)(c)
			}

			if m.jwtAuth == nil {
				return problem.Unauthorized(c, "JWT authentication is not enabled")
			}
			log.Debug().Msg("Attempting JWT authentication")
			return m.jwtAuth.authenticateWithToken(token)(next)(c)
		}
	}
}
