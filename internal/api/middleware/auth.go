package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/task-management-api/internal/core/domain"
)

// Context keys set by Authenticate and read by handlers and RequireAuth.
const (
	IdentityKey = "identity"
	RoleKey     = "role"
)

// TokenVerifier is the slice of the token service the filter needs.
type TokenVerifier interface {
	ExtractIdentity(token string) (string, error)
	IsValid(token, expectedIdentity string) bool
}

// UserLoader loads the full user record for a resolved identity.
type UserLoader interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Authenticate resolves the bearer token into an identity and role on the
// request context. It never rejects: a missing, malformed, or expired token
// leaves the request anonymous, and route-level policy decides downstream.
func Authenticate(tokens TokenVerifier, users UserLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return next(c)
			}

			token := strings.TrimPrefix(header, "Bearer ")
			identity, err := tokens.ExtractIdentity(token)
			if err != nil {
				return next(c)
			}

			if _, ok := c.Get(IdentityKey).(string); ok {
				return next(c)
			}

			user, err := users.FindByEmail(c.Request().Context(), identity)
			if err != nil {
				return next(c)
			}

			if tokens.IsValid(token, user.Email) {
				c.Set(IdentityKey, user.Email)
				c.Set(RoleKey, user.Role)
			}

			return next(c)
		}
	}
}
