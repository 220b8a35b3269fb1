package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireAuth rejects requests that carry no authenticated identity. Applied
// to protected route groups; the auth filter itself never rejects.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, _ := c.Get(IdentityKey).(string)
			if identity == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return next(c)
		}
	}
}
