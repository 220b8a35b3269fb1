package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/task-management-api/internal/api/middleware"
)

// ctxIdentity extracts the authenticated identity injected by the auth
// filter. Protected routes sit behind RequireAuth, so an empty identity here
// means the route was wired without it. Reject with 401 rather than let an
// anonymous caller through a policy check.
func ctxIdentity(c echo.Context) (string, error) {
	identity, _ := c.Get(middleware.IdentityKey).(string)
	if identity == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}
