package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskhub/task-management-api/internal/api/handler"
	"github.com/taskhub/task-management-api/internal/core/domain"
)

// violation is the canonical error envelope: the offending field (when one is
// known) and a human-readable message.
type violation struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Renders the violation envelope with the offending field where known.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, v := resolveError(err, log, c)
		_ = c.JSON(code, v)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, violation) {
	// Echo's own errors (bind failures, 404 from router, RequireAuth).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, violation{Message: fmt.Sprintf("%v", he.Message)}
	}

	// Request validation failures carry the offending field.
	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, violation{Field: ve.Field, Message: ve.Message}
	}

	// Known domain errors map to deterministic codes. Identity errors keep the
	// offending value in the message (wrapped at the service layer).
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusBadRequest, violation{Field: "email", Message: err.Error()}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusBadRequest, violation{Field: "email", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, violation{Message: "invalid credentials"}
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusBadRequest, violation{Field: "taskId", Message: domain.ErrTaskNotFound.Error()}
	case errors.Is(err, domain.ErrCommentNotFound):
		return http.StatusBadRequest, violation{Field: "commentId", Message: domain.ErrCommentNotFound.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, violation{Message: "access forbidden"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, violation{Message: "internal server error"}
}
