package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/canvasnotes/notes-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors: a
// human-readable message plus a stable machine-readable key. Details carries
// the underlying fault text on internal errors only.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Renders the token-verification taxonomy (expired/invalid/missing/
//     revoked) with its machine-readable keys.
//   - Logs unexpected errors and echoes the fault text in details.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{
			Message: fmt.Sprintf("%v", he.Message),
			Error:   statusKey(he.Code),
		}
	}

	// Known domain errors → deterministic HTTP codes, messages and keys.
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return http.StatusBadRequest, errorResponse{Message: "All fields are required", Error: "validation_error"}
	case errors.Is(err, domain.ErrMissingCredentials):
		return http.StatusBadRequest, errorResponse{Message: "Username and password are required", Error: "validation_error"}
	case errors.Is(err, domain.ErrTitleRequired):
		return http.StatusBadRequest, errorResponse{Message: "Title is required", Error: "validation_error"}
	case errors.Is(err, domain.ErrNoLayoutData):
		return http.StatusBadRequest, errorResponse{Message: "No valid data provided", Error: "validation_error"}
	case errors.Is(err, domain.ErrUserExists):
		// 400, not 409: the signup contract predates this service.
		return http.StatusBadRequest, errorResponse{Message: "User already exists", Error: "user_exists"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Message: "Invalid credentials", Error: "invalid_credentials"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Message: "User not found", Error: "not_found"}
	case errors.Is(err, domain.ErrNoteNotFound):
		return http.StatusNotFound, errorResponse{Message: "Note not found", Error: "not_found"}
	case errors.Is(err, domain.ErrNotOwner):
		return http.StatusForbidden, errorResponse{Message: "Unauthorized", Error: "forbidden"}
	case errors.Is(err, domain.ErrTokenMissing):
		return http.StatusUnauthorized, errorResponse{Message: "Request does not contain an access token", Error: "authorization_required"}
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, errorResponse{Message: "Token has expired", Error: "token_expired"}
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnprocessableEntity, errorResponse{Message: "Signature verification failed", Error: "invalid_token"}
	case errors.Is(err, domain.ErrTokenRevoked):
		return http.StatusUnauthorized, errorResponse{Message: "Token has been revoked", Error: "token_revoked"}
	}

	// Unexpected error: log the real cause. The fault text is echoed in the
	// response; acceptable diagnostics for a low-stakes tool.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{
		Message: "Internal server error",
		Error:   "internal_error",
		Details: err.Error(),
	}
}

func statusKey(code int) string {
	return strings.ReplaceAll(strings.ToLower(http.StatusText(code)), " ", "_")
}
