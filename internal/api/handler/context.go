package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/canvasnotes/notes-api/internal/core/domain"
)

// ctxUserID extracts the verified user id injected by the Auth middleware.
// Its presence proves the auth gate ran; a handler reached without it treats
// the request as unauthenticated.
func ctxUserID(c echo.Context) (int64, error) {
	id, ok := c.Get("user_id").(int64)
	if !ok || id <= 0 {
		return 0, domain.ErrTokenMissing
	}
	return id, nil
}

// ctxToken extracts the bearer token's id and expiry for revocation.
func ctxToken(c echo.Context) (jti string, expires time.Time) {
	jti, _ = c.Get("token_id").(string)
	expires, _ = c.Get("token_expires").(time.Time)
	return jti, expires
}
