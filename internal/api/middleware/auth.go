package middleware

import (
	"errors"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/canvasnotes/notes-api/internal/api/metrics"
	"github.com/canvasnotes/notes-api/internal/core/domain"
	"github.com/canvasnotes/notes-api/internal/core/ports"
)

// Auth verifies the bearer token and injects the token's user id, jti and
// expiry into the request context. Verification is synchronous and
// short-circuits before any handler (and therefore any store access) runs.
//
// Failure classes map to distinct domain errors so the central error handler
// can render the token taxonomy: missing (401), expired (401), malformed or
// bad signature (422), revoked (401). tokens may be nil, in which case the
// revocation check is skipped.
func Auth(jwtSecret string, tokens ports.TokenStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthFailuresTotal.WithLabelValues("token_missing").Inc()
				return domain.ErrTokenMissing
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthFailuresTotal.WithLabelValues("token_missing").Inc()
				return domain.ErrTokenMissing
			}

			claims := &jwt.RegisteredClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				if errors.Is(err, jwt.ErrTokenExpired) {
					metrics.AuthFailuresTotal.WithLabelValues("token_expired").Inc()
					return domain.ErrTokenExpired
				}
				metrics.AuthFailuresTotal.WithLabelValues("token_invalid").Inc()
				return domain.ErrTokenInvalid
			}

			userID, err := strconv.ParseInt(claims.Subject, 10, 64)
			if err != nil || userID <= 0 {
				metrics.AuthFailuresTotal.WithLabelValues("token_invalid").Inc()
				return domain.ErrTokenInvalid
			}

			if tokens != nil && claims.ID != "" {
				revoked, err := tokens.IsRevoked(c.Request().Context(), claims.ID)
				if err != nil {
					return err
				}
				if revoked {
					metrics.AuthFailuresTotal.WithLabelValues("token_revoked").Inc()
					return domain.ErrTokenRevoked
				}
			}

			c.Set("user_id", userID)
			c.Set("token_id", claims.ID)
			if claims.ExpiresAt != nil {
				c.Set("token_expires", claims.ExpiresAt.Time)
			}

			return next(c)
		}
	}
}
