package domain

import "errors"

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("all fields are required")
	ErrMissingCredentials = errors.New("username and password are required")
)

// Token verification failures carry their own taxonomy so the API layer can
// report a distinct status code and machine-readable key per failure class.
var (
	ErrTokenMissing = errors.New("request does not contain an access token")
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token signature verification failed")
	ErrTokenRevoked = errors.New("token has been revoked")
)

// User models an account holder. Accounts are created via signup and are
// immutable afterwards; deleting a user cascades to every note it owns.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}
