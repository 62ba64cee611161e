package ports

import (
	"context"

	"github.com/canvasnotes/notes-api/internal/core/domain"
)

// AuthService defines the account use cases: signup, login and token-holder
// introspection. Login returns a signed bearer token alongside the public
// user record; both credential failures (unknown user, wrong password)
// surface as the same domain.ErrInvalidCredentials.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	CurrentUser(ctx context.Context, userID int64) (*domain.User, error)
}
