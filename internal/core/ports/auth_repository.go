package ports

import (
	"context"

	"github.com/canvasnotes/notes-api/internal/core/domain"
)

// AuthRepository defines persistence operations for user accounts.
type AuthRepository interface {
	// Create persists a new user and fills in the assigned ID. A username or
	// email collision surfaces as domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}
