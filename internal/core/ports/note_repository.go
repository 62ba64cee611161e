package ports

import (
	"context"

	"github.com/canvasnotes/notes-api/internal/core/domain"
)

// NoteRepository defines persistence operations for notes. Lookups are by
// primary key regardless of owner; ownership checks belong to the service
// layer so that existence failures take precedence over ownership failures.
type NoteRepository interface {
	// Create persists a new note and fills in the assigned ID.
	Create(ctx context.Context, note *domain.Note) error
	FindByID(ctx context.Context, id int64) (*domain.Note, error)
	// ListByUser returns the user's notes ordered by updated timestamp,
	// most recently touched first.
	ListByUser(ctx context.Context, userID int64) ([]domain.Note, error)
	Update(ctx context.Context, note *domain.Note) error
	Delete(ctx context.Context, id int64) error
}
