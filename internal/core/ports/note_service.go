package ports

import (
	"context"

	"github.com/canvasnotes/notes-api/internal/core/domain"
)

// CreateNoteInput carries all data needed to create a note. Position and Size
// are nil when the client omitted them or supplied an ill-shaped blob; the
// transport layer has already dropped anything that failed the shape check.
type CreateNoteInput struct {
	UserID   int64
	Title    string
	Content  string
	Position *domain.Position
	Size     *domain.Size
}

// UpdateNoteInput carries a full-replace update. Nil pointers mean "leave the
// stored value untouched", never "clear".
type UpdateNoteInput struct {
	UserID   int64
	NoteID   int64
	Title    *string
	Content  *string
	Position *domain.Position
	Size     *domain.Size
}

// PatchNoteInput carries a layout-only update. At least one of Position and
// Size must be set or the service rejects the call with
// domain.ErrNoLayoutData.
type PatchNoteInput struct {
	UserID   int64
	NoteID   int64
	Position *domain.Position
	Size     *domain.Size
}

// NoteService defines the note use cases. Every operation is scoped to the
// verified owner: a note held by another user yields domain.ErrNotOwner on
// direct-id operations and is simply invisible to List. Existence is checked
// before ownership, so a missing note always yields domain.ErrNoteNotFound.
type NoteService interface {
	List(ctx context.Context, userID int64) ([]domain.Note, error)
	Create(ctx context.Context, input CreateNoteInput) (*domain.Note, error)
	Update(ctx context.Context, input UpdateNoteInput) (*domain.Note, error)
	Patch(ctx context.Context, input PatchNoteInput) (*domain.Note, error)
	Delete(ctx context.Context, userID, noteID int64) error
}
