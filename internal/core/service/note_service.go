package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/canvasnotes/notes-api/internal/core/domain"
	"github.com/canvasnotes/notes-api/internal/core/ports"
)

// NoteService implements owner-scoped CRUD over notes.
type NoteService struct {
	repo   ports.NoteRepository
	logger zerolog.Logger
}

func NewNoteService(repo ports.NoteRepository, logger zerolog.Logger) *NoteService {
	return &NoteService{repo: repo, logger: logger}
}

// List returns every note owned by userID, most recently updated first.
func (s *NoteService) List(ctx context.Context, userID int64) ([]domain.Note, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Create persists a new note. Content defaults to the empty string; layout
// fields are stored only when the transport layer shape-checked them.
func (s *NoteService) Create(ctx context.Context, input ports.CreateNoteInput) (*domain.Note, error) {
	if input.Title == "" {
		return nil, domain.ErrTitleRequired
	}

	now := time.Now().UTC()
	note := &domain.Note{
		UserID:    input.UserID,
		Title:     input.Title,
		Content:   input.Content,
		Position:  input.Position,
		Size:      input.Size,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, note); err != nil {
		s.logger.Error().Err(err).Int64("user_id", input.UserID).Msg("failed to create note")
		return nil, err
	}

	s.logger.Info().Int64("note_id", note.ID).Int64("user_id", input.UserID).Msg("note created")
	return note, nil
}

// Update applies a full-replace update to an owned note. Nil fields leave the
// stored value untouched; the updated timestamp is always refreshed. The
// read-modify-write is unserialised, so concurrent updates to the same note
// resolve last-writer-wins.
func (s *NoteService) Update(ctx context.Context, input ports.UpdateNoteInput) (*domain.Note, error) {
	note, err := s.ownedNote(ctx, input.UserID, input.NoteID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		note.Title = *input.Title
	}
	if input.Content != nil {
		note.Content = *input.Content
	}
	if input.Position != nil {
		note.Position = input.Position
	}
	if input.Size != nil {
		note.Size = input.Size
	}
	note.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, note); err != nil {
		s.logger.Error().Err(err).Int64("note_id", note.ID).Msg("failed to update note")
		return nil, err
	}
	return note, nil
}

// Patch replaces only the layout fields. It fails with domain.ErrNoLayoutData
// when neither field survived the shape check, leaving the note (and its
// updated timestamp) untouched.
func (s *NoteService) Patch(ctx context.Context, input ports.PatchNoteInput) (*domain.Note, error) {
	note, err := s.ownedNote(ctx, input.UserID, input.NoteID)
	if err != nil {
		return nil, err
	}

	if input.Position == nil && input.Size == nil {
		return nil, domain.ErrNoLayoutData
	}
	if input.Position != nil {
		note.Position = input.Position
	}
	if input.Size != nil {
		note.Size = input.Size
	}
	note.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, note); err != nil {
		s.logger.Error().Err(err).Int64("note_id", note.ID).Msg("failed to patch note")
		return nil, err
	}
	return note, nil
}

// Delete permanently removes an owned note. No soft delete, no tombstone.
func (s *NoteService) Delete(ctx context.Context, userID, noteID int64) error {
	note, err := s.ownedNote(ctx, userID, noteID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, note.ID); err != nil {
		s.logger.Error().Err(err).Int64("note_id", note.ID).Msg("failed to delete note")
		return err
	}

	s.logger.Info().Int64("note_id", note.ID).Int64("user_id", userID).Msg("note deleted")
	return nil
}

// ownedNote fetches a note and enforces ownership. Existence is checked
// first: a missing note yields ErrNoteNotFound even when the caller would not
// have owned it, and only an existing foreign note yields ErrNotOwner.
func (s *NoteService) ownedNote(ctx context.Context, userID, noteID int64) (*domain.Note, error) {
	note, err := s.repo.FindByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note.UserID != userID {
		return nil, domain.ErrNotOwner
	}
	return note, nil
}
