package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/canvasnotes/notes-api/internal/core/domain"
)

// NoteRepository implements ports.NoteRepository on MySQL. Layout fields are
// stored as JSON text blobs; a stored blob that no longer decodes degrades to
// "no layout" rather than surfacing an error.
type NoteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO notes (user_id, title, content, position, size, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		note.UserID, note.Title, note.Content,
		encodeLayout(note.Position), encodeLayout(note.Size),
		note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("note insert id: %w", err)
	}
	note.ID = id
	return nil
}

func (r *NoteRepository) FindByID(ctx context.Context, id int64) (*domain.Note, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, content, position, size, created_at, updated_at
		 FROM notes WHERE id = ?`, id)

	note, err := scanNote(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("query note by id: %w", err)
	}
	return note, nil
}

func (r *NoteRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Note, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, content, position, size, created_at, updated_at
		 FROM notes WHERE user_id = ? ORDER BY updated_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	notes := make([]domain.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, *note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return notes, nil
}

func (r *NoteRepository) Update(ctx context.Context, note *domain.Note) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notes SET title = ?, content = ?, position = ?, size = ?, updated_at = ?
		 WHERE id = ?`,
		note.Title, note.Content,
		encodeLayout(note.Position), encodeLayout(note.Size),
		note.UpdatedAt, note.ID,
	)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

// scanNote reads one notes row through the given Scan function so it serves
// both QueryRow and Rows iteration.
func scanNote(scan func(dest ...any) error) (*domain.Note, error) {
	note := &domain.Note{}
	var content sql.NullString
	var position, size sql.NullString

	err := scan(&note.ID, &note.UserID, &note.Title, &content,
		&position, &size, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return nil, err
	}

	note.Content = content.String
	if position.Valid {
		var p *domain.Position
		if json.Unmarshal([]byte(position.String), &p) == nil {
			note.Position = p
		}
	}
	if size.Valid {
		var s *domain.Size
		if json.Unmarshal([]byte(size.String), &s) == nil {
			note.Size = s
		}
	}
	return note, nil
}

// encodeLayout serialises a layout value to its stored text form. v must be a
// *domain.Position or *domain.Size; a nil pointer maps to SQL NULL.
func encodeLayout[T any](v *T) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	blob, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(blob), Valid: true}
}
