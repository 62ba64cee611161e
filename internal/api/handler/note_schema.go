package handler

import (
	"encoding/json"
	"time"

	"github.com/canvasnotes/notes-api/internal/core/domain"
)

// --- Request types ---
//
// Layout fields arrive as raw JSON so an ill-shaped blob never fails the
// bind: it is shape-checked by the mapper and silently dropped when it does
// not conform, matching the contract's accepted permissiveness.

type createNoteRequest struct {
	Title    string          `json:"title"   validate:"required"`
	Content  string          `json:"content"`
	Position json.RawMessage `json:"position"`
	Size     json.RawMessage `json:"size"`
}

type updateNoteRequest struct {
	// Nil pointers distinguish "absent" (keep stored value) from an
	// explicit empty string (replace with empty).
	Title    *string         `json:"title"`
	Content  *string         `json:"content"`
	Position json.RawMessage `json:"position"`
	Size     json.RawMessage `json:"size"`
}

type patchNoteRequest struct {
	Position json.RawMessage `json:"position"`
	Size     json.RawMessage `json:"size"`
}

// --- Response types ---

type noteResponse struct {
	ID        int64            `json:"id"`
	Title     string           `json:"title"`
	Content   string           `json:"content"`
	Position  *domain.Position `json:"position"`
	Size      *domain.Size     `json:"size"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type createNoteResponse struct {
	Message string       `json:"message"`
	ID      int64        `json:"id"`
	Note    noteResponse `json:"note"`
}

type updateNoteResponse struct {
	Message string       `json:"message"`
	Note    noteResponse `json:"note"`
}

type patchNoteResponse struct {
	Message  string           `json:"message"`
	Position *domain.Position `json:"position"`
	Size     *domain.Size     `json:"size"`
}

type messageResponse struct {
	Message string `json:"message"`
}
