package handler

import (
	"bytes"
	"encoding/json"

	"github.com/canvasnotes/notes-api/internal/api/metrics"
	"github.com/canvasnotes/notes-api/internal/core/domain"
)

var jsonNull = []byte("null")

// positionFromRequest shape-checks a client-supplied position blob. A blob
// that is present but ill-shaped is dropped (nil), counted, and never
// rejected.
func positionFromRequest(raw json.RawMessage) *domain.Position {
	if len(raw) == 0 || bytes.Equal(raw, jsonNull) {
		return nil
	}
	p := domain.DecodePosition(raw)
	if p == nil {
		metrics.LayoutDropsTotal.WithLabelValues("position").Inc()
	}
	return p
}

// sizeFromRequest is the size counterpart of positionFromRequest.
func sizeFromRequest(raw json.RawMessage) *domain.Size {
	if len(raw) == 0 || bytes.Equal(raw, jsonNull) {
		return nil
	}
	s := domain.DecodeSize(raw)
	if s == nil {
		metrics.LayoutDropsTotal.WithLabelValues("size").Inc()
	}
	return s
}

func toNoteResponse(n *domain.Note) noteResponse {
	return noteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Position:  n.Position,
		Size:      n.Size,
		CreatedAt: n.CreatedAt.UTC(),
		UpdatedAt: n.UpdatedAt.UTC(),
	}
}

func toNoteListResponse(notes []domain.Note) []noteResponse {
	out := make([]noteResponse, len(notes))
	for i := range notes {
		out[i] = toNoteResponse(&notes[i])
	}
	return out
}
