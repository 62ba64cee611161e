package domain

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrNoteNotFound  = errors.New("note not found")
	ErrNotOwner      = errors.New("note owned by another user")
	ErrTitleRequired = errors.New("title is required")
	ErrNoLayoutData  = errors.New("no valid data provided")
)

// Position is a note's canvas coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a note's canvas extent.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Note is the core aggregate: a titled text blob plus optional canvas layout,
// owned by exactly one user. Layout fields are nil when the client never
// supplied them or when the stored blob cannot be decoded.
type Note struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Position  *Position `json:"position"`
	Size      *Size     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DecodePosition parses a client-supplied position blob. It returns nil when
// the blob is absent or not shaped like {"x": <number>, "y": <number>}.
// Ill-shaped layout input is dropped, never rejected.
func DecodePosition(raw json.RawMessage) *Position {
	var p struct {
		X *float64 `json:"x"`
		Y *float64 `json:"y"`
	}
	if len(raw) == 0 || json.Unmarshal(raw, &p) != nil || p.X == nil || p.Y == nil {
		return nil
	}
	return &Position{X: *p.X, Y: *p.Y}
}

// DecodeSize is the {"width", "height"} counterpart of DecodePosition.
func DecodeSize(raw json.RawMessage) *Size {
	var s struct {
		Width  *float64 `json:"width"`
		Height *float64 `json:"height"`
	}
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil || s.Width == nil || s.Height == nil {
		return nil
	}
	return &Size{Width: *s.Width, Height: *s.Height}
}
