package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/canvasnotes/notes-api/internal/core/domain"
	"github.com/canvasnotes/notes-api/internal/core/ports"
)

type stubNoteRepo struct {
	notes  map[int64]*domain.Note
	nextID int64
}

func newStubNoteRepo() *stubNoteRepo {
	return &stubNoteRepo{notes: make(map[int64]*domain.Note), nextID: 1}
}

func (r *stubNoteRepo) Create(_ context.Context, note *domain.Note) error {
	note.ID = r.nextID
	r.nextID++
	clone := *note
	r.notes[note.ID] = &clone
	return nil
}

func (r *stubNoteRepo) FindByID(_ context.Context, id int64) (*domain.Note, error) {
	n, ok := r.notes[id]
	if !ok {
		return nil, domain.ErrNoteNotFound
	}
	clone := *n
	return &clone, nil
}

func (r *stubNoteRepo) ListByUser(_ context.Context, userID int64) ([]domain.Note, error) {
	out := make([]domain.Note, 0)
	for _, n := range r.notes {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	// updated_at descending, as the SQL implementation orders.
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].UpdatedAt.After(out[i].UpdatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *stubNoteRepo) Update(_ context.Context, note *domain.Note) error {
	if _, ok := r.notes[note.ID]; !ok {
		return domain.ErrNoteNotFound
	}
	clone := *note
	r.notes[note.ID] = &clone
	return nil
}

func (r *stubNoteRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.notes[id]; !ok {
		return domain.ErrNoteNotFound
	}
	delete(r.notes, id)
	return nil
}

func newNoteService(repo *stubNoteRepo) *NoteService {
	return NewNoteService(repo, zerolog.Nop())
}

func strPtr(s string) *string { return &s }

func TestNoteService_Create_Defaults(t *testing.T) {
	svc := newNoteService(newStubNoteRepo())

	note, err := svc.Create(context.Background(), ports.CreateNoteInput{UserID: 1, Title: "Shopping"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if note.ID != 1 {
		t.Fatalf("expected id 1, got %d", note.ID)
	}
	if note.Content != "" {
		t.Fatalf("expected empty content, got %q", note.Content)
	}
	if note.Position != nil || note.Size != nil {
		t.Fatalf("expected no layout, got %+v %+v", note.Position, note.Size)
	}
	if note.CreatedAt.IsZero() || !note.CreatedAt.Equal(note.UpdatedAt) {
		t.Fatalf("expected created == updated, got %v %v", note.CreatedAt, note.UpdatedAt)
	}
}

func TestNoteService_Create_TitleRequired(t *testing.T) {
	svc := newNoteService(newStubNoteRepo())

	if _, err := svc.Create(context.Background(), ports.CreateNoteInput{UserID: 1}); !errors.Is(err, domain.ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
}

func TestNoteService_Create_PositionRoundTrip(t *testing.T) {
	repo := newStubNoteRepo()
	svc := newNoteService(repo)

	created, err := svc.Create(context.Background(), ports.CreateNoteInput{
		UserID:   1,
		Title:    "Pinned",
		Position: &domain.Position{X: 3, Y: 4},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	stored, err := repo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if stored.Position == nil || stored.Position.X != 3 || stored.Position.Y != 4 {
		t.Fatalf("position did not round-trip: %+v", stored.Position)
	}
}

func TestNoteService_List_ScopedAndOrdered(t *testing.T) {
	repo := newStubNoteRepo()
	svc := newNoteService(repo)

	first, _ := svc.Create(context.Background(), ports.CreateNoteInput{UserID: 1, Title: "first"})
	if _, err := svc.Create(context.Background(), ports.CreateNoteInput{UserID: 1, Title: "second"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), ports.CreateNoteInput{UserID: 2, Title: "other user"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Touching the oldest note must move it to the front of the list.
	time.Sleep(2 * time.Millisecond)
	if _, err := svc.Patch(context.Background(), ports.PatchNoteInput{
		UserID: 1, NoteID: first.ID, Position: &domain.Position{X: 1, Y: 1},
	}); err != nil {
		t.Fatalf("patch failed: %v", err)
	}

	notes, err := svc.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes for user 1, got %d", len(notes))
	}
	if notes[0].ID != first.ID {
		t.Fatalf("expected most recently updated note first, got id %d", notes[0].ID)
	}
	for _, n := range notes {
		if n.UserID != 1 {
			t.Fatalf("foreign note leaked into list: %+v", n)
		}
	}
}

func TestNoteService_Update_FullReplaceAndAbsentKeeps(t *testing.T) {
	repo := newStubNoteRepo()
	svc := newNoteService(repo)

	created, _ := svc.Create(context.Background(), ports.CreateNoteInput{
		UserID:   1,
		Title:    "Draft",
		Content:  "old content",
		Position: &domain.Position{X: 1, Y: 2},
	})

	updated, err := svc.Update(context.Background(), ports.UpdateNoteInput{
		UserID: 1,
		NoteID: created.ID,
		Title:  strPtr("Final"),
		Size:   &domain.Size{Width: 200, Height: 100},
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Title != "Final" {
		t.Fatalf("title not replaced: %q", updated.Title)
	}
	if updated.Content != "old content" {
		t.Fatalf("absent content must keep stored value, got %q", updated.Content)
	}
	if updated.Position == nil || updated.Position.X != 1 {
		t.Fatalf("absent position must keep stored value, got %+v", updated.Position)
	}
	if updated.Size == nil || updated.Size.Width != 200 {
		t.Fatalf("size not replaced: %+v", updated.Size)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("updated timestamp not refreshed")
	}
}

func TestNoteService_Update_EmptyStringReplaces(t *testing.T) {
	repo := newStubNoteRepo()
	svc := newNoteService(repo)

	created, _ := svc.Create(context.Background(), ports.CreateNoteInput{UserID: 1, Title: "T", Content: "body"})

	updated, err := svc.Update(context.Background(), ports.UpdateNoteInput{
		UserID:  1,
		NoteID:  created.ID,
		Content: strPtr(""),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Content != "" {
		t.Fatalf("explicit empty content must replace, got %q", updated.Content)
	}
}

func TestNoteService_Patch_NoValidData(t *testing.T) {
	repo := newStubNoteRepo()
	svc := newNoteService(repo)

	created, _ := svc.Create(context.Background(), ports.CreateNoteInput{UserID: 1, Title: "T"})

	if _, err := svc.Patch(context.Background(), ports.PatchNoteInput{UserID: 1, NoteID: created.ID}); !errors.Is(err, domain.ErrNoLayoutData) {
		t.Fatalf("expected ErrNoLayoutData, got %v", err)
	}

	// A rejected patch must not touch the updated timestamp.
	stored, _ := repo.FindByID(context.Background(), created.ID)
	if !stored.UpdatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("rejected patch refreshed updated timestamp")
	}
}

func TestNoteService_OwnershipPrecedence(t *testing.T) {
	repo := newStubNoteRepo()
	svc := newNoteService(repo)

	created, _ := svc.Create(context.Background(), ports.CreateNoteInput{UserID: 1, Title: "mine"})

	// Existing note, wrong owner: forbidden, never not-found.
	if _, err := svc.Update(context.Background(), ports.UpdateNoteInput{UserID: 2, NoteID: created.ID, Title: strPtr("x")}); !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner on update, got %v", err)
	}
	if _, err := svc.Patch(context.Background(), ports.PatchNoteInput{UserID: 2, NoteID: created.ID, Position: &domain.Position{}}); !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner on patch, got %v", err)
	}
	if err := svc.Delete(context.Background(), 2, created.ID); !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner on delete, got %v", err)
	}

	// Missing note: not-found takes precedence regardless of caller.
	if _, err := svc.Update(context.Background(), ports.UpdateNoteInput{UserID: 2, NoteID: 999, Title: strPtr("x")}); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), 1, 999); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}

	// The foreign calls must not have mutated anything.
	stored, _ := repo.FindByID(context.Background(), created.ID)
	if stored.Title != "mine" {
		t.Fatalf("foreign update mutated note: %q", stored.Title)
	}
}

func TestNoteService_Delete_Permanent(t *testing.T) {
	repo := newStubNoteRepo()
	svc := newNoteService(repo)

	created, _ := svc.Create(context.Background(), ports.CreateNoteInput{UserID: 1, Title: "gone soon"})

	if err := svc.Delete(context.Background(), 1, created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), created.ID); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Fatalf("expected note gone, got %v", err)
	}

	notes, _ := svc.List(context.Background(), 1)
	if len(notes) != 0 {
		t.Fatalf("expected empty list after delete, got %d", len(notes))
	}
}
