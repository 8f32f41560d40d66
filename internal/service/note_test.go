package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"scribbly/internal/domain"
	"scribbly/internal/domain/models"
	"scribbly/internal/httputil"
)

func seedFolder(t *testing.T, folders *memFolderRepo, userID, name string) *models.Folder {
	t.Helper()
	folder := &models.Folder{
		UserID:    userID,
		Name:      name,
		Color:     models.DefaultFolderColor,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := folders.Create(context.Background(), folder); err != nil {
		t.Fatalf("seed folder %q: %v", name, err)
	}
	return folder
}

func TestCreateNote(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to manual source at root", func(t *testing.T) {
		svc, _, _ := newTestNoteService()
		note, err := svc.CreateNote(ctx, &CreateNoteRequest{UserID: "u1", Title: "Minutes", Content: "agenda"})
		if err != nil {
			t.Fatalf("CreateNote error: %v", err)
		}
		if note.Source != models.SourceManual {
			t.Errorf("Source = %q, want %q", note.Source, models.SourceManual)
		}
		if note.FolderID != nil {
			t.Errorf("FolderID = %v, want nil", *note.FolderID)
		}
		if note.ID == "" {
			t.Error("ID not assigned")
		}
	})

	t.Run("title is trimmed", func(t *testing.T) {
		svc, _, _ := newTestNoteService()
		note, err := svc.CreateNote(ctx, &CreateNoteRequest{UserID: "u1", Title: "  Minutes  "})
		if err != nil {
			t.Fatalf("CreateNote error: %v", err)
		}
		if note.Title != "Minutes" {
			t.Errorf("Title = %q, want Minutes", note.Title)
		}
	})

	t.Run("blank title rejected", func(t *testing.T) {
		svc, _, _ := newTestNoteService()
		_, err := svc.CreateNote(ctx, &CreateNoteRequest{UserID: "u1", Title: "   "})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("error = %v, want ErrValidation", err)
		}
	})

	t.Run("unknown source tag rejected", func(t *testing.T) {
		svc, _, _ := newTestNoteService()
		_, err := svc.CreateNote(ctx, &CreateNoteRequest{UserID: "u1", Title: "Minutes", Source: "scan"})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("error = %v, want ErrValidation", err)
		}
	})

	t.Run("unknown folder rejected", func(t *testing.T) {
		svc, _, _ := newTestNoteService()
		_, err := svc.CreateNote(ctx, &CreateNoteRequest{UserID: "u1", Title: "Minutes", FolderID: strPtr("missing")})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("error = %v, want ErrValidation", err)
		}
	})

	t.Run("foreign folder rejected", func(t *testing.T) {
		svc, folders, _ := newTestNoteService()
		theirs := seedFolder(t, folders, "u2", "Theirs")
		_, err := svc.CreateNote(ctx, &CreateNoteRequest{UserID: "u1", Title: "Minutes", FolderID: &theirs.ID})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("error = %v, want ErrValidation", err)
		}
	})

	t.Run("placed in an owned folder", func(t *testing.T) {
		svc, folders, _ := newTestNoteService()
		mine := seedFolder(t, folders, "u1", "Work")
		note, err := svc.CreateNote(ctx, &CreateNoteRequest{UserID: "u1", Title: "Minutes", FolderID: &mine.ID})
		if err != nil {
			t.Fatalf("CreateNote error: %v", err)
		}
		if note.FolderID == nil || *note.FolderID != mine.ID {
			t.Errorf("FolderID = %v, want %s", note.FolderID, mine.ID)
		}
	})
}

func TestListNotes(t *testing.T) {
	ctx := context.Background()

	t.Run("root listing excludes foldered notes", func(t *testing.T) {
		svc, folders, _ := newTestNoteService()
		work := seedFolder(t, folders, "u1", "Work")

		if _, err := svc.CreateNote(ctx, &CreateNoteRequest{UserID: "u1", Title: "Loose"}); err != nil {
			t.Fatalf("CreateNote error: %v", err)
		}
		if _, err := svc.CreateNote(ctx, &CreateNoteRequest{UserID: "u1", Title: "Filed", FolderID: &work.ID}); err != nil {
			t.Fatalf("CreateNote error: %v", err)
		}

		notes, err := svc.ListNotes(ctx, "u1", nil)
		if err != nil {
			t.Fatalf("ListNotes error: %v", err)
		}
		if len(notes) != 1 || notes[0].Title != "Loose" {
			t.Errorf("root listing = %v, want only Loose", notes)
		}
	})

	t.Run("newest first", func(t *testing.T) {
		svc, _, _ := newTestNoteService()
		for _, title := range []string{"first", "second", "third"} {
			if _, err := svc.CreateNote(ctx, &CreateNoteRequest{UserID: "u1", Title: title}); err != nil {
				t.Fatalf("CreateNote(%q) error: %v", title, err)
			}
		}

		notes, err := svc.ListNotes(ctx, "u1", nil)
		if err != nil {
			t.Fatalf("ListNotes error: %v", err)
		}
		want := []string{"third", "second", "first"}
		if len(notes) != len(want) {
			t.Fatalf("got %d notes, want %d", len(notes), len(want))
		}
		for i, title := range want {
			if notes[i].Title != title {
				t.Errorf("notes[%d].Title = %q, want %q", i, notes[i].Title, title)
			}
		}
	})

	t.Run("unknown container yields empty list", func(t *testing.T) {
		svc, _, _ := newTestNoteService()
		notes, err := svc.ListNotes(ctx, "u1", strPtr("missing"))
		if err != nil {
			t.Fatalf("ListNotes error: %v", err)
		}
		if notes == nil || len(notes) != 0 {
			t.Errorf("got %v, want empty non-nil slice", notes)
		}
	})
}

func TestUpdateNote(t *testing.T) {
	ctx := context.Background()

	t.Run("no fields rejected", func(t *testing.T) {
		svc, _, _ := newTestNoteService()
		note, err := svc.CreateNote(ctx, &CreateNoteRequest{UserID: "u1", Title: "Minutes"})
		if err != nil {
			t.Fatalf("CreateNote error: %v", err)
		}
		_, err = svc.UpdateNote(ctx, "u1", note.ID, &UpdateNoteRequest{})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("error = %v, want ErrValidation", err)
		}
	})

	t.Run("move into folder and back to root", func(t *testing.T) {
		svc, folders, _ := newTestNoteService()
		work := seedFolder(t, folders, "u1", "Work")
		note, err := svc.CreateNote(ctx, &CreateNoteRequest{UserID: "u1", Title: "Minutes"})
		if err != nil {
			t.Fatalf("CreateNote error: %v", err)
		}

		moved, err := svc.UpdateNote(ctx, "u1", note.ID, &UpdateNoteRequest{
			FolderID: httputil.OptionalString{Present: true, Value: &work.ID},
		})
		if err != nil {
			t.Fatalf("UpdateNote(move in) error: %v", err)
		}
		if moved.FolderID == nil || *moved.FolderID != work.ID {
			t.Fatalf("FolderID = %v, want %s", moved.FolderID, work.ID)
		}

		back, err := svc.UpdateNote(ctx, "u1", note.ID, &UpdateNoteRequest{
			FolderID: httputil.OptionalString{Present: true, Value: nil},
		})
		if err != nil {
			t.Fatalf("UpdateNote(move out) error: %v", err)
		}
		if back.FolderID != nil {
			t.Errorf("FolderID = %v, want nil", *back.FolderID)
		}
	})

	t.Run("absent folder field leaves placement alone", func(t *testing.T) {
		svc, folders, _ := newTestNoteService()
		work := seedFolder(t, folders, "u1", "Work")
		note, err := svc.CreateNote(ctx, &CreateNoteRequest{UserID: "u1", Title: "Minutes", FolderID: &work.ID})
		if err != nil {
			t.Fatalf("CreateNote error: %v", err)
		}

		updated, err := svc.UpdateNote(ctx, "u1", note.ID, &UpdateNoteRequest{Title: strPtr("Renamed")})
		if err != nil {
			t.Fatalf("UpdateNote error: %v", err)
		}
		if updated.FolderID == nil || *updated.FolderID != work.ID {
			t.Errorf("FolderID = %v, want unchanged %s", updated.FolderID, work.ID)
		}
	})

	t.Run("foreign note is not found", func(t *testing.T) {
		svc, _, _ := newTestNoteService()
		note, err := svc.CreateNote(ctx, &CreateNoteRequest{UserID: "u2", Title: "Theirs"})
		if err != nil {
			t.Fatalf("CreateNote error: %v", err)
		}
		_, err = svc.UpdateNote(ctx, "u1", note.ID, &UpdateNoteRequest{Title: strPtr("Stolen")})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestDeleteNote(t *testing.T) {
	ctx := context.Background()

	svc, _, _ := newTestNoteService()
	note, err := svc.CreateNote(ctx, &CreateNoteRequest{UserID: "u1", Title: "Minutes"})
	if err != nil {
		t.Fatalf("CreateNote error: %v", err)
	}

	if err := svc.DeleteNote(ctx, "u1", note.ID); err != nil {
		t.Fatalf("DeleteNote error: %v", err)
	}

	if _, err := svc.GetNote(ctx, "u1", note.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetNote after delete = %v, want ErrNotFound", err)
	}
}
