package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"scribbly/internal/config"
	"scribbly/internal/domain"
	"scribbly/internal/domain/models"
	"scribbly/internal/domain/repositories"
	"scribbly/internal/httputil"
)

// NoteService handles note CRUD and placement. All operations are scoped
// to (note id, acting user); any mismatch reads as not-found.
type NoteService struct {
	noteRepo   repositories.NoteRepository
	folderRepo repositories.FolderRepository
	logger     *slog.Logger
}

// NewNoteService creates a new note service
func NewNoteService(noteRepo repositories.NoteRepository, folderRepo repositories.FolderRepository, logger *slog.Logger) *NoteService {
	return &NoteService{
		noteRepo:   noteRepo,
		folderRepo: folderRepo,
		logger:     logger,
	}
}

// CreateNoteRequest carries note creation input
type CreateNoteRequest struct {
	UserID   string            `json:"-"`
	Title    string            `json:"title"`
	Content  string            `json:"content"`
	FolderID *string           `json:"folder"`
	Source   models.NoteSource `json:"-"`
}

// UpdateNoteRequest carries note update input. Folder is tri-state:
// absent leaves placement alone, null moves to root, an id moves into it.
type UpdateNoteRequest struct {
	Title    *string                 `json:"title"`
	Content  *string                 `json:"content"`
	FolderID httputil.OptionalString `json:"folder"`
}

// CreateNote creates a note placed in a folder or at root. The target
// folder must exist and belong to the user; a dangling folder reference
// would silently hide the note from every listing.
func (s *NoteService) CreateNote(ctx context.Context, req *CreateNoteRequest) (*models.Note, error) {
	title := strings.TrimSpace(req.Title)
	if err := validation.Validate(title, validation.Required, validation.Length(1, config.MaxNoteTitleLength)); err != nil {
		return nil, fmt.Errorf("%w: note title %v", domain.ErrValidation, err)
	}

	source := req.Source
	if source == "" {
		source = models.SourceManual
	}
	if !source.Valid() {
		return nil, fmt.Errorf("%w: invalid source tag %q", domain.ErrValidation, source)
	}

	if req.FolderID != nil && *req.FolderID == "" {
		req.FolderID = nil
	}

	if req.FolderID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *req.FolderID, req.UserID); err != nil {
			return nil, fmt.Errorf("%w: folder not found", domain.ErrValidation)
		}
	}

	now := time.Now()
	note := &models.Note{
		UserID:    req.UserID,
		FolderID:  req.FolderID,
		Title:     title,
		Content:   req.Content,
		Source:    source,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info("note created",
		"id", note.ID,
		"title", note.Title,
		"user_id", note.UserID,
		"folder_id", note.FolderID,
		"source", note.Source,
	)

	return note, nil
}

// GetNote retrieves a note owned by the user
func (s *NoteService) GetNote(ctx context.Context, userID, noteID string) (*models.Note, error) {
	return s.noteRepo.GetByID(ctx, noteID, userID)
}

// ListNotes lists notes in a container, newest-first. A nil folderID
// matches notes placed at root.
func (s *NoteService) ListNotes(ctx context.Context, userID string, folderID *string) ([]models.Note, error) {
	if folderID != nil && *folderID == "" {
		folderID = nil
	}

	notes, err := s.noteRepo.ListByFolder(ctx, folderID, userID)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []models.Note{}
	}

	return notes, nil
}

// UpdateNote applies title/content changes and tri-state folder moves
func (s *NoteService) UpdateNote(ctx context.Context, userID, noteID string, req *UpdateNoteRequest) (*models.Note, error) {
	if req.Title == nil && req.Content == nil && !req.FolderID.Present {
		return nil, fmt.Errorf("%w: at least one field must be provided", domain.ErrValidation)
	}

	note, err := s.noteRepo.GetByID(ctx, noteID, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if err := validation.Validate(title, validation.Required, validation.Length(1, config.MaxNoteTitleLength)); err != nil {
			return nil, fmt.Errorf("%w: note title %v", domain.ErrValidation, err)
		}
		note.Title = title
	}

	if req.Content != nil {
		note.Content = *req.Content
	}

	if req.FolderID.Present {
		if req.FolderID.Value != nil {
			if _, err := s.folderRepo.GetByID(ctx, *req.FolderID.Value, userID); err != nil {
				return nil, fmt.Errorf("%w: folder not found", domain.ErrValidation)
			}
			note.FolderID = req.FolderID.Value
		} else {
			note.FolderID = nil
		}
	}

	note.UpdatedAt = time.Now()

	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}

	return note, nil
}

// DeleteNote removes a note. Notes own nothing, so there is no guard.
func (s *NoteService) DeleteNote(ctx context.Context, userID, noteID string) error {
	if err := s.noteRepo.Delete(ctx, noteID, userID); err != nil {
		return err
	}

	s.logger.Info("note deleted", "id", noteID, "user_id", userID)

	return nil
}
