package repositories

import (
	"context"

	"scribbly/internal/domain/models"
)

// NoteRepository defines data access operations for notes
type NoteRepository interface {
	// Create persists a new note
	Create(ctx context.Context, note *models.Note) error

	// GetByID retrieves a note owned by the user
	GetByID(ctx context.Context, id, userID string) (*models.Note, error)

	// Update applies title/content/folder changes
	Update(ctx context.Context, note *models.Note) error

	// Delete removes a note
	Delete(ctx context.Context, id, userID string) error

	// ListByFolder lists notes in a container, newest-first.
	// folderID nil matches notes with no folder (root placement).
	ListByFolder(ctx context.Context, folderID *string, userID string) ([]models.Note, error)

	// CountByFolder counts notes directly inside a folder
	CountByFolder(ctx context.Context, folderID, userID string) (int, error)
}
