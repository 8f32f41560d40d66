package repositories

import (
	"context"

	"scribbly/internal/domain/models"
)

// FolderRepository defines data access operations for folders.
// Every operation is scoped to the owning user; a miss and a foreign
// folder are indistinguishable (both ErrNotFound).
type FolderRepository interface {
	// Create persists a new folder. The storage layer enforces
	// per-(user, parent) name uniqueness and returns ErrConflict on a
	// duplicate, closing the check-then-act race.
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder owned by the user
	GetByID(ctx context.Context, id, userID string) (*models.Folder, error)

	// Update applies name/color/parent changes
	Update(ctx context.Context, folder *models.Folder) error

	// Delete removes a folder. Returns ErrConflict when subfolders still
	// reference it (RESTRICT constraint backstop).
	Delete(ctx context.Context, id, userID string) error

	// ListChildren lists immediate child folders, newest-first.
	// parentID nil means root level.
	ListChildren(ctx context.Context, parentID *string, userID string) ([]models.Folder, error)

	// GetByNameAndParent finds a folder by exact name under a parent.
	// Returns (nil, nil) when absent.
	GetByNameAndParent(ctx context.Context, userID, name string, parentID *string) (*models.Folder, error)

	// CountChildren counts immediate child folders
	CountChildren(ctx context.Context, folderID, userID string) (int, error)
}
