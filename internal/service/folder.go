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

// FolderService maintains the folder tree: per-sibling name uniqueness,
// same-user parent linkage, guarded deletion, and breadcrumb paths.
type FolderService struct {
	folderRepo repositories.FolderRepository
	noteRepo   repositories.NoteRepository
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(folderRepo repositories.FolderRepository, noteRepo repositories.NoteRepository, txManager repositories.TransactionManager, logger *slog.Logger) *FolderService {
	return &FolderService{
		folderRepo: folderRepo,
		noteRepo:   noteRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// CreateFolderRequest carries folder creation input
type CreateFolderRequest struct {
	UserID   string  `json:"-"`
	Name     string  `json:"name"`
	ParentID *string `json:"parentFolder"`
	Color    string  `json:"color"`
}

// UpdateFolderRequest carries folder update input. ParentID is tri-state:
// absent leaves placement alone, null moves to root, an id moves under it.
type UpdateFolderRequest struct {
	Name     *string                 `json:"name"`
	Color    *string                 `json:"color"`
	ParentID httputil.OptionalString `json:"parentFolder"`
}

// CreateFolder creates a new folder after verifying parent ownership and
// sibling-name uniqueness. The storage-level unique index is the
// authoritative guard; the lookup here exists for a friendlier message.
func (s *FolderService) CreateFolder(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error) {
	name := strings.TrimSpace(req.Name)
	if err := validation.Validate(name, validation.Required, validation.Length(1, config.MaxFolderNameLength)); err != nil {
		return nil, fmt.Errorf("%w: folder name %v", domain.ErrValidation, err)
	}

	// Normalize empty string to nil for root-level folders
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}

	if req.ParentID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *req.ParentID, req.UserID); err != nil {
			return nil, fmt.Errorf("%w: parent folder not found", domain.ErrValidation)
		}
	}

	existing, err := s.folderRepo.GetByNameAndParent(ctx, req.UserID, name, req.ParentID)
	if err != nil {
		return nil, fmt.Errorf("check for duplicate names: %w", err)
	}
	if existing != nil {
		return nil, &domain.ConflictError{
			Message:      fmt.Sprintf("a folder named %q already exists in this location", name),
			ResourceType: "folder",
			ResourceID:   existing.ID,
		}
	}

	color := req.Color
	if color == "" {
		color = models.DefaultFolderColor
	}

	now := time.Now()
	folder := &models.Folder{
		UserID:    req.UserID,
		ParentID:  req.ParentID,
		Name:      name,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"user_id", folder.UserID,
		"parent_id", folder.ParentID,
	)

	return folder, nil
}

// GetFolder retrieves a folder owned by the user
func (s *FolderService) GetFolder(ctx context.Context, userID, folderID string) (*models.Folder, error) {
	return s.folderRepo.GetByID(ctx, folderID, userID)
}

// UpdateFolder renames, recolors, or moves a folder. Renames re-check
// sibling uniqueness excluding the folder itself; moves reject the
// folder's own subtree as a target. Color applies unconditionally.
func (s *FolderService) UpdateFolder(ctx context.Context, userID, folderID string, req *UpdateFolderRequest) (*models.Folder, error) {
	if req.Name == nil && req.Color == nil && !req.ParentID.Present {
		return nil, fmt.Errorf("%w: at least one field must be provided", domain.ErrValidation)
	}

	folder, err := s.folderRepo.GetByID(ctx, folderID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := validation.Validate(name, validation.Required, validation.Length(1, config.MaxFolderNameLength)); err != nil {
			return nil, fmt.Errorf("%w: folder name %v", domain.ErrValidation, err)
		}
		folder.Name = name
	}

	if req.Color != nil && *req.Color != "" {
		folder.Color = *req.Color
	}

	if req.ParentID.Present {
		if req.ParentID.Value != nil {
			parent, err := s.folderRepo.GetByID(ctx, *req.ParentID.Value, userID)
			if err != nil {
				return nil, fmt.Errorf("%w: parent folder not found", domain.ErrValidation)
			}

			if err := s.validateNoCircularReference(ctx, userID, folderID, parent.ID); err != nil {
				return nil, err
			}

			folder.ParentID = &parent.ID
		} else {
			// null = move to root
			folder.ParentID = nil
		}
	}

	if req.Name != nil || req.ParentID.Present {
		existing, err := s.folderRepo.GetByNameAndParent(ctx, userID, folder.Name, folder.ParentID)
		if err != nil {
			return nil, fmt.Errorf("check for duplicate names: %w", err)
		}
		if existing != nil && existing.ID != folder.ID {
			return nil, &domain.ConflictError{
				Message:      fmt.Sprintf("a folder named %q already exists in this location", folder.Name),
				ResourceType: "folder",
				ResourceID:   existing.ID,
			}
		}
	}

	folder.UpdatedAt = time.Now()

	if err := s.folderRepo.Update(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder updated",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
	)

	return folder, nil
}

// DeleteFolder deletes a folder only when it holds no direct subfolders
// and no direct notes. Deletion is refused, never cascaded.
func (s *FolderService) DeleteFolder(ctx context.Context, userID, folderID string) error {
	folder, err := s.folderRepo.GetByID(ctx, folderID, userID)
	if err != nil {
		return err
	}

	// The emptiness checks and the delete share a transaction; the RESTRICT
	// foreign keys catch anything that slips in between them anyway.
	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		subfolders, err := s.folderRepo.CountChildren(ctx, folderID, userID)
		if err != nil {
			return err
		}

		notes, err := s.noteRepo.CountByFolder(ctx, folderID, userID)
		if err != nil {
			return err
		}

		if subfolders > 0 || notes > 0 {
			return &domain.ConflictError{
				Message:      "cannot delete a folder that contains subfolders or notes; move or delete the contents first",
				ResourceType: "folder",
				ResourceID:   folderID,
			}
		}

		return s.folderRepo.Delete(ctx, folderID, userID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("folder deleted", "id", folderID, "name", folder.Name, "user_id", userID)

	return nil
}

// ListFolders lists immediate child folders of a container, newest-first.
// An unknown non-root container yields an empty list rather than an error.
func (s *FolderService) ListFolders(ctx context.Context, userID string, parentID *string) ([]models.Folder, error) {
	if parentID != nil && *parentID == "" {
		parentID = nil
	}

	folders, err := s.folderRepo.ListChildren(ctx, parentID, userID)
	if err != nil {
		return nil, err
	}
	if folders == nil {
		folders = []models.Folder{}
	}

	return folders, nil
}

// Path returns the breadcrumb for a folder: the synthetic Home entry
// followed by ancestors from the topmost root-level folder down to the
// folder itself. A nil folderID yields just the Home entry.
func (s *FolderService) Path(ctx context.Context, userID string, folderID *string) ([]models.PathEntry, error) {
	if folderID == nil || *folderID == "" {
		return []models.PathEntry{models.RootPathEntry()}, nil
	}

	folder, err := s.folderRepo.GetByID(ctx, *folderID, userID)
	if err != nil {
		return nil, err
	}

	// Walk the parent chain upward. The chain is acyclic by construction
	// (creates attach leaves, moves reject descendants), so the depth cap
	// only trips on a corrupted tree.
	var chain []models.PathEntry
	current := folder
	for depth := 0; ; depth++ {
		if depth >= config.MaxFolderDepth {
			return nil, fmt.Errorf("folder %s: parent chain exceeds depth %d", *folderID, config.MaxFolderDepth)
		}

		id := current.ID
		chain = append([]models.PathEntry{{ID: &id, Name: current.Name}}, chain...)

		if current.ParentID == nil {
			break
		}

		parent, err := s.folderRepo.GetByID(ctx, *current.ParentID, userID)
		if err != nil {
			return nil, fmt.Errorf("resolve parent of folder %s: %w", current.ID, err)
		}
		current = parent
	}

	path := make([]models.PathEntry, 0, len(chain)+1)
	path = append(path, models.RootPathEntry())
	path = append(path, chain...)

	return path, nil
}

// validateNoCircularReference ensures moving folderID under newParentID
// keeps the parent relation a forest.
func (s *FolderService) validateNoCircularReference(ctx context.Context, userID, folderID, newParentID string) error {
	if folderID == newParentID {
		return fmt.Errorf("%w: cannot move a folder into itself", domain.ErrValidation)
	}

	currentID := newParentID
	for depth := 0; depth < config.MaxFolderDepth; depth++ {
		parent, err := s.folderRepo.GetByID(ctx, currentID, userID)
		if err != nil {
			return err
		}

		if parent.ParentID == nil {
			return nil // Reached root, no circular reference
		}

		if *parent.ParentID == folderID {
			return fmt.Errorf("%w: cannot move a folder into its own descendant", domain.ErrValidation)
		}

		currentID = *parent.ParentID
	}

	return fmt.Errorf("folder %s: parent chain exceeds depth %d", newParentID, config.MaxFolderDepth)
}
