package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"scribbly/internal/domain"
	"scribbly/internal/domain/models"
	"scribbly/internal/domain/repositories"
)

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool *pgxpool.Pool
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{pool: config.Pool}
}

// Create persists a new folder. The partial unique indexes on
// (user_id, parent_id, name) close the duplicate-name race: a concurrent
// insert that passed the application-level check fails here with ErrConflict.
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	if folder.ID == "" {
		folder.ID = uuid.NewString()
	}

	query := `
		INSERT INTO folders (id, user_id, parent_id, name, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		folder.ID,
		folder.UserID,
		folder.ParentID,
		folder.Name,
		folder.Color,
		folder.CreatedAt,
		folder.UpdatedAt,
	).Scan(&folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("folder %q: %w", folder.Name, domain.ErrConflict)
		}
		if isPgForeignKeyError(err) {
			return fmt.Errorf("parent folder: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder owned by the user
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id, userID string) (*models.Folder, error) {
	if !isValidUUID(id) {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	query := `
		SELECT id, user_id, parent_id, name, color, created_at, updated_at
		FROM folders
		WHERE id = $1 AND user_id = $2
	`

	var folder models.Folder
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id, userID).Scan(
		&folder.ID,
		&folder.UserID,
		&folder.ParentID,
		&folder.Name,
		&folder.Color,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

// Update applies name/color/parent changes
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	query := `
		UPDATE folders
		SET parent_id = $1, name = $2, color = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6
	`

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		folder.ParentID,
		folder.Name,
		folder.Color,
		folder.UpdatedAt,
		folder.ID,
		folder.UserID,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("folder %q: %w", folder.Name, domain.ErrConflict)
		}
		return fmt.Errorf("update folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a folder. RESTRICT foreign keys on folders.parent_id and
// notes.folder_id reject the delete when contents still exist, backing up
// the service-level emptiness check.
func (r *PostgresFolderRepository) Delete(ctx context.Context, id, userID string) error {
	if !isValidUUID(id) {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	query := `
		DELETE FROM folders
		WHERE id = $1 AND user_id = $2
	`

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id, userID)
	if err != nil {
		if isPgForeignKeyError(err) {
			return &domain.ConflictError{
				Message:      "cannot delete a folder that contains subfolders or notes",
				ResourceType: "folder",
				ResourceID:   id,
			}
		}
		return fmt.Errorf("delete folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListChildren lists immediate child folders, newest-first
func (r *PostgresFolderRepository) ListChildren(ctx context.Context, parentID *string, userID string) ([]models.Folder, error) {
	// A malformed container id can match nothing; listing stays permissive.
	if parentID != nil && !isValidUUID(*parentID) {
		return nil, nil
	}

	var query string
	var args []interface{}

	if parentID == nil {
		query = `
			SELECT id, user_id, parent_id, name, color, created_at, updated_at
			FROM folders
			WHERE user_id = $1 AND parent_id IS NULL
			ORDER BY created_at DESC
		`
		args = append(args, userID)
	} else {
		query = `
			SELECT id, user_id, parent_id, name, color, created_at, updated_at
			FROM folders
			WHERE user_id = $1 AND parent_id = $2
			ORDER BY created_at DESC
		`
		args = append(args, userID, *parentID)
	}

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list folder children: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		err := rows.Scan(
			&folder.ID,
			&folder.UserID,
			&folder.ParentID,
			&folder.Name,
			&folder.Color,
			&folder.CreatedAt,
			&folder.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

// GetByNameAndParent finds a folder by exact name under a parent.
// Returns (nil, nil) when absent.
func (r *PostgresFolderRepository) GetByNameAndParent(ctx context.Context, userID, name string, parentID *string) (*models.Folder, error) {
	var query string
	var args []interface{}

	if parentID == nil {
		query = `
			SELECT id, user_id, parent_id, name, color, created_at, updated_at
			FROM folders
			WHERE user_id = $1 AND name = $2 AND parent_id IS NULL
		`
		args = append(args, userID, name)
	} else {
		query = `
			SELECT id, user_id, parent_id, name, color, created_at, updated_at
			FROM folders
			WHERE user_id = $1 AND name = $2 AND parent_id = $3
		`
		args = append(args, userID, name, *parentID)
	}

	var folder models.Folder
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, args...).Scan(
		&folder.ID,
		&folder.UserID,
		&folder.ParentID,
		&folder.Name,
		&folder.Color,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, nil // Not found, not an error
		}
		return nil, fmt.Errorf("get folder by name and parent: %w", err)
	}

	return &folder, nil
}

// CountChildren counts immediate child folders
func (r *PostgresFolderRepository) CountChildren(ctx context.Context, folderID, userID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM folders
		WHERE parent_id = $1 AND user_id = $2
	`

	var count int
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, folderID, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count subfolders: %w", err)
	}

	return count, nil
}
