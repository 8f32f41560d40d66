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

// PostgresNoteRepository implements the NoteRepository interface
type PostgresNoteRepository struct {
	pool *pgxpool.Pool
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(config *RepositoryConfig) repositories.NoteRepository {
	return &PostgresNoteRepository{pool: config.Pool}
}

// Create persists a new note
func (r *PostgresNoteRepository) Create(ctx context.Context, note *models.Note) error {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}

	query := `
		INSERT INTO notes (id, user_id, folder_id, title, content, source, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		note.ID,
		note.UserID,
		note.FolderID,
		note.Title,
		note.Content,
		note.Source,
		note.CreatedAt,
		note.UpdatedAt,
	).Scan(&note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("folder: %w", domain.ErrNotFound)
		}
		if isPgCheckError(err) {
			return fmt.Errorf("%w: invalid source tag %q", domain.ErrValidation, note.Source)
		}
		return fmt.Errorf("create note: %w", err)
	}

	return nil
}

// GetByID retrieves a note owned by the user
func (r *PostgresNoteRepository) GetByID(ctx context.Context, id, userID string) (*models.Note, error) {
	if !isValidUUID(id) {
		return nil, fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
	}

	query := `
		SELECT id, user_id, folder_id, title, content, source, created_at, updated_at
		FROM notes
		WHERE id = $1 AND user_id = $2
	`

	var note models.Note
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id, userID).Scan(
		&note.ID,
		&note.UserID,
		&note.FolderID,
		&note.Title,
		&note.Content,
		&note.Source,
		&note.CreatedAt,
		&note.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get note: %w", err)
	}

	return &note, nil
}

// Update applies title/content/folder changes
func (r *PostgresNoteRepository) Update(ctx context.Context, note *models.Note) error {
	query := `
		UPDATE notes
		SET folder_id = $1, title = $2, content = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6
	`

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		note.FolderID,
		note.Title,
		note.Content,
		note.UpdatedAt,
		note.ID,
		note.UserID,
	)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("folder: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("update note: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("note %s: %w", note.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a note
func (r *PostgresNoteRepository) Delete(ctx context.Context, id, userID string) error {
	if !isValidUUID(id) {
		return fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
	}

	query := `
		DELETE FROM notes
		WHERE id = $1 AND user_id = $2
	`

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListByFolder lists notes in a container, newest-first
func (r *PostgresNoteRepository) ListByFolder(ctx context.Context, folderID *string, userID string) ([]models.Note, error) {
	// A malformed container id can match nothing; listing stays permissive.
	if folderID != nil && !isValidUUID(*folderID) {
		return nil, nil
	}

	var query string
	var args []interface{}

	if folderID == nil {
		query = `
			SELECT id, user_id, folder_id, title, content, source, created_at, updated_at
			FROM notes
			WHERE user_id = $1 AND folder_id IS NULL
			ORDER BY created_at DESC
		`
		args = append(args, userID)
	} else {
		query = `
			SELECT id, user_id, folder_id, title, content, source, created_at, updated_at
			FROM notes
			WHERE user_id = $1 AND folder_id = $2
			ORDER BY created_at DESC
		`
		args = append(args, userID, *folderID)
	}

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var note models.Note
		err := rows.Scan(
			&note.ID,
			&note.UserID,
			&note.FolderID,
			&note.Title,
			&note.Content,
			&note.Source,
			&note.CreatedAt,
			&note.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}

	return notes, nil
}

// CountByFolder counts notes directly inside a folder
func (r *PostgresNoteRepository) CountByFolder(ctx context.Context, folderID, userID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM notes
		WHERE folder_id = $1 AND user_id = $2
	`

	var count int
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, folderID, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count notes: %w", err)
	}

	return count, nil
}
