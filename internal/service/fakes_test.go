package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"scribbly/internal/domain"
	"scribbly/internal/domain/models"
	"scribbly/internal/domain/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memUserRepo is an in-memory UserRepository for service tests.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User // keyed by ID
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*models.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return fmt.Errorf("username %q: %w", user.Username, domain.ErrConflict)
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
}

// memFolderRepo is an in-memory FolderRepository. A monotonic sequence
// stands in for created_at ordering so newest-first listing is stable
// even when inserts share a timestamp.
type memFolderRepo struct {
	mu      sync.Mutex
	folders map[string]*models.Folder
	seq     map[string]int
	next    int
}

func newMemFolderRepo() *memFolderRepo {
	return &memFolderRepo{
		folders: make(map[string]*models.Folder),
		seq:     make(map[string]int),
	}
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (r *memFolderRepo) Create(_ context.Context, folder *models.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.folders {
		if f.UserID == folder.UserID && f.Name == folder.Name && sameParent(f.ParentID, folder.ParentID) {
			return fmt.Errorf("folder %q: %w", folder.Name, domain.ErrConflict)
		}
	}
	if folder.ParentID != nil {
		parent, ok := r.folders[*folder.ParentID]
		if !ok || parent.UserID != folder.UserID {
			return fmt.Errorf("parent folder: %w", domain.ErrNotFound)
		}
	}
	if folder.ID == "" {
		folder.ID = uuid.NewString()
	}
	cp := *folder
	r.folders[folder.ID] = &cp
	r.next++
	r.seq[folder.ID] = r.next
	return nil
}

func (r *memFolderRepo) GetByID(_ context.Context, id, userID string) (*models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.folders[id]
	if !ok || f.UserID != userID {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	cp := *f
	return &cp, nil
}

func (r *memFolderRepo) Update(_ context.Context, folder *models.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.folders[folder.ID]
	if !ok || existing.UserID != folder.UserID {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}
	for _, f := range r.folders {
		if f.ID != folder.ID && f.UserID == folder.UserID && f.Name == folder.Name && sameParent(f.ParentID, folder.ParentID) {
			return fmt.Errorf("folder %q: %w", folder.Name, domain.ErrConflict)
		}
	}
	cp := *folder
	r.folders[folder.ID] = &cp
	return nil
}

func (r *memFolderRepo) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.folders[id]
	if !ok || f.UserID != userID {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	delete(r.folders, id)
	delete(r.seq, id)
	return nil
}

func (r *memFolderRepo) ListChildren(_ context.Context, parentID *string, userID string) ([]models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Folder
	for _, f := range r.folders {
		if f.UserID == userID && sameParent(f.ParentID, parentID) {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return r.seq[out[i].ID] > r.seq[out[j].ID]
	})
	return out, nil
}

func (r *memFolderRepo) GetByNameAndParent(_ context.Context, userID, name string, parentID *string) (*models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.folders {
		if f.UserID == userID && f.Name == name && sameParent(f.ParentID, parentID) {
			cp := *f
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memFolderRepo) CountChildren(_ context.Context, folderID, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, f := range r.folders {
		if f.UserID == userID && f.ParentID != nil && *f.ParentID == folderID {
			count++
		}
	}
	return count, nil
}

// memNoteRepo is an in-memory NoteRepository.
type memNoteRepo struct {
	mu    sync.Mutex
	notes map[string]*models.Note
	seq   map[string]int
	next  int
}

func newMemNoteRepo() *memNoteRepo {
	return &memNoteRepo{
		notes: make(map[string]*models.Note),
		seq:   make(map[string]int),
	}
}

func (r *memNoteRepo) Create(_ context.Context, note *models.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	cp := *note
	r.notes[note.ID] = &cp
	r.next++
	r.seq[note.ID] = r.next
	return nil
}

func (r *memNoteRepo) GetByID(_ context.Context, id, userID string) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notes[id]
	if !ok || n.UserID != userID {
		return nil, fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
	}
	cp := *n
	return &cp, nil
}

func (r *memNoteRepo) Update(_ context.Context, note *models.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.notes[note.ID]
	if !ok || existing.UserID != note.UserID {
		return fmt.Errorf("note %s: %w", note.ID, domain.ErrNotFound)
	}
	cp := *note
	r.notes[note.ID] = &cp
	return nil
}

func (r *memNoteRepo) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notes[id]
	if !ok || n.UserID != userID {
		return fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
	}
	delete(r.notes, id)
	delete(r.seq, id)
	return nil
}

func (r *memNoteRepo) ListByFolder(_ context.Context, folderID *string, userID string) ([]models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Note
	for _, n := range r.notes {
		if n.UserID == userID && sameParent(n.FolderID, folderID) {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return r.seq[out[i].ID] > r.seq[out[j].ID]
	})
	return out, nil
}

func (r *memNoteRepo) CountByFolder(_ context.Context, folderID, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, n := range r.notes {
		if n.UserID == userID && n.FolderID != nil && *n.FolderID == folderID {
			count++
		}
	}
	return count, nil
}

// memTxManager runs the function directly; the in-memory repos have no
// transactions to coordinate.
type memTxManager struct{}

func (memTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

func newTestFolderService() (*FolderService, *memFolderRepo, *memNoteRepo) {
	folders := newMemFolderRepo()
	notes := newMemNoteRepo()
	svc := NewFolderService(folders, notes, memTxManager{}, testLogger())
	return svc, folders, notes
}

func newTestNoteService() (*NoteService, *memFolderRepo, *memNoteRepo) {
	folders := newMemFolderRepo()
	notes := newMemNoteRepo()
	svc := NewNoteService(notes, folders, testLogger())
	return svc, folders, notes
}
