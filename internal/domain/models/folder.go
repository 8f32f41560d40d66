package models

import (
	"time"
)

// DefaultFolderColor matches the green the UI assigns when none is chosen.
const DefaultFolderColor = "#10B981"

type Folder struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	ParentID  *string   `json:"parent_folder" db:"parent_id"` // NULL = root level
	Name      string    `json:"name" db:"name"`
	Color     string    `json:"color" db:"color"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PathEntry is one step of a breadcrumb. The synthetic root entry has a
// nil ID and the name "Home".
type PathEntry struct {
	ID   *string `json:"id"`
	Name string  `json:"name"`
}

// RootPathEntry is the first entry of every breadcrumb.
func RootPathEntry() PathEntry {
	return PathEntry{ID: nil, Name: "Home"}
}
