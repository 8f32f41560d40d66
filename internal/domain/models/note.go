package models

import (
	"time"
)

// NoteSource marks how a note's content originated.
type NoteSource string

const (
	SourceManual    NoteSource = "manual"
	SourcePDFUpload NoteSource = "pdf_upload"
	SourcePPTUpload NoteSource = "ppt_upload"
)

// Valid reports whether s is one of the accepted source tags.
func (s NoteSource) Valid() bool {
	switch s {
	case SourceManual, SourcePDFUpload, SourcePPTUpload:
		return true
	}
	return false
}

type Note struct {
	ID        string     `json:"id" db:"id"`
	UserID    string     `json:"user_id" db:"user_id"`
	FolderID  *string    `json:"folder" db:"folder_id"` // NULL = root placement
	Title     string     `json:"title" db:"title"`
	Content   string     `json:"content" db:"content"`
	Source    NoteSource `json:"source" db:"source"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}
