package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"scribbly/internal/domain"
	"scribbly/internal/domain/models"
	"scribbly/internal/service"
	"scribbly/internal/service/ai"
)

// PreviewLength caps the extracted-text preview returned alongside the note.
const PreviewLength = 500

// Result is the outcome of a document ingestion.
type Result struct {
	Note    *models.Note `json:"note"`
	Preview string       `json:"extracted_text"`
}

// Service turns uploaded documents into notes: extract text, ask the AI
// generator for structured study notes, and persist. An AI failure that is
// not worth surfacing degrades to the raw extracted text - the upload is
// never dropped.
type Service struct {
	notes     *service.NoteService
	generator *ai.Generator
	logger    *slog.Logger
}

// NewService creates a new ingestion service
func NewService(notes *service.NoteService, generator *ai.Generator, logger *slog.Logger) *Service {
	return &Service{
		notes:     notes,
		generator: generator,
		logger:    logger,
	}
}

// channel binds an upload type to its extractor, source tag, and the
// title used when generation degrades to raw text.
type channel struct {
	source        models.NoteSource
	fallbackTitle string
	extract       func([]byte) (string, error)
}

var (
	pdfChannel = channel{
		source:        models.SourcePDFUpload,
		fallbackTitle: "Notes from PDF",
		extract:       ExtractPDFText,
	}
	pptChannel = channel{
		source:        models.SourcePPTUpload,
		fallbackTitle: "Notes from PowerPoint",
		extract:       ExtractPPTText,
	}
)

// IngestPDF creates a note from an uploaded PDF.
func (s *Service) IngestPDF(ctx context.Context, userID string, data []byte, folderID *string) (*Result, error) {
	return s.ingest(ctx, userID, data, folderID, pdfChannel)
}

// IngestPPT creates a note from an uploaded .pptx presentation.
func (s *Service) IngestPPT(ctx context.Context, userID string, data []byte, folderID *string) (*Result, error) {
	return s.ingest(ctx, userID, data, folderID, pptChannel)
}

func (s *Service) ingest(ctx context.Context, userID string, data []byte, folderID *string, ch channel) (*Result, error) {
	extracted, err := ch.extract(data)
	if err != nil {
		return nil, &domain.UpstreamError{Kind: domain.UpstreamOther, Err: err}
	}
	if extracted == "" {
		return nil, fmt.Errorf("%w: no text found in the document", domain.ErrValidation)
	}

	title := ch.fallbackTitle
	content := extracted

	notes, err := s.generator.GenerateStudyNotes(ctx, extracted)
	switch {
	case err == nil:
		title = notes.Title
		content = notes.Content
	default:
		var upstream *domain.UpstreamError
		if errors.As(err, &upstream) && upstream.Transient() {
			// Quota and availability problems are surfaced so the user can
			// retry; anything else falls back to the raw extracted text.
			return nil, err
		}
		s.logger.Warn("study-note generation failed, keeping raw text",
			"user_id", userID,
			"source", ch.source,
			"error", err,
		)
		title = ch.fallbackTitle + " (AI processing failed)"
	}

	note, err := s.notes.CreateNote(ctx, &service.CreateNoteRequest{
		UserID:   userID,
		Title:    title,
		Content:  content,
		FolderID: folderID,
		Source:   ch.source,
	})
	if err != nil {
		return nil, err
	}

	preview := extracted
	if len(preview) > PreviewLength {
		// Back up to a rune boundary so the cut never emits invalid UTF-8.
		cut := PreviewLength
		for cut > 0 && !utf8.RuneStart(preview[cut]) {
			cut--
		}
		preview = preview[:cut] + "..."
	}

	return &Result{Note: note, Preview: preview}, nil
}
