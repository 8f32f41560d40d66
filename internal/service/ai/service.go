package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"scribbly/internal/domain"
)

// Service exposes the AI helpers that operate on note content. Each call
// is a single request/response against the default model; only the
// upload-ingestion path goes through the multi-model Generator.
type Service struct {
	client       Client
	defaultModel string
	logger       *slog.Logger
}

// NewService creates a new AI helper service
func NewService(client Client, defaultModel string, logger *slog.Logger) *Service {
	return &Service{
		client:       client,
		defaultModel: defaultModel,
		logger:       logger,
	}
}

// ImproveResult is the writing-assistant output
type ImproveResult struct {
	Suggestions    string `json:"suggestions"`
	OriginalLength int    `json:"original_length"`
	ImprovedLength int    `json:"improved_length"`
}

// SummaryResult is the summarizer output
type SummaryResult struct {
	Summary        string `json:"summary"`
	OriginalLength int    `json:"original_length"`
	SummaryLength  int    `json:"summary_length"`
}

// TagsResult is the auto-tagging output
type TagsResult struct {
	Tags  []string `json:"tags"`
	Count int      `json:"count"`
}

// ImproveWriting rewrites content with better grammar, clarity, and style.
func (s *Service) ImproveWriting(ctx context.Context, content string) (*ImproveResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrValidation)
	}

	improved, err := s.client.Generate(ctx, &GenerateRequest{
		Model:       s.defaultModel,
		Prompt:      improvePrompt(content),
		MaxTokens:   2000,
		Temperature: 0.3,
	})
	if err != nil {
		s.logger.Warn("helper request failed", "task", TaskImprove, "error", err)
		return nil, err
	}

	return &ImproveResult{
		Suggestions:    improved,
		OriginalLength: len(content),
		ImprovedLength: len(improved),
	}, nil
}

// Summarize produces a concise summary of the content.
func (s *Service) Summarize(ctx context.Context, content string) (*SummaryResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrValidation)
	}

	summary, err := s.client.Generate(ctx, &GenerateRequest{
		Model:       s.defaultModel,
		Prompt:      summarizePrompt(content),
		MaxTokens:   1500,
		Temperature: 0.3,
	})
	if err != nil {
		s.logger.Warn("helper request failed", "task", TaskSummarize, "error", err)
		return nil, err
	}

	return &SummaryResult{
		Summary:        summary,
		OriginalLength: len(content),
		SummaryLength:  len(summary),
	}, nil
}

// GenerateTags produces up to 8 lowercase tags for the content.
func (s *Service) GenerateTags(ctx context.Context, content string) (*TagsResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrValidation)
	}

	raw, err := s.client.Generate(ctx, &GenerateRequest{
		Model:       s.defaultModel,
		Prompt:      tagsPrompt(content),
		MaxTokens:   100,
		Temperature: 0.3,
	})
	if err != nil {
		s.logger.Warn("helper request failed", "task", TaskTags, "error", err)
		return nil, err
	}

	tags := ParseTags(raw)

	return &TagsResult{Tags: tags, Count: len(tags)}, nil
}

// ParseTags splits a comma-separated model response into clean tags,
// lowercased and capped at 8.
func ParseTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		tag := strings.ToLower(strings.TrimSpace(p))
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
		if len(tags) == 8 {
			break
		}
	}
	return tags
}
