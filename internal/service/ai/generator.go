package ai

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"scribbly/internal/domain"
)

// Generator produces structured study notes from extracted document text,
// trying an ordered list of models. Each model gets a bounded number of
// attempts with exponential backoff, but only while the failure is
// transient; any other failure advances to the next model immediately.
// When every model is exhausted the last classification wins.
type Generator struct {
	client   Client
	registry *Registry
	logger   *slog.Logger
}

// NewGenerator creates a new study-note generator
func NewGenerator(client Client, registry *Registry, logger *slog.Logger) *Generator {
	return &Generator{
		client:   client,
		registry: registry,
		logger:   logger,
	}
}

// StudyNotes is parsed generator output
type StudyNotes struct {
	Title   string
	Content string
}

// GenerateStudyNotes runs the fallback chain over the extracted text.
func (g *Generator) GenerateStudyNotes(ctx context.Context, extractedText string) (*StudyNotes, error) {
	raw, err := g.generateWithFallback(ctx, studyNotesPrompt(extractedText))
	if err != nil {
		return nil, err
	}

	title, content := ParseStudyNotes(raw)
	return &StudyNotes{Title: title, Content: content}, nil
}

func (g *Generator) generateWithFallback(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for _, model := range g.registry.Models {
		backoff := g.registry.InitialBackoff

		for attempt := 1; attempt <= model.MaxAttempts; attempt++ {
			text, err := g.client.Generate(ctx, &GenerateRequest{
				Model:       model.ID,
				Prompt:      prompt,
				MaxTokens:   4000,
				Temperature: 0.2,
			})
			if err == nil {
				return text, nil
			}
			lastErr = err

			var upstream *domain.UpstreamError
			if !errors.As(err, &upstream) || !upstream.Transient() {
				g.logger.Warn("model failed, advancing to next",
					"model", model.ID,
					"error", err,
				)
				break
			}

			g.logger.Warn("transient model failure",
				"model", model.ID,
				"attempt", attempt,
				"kind", upstream.Kind,
			)

			if attempt == model.MaxAttempts {
				break
			}

			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}

	return "", lastErr
}

var (
	titleRe   = regexp.MustCompile(`TITLE:\s*(.+)`)
	contentRe = regexp.MustCompile(`(?s)CONTENT:\s*(.+)`)
)

// ParseStudyNotes extracts the TITLE:/CONTENT: sections from a model
// response. A response that ignored the format becomes the content as-is
// under a generic title.
func ParseStudyNotes(raw string) (title, content string) {
	title = "AI-Generated Notes"
	content = raw

	if m := titleRe.FindStringSubmatch(raw); m != nil {
		title = strings.TrimSpace(m[1])
	}
	if m := contentRe.FindStringSubmatch(raw); m != nil {
		content = strings.TrimSpace(m[1])
	}

	return title, content
}
