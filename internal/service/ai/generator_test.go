package ai

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"scribbly/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// scriptedClient returns one canned response per call, in order, and
// records the model used for each call.
type scriptedClient struct {
	responses []scriptedResponse
	calls     []string
}

type scriptedResponse struct {
	text string
	err  error
}

func (c *scriptedClient) Generate(_ context.Context, req *GenerateRequest) (string, error) {
	c.calls = append(c.calls, req.Model)
	if len(c.responses) == 0 {
		return "", errors.New("unexpected call")
	}
	r := c.responses[0]
	c.responses = c.responses[1:]
	return r.text, r.err
}

func transientErr() error {
	return &domain.UpstreamError{Kind: domain.UpstreamRateLimited, Err: errors.New("429")}
}

func permanentErr() error {
	return &domain.UpstreamError{Kind: domain.UpstreamOther, Err: errors.New("boom")}
}

func testRegistry() *Registry {
	return &Registry{
		Models: []ModelEntry{
			{ID: "model-a", MaxAttempts: 3},
			{ID: "model-b", MaxAttempts: 2},
		},
		InitialBackoff: time.Millisecond,
	}
}

func TestGenerateWithFallback(t *testing.T) {
	tests := []struct {
		name      string
		responses []scriptedResponse
		wantText  string
		wantErr   bool
		wantKind  domain.UpstreamKind
		wantCalls []string
	}{
		{
			name: "first model succeeds",
			responses: []scriptedResponse{
				{text: "ok"},
			},
			wantText:  "ok",
			wantCalls: []string{"model-a"},
		},
		{
			name: "transient failure retries same model",
			responses: []scriptedResponse{
				{err: transientErr()},
				{text: "ok"},
			},
			wantText:  "ok",
			wantCalls: []string{"model-a", "model-a"},
		},
		{
			name: "permanent failure advances to next model",
			responses: []scriptedResponse{
				{err: permanentErr()},
				{text: "ok"},
			},
			wantText:  "ok",
			wantCalls: []string{"model-a", "model-b"},
		},
		{
			name: "exhausted attempts advance to next model",
			responses: []scriptedResponse{
				{err: transientErr()},
				{err: transientErr()},
				{err: transientErr()},
				{text: "ok"},
			},
			wantText:  "ok",
			wantCalls: []string{"model-a", "model-a", "model-a", "model-b"},
		},
		{
			name: "all models exhausted returns last error",
			responses: []scriptedResponse{
				{err: permanentErr()},
				{err: transientErr()},
				{err: transientErr()},
			},
			wantErr:   true,
			wantKind:  domain.UpstreamRateLimited,
			wantCalls: []string{"model-a", "model-b", "model-b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &scriptedClient{responses: tt.responses}
			gen := NewGenerator(client, testRegistry(), testLogger())

			text, err := gen.generateWithFallback(context.Background(), "prompt")

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var upstream *domain.UpstreamError
				if !errors.As(err, &upstream) || upstream.Kind != tt.wantKind {
					t.Errorf("error = %v, want kind %s", err, tt.wantKind)
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if text != tt.wantText {
					t.Errorf("text = %q, want %q", text, tt.wantText)
				}
			}

			if len(client.calls) != len(tt.wantCalls) {
				t.Fatalf("calls = %v, want %v", client.calls, tt.wantCalls)
			}
			for i, model := range tt.wantCalls {
				if client.calls[i] != model {
					t.Errorf("calls[%d] = %s, want %s", i, client.calls[i], model)
				}
			}
		})
	}
}

func TestGenerateWithFallbackRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := &scriptedClient{responses: []scriptedResponse{
		{err: transientErr()},
	}}
	reg := testRegistry()
	reg.InitialBackoff = time.Minute

	gen := NewGenerator(client, reg, testLogger())
	_, err := gen.generateWithFallback(ctx, "prompt")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestParseStudyNotes(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantTitle   string
		wantContent string
	}{
		{
			name:        "well formed response",
			raw:         "TITLE: Cell Biology\nCONTENT: Mitochondria are the powerhouse.",
			wantTitle:   "Cell Biology",
			wantContent: "Mitochondria are the powerhouse.",
		},
		{
			name:        "multiline content",
			raw:         "TITLE: History\nCONTENT: First point.\n\nSecond point.",
			wantTitle:   "History",
			wantContent: "First point.\n\nSecond point.",
		},
		{
			name:        "format ignored keeps raw text",
			raw:         "Here are some notes without the format.",
			wantTitle:   "AI-Generated Notes",
			wantContent: "Here are some notes without the format.",
		},
		{
			name:        "title only",
			raw:         "TITLE: Just a title",
			wantTitle:   "Just a title",
			wantContent: "TITLE: Just a title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, content := ParseStudyNotes(tt.raw)
			if title != tt.wantTitle {
				t.Errorf("title = %q, want %q", title, tt.wantTitle)
			}
			if content != tt.wantContent {
				t.Errorf("content = %q, want %q", content, tt.wantContent)
			}
		})
	}
}
