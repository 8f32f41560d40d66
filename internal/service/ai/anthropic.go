package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"scribbly/internal/domain"
)

// AnthropicClient implements Client against the Anthropic Messages API.
// One configured instance is created at startup and injected everywhere;
// it is never re-created per request.
type AnthropicClient struct {
	client *anthropic.Client
}

// NewAnthropicClient creates a new Anthropic client with the given API key.
func NewAnthropicClient(apiKey string) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	return &AnthropicClient{client: &client}, nil
}

// Generate sends a single user message and returns the concatenated text
// blocks of the response.
func (c *AnthropicClient) Generate(ctx context.Context, req *GenerateRequest) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 2048
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}

	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", classify(err)
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", &domain.UpstreamError{
			Kind: domain.UpstreamOther,
			Err:  fmt.Errorf("model %s returned no text", req.Model),
		}
	}

	return text, nil
}

// classify maps provider failures onto the three outcomes callers care
// about. 404 counts as unavailable: it is what the API returns for a
// retired model name, which to the user is the same as a down service.
func classify(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusTooManyRequests:
			return &domain.UpstreamError{Kind: domain.UpstreamRateLimited, Err: err}
		case http.StatusNotFound, http.StatusServiceUnavailable, 529: // 529 = overloaded
			return &domain.UpstreamError{Kind: domain.UpstreamUnavailable, Err: err}
		}
	}
	return &domain.UpstreamError{Kind: domain.UpstreamOther, Err: err}
}
