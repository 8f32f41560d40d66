package ai

import (
	"context"
)

// GenerateRequest is a single text-in/text-out call to a provider.
type GenerateRequest struct {
	Model       string
	Prompt      string
	MaxTokens   int64
	Temperature float64
}

// Client is the provider boundary. Implementations return plain generated
// text or a *domain.UpstreamError classifying the failure.
type Client interface {
	Generate(ctx context.Context, req *GenerateRequest) (string, error)
}
