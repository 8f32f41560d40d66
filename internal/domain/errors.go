package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (folder, note, user)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// UpstreamKind classifies failures from external AI and parsing services.
type UpstreamKind string

const (
	// UpstreamRateLimited means the provider rejected the call over quota.
	UpstreamRateLimited UpstreamKind = "rate_limited"
	// UpstreamUnavailable means the provider is overloaded or the model is gone.
	UpstreamUnavailable UpstreamKind = "unavailable"
	// UpstreamOther covers everything else; the detail is never user-facing.
	UpstreamOther UpstreamKind = "other"
)

// UpstreamError wraps a failure from an external collaborator (AI provider,
// document parser). Handlers map Kind to a short user-visible message and
// never expose the wrapped error text.
type UpstreamError struct {
	Kind UpstreamKind
	Err  error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Kind, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Transient reports whether a retry against the same model could succeed.
func (e *UpstreamError) Transient() bool {
	return e.Kind == UpstreamRateLimited || e.Kind == UpstreamUnavailable
}
