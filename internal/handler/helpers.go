package handler

import (
	"errors"
	"net/http"

	"scribbly/internal/domain"
	"scribbly/internal/httputil"
)

// handleError converts domain errors to HTTP responses. Upstream failures
// surface only a short user-facing message, never provider error text.
func handleError(w http.ResponseWriter, err error) {
	var conflictErr *domain.ConflictError
	var upstreamErr *domain.UpstreamError

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.As(err, &conflictErr):
		httputil.RespondError(w, http.StatusConflict, conflictErr.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case errors.As(err, &upstreamErr):
		handleUpstreamError(w, upstreamErr)
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func handleUpstreamError(w http.ResponseWriter, err *domain.UpstreamError) {
	switch err.Kind {
	case domain.UpstreamRateLimited:
		httputil.RespondError(w, http.StatusTooManyRequests, "AI service quota exceeded, please try again later")
	case domain.UpstreamUnavailable:
		httputil.RespondError(w, http.StatusServiceUnavailable, "AI service is currently busy, please try again later")
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "request failed, please try again")
	}
}

// optionalQueryID reads a query parameter that may denote the root
// container: absent, empty, or the literal "null" all mean root.
func optionalQueryID(r *http.Request, name string) *string {
	value := r.URL.Query().Get(name)
	if value == "" || value == "null" {
		return nil
	}
	return &value
}
