package handler

import (
	"log/slog"
	"net/http"

	"scribbly/internal/httputil"
	"scribbly/internal/service/ai"
)

// AIHandler handles the AI helper endpoints
type AIHandler struct {
	aiService *ai.Service
	logger    *slog.Logger
}

// NewAIHandler creates a new AI handler
func NewAIHandler(aiService *ai.Service, logger *slog.Logger) *AIHandler {
	return &AIHandler{
		aiService: aiService,
		logger:    logger,
	}
}

type contentRequest struct {
	Content string `json:"content"`
}

// ImproveWriting runs the writing assistant over note content
// POST /api/ai/improve
func (h *AIHandler) ImproveWriting(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.aiService.ImproveWriting(r.Context(), req.Content)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// Summarize produces a concise summary of note content
// POST /api/ai/summarize
func (h *AIHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.aiService.Summarize(r.Context(), req.Content)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// GenerateTags produces tags for note content
// POST /api/ai/tags
func (h *AIHandler) GenerateTags(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.aiService.GenerateTags(r.Context(), req.Content)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}
