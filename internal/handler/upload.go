package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"scribbly/internal/config"
	"scribbly/internal/httputil"
	"scribbly/internal/service/ingest"
)

// UploadHandler handles document uploads that become notes.
type UploadHandler struct {
	ingestService *ingest.Service
	logger        *slog.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(ingestService *ingest.Service, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		ingestService: ingestService,
		logger:        logger,
	}
}

// UploadPDF ingests an uploaded PDF as a note
// POST /api/uploads/pdf
func (h *UploadHandler) UploadPDF(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, h.ingestService.IngestPDF)
}

// UploadPPT ingests an uploaded .pptx presentation as a note
// POST /api/uploads/ppt
func (h *UploadHandler) UploadPPT(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, h.ingestService.IngestPPT)
}

type ingestFunc func(ctx context.Context, userID string, data []byte, folderID *string) (*ingest.Result, error)

func (h *UploadHandler) upload(w http.ResponseWriter, r *http.Request, fn ingestFunc) {
	userID := httputil.GetUserID(r)

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadBytes)
	if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid multipart form or file too large")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	var folderID *string
	if v := r.FormValue("folder"); v != "" && v != "null" {
		folderID = &v
	}

	result, err := fn(r.Context(), userID, data, folderID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, result)
}
