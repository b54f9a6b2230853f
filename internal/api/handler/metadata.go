package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/videokoleks/videokoleks/internal/domain"
	"github.com/videokoleks/videokoleks/internal/service"
)

// MetadataHandler handles metadata resolution requests.
type MetadataHandler struct {
	metadataSvc *service.MetadataService
	logger      *slog.Logger
}

// NewMetadataHandler creates a new metadata handler.
func NewMetadataHandler(metadataSvc *service.MetadataService, logger *slog.Logger) *MetadataHandler {
	return &MetadataHandler{
		metadataSvc: metadataSvc,
		logger:      logger,
	}
}

// ResolveRequest is the JSON body for metadata resolution.
type ResolveRequest struct {
	URL string `json:"url"`
}

// ResolveResponse is the candidate metadata for the submitted URL. Fields may
// be empty; resolution is best-effort.
type ResolveResponse struct {
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
	Duration     string `json:"duration"`
	Platform     string `json:"platform"`
}

// Resolve handles POST /api/v1/metadata/resolve
func (h *MetadataHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.metadataSvc.Resolve(r.Context(), req.URL)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidVideoURL) {
			writeError(w, http.StatusBadRequest, "invalid video URL")
			return
		}
		h.logger.Error("metadata resolution failed", "url", req.URL, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to resolve metadata")
		return
	}

	writeJSON(w, http.StatusOK, ResolveResponse{
		Title:        result.Title,
		ThumbnailURL: result.ThumbnailURL,
		Duration:     result.Duration,
		Platform:     string(result.Platform),
	})
}
