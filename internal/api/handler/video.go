package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/videokoleks/videokoleks/internal/api/middleware"
	"github.com/videokoleks/videokoleks/internal/domain"
	"github.com/videokoleks/videokoleks/internal/service"
)

// VideoHandler handles video-related HTTP requests.
type VideoHandler struct {
	videoSvc *service.VideoService
	logger   *slog.Logger
}

// NewVideoHandler creates a new video handler.
func NewVideoHandler(videoSvc *service.VideoService, logger *slog.Logger) *VideoHandler {
	return &VideoHandler{
		videoSvc: videoSvc,
		logger:   logger,
	}
}

// SaveVideoRequest is the JSON body for saving a video link.
type SaveVideoRequest struct {
	URL          string `json:"url"`
	Title        string `json:"title,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Duration     string `json:"duration,omitempty"`
	CategoryID   string `json:"category_id,omitempty"`
	Notes        string `json:"notes,omitempty"`
	IsFavorite   bool   `json:"is_favorite,omitempty"`
}

// UpdateVideoRequest is the JSON body for partial video updates.
type UpdateVideoRequest struct {
	Title      *string `json:"title,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	IsFavorite *bool   `json:"is_favorite,omitempty"`
	CategoryID *string `json:"category_id,omitempty"`
}

// BulkMoveRequest is the JSON body for moving a selection of videos.
type BulkMoveRequest struct {
	VideoIDs   []string `json:"video_ids"`
	CategoryID string   `json:"category_id"`
}

// BulkDeleteRequest is the JSON body for deleting a selection of videos.
type BulkDeleteRequest struct {
	VideoIDs []string `json:"video_ids"`
}

// VideoResponse represents a video in API responses.
type VideoResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Platform     string    `json:"platform"`
	Duration     string    `json:"duration"`
	CategoryID   string    `json:"category_id,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	IsFavorite   bool      `json:"is_favorite"`
	DateAdded    time.Time `json:"date_added"`
	OriginalURL  string    `json:"original_url"`
}

// VideoListResponse contains a user's videos.
type VideoListResponse struct {
	Videos []VideoResponse `json:"videos"`
	Total  int             `json:"total"`
}

func toVideoResponse(v *domain.Video) VideoResponse {
	return VideoResponse{
		ID:           v.ID.String(),
		Title:        v.Title,
		ThumbnailURL: v.ThumbnailURL,
		Platform:     string(v.Platform),
		Duration:     v.Duration,
		CategoryID:   v.CategoryID.String(),
		Notes:        v.Notes,
		IsFavorite:   v.IsFavorite,
		DateAdded:    v.DateAdded,
		OriginalURL:  v.OriginalURL,
	}
}

// Save handles POST /api/v1/videos
func (h *VideoHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req SaveVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	video, err := h.videoSvc.Save(r.Context(), userID, service.SaveVideoRequest{
		OriginalURL:  req.URL,
		Title:        req.Title,
		ThumbnailURL: req.ThumbnailURL,
		Duration:     req.Duration,
		CategoryID:   domain.CategoryID(req.CategoryID),
		Notes:        req.Notes,
		IsFavorite:   req.IsFavorite,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidVideoURL) {
			writeError(w, http.StatusBadRequest, "invalid video URL")
			return
		}
		h.logger.Error("save video failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save video")
		return
	}

	writeJSON(w, http.StatusCreated, toVideoResponse(video))
}

// List handles GET /api/v1/videos
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	filter := service.ListFilter{
		FavoritesOnly: r.URL.Query().Get("favorites") == "true",
	}
	switch category := r.URL.Query().Get("category"); category {
	case "":
	case "none":
		filter.Uncategorized = true
	default:
		filter.CategoryID = domain.CategoryID(category)
	}

	videos, err := h.videoSvc.List(r.Context(), userID, filter)
	if err != nil {
		h.logger.Error("list videos failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list videos")
		return
	}

	resp := VideoListResponse{
		Videos: make([]VideoResponse, 0, len(videos)),
		Total:  len(videos),
	}
	for _, v := range videos {
		resp.Videos = append(resp.Videos, toVideoResponse(v))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/v1/videos/{videoID}
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	id := domain.VideoID(chi.URLParam(r, "videoID"))

	video, err := h.videoSvc.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrVideoNotFound) {
			writeError(w, http.StatusNotFound, "video not found")
			return
		}
		h.logger.Error("get video failed", "user_id", userID, "video_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get video")
		return
	}

	writeJSON(w, http.StatusOK, toVideoResponse(video))
}

// Update handles PATCH /api/v1/videos/{videoID}
func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	id := domain.VideoID(chi.URLParam(r, "videoID"))

	var req UpdateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var categoryID *domain.CategoryID
	if req.CategoryID != nil {
		cid := domain.CategoryID(*req.CategoryID)
		categoryID = &cid
	}

	video, err := h.videoSvc.Update(r.Context(), userID, id, service.UpdateVideoRequest{
		Title:      req.Title,
		Notes:      req.Notes,
		IsFavorite: req.IsFavorite,
		CategoryID: categoryID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrVideoNotFound):
			writeError(w, http.StatusNotFound, "video not found")
		case errors.Is(err, domain.ErrCategoryNotFound):
			writeError(w, http.StatusBadRequest, "category not found")
		default:
			h.logger.Error("update video failed", "user_id", userID, "video_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to update video")
		}
		return
	}

	writeJSON(w, http.StatusOK, toVideoResponse(video))
}

// Delete handles DELETE /api/v1/videos/{videoID}
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	id := domain.VideoID(chi.URLParam(r, "videoID"))

	if err := h.videoSvc.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, domain.ErrVideoNotFound) {
			writeError(w, http.StatusNotFound, "video not found")
			return
		}
		h.logger.Error("delete video failed", "user_id", userID, "video_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete video")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// BulkMove handles POST /api/v1/videos/bulk/move
func (h *VideoHandler) BulkMove(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req BulkMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.VideoIDs) == 0 {
		writeError(w, http.StatusBadRequest, "no videos selected")
		return
	}

	ids := make([]domain.VideoID, 0, len(req.VideoIDs))
	for _, id := range req.VideoIDs {
		ids = append(ids, domain.VideoID(id))
	}

	err := h.videoSvc.BulkMove(r.Context(), userID, ids, domain.CategoryID(req.CategoryID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCategoryNotFound):
			writeError(w, http.StatusBadRequest, "category not found")
		case errors.Is(err, domain.ErrVideoNotFound):
			writeError(w, http.StatusNotFound, "video not found")
		default:
			h.logger.Error("bulk move failed", "user_id", userID, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to move videos")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"moved": len(ids)})
}

// BulkDelete handles POST /api/v1/videos/bulk/delete
func (h *VideoHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req BulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.VideoIDs) == 0 {
		writeError(w, http.StatusBadRequest, "no videos selected")
		return
	}

	ids := make([]domain.VideoID, 0, len(req.VideoIDs))
	for _, id := range req.VideoIDs {
		ids = append(ids, domain.VideoID(id))
	}

	if err := h.videoSvc.BulkDelete(r.Context(), userID, ids); err != nil {
		if errors.Is(err, domain.ErrVideoNotFound) {
			writeError(w, http.StatusNotFound, "video not found")
			return
		}
		h.logger.Error("bulk delete failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete videos")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"deleted": len(ids)})
}
