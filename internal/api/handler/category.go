package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/videokoleks/videokoleks/internal/api/middleware"
	"github.com/videokoleks/videokoleks/internal/domain"
	"github.com/videokoleks/videokoleks/internal/service"
)

// CategoryHandler handles category-related HTTP requests.
type CategoryHandler struct {
	categorySvc *service.CategoryService
	logger      *slog.Logger
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(categorySvc *service.CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		categorySvc: categorySvc,
		logger:      logger,
	}
}

// CategoryRequest is the JSON body for creating a category.
type CategoryRequest struct {
	Name     string `json:"name"`
	Emoji    string `json:"emoji"`
	Color    string `json:"color"`
	IsLocked bool   `json:"is_locked"`
	PIN      string `json:"pin,omitempty"`
}

// UpdateCategoryRequest is the JSON body for partial category updates.
type UpdateCategoryRequest struct {
	Name     *string `json:"name,omitempty"`
	Emoji    *string `json:"emoji,omitempty"`
	Color    *string `json:"color,omitempty"`
	IsLocked *bool   `json:"is_locked,omitempty"`
	PIN      *string `json:"pin,omitempty"`
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Emoji    string `json:"emoji"`
	Color    string `json:"color"`
	IsLocked bool   `json:"is_locked"`
}

// CategoryListResponse contains all of a user's categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Total      int                `json:"total"`
}

func toCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:       c.ID.String(),
		Name:     c.Name,
		Emoji:    c.Emoji,
		Color:    c.Color,
		IsLocked: c.IsLocked,
	}
}

// List handles GET /api/v1/categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	categories, err := h.categorySvc.List(r.Context(), userID)
	if err != nil {
		h.logger.Error("list categories failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	resp := CategoryListResponse{
		Categories: make([]CategoryResponse, 0, len(categories)),
		Total:      len(categories),
	}
	for _, c := range categories {
		resp.Categories = append(resp.Categories, toCategoryResponse(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /api/v1/categories
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.categorySvc.Create(r.Context(), userID, service.CreateCategoryRequest{
		Name:     req.Name,
		Emoji:    req.Emoji,
		Color:    req.Color,
		IsLocked: req.IsLocked,
		PIN:      req.PIN,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCategoryName) {
			writeError(w, http.StatusBadRequest, "category name cannot be empty")
			return
		}
		h.logger.Error("create category failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create category")
		return
	}

	writeJSON(w, http.StatusCreated, toCategoryResponse(category))
}

// Update handles PUT /api/v1/categories/{categoryID}
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	id := domain.CategoryID(chi.URLParam(r, "categoryID"))

	var req UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.categorySvc.Update(r.Context(), userID, id, service.UpdateCategoryRequest{
		Name:     req.Name,
		Emoji:    req.Emoji,
		Color:    req.Color,
		IsLocked: req.IsLocked,
		PIN:      req.PIN,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCategoryNotFound):
			writeError(w, http.StatusNotFound, "category not found")
		case errors.Is(err, domain.ErrEmptyCategoryName):
			writeError(w, http.StatusBadRequest, "category name cannot be empty")
		default:
			h.logger.Error("update category failed", "user_id", userID, "category_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to update category")
		}
		return
	}

	writeJSON(w, http.StatusOK, toCategoryResponse(category))
}

// Delete handles DELETE /api/v1/categories/{categoryID}
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	id := domain.CategoryID(chi.URLParam(r, "categoryID"))

	if err := h.categorySvc.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			writeError(w, http.StatusNotFound, "category not found")
			return
		}
		h.logger.Error("delete category failed", "user_id", userID, "category_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete category")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
