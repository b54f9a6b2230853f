package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/videokoleks/videokoleks/internal/domain"
	"github.com/videokoleks/videokoleks/internal/repository"
)

// CategoryService manages a user's categories.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	logger       *slog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo repository.CategoryRepository, logger *slog.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// CreateCategoryRequest carries the fields for a new category.
type CreateCategoryRequest struct {
	Name     string
	Emoji    string
	Color    string
	IsLocked bool
	PIN      string
}

// UpdateCategoryRequest carries partial category updates. Nil fields are left
// unchanged.
type UpdateCategoryRequest struct {
	Name     *string
	Emoji    *string
	Color    *string
	IsLocked *bool
	PIN      *string
}

// List returns all categories owned by the user.
func (s *CategoryService) List(ctx context.Context, userID string) ([]*domain.Category, error) {
	return s.categoryRepo.ListByUser(ctx, userID)
}

// Get retrieves a single category.
func (s *CategoryService) Get(ctx context.Context, userID string, id domain.CategoryID) (*domain.Category, error) {
	return s.categoryRepo.Get(ctx, userID, id)
}

// Create validates and persists a new category.
func (s *CategoryService) Create(ctx context.Context, userID string, req CreateCategoryRequest) (*domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrEmptyCategoryName
	}

	category := &domain.Category{
		ID:       domain.CategoryID(uuid.NewString()),
		UserID:   userID,
		Name:     name,
		Emoji:    req.Emoji,
		Color:    req.Color,
		IsLocked: req.IsLocked,
		PIN:      req.PIN,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.logger.Info("category created", "category_id", category.ID, "user_id", userID, "name", name)
	return category, nil
}

// Update applies partial changes to an existing category.
func (s *CategoryService) Update(ctx context.Context, userID string, id domain.CategoryID, req UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.categoryRepo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrEmptyCategoryName
		}
		category.Name = name
	}
	if req.Emoji != nil {
		category.Emoji = *req.Emoji
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.IsLocked != nil {
		category.IsLocked = *req.IsLocked
	}
	if req.PIN != nil {
		category.PIN = *req.PIN
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return category, nil
}

// Delete removes a category. Videos referencing it keep their stale reference
// and read back as uncategorized.
func (s *CategoryService) Delete(ctx context.Context, userID string, id domain.CategoryID) error {
	if err := s.categoryRepo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.logger.Info("category deleted", "category_id", id, "user_id", userID)
	return nil
}
