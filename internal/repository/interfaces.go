package repository

import (
	"context"

	"github.com/videokoleks/videokoleks/internal/domain"
)

// CategoryRepository handles category persistence.
type CategoryRepository interface {
	// ListByUser returns all categories owned by the user.
	ListByUser(ctx context.Context, userID string) ([]*domain.Category, error)

	// Get retrieves a category owned by the user.
	Get(ctx context.Context, userID string, id domain.CategoryID) (*domain.Category, error)

	// Create persists a new category.
	Create(ctx context.Context, category *domain.Category) error

	// Update replaces an existing category.
	Update(ctx context.Context, category *domain.Category) error

	// Delete removes a category. Videos referencing it are left dangling,
	// which reads back as uncategorized.
	Delete(ctx context.Context, userID string, id domain.CategoryID) error
}

// VideoRepository handles video persistence.
type VideoRepository interface {
	// ListByUser returns all videos owned by the user.
	ListByUser(ctx context.Context, userID string) ([]*domain.Video, error)

	// Get retrieves a video owned by the user.
	Get(ctx context.Context, userID string, id domain.VideoID) (*domain.Video, error)

	// Create persists a new video.
	Create(ctx context.Context, video *domain.Video) error

	// Update replaces an existing video.
	Update(ctx context.Context, video *domain.Video) error

	// Delete removes a video.
	Delete(ctx context.Context, userID string, id domain.VideoID) error

	// BulkSetCategory atomically moves all the given videos to a category.
	BulkSetCategory(ctx context.Context, userID string, ids []domain.VideoID, categoryID domain.CategoryID) error

	// BulkDelete atomically removes all the given videos.
	BulkDelete(ctx context.Context, userID string, ids []domain.VideoID) error
}
