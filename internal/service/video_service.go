package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/videokoleks/videokoleks/internal/domain"
	"github.com/videokoleks/videokoleks/internal/repository"
)

// VideoService manages a user's saved videos.
type VideoService struct {
	videoRepo    repository.VideoRepository
	categoryRepo repository.CategoryRepository
	metadataSvc  *MetadataService
	logger       *slog.Logger
}

// NewVideoService creates a new video service.
func NewVideoService(
	videoRepo repository.VideoRepository,
	categoryRepo repository.CategoryRepository,
	metadataSvc *MetadataService,
	logger *slog.Logger,
) *VideoService {
	return &VideoService{
		videoRepo:    videoRepo,
		categoryRepo: categoryRepo,
		metadataSvc:  metadataSvc,
		logger:       logger,
	}
}

// SaveVideoRequest carries the fields for saving a video link.
type SaveVideoRequest struct {
	OriginalURL  string
	Title        string
	ThumbnailURL string
	Duration     string
	CategoryID   domain.CategoryID
	Notes        string
	IsFavorite   bool
}

// UpdateVideoRequest carries partial video updates. Nil fields are left
// unchanged.
type UpdateVideoRequest struct {
	Title      *string
	Notes      *string
	IsFavorite *bool
	CategoryID *domain.CategoryID
}

// ListFilter narrows List results. Zero values mean "no filter"; to select
// uncategorized videos pass Uncategorized=true.
type ListFilter struct {
	CategoryID    domain.CategoryID
	Uncategorized bool
	FavoritesOnly bool
}

// Save persists a new video link. When no title was supplied the metadata
// resolver fills in title/thumbnail/duration on a best-effort basis; a
// resolution failure still saves the video with the fields the user provided.
func (s *VideoService) Save(ctx context.Context, userID string, req SaveVideoRequest) (*domain.Video, error) {
	if err := validateVideoURL(req.OriginalURL); err != nil {
		return nil, err
	}

	video := &domain.Video{
		ID:           domain.VideoID(uuid.NewString()),
		UserID:       userID,
		Title:        strings.TrimSpace(req.Title),
		ThumbnailURL: req.ThumbnailURL,
		Platform:     domain.DetectPlatform(req.OriginalURL),
		Duration:     req.Duration,
		CategoryID:   req.CategoryID,
		Notes:        req.Notes,
		IsFavorite:   req.IsFavorite,
		DateAdded:    time.Now().UTC(),
		OriginalURL:  req.OriginalURL,
	}

	if video.Title == "" && s.metadataSvc != nil {
		resolved, err := s.metadataSvc.Resolve(ctx, req.OriginalURL)
		if err == nil {
			video.Title = resolved.Title
			if video.ThumbnailURL == "" {
				video.ThumbnailURL = resolved.ThumbnailURL
			}
			if video.Duration == "" {
				video.Duration = resolved.Duration
			}
		}
	}
	if video.Title == "" {
		video.Title = req.OriginalURL
	}

	// A category reference is only stored when the category actually exists;
	// anything else is saved as uncategorized.
	if video.CategoryID != "" {
		if _, err := s.categoryRepo.Get(ctx, userID, video.CategoryID); err != nil {
			s.logger.Warn("save video with unknown category, storing uncategorized",
				"user_id", userID, "category_id", video.CategoryID)
			video.CategoryID = ""
		}
	}

	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, fmt.Errorf("save video: %w", err)
	}

	s.logger.Info("video saved",
		"video_id", video.ID,
		"user_id", userID,
		"platform", video.Platform,
	)
	return video, nil
}

// List returns the user's videos, optionally filtered.
func (s *VideoService) List(ctx context.Context, userID string, filter ListFilter) ([]*domain.Video, error) {
	videos, err := s.videoRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Video, 0, len(videos))
	for _, v := range videos {
		if filter.Uncategorized && v.CategoryID != "" {
			continue
		}
		if filter.CategoryID != "" && v.CategoryID != filter.CategoryID {
			continue
		}
		if filter.FavoritesOnly && !v.IsFavorite {
			continue
		}
		result = append(result, v)
	}
	return result, nil
}

// Get retrieves a single video.
func (s *VideoService) Get(ctx context.Context, userID string, id domain.VideoID) (*domain.Video, error) {
	return s.videoRepo.Get(ctx, userID, id)
}

// Update applies partial changes to an existing video.
func (s *VideoService) Update(ctx context.Context, userID string, id domain.VideoID, req UpdateVideoRequest) (*domain.Video, error) {
	video, err := s.videoRepo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		video.Title = strings.TrimSpace(*req.Title)
	}
	if req.Notes != nil {
		video.Notes = *req.Notes
	}
	if req.IsFavorite != nil {
		video.IsFavorite = *req.IsFavorite
	}
	if req.CategoryID != nil {
		if *req.CategoryID != "" {
			if _, err := s.categoryRepo.Get(ctx, userID, *req.CategoryID); err != nil {
				return nil, err
			}
		}
		video.CategoryID = *req.CategoryID
	}

	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, fmt.Errorf("update video: %w", err)
	}
	return video, nil
}

// Delete removes a video.
func (s *VideoService) Delete(ctx context.Context, userID string, id domain.VideoID) error {
	return s.videoRepo.Delete(ctx, userID, id)
}

// BulkMove moves a selection of videos to a category in one atomic write.
// An empty category ID moves the selection to uncategorized.
func (s *VideoService) BulkMove(ctx context.Context, userID string, ids []domain.VideoID, categoryID domain.CategoryID) error {
	if categoryID != "" {
		if _, err := s.categoryRepo.Get(ctx, userID, categoryID); err != nil {
			return err
		}
	}
	if err := s.videoRepo.BulkSetCategory(ctx, userID, ids, categoryID); err != nil {
		return err
	}
	s.logger.Info("videos moved", "user_id", userID, "count", len(ids), "category_id", categoryID)
	return nil
}

// BulkDelete removes a selection of videos in one atomic write.
func (s *VideoService) BulkDelete(ctx context.Context, userID string, ids []domain.VideoID) error {
	if err := s.videoRepo.BulkDelete(ctx, userID, ids); err != nil {
		return err
	}
	s.logger.Info("videos deleted", "user_id", userID, "count", len(ids))
	return nil
}
