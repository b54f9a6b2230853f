package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/videokoleks/videokoleks/internal/domain"
	"github.com/videokoleks/videokoleks/internal/store"
)

// StoreVideoRepository implements VideoRepository on the document store.
type StoreVideoRepository struct {
	store store.Store
}

// NewStoreVideoRepository creates a video repository backed by the store.
func NewStoreVideoRepository(s store.Store) *StoreVideoRepository {
	return &StoreVideoRepository{store: s}
}

// ListByUser returns all videos owned by the user.
func (r *StoreVideoRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Video, error) {
	records, err := r.store.QueryByOwner(ctx, store.CollectionVideos, userID)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}

	videos := make([]*domain.Video, 0, len(records))
	for _, rec := range records {
		var v domain.Video
		if err := json.Unmarshal(rec.Data, &v); err != nil {
			return nil, fmt.Errorf("decode video %s: %w", rec.ID, err)
		}
		videos = append(videos, &v)
	}
	return videos, nil
}

// Get retrieves a video owned by the user.
func (r *StoreVideoRepository) Get(ctx context.Context, userID string, id domain.VideoID) (*domain.Video, error) {
	rec, err := r.store.Get(ctx, store.CollectionVideos, id.String())
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.ErrVideoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get video: %w", err)
	}
	if rec.UserID != userID {
		return nil, domain.ErrVideoNotFound
	}

	var v domain.Video
	if err := json.Unmarshal(rec.Data, &v); err != nil {
		return nil, fmt.Errorf("decode video %s: %w", rec.ID, err)
	}
	return &v, nil
}

// Create persists a new video.
func (r *StoreVideoRepository) Create(ctx context.Context, video *domain.Video) error {
	op, err := setOp(video)
	if err != nil {
		return err
	}
	return r.store.BatchWrite(ctx, []store.WriteOp{op})
}

// Update replaces an existing video.
func (r *StoreVideoRepository) Update(ctx context.Context, video *domain.Video) error {
	if _, err := r.Get(ctx, video.UserID, video.ID); err != nil {
		return err
	}
	op, err := setOp(video)
	if err != nil {
		return err
	}
	return r.store.BatchWrite(ctx, []store.WriteOp{op})
}

// Delete removes a video.
func (r *StoreVideoRepository) Delete(ctx context.Context, userID string, id domain.VideoID) error {
	if _, err := r.Get(ctx, userID, id); err != nil {
		return err
	}
	return r.store.BatchWrite(ctx, []store.WriteOp{{
		Kind:       store.WriteDelete,
		Collection: store.CollectionVideos,
		ID:         id.String(),
		UserID:     userID,
	}})
}

// BulkSetCategory atomically moves all the given videos to a category.
// Every video must exist and belong to the user or nothing is written.
func (r *StoreVideoRepository) BulkSetCategory(ctx context.Context, userID string, ids []domain.VideoID, categoryID domain.CategoryID) error {
	ops := make([]store.WriteOp, 0, len(ids))
	for _, id := range ids {
		video, err := r.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		video.CategoryID = categoryID
		op, err := setOp(video)
		if err != nil {
			return err
		}
		ops = append(ops, op)
	}
	return r.store.BatchWrite(ctx, ops)
}

// BulkDelete atomically removes all the given videos.
// Every video must exist and belong to the user or nothing is deleted.
func (r *StoreVideoRepository) BulkDelete(ctx context.Context, userID string, ids []domain.VideoID) error {
	ops := make([]store.WriteOp, 0, len(ids))
	for _, id := range ids {
		if _, err := r.Get(ctx, userID, id); err != nil {
			return err
		}
		ops = append(ops, store.WriteOp{
			Kind:       store.WriteDelete,
			Collection: store.CollectionVideos,
			ID:         id.String(),
			UserID:     userID,
		})
	}
	return r.store.BatchWrite(ctx, ops)
}

func setOp(video *domain.Video) (store.WriteOp, error) {
	data, err := json.Marshal(video)
	if err != nil {
		return store.WriteOp{}, fmt.Errorf("encode video: %w", err)
	}
	return store.WriteOp{
		Kind:       store.WriteSet,
		Collection: store.CollectionVideos,
		ID:         video.ID.String(),
		UserID:     video.UserID,
		Data:       data,
	}, nil
}
