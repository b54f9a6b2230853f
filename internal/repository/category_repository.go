package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/videokoleks/videokoleks/internal/domain"
	"github.com/videokoleks/videokoleks/internal/store"
)

// StoreCategoryRepository implements CategoryRepository on the document store.
type StoreCategoryRepository struct {
	store store.Store
}

// NewStoreCategoryRepository creates a category repository backed by the store.
func NewStoreCategoryRepository(s store.Store) *StoreCategoryRepository {
	return &StoreCategoryRepository{store: s}
}

// ListByUser returns all categories owned by the user.
func (r *StoreCategoryRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Category, error) {
	records, err := r.store.QueryByOwner(ctx, store.CollectionCategories, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	categories := make([]*domain.Category, 0, len(records))
	for _, rec := range records {
		var c domain.Category
		if err := json.Unmarshal(rec.Data, &c); err != nil {
			return nil, fmt.Errorf("decode category %s: %w", rec.ID, err)
		}
		categories = append(categories, &c)
	}
	return categories, nil
}

// Get retrieves a category owned by the user.
func (r *StoreCategoryRepository) Get(ctx context.Context, userID string, id domain.CategoryID) (*domain.Category, error) {
	rec, err := r.store.Get(ctx, store.CollectionCategories, id.String())
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if rec.UserID != userID {
		return nil, domain.ErrCategoryNotFound
	}

	var c domain.Category
	if err := json.Unmarshal(rec.Data, &c); err != nil {
		return nil, fmt.Errorf("decode category %s: %w", rec.ID, err)
	}
	return &c, nil
}

// Create persists a new category.
func (r *StoreCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	return r.write(ctx, category)
}

// Update replaces an existing category.
func (r *StoreCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	if _, err := r.Get(ctx, category.UserID, category.ID); err != nil {
		return err
	}
	return r.write(ctx, category)
}

// Delete removes a category.
func (r *StoreCategoryRepository) Delete(ctx context.Context, userID string, id domain.CategoryID) error {
	if _, err := r.Get(ctx, userID, id); err != nil {
		return err
	}
	return r.store.BatchWrite(ctx, []store.WriteOp{{
		Kind:       store.WriteDelete,
		Collection: store.CollectionCategories,
		ID:         id.String(),
		UserID:     userID,
	}})
}

func (r *StoreCategoryRepository) write(ctx context.Context, category *domain.Category) error {
	data, err := json.Marshal(category)
	if err != nil {
		return fmt.Errorf("encode category: %w", err)
	}
	return r.store.BatchWrite(ctx, []store.WriteOp{{
		Kind:       store.WriteSet,
		Collection: store.CollectionCategories,
		ID:         category.ID.String(),
		UserID:     category.UserID,
		Data:       data,
	}})
}
