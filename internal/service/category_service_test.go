package service

import (
	"context"
	"errors"
	"testing"

	"github.com/videokoleks/videokoleks/internal/domain"
	"github.com/videokoleks/videokoleks/internal/repository"
	"github.com/videokoleks/videokoleks/internal/store"
)

func newCategoryTestService(t *testing.T) *CategoryService {
	t.Helper()
	return NewCategoryService(repository.NewStoreCategoryRepository(store.NewMemoryStore()), testLogger())
}

func TestCategoryService_CreateTrimsAndValidatesName(t *testing.T) {
	svc := newCategoryTestService(t)
	ctx := context.Background()

	for _, name := range []string{"", "   ", "\t\n"} {
		if _, err := svc.Create(ctx, "u1", CreateCategoryRequest{Name: name}); !errors.Is(err, domain.ErrEmptyCategoryName) {
			t.Errorf("Create(%q): expected ErrEmptyCategoryName, got %v", name, err)
		}
	}

	category, err := svc.Create(ctx, "u1", CreateCategoryRequest{
		Name:  "  Comedy  ",
		Emoji: "😂",
		Color: "bg-red-500",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if category.Name != "Comedy" {
		t.Errorf("expected trimmed name, got %q", category.Name)
	}
	if category.ID == "" {
		t.Error("expected an allocated id")
	}
}

func TestCategoryService_UpdatePartial(t *testing.T) {
	svc := newCategoryTestService(t)
	ctx := context.Background()

	category, err := svc.Create(ctx, "u1", CreateCategoryRequest{Name: "Comedy", Emoji: "😂", Color: "bg-red-500"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	emoji := "🎭"
	updated, err := svc.Update(ctx, "u1", category.ID, UpdateCategoryRequest{Emoji: &emoji})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Emoji != "🎭" {
		t.Errorf("expected updated emoji, got %q", updated.Emoji)
	}
	if updated.Name != "Comedy" || updated.Color != "bg-red-500" {
		t.Errorf("expected untouched fields preserved, got %+v", updated)
	}

	empty := "  "
	if _, err := svc.Update(ctx, "u1", category.ID, UpdateCategoryRequest{Name: &empty}); !errors.Is(err, domain.ErrEmptyCategoryName) {
		t.Errorf("expected ErrEmptyCategoryName on blank rename, got %v", err)
	}

	locked := true
	pin := "1234"
	updated, err = svc.Update(ctx, "u1", category.ID, UpdateCategoryRequest{IsLocked: &locked, PIN: &pin})
	if err != nil {
		t.Fatalf("lock update failed: %v", err)
	}
	if !updated.IsLocked || updated.PIN != "1234" {
		t.Errorf("expected lock fields applied, got %+v", updated)
	}
}

func TestCategoryService_UpdateMissing(t *testing.T) {
	svc := newCategoryTestService(t)
	name := "x"
	if _, err := svc.Update(context.Background(), "u1", "missing", UpdateCategoryRequest{Name: &name}); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryService_DeleteLeavesVideosUncategorized(t *testing.T) {
	st := store.NewMemoryStore()
	logger := testLogger()
	categorySvc := NewCategoryService(repository.NewStoreCategoryRepository(st), logger)
	videoSvc := NewVideoService(
		repository.NewStoreVideoRepository(st),
		repository.NewStoreCategoryRepository(st),
		nil,
		logger,
	)
	ctx := context.Background()

	category, err := categorySvc.Create(ctx, "u1", CreateCategoryRequest{Name: "Doomed"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	video, err := videoSvc.Save(ctx, "u1", SaveVideoRequest{
		OriginalURL: "https://example.com/v", Title: "clip", CategoryID: category.ID,
	})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := categorySvc.Delete(ctx, "u1", category.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := categorySvc.Get(ctx, "u1", category.ID); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("expected category gone, got %v", err)
	}

	// The video keeps its stale reference; it no longer resolves to a category.
	got, err := videoSvc.Get(ctx, "u1", video.ID)
	if err != nil {
		t.Fatalf("get video failed: %v", err)
	}
	if got.CategoryID != category.ID {
		t.Errorf("expected stale reference preserved, got %q", got.CategoryID)
	}
}
