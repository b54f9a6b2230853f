package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	mw "github.com/videokoleks/videokoleks/internal/api/middleware"
	"github.com/videokoleks/videokoleks/internal/repository"
	"github.com/videokoleks/videokoleks/internal/service"
	"github.com/videokoleks/videokoleks/internal/store"
)

// testLogger returns a silent logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testEnv wires real services over an in-memory store behind the same route
// shapes as the production router.
type testEnv struct {
	store     *store.MemoryStore
	backupSvc *service.BackupService
	router    chi.Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st := store.NewMemoryStore()
	logger := testLogger()

	categoryRepo := repository.NewStoreCategoryRepository(st)
	videoRepo := repository.NewStoreVideoRepository(st)

	categorySvc := service.NewCategoryService(categoryRepo, logger)
	videoSvc := service.NewVideoService(videoRepo, categoryRepo, nil, logger)
	backupSvc := service.NewBackupService(st, logger)

	categoryHandler := NewCategoryHandler(categorySvc, logger)
	videoHandler := NewVideoHandler(videoSvc, logger)
	backupHandler := NewBackupHandler(backupSvc, logger)

	r := chi.NewRouter()
	r.Use(mw.RequireUser)
	r.Get("/categories", categoryHandler.List)
	r.Post("/categories", categoryHandler.Create)
	r.Put("/categories/{categoryID}", categoryHandler.Update)
	r.Delete("/categories/{categoryID}", categoryHandler.Delete)
	r.Post("/videos", videoHandler.Save)
	r.Get("/videos", videoHandler.List)
	r.Post("/videos/bulk/move", videoHandler.BulkMove)
	r.Post("/videos/bulk/delete", videoHandler.BulkDelete)
	r.Get("/videos/{videoID}", videoHandler.Get)
	r.Patch("/videos/{videoID}", videoHandler.Update)
	r.Delete("/videos/{videoID}", videoHandler.Delete)
	r.Get("/backup/export", backupHandler.Export)
	r.Post("/backup/restore", backupHandler.Restore)
	r.Get("/backup/status", backupHandler.Status)

	return &testEnv{store: st, backupSvc: backupSvc, router: r}
}

// do performs a request as the given user and returns the recorder.
func (e *testEnv) do(method, path, userID, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// failingPingStore wraps a store whose Ping always fails.
type failingPingStore struct {
	store.Store
}

func (s *failingPingStore) Ping(ctx context.Context) error {
	return errors.New("store unavailable")
}
