package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/videokoleks/videokoleks/internal/api/handler"
	mw "github.com/videokoleks/videokoleks/internal/api/middleware"
)

// NewRouter creates the HTTP router with all routes configured.
func NewRouter(
	videoHandler *handler.VideoHandler,
	categoryHandler *handler.CategoryHandler,
	metadataHandler *handler.MetadataHandler,
	backupHandler *handler.BackupHandler,
	healthHandler *handler.HealthHandler,
	apiKey string,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CleanPath)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Logger)
	r.Use(mw.Recovery)
	r.Use(middleware.Timeout(2 * time.Minute))

	// CORS for web and mobile webview clients
	r.Use(mw.CORS)

	// Health endpoints (no auth)
	r.Get("/health", healthHandler.Live)
	r.Get("/ready", healthHandler.Ready)

	// API v1 (authenticated, scoped to the owning user)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(apiKey))
		r.Use(mw.RequireUser)

		// Metadata resolution for the add-video flow
		r.Post("/metadata/resolve", metadataHandler.Resolve)

		// Category operations
		r.Get("/categories", categoryHandler.List)
		r.Post("/categories", categoryHandler.Create)
		r.Put("/categories/{categoryID}", categoryHandler.Update)
		r.Delete("/categories/{categoryID}", categoryHandler.Delete)

		// Video operations
		r.Post("/videos", videoHandler.Save)
		r.Get("/videos", videoHandler.List)
		r.Post("/videos/bulk/move", videoHandler.BulkMove)
		r.Post("/videos/bulk/delete", videoHandler.BulkDelete)
		r.Get("/videos/{videoID}", videoHandler.Get)
		r.Patch("/videos/{videoID}", videoHandler.Update)
		r.Delete("/videos/{videoID}", videoHandler.Delete)

		// Backup and restore
		r.Get("/backup/export", backupHandler.Export)
		r.Post("/backup/restore", backupHandler.Restore)
		r.Get("/backup/status", backupHandler.Status)
	})

	return r
}
