package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/videokoleks/videokoleks/internal/api"
	"github.com/videokoleks/videokoleks/internal/api/handler"
	"github.com/videokoleks/videokoleks/internal/config"
	"github.com/videokoleks/videokoleks/internal/metadata"
	"github.com/videokoleks/videokoleks/internal/repository"
	"github.com/videokoleks/videokoleks/internal/service"
	"github.com/videokoleks/videokoleks/internal/store"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Path to config file")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("videokoleks %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting videokoleks",
		"version", Version,
		"build_time", BuildTime,
	)

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Open document store
	st, err := store.OpenSQLite(cfg.Store.Path)
	if err != nil {
		logger.Error("failed to open store", "path", cfg.Store.Path, "error", err)
		os.Exit(1)
	}
	defer st.Close()

	// Initialize repositories
	categoryRepo := repository.NewStoreCategoryRepository(st)
	videoRepo := repository.NewStoreVideoRepository(st)

	// Initialize resolvers; the unfurl client is nil when no aggregator is
	// configured and resolution falls back to raw scraping.
	scraper := metadata.NewScraper(cfg.Resolver, logger)
	unfurl := metadata.NewUnfurlClient(cfg.Unfurl, logger)

	// Initialize services
	metadataSvc := service.NewMetadataService(unfurl, scraper, logger)
	categorySvc := service.NewCategoryService(categoryRepo, logger)
	videoSvc := service.NewVideoService(videoRepo, categoryRepo, metadataSvc, logger)
	backupSvc := service.NewBackupService(st, logger)

	// Initialize handlers
	videoHandler := handler.NewVideoHandler(videoSvc, logger)
	categoryHandler := handler.NewCategoryHandler(categorySvc, logger)
	metadataHandler := handler.NewMetadataHandler(metadataSvc, logger)
	backupHandler := handler.NewBackupHandler(backupSvc, logger)
	healthHandler := handler.NewHealthHandler(st)

	// Setup router
	router := api.NewRouter(videoHandler, categoryHandler, metadataHandler, backupHandler, healthHandler, cfg.Server.APIKey)

	// Setup HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("stopped")
}
