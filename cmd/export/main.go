package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/videokoleks/videokoleks/internal/config"
	"github.com/videokoleks/videokoleks/internal/service"
	"github.com/videokoleks/videokoleks/internal/store"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Parse flags
	userID := flag.String("user", "", "User whose collection to export (required)")
	dest := flag.String("dest", ".", "Destination directory for the backup file")
	configPath := flag.String("config", "", "Path to config file")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("videokoleks-export %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "Error: --user flag is required")
		fmt.Fprintln(os.Stderr, "Usage: videokoleks-export --user <user-id> [--dest /path]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Setup logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("VideoKoleks Export",
		"version", Version,
		"user", *userID,
		"dest", *dest,
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

	backupSvc := service.NewBackupService(st, logger)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	doc, err := backupSvc.Export(ctx, *userID)
	if err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}

	data, err := service.EncodeBackup(doc)
	if err != nil {
		logger.Error("encode failed", "error", err)
		os.Exit(1)
	}

	outPath := filepath.Join(*dest, service.BackupFileName(time.Now()))
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		logger.Error("write failed", "path", outPath, "error", err)
		os.Exit(1)
	}

	logger.Info("export written",
		"path", outPath,
		"categories", len(doc.Categories),
		"videos", len(doc.Videos),
	)
}
