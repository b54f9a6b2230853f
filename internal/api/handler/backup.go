package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/videokoleks/videokoleks/internal/api/middleware"
	"github.com/videokoleks/videokoleks/internal/domain"
	"github.com/videokoleks/videokoleks/internal/service"
)

// Uploaded backups are small JSON documents; cap reads defensively.
const maxBackupBytes = 32 << 20 // 32MB

// BackupHandler handles collection export and restore.
type BackupHandler struct {
	backupSvc *service.BackupService
	logger    *slog.Logger
}

// NewBackupHandler creates a new backup handler.
func NewBackupHandler(backupSvc *service.BackupService, logger *slog.Logger) *BackupHandler {
	return &BackupHandler{
		backupSvc: backupSvc,
		logger:    logger,
	}
}

// RestoreAcceptedResponse is returned when a restore has been started.
type RestoreAcceptedResponse struct {
	Status     string `json:"status"`
	Categories int    `json:"categories"`
	Videos     int    `json:"videos"`
}

// RestoreStatusResponse reports restore progress.
type RestoreStatusResponse struct {
	Active             bool   `json:"active"`
	Phase              string `json:"phase"`
	Percent            int    `json:"percent"`
	CategoriesRestored int    `json:"categories_restored"`
	VideosRestored     int    `json:"videos_restored"`
	Error              string `json:"error,omitempty"`
}

// Export handles GET /api/v1/backup/export - downloads the collection as a
// JSON file named with the current date.
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	doc, err := h.backupSvc.Export(r.Context(), userID)
	if err != nil {
		h.logger.Error("export failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to export collection")
		return
	}

	data, err := service.EncodeBackup(doc)
	if err != nil {
		h.logger.Error("export encode failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to encode backup")
		return
	}

	filename := service.BackupFileName(time.Now())
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Restore handles POST /api/v1/backup/restore - validates the uploaded backup
// and starts the (irreversible) wholesale replacement in the background.
// Clients poll Status for progress and must reload their collection view once
// the restore finishes.
func (h *BackupHandler) Restore(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBackupBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	doc, err := h.backupSvc.DecodeBackup(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid backup file: expected categories and videos arrays")
		return
	}

	if err := h.backupSvc.StartRestore(userID, doc); err != nil {
		if errors.Is(err, domain.ErrRestoreInProgress) {
			writeError(w, http.StatusConflict, "a restore is already in progress")
			return
		}
		h.logger.Error("restore start failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to start restore")
		return
	}

	writeJSON(w, http.StatusAccepted, RestoreAcceptedResponse{
		Status:     "restoring",
		Categories: len(doc.Categories),
		Videos:     len(doc.Videos),
	})
}

// Status handles GET /api/v1/backup/status
func (h *BackupHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.backupSvc.RestoreStatus()
	if errors.Is(err, domain.ErrNoActiveRestore) {
		writeJSON(w, http.StatusOK, RestoreStatusResponse{Active: false, Phase: "idle"})
		return
	}

	writeJSON(w, http.StatusOK, RestoreStatusResponse{
		Active:             status.Error == "" && status.Percent < 100,
		Phase:              status.Phase,
		Percent:            status.Percent,
		CategoriesRestored: status.CategoriesRestored,
		VideosRestored:     status.VideosRestored,
		Error:              status.Error,
	})
}
