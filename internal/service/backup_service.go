package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/videokoleks/videokoleks/internal/domain"
	"github.com/videokoleks/videokoleks/internal/store"
)

// Restore phases.
const (
	phaseWiping     = "wiping"
	phaseCategories = "restoring_categories"
	phaseVideos     = "restoring_videos"
	phaseCompleted  = "completed"
	phaseFailed     = "failed"
)

// BackupService exports a user's full collection to a portable JSON document
// and restores such documents by wholesale replacement. It talks to the
// document store directly: the wipe and both restore phases each map to one
// atomic batched write.
type BackupService struct {
	store    store.Store
	validate *validator.Validate
	logger   *slog.Logger
	now      func() time.Time

	// Async restore state
	mu            sync.Mutex
	activeRestore *ActiveRestore
}

// ActiveRestore tracks an in-progress (or the most recent) restore operation.
type ActiveRestore struct {
	UserID             string    `json:"user_id"`
	Phase              string    `json:"phase"`
	Percent            int       `json:"percent"`
	CategoriesRestored int       `json:"categories_restored"`
	VideosRestored     int       `json:"videos_restored"`
	StartedAt          time.Time `json:"started_at"`
	Error              string    `json:"error,omitempty"`
}

// RestoreResult reports what a completed restore wrote.
type RestoreResult struct {
	CategoriesRestored int
	VideosRestored     int
}

// NewBackupService creates a new backup service.
func NewBackupService(s store.Store, logger *slog.Logger) *BackupService {
	return &BackupService{
		store:    s,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
}

// Export reads all categories and videos owned by userID and builds the
// portable document. The two reads run concurrently; any read error aborts the
// export and nothing is produced. Videos whose category reference no longer
// resolves are exported under the "Uncategorized" sentinel name.
func (s *BackupService) Export(ctx context.Context, userID string) (*domain.BackupDocument, error) {
	var (
		wg           sync.WaitGroup
		catRecords   []store.Record
		videoRecords []store.Record
		catErr       error
		videoErr     error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		catRecords, catErr = s.store.QueryByOwner(ctx, store.CollectionCategories, userID)
	}()
	go func() {
		defer wg.Done()
		videoRecords, videoErr = s.store.QueryByOwner(ctx, store.CollectionVideos, userID)
	}()
	wg.Wait()

	if catErr != nil {
		return nil, fmt.Errorf("export categories: %w", catErr)
	}
	if videoErr != nil {
		return nil, fmt.Errorf("export videos: %w", videoErr)
	}

	nameByID := make(map[domain.CategoryID]string, len(catRecords))
	doc := &domain.BackupDocument{
		Categories: make([]domain.BackupCategory, 0, len(catRecords)),
		Videos:     make([]domain.BackupVideo, 0, len(videoRecords)),
	}

	for _, rec := range catRecords {
		var c domain.Category
		if err := json.Unmarshal(rec.Data, &c); err != nil {
			return nil, fmt.Errorf("export decode category %s: %w", rec.ID, err)
		}
		nameByID[c.ID] = c.Name
		doc.Categories = append(doc.Categories, c.ToBackup())
	}

	for _, rec := range videoRecords {
		var v domain.Video
		if err := json.Unmarshal(rec.Data, &v); err != nil {
			return nil, fmt.Errorf("export decode video %s: %w", rec.ID, err)
		}
		name, ok := nameByID[v.CategoryID]
		if !ok || name == "" {
			name = domain.UncategorizedName
		}
		doc.Videos = append(doc.Videos, v.ToBackup(name))
	}

	s.logger.Info("collection exported",
		"user_id", userID,
		"categories", len(doc.Categories),
		"videos", len(doc.Videos),
	)
	return doc, nil
}

// EncodeBackup serializes a backup document to the portable wire form:
// UTF-8 JSON, pretty-printed with 2-space indentation.
func EncodeBackup(doc *domain.BackupDocument) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	return data, nil
}

// BackupFileName returns the download name for an export taken at t.
func BackupFileName(t time.Time) string {
	return fmt.Sprintf("videokoleks_backup_%s.json", t.Format("2006-01-02"))
}

// DecodeBackup parses and validates an uploaded backup document. Any shape
// other than the expected top-level object with both arrays present fails
// with domain.ErrInvalidBackup.
func (s *BackupService) DecodeBackup(data []byte) (*domain.BackupDocument, error) {
	var doc domain.BackupDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidBackup, err)
	}
	if err := s.validate.Struct(&doc); err != nil {
		return nil, fmt.Errorf("%w: categories and videos must both be present", domain.ErrInvalidBackup)
	}
	return &doc, nil
}

// Restore replaces userID's entire collection with the document's contents.
// Three phases, in order: wipe everything owned by the user, recreate
// categories, recreate videos. Each phase is one atomic batched write; the
// phases together are not atomic, so a failure can leave the collection
// partially wiped or partially restored and the caller is expected to retry
// the whole restore.
//
// Category references are re-resolved by name through the mapping built in the
// category phase; unknown names restore as uncategorized. When a backup holds
// duplicate category names the last one wins. Original add timestamps are not
// preserved: every restored video's DateAdded is the restore time.
func (s *BackupService) Restore(ctx context.Context, userID string, doc *domain.BackupDocument) (*RestoreResult, error) {
	if err := s.validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("%w: categories and videos must both be present", domain.ErrInvalidBackup)
	}

	s.logger.Info("restore started",
		"user_id", userID,
		"categories", len(doc.Categories),
		"videos", len(doc.Videos),
	)

	// Phase 1: wipe.
	s.setProgress(phaseWiping, 0, 0, 0)
	if err := s.wipe(ctx, userID); err != nil {
		return nil, s.fail(domain.NewRestoreError("wipe", err))
	}
	s.setProgress(phaseWiping, 10, 0, 0)

	// Phase 2: categories. The name→id map drives phase 3, so this phase must
	// commit first.
	nameToID := make(map[string]domain.CategoryID, len(doc.Categories))
	catOps := make([]store.WriteOp, 0, len(doc.Categories))
	for _, bc := range doc.Categories {
		category := domain.Category{
			ID:       domain.CategoryID(uuid.NewString()),
			UserID:   userID,
			Name:     bc.Name,
			Emoji:    bc.Emoji,
			Color:    bc.Color,
			IsLocked: bc.IsLocked,
			PIN:      bc.PIN,
		}
		data, err := json.Marshal(&category)
		if err != nil {
			return nil, s.fail(domain.NewRestoreError("categories", err))
		}
		catOps = append(catOps, store.WriteOp{
			Kind:       store.WriteSet,
			Collection: store.CollectionCategories,
			ID:         category.ID.String(),
			UserID:     userID,
			Data:       data,
		})
		nameToID[category.Name] = category.ID
	}
	if err := s.store.BatchWrite(ctx, catOps); err != nil {
		return nil, s.fail(domain.NewRestoreError("categories", err))
	}
	s.setProgress(phaseCategories, 40, len(catOps), 0)

	// Phase 3: videos, committed as one batch.
	restoredAt := s.now().UTC()
	videoOps := make([]store.WriteOp, 0, len(doc.Videos))
	for i, bv := range doc.Videos {
		video := domain.Video{
			ID:           domain.VideoID(uuid.NewString()),
			UserID:       userID,
			Title:        bv.Title,
			ThumbnailURL: bv.ThumbnailURL,
			Platform:     bv.Platform,
			Duration:     bv.Duration,
			CategoryID:   nameToID[bv.CategoryName], // empty when unknown: uncategorized
			Notes:        bv.Notes,
			IsFavorite:   bv.IsFavorite,
			DateAdded:    restoredAt,
			OriginalURL:  bv.OriginalURL,
		}
		data, err := json.Marshal(&video)
		if err != nil {
			return nil, s.fail(domain.NewRestoreError("videos", err))
		}
		videoOps = append(videoOps, store.WriteOp{
			Kind:       store.WriteSet,
			Collection: store.CollectionVideos,
			ID:         video.ID.String(),
			UserID:     userID,
			Data:       data,
		})
		s.setProgress(phaseVideos, 40+(i+1)*60/max(len(doc.Videos), 1), len(catOps), 0)
	}
	if err := s.store.BatchWrite(ctx, videoOps); err != nil {
		return nil, s.fail(domain.NewRestoreError("videos", err))
	}

	result := &RestoreResult{
		CategoriesRestored: len(catOps),
		VideosRestored:     len(videoOps),
	}
	s.setProgress(phaseCompleted, 100, result.CategoriesRestored, result.VideosRestored)
	s.logger.Info("restore completed",
		"user_id", userID,
		"categories", result.CategoriesRestored,
		"videos", result.VideosRestored,
	)
	return result, nil
}

// StartRestore runs Restore in the background. Only one restore may be active
// per process; the operation does not support cancellation and runs to
// completion or failure even if the client goes away.
func (s *BackupService) StartRestore(userID string, doc *domain.BackupDocument) error {
	if err := s.validate.Struct(doc); err != nil {
		return fmt.Errorf("%w: categories and videos must both be present", domain.ErrInvalidBackup)
	}

	s.mu.Lock()
	if s.activeRestore != nil && s.activeRestore.Phase != phaseCompleted && s.activeRestore.Phase != phaseFailed {
		s.mu.Unlock()
		return domain.ErrRestoreInProgress
	}
	s.activeRestore = &ActiveRestore{
		UserID:    userID,
		Phase:     phaseWiping,
		StartedAt: s.now(),
	}
	s.mu.Unlock()

	go func() {
		if _, err := s.Restore(context.Background(), userID, doc); err != nil {
			s.logger.Error("background restore failed", "user_id", userID, "error", err)
		}
	}()
	return nil
}

// RestoreStatus returns a snapshot of the active (or most recent) restore.
func (s *BackupService) RestoreStatus() (*ActiveRestore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeRestore == nil {
		return nil, domain.ErrNoActiveRestore
	}
	snapshot := *s.activeRestore
	return &snapshot, nil
}

// wipe deletes every category and video owned by the user in one batch.
func (s *BackupService) wipe(ctx context.Context, userID string) error {
	catRecords, err := s.store.QueryByOwner(ctx, store.CollectionCategories, userID)
	if err != nil {
		return fmt.Errorf("query categories: %w", err)
	}
	videoRecords, err := s.store.QueryByOwner(ctx, store.CollectionVideos, userID)
	if err != nil {
		return fmt.Errorf("query videos: %w", err)
	}

	ops := make([]store.WriteOp, 0, len(catRecords)+len(videoRecords))
	for _, rec := range catRecords {
		ops = append(ops, store.WriteOp{
			Kind:       store.WriteDelete,
			Collection: store.CollectionCategories,
			ID:         rec.ID,
			UserID:     userID,
		})
	}
	for _, rec := range videoRecords {
		ops = append(ops, store.WriteOp{
			Kind:       store.WriteDelete,
			Collection: store.CollectionVideos,
			ID:         rec.ID,
			UserID:     userID,
		})
	}
	return s.store.BatchWrite(ctx, ops)
}

// setProgress updates the active restore record, if any.
func (s *BackupService) setProgress(phase string, percent, categories, videos int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeRestore == nil {
		return
	}
	s.activeRestore.Phase = phase
	s.activeRestore.Percent = percent
	s.activeRestore.CategoriesRestored = categories
	s.activeRestore.VideosRestored = videos
}

// fail marks the active restore as failed and passes the error through.
func (s *BackupService) fail(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeRestore != nil {
		s.activeRestore.Phase = phaseFailed
		s.activeRestore.Error = err.Error()
	}
	return err
}
