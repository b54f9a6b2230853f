package domain

import (
	"time"
)

// VideoID is a unique identifier for a video.
type VideoID string

// String returns the string representation of the VideoID.
func (id VideoID) String() string {
	return string(id)
}

// Video is a saved link to a social-media video together with its resolved
// display metadata. CategoryID references a Category owned by the same user;
// a dangling or empty reference means the video is uncategorized, never an
// error.
type Video struct {
	ID           VideoID    `json:"id"`
	UserID       string     `json:"userId"`
	Title        string     `json:"title"`
	ThumbnailURL string     `json:"thumbnailUrl"`
	Platform     Platform   `json:"platform"`
	Duration     string     `json:"duration"`
	CategoryID   CategoryID `json:"categoryId"`
	Notes        string     `json:"notes,omitempty"`
	IsFavorite   bool       `json:"isFavorite"`
	DateAdded    time.Time  `json:"dateAdded"`
	OriginalURL  string     `json:"originalUrl"`
}

// ToBackup strips identity and timestamps for export, replacing the category
// reference with the resolved category name.
func (v *Video) ToBackup(categoryName string) BackupVideo {
	return BackupVideo{
		Title:        v.Title,
		ThumbnailURL: v.ThumbnailURL,
		Platform:     v.Platform,
		Duration:     v.Duration,
		Notes:        v.Notes,
		IsFavorite:   v.IsFavorite,
		OriginalURL:  v.OriginalURL,
		CategoryName: categoryName,
	}
}
