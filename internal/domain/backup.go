package domain

// UncategorizedName is the sentinel category name written to a backup when a
// video's category reference cannot be resolved. The importer never creates a
// category for it; videos carrying it restore with an empty category reference.
const UncategorizedName = "Uncategorized"

// BackupCategory is a Category minus its store-assigned identity.
type BackupCategory struct {
	Name     string `json:"name"`
	Emoji    string `json:"emoji"`
	Color    string `json:"color"`
	IsLocked bool   `json:"isLocked,omitempty"`
	PIN      string `json:"pin,omitempty"`
}

// BackupVideo is a Video minus identity and timestamps, with the category
// reference rewritten as the category's name at export time.
type BackupVideo struct {
	Title        string   `json:"title"`
	ThumbnailURL string   `json:"thumbnailUrl"`
	Platform     Platform `json:"platform"`
	Duration     string   `json:"duration"`
	Notes        string   `json:"notes,omitempty"`
	IsFavorite   bool     `json:"isFavorite"`
	OriginalURL  string   `json:"originalUrl"`
	CategoryName string   `json:"categoryName"`
}

// BackupDocument is the portable JSON form of a user's full collection.
// Both slices must be present (possibly empty) for the document to be valid.
type BackupDocument struct {
	Categories []BackupCategory `json:"categories" validate:"required"`
	Videos     []BackupVideo    `json:"videos" validate:"required"`
}
