package domain

// CategoryID is a unique identifier for a category.
type CategoryID string

// String returns the string representation of the CategoryID.
func (id CategoryID) String() string {
	return string(id)
}

// Category is a user-defined bucket for videos, styled with an emoji and a
// color. Identity is the store-assigned ID; Name is the human-facing key used
// for backup portability and is not guaranteed unique.
type Category struct {
	ID       CategoryID `json:"id"`
	UserID   string     `json:"userId"`
	Name     string     `json:"name"`
	Emoji    string     `json:"emoji"`
	Color    string     `json:"color"`
	IsLocked bool       `json:"isLocked,omitempty"`
	// PIN gates the category in the client UI only. It is stored and compared
	// as plaintext and must never be treated as an authorization boundary.
	PIN string `json:"pin,omitempty"`
}

// ToBackup strips the store-assigned identity for export.
func (c *Category) ToBackup() BackupCategory {
	return BackupCategory{
		Name:     c.Name,
		Emoji:    c.Emoji,
		Color:    c.Color,
		IsLocked: c.IsLocked,
		PIN:      c.PIN,
	}
}
