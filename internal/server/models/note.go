package models

import "time"

// Note is a user's single text document. FolderID is nil for notes that
// are not filed into any folder. Tags keep their insertion order.
type Note struct {
	ID         string
	UserID     string
	Title      string
	Content    string
	Tags       []string
	IsFavorite bool
	FolderID   *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NotePatch is a partial update: nil fields are left untouched.
// A non-nil FolderID pointing at an empty string detaches the note
// from its folder.
type NotePatch struct {
	Title      *string
	Content    *string
	Tags       *[]string
	IsFavorite *bool
	FolderID   *string
}
