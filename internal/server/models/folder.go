package models

import "time"

type Folder struct {
	ID        string
	UserID    string
	Name      string
	Color     *string
	CreatedAt time.Time
}

// FolderPatch is a partial update: nil fields are left untouched.
type FolderPatch struct {
	Name  *string
	Color *string
}
