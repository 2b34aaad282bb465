// Package models defines the client-side wire types exchanged with the
// Inkpad server. Field names mirror the JSON API exactly.
package models

import "time"

type Note struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Tags       []string  `json:"tags"`
	IsFavorite bool      `json:"isFavorite"`
	FolderID   *string   `json:"folderId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NoteDraft carries the fields of a note that do not exist yet. The
// server assigns the id and timestamps.
type NoteDraft struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	IsFavorite bool     `json:"isFavorite"`
	FolderID   *string  `json:"folderId"`
}

// NotePatch is a partial update; nil fields are not sent. A non-nil
// FolderID holding an empty string detaches the note from its folder.
type NotePatch struct {
	Title      *string   `json:"title,omitempty"`
	Content    *string   `json:"content,omitempty"`
	Tags       *[]string `json:"tags,omitempty"`
	IsFavorite *bool     `json:"isFavorite,omitempty"`
	FolderID   *string   `json:"folderId,omitempty"`
}
