package models

import "time"

// Profile is the per-user settings record, one-to-one with a user.
// It is created lazily on first access and on registration.
type Profile struct {
	UserID           string
	DisplayName      string
	UserName         string
	AvatarKey        string
	Theme            string
	AutosaveInterval int // seconds, clamped to [10, 300]
	UpdatedAt        time.Time
}
