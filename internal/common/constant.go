package common

// Theme names accepted by the profile record.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// DefaultNoteTitle replaces a blank title at save time.
const DefaultNoteTitle = "Untitled Note"

// Autosave interval bounds in seconds. Values outside the range are clamped.
const (
	AutosaveMinSeconds     = 10
	AutosaveMaxSeconds     = 300
	AutosaveDefaultSeconds = 30
)
