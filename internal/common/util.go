package common

import (
	"crypto/rand"
	"encoding/hex"
)

// MakeRandHexString generates a random hexadecimal string of the given size.
// The size parameter specifies the number of random bytes to generate before
// encoding them as a hexadecimal string, so the final string length is twice
// the size. It returns an error if the random number generator fails.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// ClampAutosaveSeconds forces an autosave interval into the allowed range.
// Zero or negative values fall back to the default.
func ClampAutosaveSeconds(v int) int {
	if v <= 0 {
		return AutosaveDefaultSeconds
	}
	if v < AutosaveMinSeconds {
		return AutosaveMinSeconds
	}
	if v > AutosaveMaxSeconds {
		return AutosaveMaxSeconds
	}
	return v
}

// ValidTheme reports whether s is one of the accepted theme names.
func ValidTheme(s string) bool {
	return s == ThemeLight || s == ThemeDark || s == ThemeSystem
}
