// Package filex provides small local-filesystem helpers used by the
// client when materializing note exports on disk.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureSubDir creates (if needed) a subdirectory of the current working
// directory and returns its absolute path.
func EnsureSubDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// SafeFileName turns an arbitrary note title into a name that is safe to
// use as a file name on common filesystems. Separators and control
// characters are replaced with '-'; an empty result becomes "untitled".
func SafeFileName(title string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' ||
			r == '"' || r == '<' || r == '>' || r == '|':
			return '-'
		case r < 0x20:
			return '-'
		default:
			return r
		}
	}, strings.TrimSpace(title))

	if mapped == "" {
		return "untitled"
	}
	return mapped
}
