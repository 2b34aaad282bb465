// Package export renders notes into portable text formats and writes
// them to disk.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mpetrov/inkpad/internal/client/models"
	"github.com/mpetrov/inkpad/internal/filex"
)

const (
	FormatText     = "txt"
	FormatMarkdown = "md"
	// FormatFrontmatter writes markdown with a YAML metadata block; the
	// file still gets the .md extension.
	FormatFrontmatter = "fm"
)

// Text returns the raw note content.
func Text(note *models.Note) string {
	return note.Content
}

// Markdown renders the note as a heading followed by the content.
func Markdown(note *models.Note) string {
	return fmt.Sprintf("# %s\n\n%s", note.Title, note.Content)
}

type frontmatter struct {
	Title   string    `yaml:"title"`
	Tags    []string  `yaml:"tags,omitempty"`
	Created time.Time `yaml:"created"`
	Updated time.Time `yaml:"updated"`
}

// MarkdownWithFrontmatter renders the note as a markdown file with a
// YAML frontmatter block carrying its metadata.
func MarkdownWithFrontmatter(note *models.Note) (string, error) {
	meta, err := yaml.Marshal(frontmatter{
		Title:   note.Title,
		Tags:    note.Tags,
		Created: note.CreatedAt,
		Updated: note.UpdatedAt,
	})
	if err != nil {
		return "", fmt.Errorf("error encoding frontmatter: %w", err)
	}
	return fmt.Sprintf("---\n%s---\n\n%s", meta, note.Content), nil
}

// WriteFile renders the note in the given format and writes it under
// dirName (created below the working directory if needed). The file
// name derives from the title. Returns the written path.
func WriteFile(dirName string, note *models.Note, format string) (string, error) {
	var content string
	ext := format
	switch format {
	case FormatText:
		content = Text(note)
	case FormatMarkdown:
		content = Markdown(note)
	case FormatFrontmatter:
		rendered, err := MarkdownWithFrontmatter(note)
		if err != nil {
			return "", err
		}
		content = rendered
		ext = FormatMarkdown
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}

	dir, err := filex.EnsureSubDir(dirName)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, filex.SafeFileName(note.Title)+"."+ext)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("error writing export: %w", err)
	}
	return path, nil
}
