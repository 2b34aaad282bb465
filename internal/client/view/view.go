// Package view filters and sorts the note list for display. Apply is
// pure: it never mutates its input.
package view

import (
	"sort"
	"strings"

	"github.com/mpetrov/inkpad/internal/client/models"
)

const (
	SortDate     = "date"
	SortTitle    = "title"
	SortFavorite = "favorite"
)

// Query describes what the list should show. Zero values mean "no
// filtering" and the default date sort.
type Query struct {
	Search string
	Tag    string
	Sort   string
}

// Apply returns the notes matching the query, ordered per its sort key.
// Search is a case-insensitive substring match over title or content;
// tag filtering is exact membership. Both filters intersect.
func Apply(notes []models.Note, q Query) []models.Note {
	result := make([]models.Note, 0, len(notes))
	needle := strings.ToLower(q.Search)

	for _, n := range notes {
		if needle != "" &&
			!strings.Contains(strings.ToLower(n.Title), needle) &&
			!strings.Contains(strings.ToLower(n.Content), needle) {
			continue
		}
		if q.Tag != "" && !hasTag(n.Tags, q.Tag) {
			continue
		}
		result = append(result, n)
	}

	switch q.Sort {
	case SortTitle:
		sort.SliceStable(result, func(i, j int) bool {
			return strings.ToLower(result[i].Title) < strings.ToLower(result[j].Title)
		})
	case SortFavorite:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].IsFavorite && !result[j].IsFavorite
		})
	default:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].UpdatedAt.After(result[j].UpdatedAt)
		})
	}

	return result
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
