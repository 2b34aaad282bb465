package notes

import (
	"context"

	"github.com/mpetrov/inkpad/internal/server/models"
)

// Sort keys accepted by SelectForUser.
const (
	SortUpdatedAt = "updated_at"
	SortTitle     = "title"
)

type Repository interface {
	SelectForUser(ctx context.Context, userID, sortKey string, ascending bool) ([]*models.Note, error)
	GetByID(ctx context.Context, userID, id string) (*models.Note, error)
	Insert(ctx context.Context, note *models.Note) (*models.Note, error)
	Patch(ctx context.Context, userID, id string, patch *models.NotePatch) (*models.Note, error)
	Delete(ctx context.Context, userID, id string) error
	DetachFolder(ctx context.Context, userID, folderID string) error
}
