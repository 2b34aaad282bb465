package folders

import (
	"context"

	"github.com/mpetrov/inkpad/internal/server/models"
)

type Repository interface {
	SelectForUser(ctx context.Context, userID string) ([]*models.Folder, error)
	GetByID(ctx context.Context, userID, id string) (*models.Folder, error)
	Insert(ctx context.Context, folder *models.Folder) (*models.Folder, error)
	Patch(ctx context.Context, userID, id string, patch *models.FolderPatch) (*models.Folder, error)
	Delete(ctx context.Context, userID, id string) error
}
