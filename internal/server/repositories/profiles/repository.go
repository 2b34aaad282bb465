package profiles

import (
	"context"

	"github.com/mpetrov/inkpad/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Upsert(ctx context.Context, profile *models.Profile) (*models.Profile, error)
}
