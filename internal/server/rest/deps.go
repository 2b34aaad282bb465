// Package rest exposes the HTTP API. Handlers talk to the service layer
// through small interfaces so tests can substitute fakes.
package rest

import (
	"context"

	"github.com/mpetrov/inkpad/internal/server/models"
	"github.com/mpetrov/inkpad/internal/server/services"
)

type UserService interface {
	Register(ctx context.Context, username, password string) (*models.User, *services.TokenPair, error)
	Login(ctx context.Context, username, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	VerifyAccessToken(token string) (string, error)
}

type NoteService interface {
	List(ctx context.Context, userID, sortKey string, ascending bool) ([]*models.Note, error)
	Get(ctx context.Context, userID, id string) (*models.Note, error)
	Create(ctx context.Context, userID string, note *models.Note) (*models.Note, error)
	Update(ctx context.Context, userID, id string, patch *models.NotePatch) (*models.Note, error)
	Delete(ctx context.Context, userID, id string) error
}

type FolderService interface {
	List(ctx context.Context, userID string) ([]*models.Folder, error)
	Create(ctx context.Context, userID string, folder *models.Folder) (*models.Folder, error)
	Update(ctx context.Context, userID, id string, patch *models.FolderPatch) (*models.Folder, error)
	Delete(ctx context.Context, userID, id string) error
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Save(ctx context.Context, userID string, profile *models.Profile) (*models.Profile, error)
}

type AvatarService interface {
	UploadURL(ctx context.Context, userID string) (key string, url string, err error)
	DownloadURL(ctx context.Context, key string) (string, error)
}

// Services bundles everything the router needs.
type Services struct {
	Users    UserService
	Notes    NoteService
	Folders  FolderService
	Profiles ProfileService
	Avatars  AvatarService
}
