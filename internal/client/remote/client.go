// Package remote implements the HTTP client for the Inkpad server API.
// It owns the token pair: requests carry the access token, and a 401 on
// an authenticated call triggers one transparent refresh-and-retry.
package remote

import (
	"context"
	"errors"

	"github.com/mpetrov/inkpad/internal/client/models"
)

// ErrUnavailable reports that the server could not be reached or
// answered with a server-side failure. Callers may fall back to the
// local cache.
var ErrUnavailable = errors.New("server unavailable")

// Client is the full API surface the rest of the client builds on.
type Client interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	LoggedIn() bool

	ListNotes(ctx context.Context, sortKey string, ascending bool) ([]models.Note, error)
	GetNote(ctx context.Context, id string) (*models.Note, error)
	CreateNote(ctx context.Context, draft *models.NoteDraft) (*models.Note, error)
	UpdateNote(ctx context.Context, id string, patch *models.NotePatch) (*models.Note, error)
	DeleteNote(ctx context.Context, id string) error

	ListFolders(ctx context.Context) ([]models.Folder, error)
	CreateFolder(ctx context.Context, name string, color *string) (*models.Folder, error)
	UpdateFolder(ctx context.Context, id string, patch *models.FolderPatch) (*models.Folder, error)
	DeleteFolder(ctx context.Context, id string) error

	GetProfile(ctx context.Context) (*models.Profile, error)
	SaveProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	AvatarUploadURL(ctx context.Context) (key string, url string, err error)
	AvatarDownloadURL(ctx context.Context, key string) (string, error)
}
