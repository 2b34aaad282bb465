package settings

import (
	"context"

	"github.com/mpetrov/inkpad/internal/client/models"
	"github.com/mpetrov/inkpad/internal/client/remote"
)

// stubRemote provides no-op implementations for the remote.Client
// methods the settings manager never touches.
type stubRemote struct{}

var _ remote.Client = (*profileRemote)(nil)

func (stubRemote) Register(context.Context, string, string) error { return nil }
func (stubRemote) Login(context.Context, string, string) error    { return nil }
func (stubRemote) Logout(context.Context) error                   { return nil }
func (stubRemote) LoggedIn() bool                                 { return true }

func (stubRemote) ListNotes(context.Context, string, bool) ([]models.Note, error) {
	return nil, nil
}
func (stubRemote) GetNote(context.Context, string) (*models.Note, error) { return nil, nil }
func (stubRemote) CreateNote(context.Context, *models.NoteDraft) (*models.Note, error) {
	return nil, nil
}
func (stubRemote) UpdateNote(context.Context, string, *models.NotePatch) (*models.Note, error) {
	return nil, nil
}
func (stubRemote) DeleteNote(context.Context, string) error { return nil }

func (stubRemote) ListFolders(context.Context) ([]models.Folder, error) { return nil, nil }
func (stubRemote) CreateFolder(context.Context, string, *string) (*models.Folder, error) {
	return nil, nil
}
func (stubRemote) UpdateFolder(context.Context, string, *models.FolderPatch) (*models.Folder, error) {
	return nil, nil
}
func (stubRemote) DeleteFolder(context.Context, string) error { return nil }

func (stubRemote) GetProfile(context.Context) (*models.Profile, error) { return nil, nil }
func (stubRemote) SaveProfile(context.Context, *models.Profile) (*models.Profile, error) {
	return nil, nil
}
func (stubRemote) AvatarUploadURL(context.Context) (string, string, error) { return "", "", nil }
func (stubRemote) AvatarDownloadURL(context.Context, string) (string, error) {
	return "", nil
}
