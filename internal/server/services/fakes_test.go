package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/mpetrov/inkpad/internal/common"
	"github.com/mpetrov/inkpad/internal/dbx"
	"github.com/mpetrov/inkpad/internal/server/models"
	"github.com/mpetrov/inkpad/internal/server/repositories/folders"
	"github.com/mpetrov/inkpad/internal/server/repositories/notes"
	"github.com/mpetrov/inkpad/internal/server/repositories/profiles"
	"github.com/mpetrov/inkpad/internal/server/repositories/refreshtokens"
	"github.com/mpetrov/inkpad/internal/server/repositories/users"
)

// setupTxDB opens a throwaway sqlite handle so dbx.WithTx has something
// to begin transactions on. All data lives in the fakes below.
func setupTxDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// fakeRepoManager vends in-memory repositories. The DBTX handle is
// accepted and ignored so both direct and transactional paths share the
// same state.
type fakeRepoManager struct {
	users         *fakeUserRepo
	refreshTokens *fakeRefreshTokenRepo
	notes         *fakeNoteRepo
	folders       *fakeFolderRepo
	profiles      *fakeProfileRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:         &fakeUserRepo{byLogin: map[string]*models.User{}},
		refreshTokens: &fakeRefreshTokenRepo{tokens: map[string]*models.RefreshToken{}},
		notes:         &fakeNoteRepo{byID: map[string]*models.Note{}},
		folders:       &fakeFolderRepo{byID: map[string]*models.Folder{}},
		profiles:      &fakeProfileRepo{byUser: map[string]*models.Profile{}},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error     { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                  { return m.users }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository  { return m.refreshTokens }
func (m *fakeRepoManager) Notes(dbx.DBTX) notes.Repository                  { return m.notes }
func (m *fakeRepoManager) Folders(dbx.DBTX) folders.Repository              { return m.folders }
func (m *fakeRepoManager) Profiles(dbx.DBTX) profiles.Repository            { return m.profiles }

// ---------- users ----------

type fakeUserRepo struct {
	byLogin map[string]*models.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	if _, ok := r.byLogin[user.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	r.byLogin[user.UserName] = user
	return user, nil
}

func (r *fakeUserRepo) GetByLogin(_ context.Context, userName string) (*models.User, error) {
	user, ok := r.byLogin[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range r.byLogin {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

// ---------- refresh tokens ----------

type fakeRefreshTokenRepo struct {
	tokens map[string]*models.RefreshToken
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, userID, token string, validity time.Duration) error {
	r.tokens[token] = &models.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     token,
		Expires:   time.Now().Add(validity),
		CreatedAt: time.Now(),
	}
	return nil
}

func (r *fakeRefreshTokenRepo) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	item, ok := r.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return item, nil
}

func (r *fakeRefreshTokenRepo) Delete(_ context.Context, token string) error {
	delete(r.tokens, token)
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteForUser(_ context.Context, userID string) error {
	for k, v := range r.tokens {
		if v.UserID == userID {
			delete(r.tokens, k)
		}
	}
	return nil
}

// ---------- notes ----------

type fakeNoteRepo struct {
	byID     map[string]*models.Note
	detached []string // folder ids passed to DetachFolder, in call order
	deleted  []string // note ids passed to Delete, in call order
}

func (r *fakeNoteRepo) SelectForUser(_ context.Context, userID, _ string, _ bool) ([]*models.Note, error) {
	var result []*models.Note
	for _, n := range r.byID {
		if n.UserID == userID {
			result = append(result, n)
		}
	}
	return result, nil
}

func (r *fakeNoteRepo) GetByID(_ context.Context, userID, id string) (*models.Note, error) {
	n, ok := r.byID[id]
	if !ok || n.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return n, nil
}

func (r *fakeNoteRepo) Insert(_ context.Context, note *models.Note) (*models.Note, error) {
	stored := *note
	stored.ID = uuid.NewString()
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.byID[stored.ID] = &stored
	return &stored, nil
}

func (r *fakeNoteRepo) Patch(_ context.Context, userID, id string, patch *models.NotePatch) (*models.Note, error) {
	n, ok := r.byID[id]
	if !ok || n.UserID != userID {
		return nil, common.ErrorNotFound
	}
	if patch.Title != nil {
		n.Title = *patch.Title
	}
	if patch.Content != nil {
		n.Content = *patch.Content
	}
	if patch.Tags != nil {
		n.Tags = *patch.Tags
	}
	if patch.IsFavorite != nil {
		n.IsFavorite = *patch.IsFavorite
	}
	if patch.FolderID != nil {
		if *patch.FolderID == "" {
			n.FolderID = nil
		} else {
			v := *patch.FolderID
			n.FolderID = &v
		}
	}
	n.UpdatedAt = n.UpdatedAt.Add(time.Millisecond)
	return n, nil
}

func (r *fakeNoteRepo) Delete(_ context.Context, userID, id string) error {
	n, ok := r.byID[id]
	if !ok || n.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeNoteRepo) DetachFolder(_ context.Context, userID, folderID string) error {
	for _, n := range r.byID {
		if n.UserID == userID && n.FolderID != nil && *n.FolderID == folderID {
			n.FolderID = nil
		}
	}
	r.detached = append(r.detached, folderID)
	return nil
}

// ---------- folders ----------

type fakeFolderRepo struct {
	byID    map[string]*models.Folder
	deleted []string
}

func (r *fakeFolderRepo) SelectForUser(_ context.Context, userID string) ([]*models.Folder, error) {
	var result []*models.Folder
	for _, f := range r.byID {
		if f.UserID == userID {
			result = append(result, f)
		}
	}
	return result, nil
}

func (r *fakeFolderRepo) GetByID(_ context.Context, userID, id string) (*models.Folder, error) {
	f, ok := r.byID[id]
	if !ok || f.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return f, nil
}

func (r *fakeFolderRepo) Insert(_ context.Context, folder *models.Folder) (*models.Folder, error) {
	stored := *folder
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now()
	r.byID[stored.ID] = &stored
	return &stored, nil
}

func (r *fakeFolderRepo) Patch(_ context.Context, userID, id string, patch *models.FolderPatch) (*models.Folder, error) {
	f, ok := r.byID[id]
	if !ok || f.UserID != userID {
		return nil, common.ErrorNotFound
	}
	if patch.Name != nil {
		f.Name = *patch.Name
	}
	if patch.Color != nil {
		f.Color = patch.Color
	}
	return f, nil
}

func (r *fakeFolderRepo) Delete(_ context.Context, userID, id string) error {
	f, ok := r.byID[id]
	if !ok || f.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

// ---------- profiles ----------

type fakeProfileRepo struct {
	byUser map[string]*models.Profile
}

func (r *fakeProfileRepo) Get(_ context.Context, userID string) (*models.Profile, error) {
	p, ok := r.byUser[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (r *fakeProfileRepo) Upsert(_ context.Context, profile *models.Profile) (*models.Profile, error) {
	stored := *profile
	stored.UpdatedAt = time.Now()
	r.byUser[profile.UserID] = &stored
	return &stored, nil
}

// seedNote is a convenience for tests that need an existing note.
func seedNote(m *fakeRepoManager, userID string, title string, folderID *string) *models.Note {
	n := &models.Note{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Tags:      []string{},
		FolderID:  folderID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.notes.byID[n.ID] = n
	return n
}

func seedFolder(m *fakeRepoManager, userID, name string) *models.Folder {
	f := &models.Folder{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
	}
	m.folders.byID[f.ID] = f
	return f
}
