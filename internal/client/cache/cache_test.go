package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/mpetrov/inkpad/internal/client/models"
	"github.com/mpetrov/inkpad/internal/common"
)

func setupCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(context.Background(), "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	c.db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()

	folderID := "folder-1"
	now := time.Now().UTC().Truncate(time.Millisecond)
	notes := []models.Note{
		{ID: "n1", Title: "First", Content: "alpha", Tags: []string{"work", "urgent"},
			IsFavorite: true, FolderID: &folderID, CreatedAt: now, UpdatedAt: now},
		{ID: "n2", Title: "Second", Content: "beta", Tags: []string{},
			CreatedAt: now, UpdatedAt: now.Add(time.Minute)},
	}
	folders := []models.Folder{{ID: folderID, Name: "Work", CreatedAt: now}}

	require.NoError(t, c.SaveSnapshot(ctx, "alice", notes, folders))

	gotNotes, gotFolders, err := c.LoadSnapshot(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, gotNotes, 2)
	require.Len(t, gotFolders, 1)

	byID := map[string]models.Note{}
	for _, n := range gotNotes {
		byID[n.ID] = n
	}
	assert.Equal(t, []string{"work", "urgent"}, byID["n1"].Tags)
	assert.True(t, byID["n1"].IsFavorite)
	require.NotNil(t, byID["n1"].FolderID)
	assert.Equal(t, folderID, *byID["n1"].FolderID)
	assert.True(t, byID["n2"].UpdatedAt.After(byID["n2"].CreatedAt))
}

func TestSnapshotReplacesPreviousState(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()
	now := time.Now().UTC()

	first := []models.Note{{ID: "n1", Title: "Old", Tags: []string{}, CreatedAt: now, UpdatedAt: now}}
	require.NoError(t, c.SaveSnapshot(ctx, "alice", first, nil))

	second := []models.Note{{ID: "n2", Title: "New", Tags: []string{}, CreatedAt: now, UpdatedAt: now}}
	require.NoError(t, c.SaveSnapshot(ctx, "alice", second, nil))

	notes, _, err := c.LoadSnapshot(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "n2", notes[0].ID)
}

func TestSnapshotIsolatedPerUser(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, c.SaveSnapshot(ctx, "alice",
		[]models.Note{{ID: "n1", Title: "Hers", Tags: []string{}, CreatedAt: now, UpdatedAt: now}}, nil))

	notes, _, err := c.LoadSnapshot(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestProfileRoundTrip(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()

	_, err := c.LoadProfile(ctx, "alice")
	require.ErrorIs(t, err, common.ErrorNotFound)

	profile := &models.Profile{DisplayName: "Alice", Theme: common.ThemeDark, AutosaveInterval: 60}
	require.NoError(t, c.SaveProfile(ctx, "alice", profile))

	got, err := c.LoadProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, profile, got)

	profile.Theme = common.ThemeLight
	require.NoError(t, c.SaveProfile(ctx, "alice", profile))
	got, err = c.LoadProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, common.ThemeLight, got.Theme)
}
