// Package cache persists the last fetched server state in a local
// sqlite database so the CLI can show notes while the server is
// unreachable. Snapshots are keyed by user name.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/mpetrov/inkpad/internal/client/migrations"
	"github.com/mpetrov/inkpad/internal/client/models"
	"github.com/mpetrov/inkpad/internal/common"
	"github.com/mpetrov/inkpad/internal/dbx"
)

type Cache struct {
	db *sql.DB
}

// Open opens (or creates) the snapshot database at path and applies
// schema migrations.
func Open(ctx context.Context, path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Cache{db: db}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// SaveSnapshot replaces the stored notes and folders for the user in a
// single transaction.
func (c *Cache) SaveSnapshot(ctx context.Context, userName string, notes []models.Note, folders []models.Folder) error {
	return dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `delete from notes where user_name = ?`, userName); err != nil {
			return fmt.Errorf("failed to clear notes: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `delete from folders where user_name = ?`, userName); err != nil {
			return fmt.Errorf("failed to clear folders: %w", err)
		}

		for i := range notes {
			n := &notes[i]
			tags, err := json.Marshal(n.Tags)
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx, `
				insert into notes (id, user_name, title, content, tags, is_favorite, folder_id, created_at, updated_at)
				values (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				n.ID, userName, n.Title, n.Content, string(tags), boolToInt(n.IsFavorite), n.FolderID,
				n.CreatedAt.Format(time.RFC3339Nano), n.UpdatedAt.Format(time.RFC3339Nano))
			if err != nil {
				return fmt.Errorf("failed to insert note: %w", err)
			}
		}

		for i := range folders {
			f := &folders[i]
			_, err := tx.ExecContext(ctx, `
				insert into folders (id, user_name, name, color, created_at)
				values (?, ?, ?, ?, ?)`,
				f.ID, userName, f.Name, f.Color, f.CreatedAt.Format(time.RFC3339Nano))
			if err != nil {
				return fmt.Errorf("failed to insert folder: %w", err)
			}
		}
		return nil
	})
}

// LoadSnapshot returns the stored notes and folders for the user.
func (c *Cache) LoadSnapshot(ctx context.Context, userName string) ([]models.Note, []models.Folder, error) {
	rows, err := c.db.QueryContext(ctx, `
		select id, title, content, tags, is_favorite, folder_id, created_at, updated_at
		from notes where user_name = ?`, userName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		var tags string
		var favorite int
		var createdAt, updatedAt string
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &tags, &favorite, &n.FolderID, &createdAt, &updatedAt); err != nil {
			return nil, nil, err
		}
		if err := json.Unmarshal([]byte(tags), &n.Tags); err != nil {
			return nil, nil, err
		}
		n.IsFavorite = favorite != 0
		if n.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, nil, err
		}
		if n.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
			return nil, nil, err
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	folderRows, err := c.db.QueryContext(ctx, `
		select id, name, color, created_at from folders where user_name = ?`, userName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to select folders: %w", err)
	}
	defer folderRows.Close()

	var folders []models.Folder
	for folderRows.Next() {
		var f models.Folder
		var createdAt string
		if err := folderRows.Scan(&f.ID, &f.Name, &f.Color, &createdAt); err != nil {
			return nil, nil, err
		}
		if f.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, nil, err
		}
		folders = append(folders, f)
	}
	if err := folderRows.Err(); err != nil {
		return nil, nil, err
	}

	return notes, folders, nil
}

// SaveProfile stores the user's profile as a JSON payload.
func (c *Cache) SaveProfile(ctx context.Context, userName string, profile *models.Profile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	_, err = c.db.ExecContext(ctx, `
		insert into profiles (user_name, payload) values (?, ?)
		on conflict(user_name) do update set payload = excluded.payload`,
		userName, string(payload))
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// LoadProfile returns the stored profile, or common.ErrorNotFound if
// none has been saved yet.
func (c *Cache) LoadProfile(ctx context.Context, userName string) (*models.Profile, error) {
	row := c.db.QueryRowContext(ctx, `select payload from profiles where user_name = ?`, userName)

	var payload string
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	profile := &models.Profile{}
	if err := json.Unmarshal([]byte(payload), profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
