// Package profiles provides the PostgreSQL-backed repository for the
// per-user settings record. The row is one-to-one with users; the
// username is read from the users table.
package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mpetrov/inkpad/internal/common"
	"github.com/mpetrov/inkpad/internal/dbx"
	"github.com/mpetrov/inkpad/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (*models.Profile, error) {
	query := `
		SELECT p.user_id, p.display_name, u.username, p.avatar_key, p.theme,
		       p.autosave_interval, p.updated_at
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
	`

	item := &models.Profile{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&item.UserID, &item.DisplayName, &item.UserName, &item.AvatarKey,
		&item.Theme, &item.AutosaveInterval, &item.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

// Upsert writes all editable profile fields in one statement, creating
// the row if it does not exist yet (lazy creation on first access).
func (r *PostgresRepository) Upsert(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	query := `
		INSERT INTO profiles (user_id, display_name, avatar_key, theme, autosave_interval, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (user_id)
		DO UPDATE SET
			display_name = EXCLUDED.display_name,
			avatar_key = EXCLUDED.avatar_key,
			theme = EXCLUDED.theme,
			autosave_interval = EXCLUDED.autosave_interval,
			updated_at = now()
		RETURNING user_id, display_name, avatar_key, theme, autosave_interval, updated_at
	`

	item := &models.Profile{}
	err := r.db.QueryRowContext(ctx, query,
		profile.UserID, profile.DisplayName, profile.AvatarKey,
		profile.Theme, profile.AutosaveInterval).Scan(
		&item.UserID, &item.DisplayName, &item.AvatarKey, &item.Theme,
		&item.AutosaveInterval, &item.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	item.UserName = profile.UserName
	return item, nil
}
