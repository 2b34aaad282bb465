// Package folders provides the PostgreSQL-backed repository for folder
// persistence, scoped by the owning user id.
package folders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mpetrov/inkpad/internal/common"
	"github.com/mpetrov/inkpad/internal/dbx"
	"github.com/mpetrov/inkpad/internal/server/models"
)

const folderColumns = `id, user_id, name, color, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanFolder(row interface{ Scan(...any) error }) (*models.Folder, error) {
	var item models.Folder
	err := row.Scan(&item.ID, &item.UserID, &item.Name, &item.Color, &item.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) SelectForUser(ctx context.Context, userID string) ([]*models.Folder, error) {
	query := fmt.Sprintf(`SELECT %s FROM folders WHERE user_id = $1 ORDER BY name ASC`, folderColumns)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select folders: %w", err)
	}
	defer rows.Close()

	var result []*models.Folder
	for rows.Next() {
		item, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*models.Folder, error) {
	query := fmt.Sprintf(`SELECT %s FROM folders WHERE user_id = $1 AND id = $2`, folderColumns)

	item, err := scanFolder(r.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, folder *models.Folder) (*models.Folder, error) {
	query := fmt.Sprintf(`
		INSERT INTO folders (user_id, name, color)
		VALUES ($1, $2, $3)
		RETURNING %s
	`, folderColumns)

	item, err := scanFolder(r.db.QueryRowContext(ctx, query,
		folder.UserID, folder.Name, folder.Color))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) Patch(ctx context.Context, userID, id string, patch *models.FolderPatch) (*models.Folder, error) {
	var set []string
	args := []any{userID, id}

	add := func(expr string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf(expr, len(args)))
	}

	if patch.Name != nil {
		add("name = $%d", *patch.Name)
	}
	if patch.Color != nil {
		add("color = $%d", *patch.Color)
	}

	if len(set) == 0 {
		return r.GetByID(ctx, userID, id)
	}

	query := fmt.Sprintf(`
		UPDATE folders SET %s
		WHERE user_id = $1 AND id = $2
		RETURNING %s
	`, strings.Join(set, ", "), folderColumns)

	item, err := scanFolder(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM folders WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
