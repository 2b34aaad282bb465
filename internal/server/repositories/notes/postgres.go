// Package notes provides the PostgreSQL-backed repository for note
// persistence. Every query is scoped by the owning user id; a row owned
// by someone else is indistinguishable from a missing row.
package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/mpetrov/inkpad/internal/common"
	"github.com/mpetrov/inkpad/internal/dbx"
	"github.com/mpetrov/inkpad/internal/server/models"
)

const noteColumns = `id, user_id, title, content, tags, is_favorite, folder_id, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanNote(row interface{ Scan(...any) error }) (*models.Note, error) {
	var (
		item models.Note
		tags pq.StringArray
	)
	err := row.Scan(
		&item.ID, &item.UserID, &item.Title, &item.Content, &tags,
		&item.IsFavorite, &item.FolderID, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.Tags = []string(tags)
	return &item, nil
}

// SelectForUser returns all notes owned by userID ordered by sortKey.
// Unknown sort keys fall back to updated_at descending.
func (r *PostgresRepository) SelectForUser(ctx context.Context, userID, sortKey string, ascending bool) ([]*models.Note, error) {
	orderBy := "updated_at DESC"
	switch sortKey {
	case SortTitle:
		orderBy = "title ASC"
		if !ascending {
			orderBy = "title DESC"
		}
	case SortUpdatedAt, "":
		if ascending {
			orderBy = "updated_at ASC"
		}
	}

	query := fmt.Sprintf(`SELECT %s FROM notes WHERE user_id = $1 ORDER BY %s`, noteColumns, orderBy)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	var result []*models.Note
	for rows.Next() {
		item, err := scanNote(rows)
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

func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*models.Note, error) {
	query := fmt.Sprintf(`SELECT %s FROM notes WHERE user_id = $1 AND id = $2`, noteColumns)

	item, err := scanNote(r.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

// Insert creates a note row and returns it with the server-assigned id
// and timestamps (created_at == updated_at on insert).
func (r *PostgresRepository) Insert(ctx context.Context, note *models.Note) (*models.Note, error) {
	query := fmt.Sprintf(`
		INSERT INTO notes (user_id, title, content, tags, is_favorite, folder_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s
	`, noteColumns)

	item, err := scanNote(r.db.QueryRowContext(ctx, query,
		note.UserID, note.Title, note.Content, pq.StringArray(note.Tags),
		note.IsFavorite, note.FolderID))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

// Patch updates only the named columns of a note and bumps updated_at.
// A patch with no fields set still bumps updated_at, matching the
// "update is a write" semantics of the HTTP layer. Missing or foreign
// rows yield common.ErrorNotFound.
func (r *PostgresRepository) Patch(ctx context.Context, userID, id string, patch *models.NotePatch) (*models.Note, error) {
	set := []string{"updated_at = now()"}
	args := []any{userID, id}

	add := func(expr string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf(expr, len(args)))
	}

	if patch.Title != nil {
		add("title = $%d", *patch.Title)
	}
	if patch.Content != nil {
		add("content = $%d", *patch.Content)
	}
	if patch.Tags != nil {
		add("tags = $%d", pq.StringArray(*patch.Tags))
	}
	if patch.IsFavorite != nil {
		add("is_favorite = $%d", *patch.IsFavorite)
	}
	if patch.FolderID != nil {
		if *patch.FolderID == "" {
			set = append(set, "folder_id = NULL")
		} else {
			add("folder_id = $%d", *patch.FolderID)
		}
	}

	query := fmt.Sprintf(`
		UPDATE notes SET %s
		WHERE user_id = $1 AND id = $2
		RETURNING %s
	`, strings.Join(set, ", "), noteColumns)

	item, err := scanNote(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE user_id = $1 AND id = $2`, userID, id)
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

// DetachFolder nulls the folder reference on every note of userID that
// points at folderID. Used when a folder is deleted: dependent notes
// are detached, never cascaded.
func (r *PostgresRepository) DetachFolder(ctx context.Context, userID, folderID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notes SET folder_id = NULL WHERE user_id = $1 AND folder_id = $2`,
		userID, folderID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
