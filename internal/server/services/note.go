package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mpetrov/inkpad/internal/common"
	"github.com/mpetrov/inkpad/internal/server/models"
	"github.com/mpetrov/inkpad/internal/server/repositories/repomanager"
)

// NoteService implements note CRUD on top of the repositories. All
// operations are scoped to the authenticated user.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager) *NoteService {
	return &NoteService{db: db, repomanager: m}
}

// List returns the user's notes, by default ordered by last update,
// newest first.
func (s *NoteService) List(ctx context.Context, userID, sortKey string, ascending bool) ([]*models.Note, error) {
	result, err := s.repomanager.Notes(s.db).SelectForUser(ctx, userID, sortKey, ascending)
	if err != nil {
		return nil, fmt.Errorf("error selecting notes: %w", err)
	}
	return result, nil
}

func (s *NoteService) Get(ctx context.Context, userID, id string) (*models.Note, error) {
	return s.repomanager.Notes(s.db).GetByID(ctx, userID, id)
}

// Create inserts a note. A blank title is replaced with the default
// placeholder; a folder reference must point at a folder the user owns.
func (s *NoteService) Create(ctx context.Context, userID string, note *models.Note) (*models.Note, error) {
	note.UserID = userID
	note.Title = strings.TrimSpace(note.Title)
	if note.Title == "" {
		note.Title = common.DefaultNoteTitle
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}

	if note.FolderID != nil {
		if err := s.checkFolderOwned(ctx, userID, *note.FolderID); err != nil {
			return nil, err
		}
	}

	created, err := s.repomanager.Notes(s.db).Insert(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("error creating note: %w", err)
	}
	return created, nil
}

// Update applies a partial update. Fields absent from the patch are left
// unchanged; the repository bumps updated_at.
func (s *NoteService) Update(ctx context.Context, userID, id string, patch *models.NotePatch) (*models.Note, error) {
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if trimmed == "" {
			trimmed = common.DefaultNoteTitle
		}
		patch.Title = &trimmed
	}

	if patch.FolderID != nil && *patch.FolderID != "" {
		if err := s.checkFolderOwned(ctx, userID, *patch.FolderID); err != nil {
			return nil, err
		}
	}

	updated, err := s.repomanager.Notes(s.db).Patch(ctx, userID, id, patch)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating note: %w", err)
	}
	return updated, nil
}

func (s *NoteService) Delete(ctx context.Context, userID, id string) error {
	return s.repomanager.Notes(s.db).Delete(ctx, userID, id)
}

func (s *NoteService) checkFolderOwned(ctx context.Context, userID, folderID string) error {
	_, err := s.repomanager.Folders(s.db).GetByID(ctx, userID, folderID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("%w: unknown folder", common.ErrorValidation)
		}
		return err
	}
	return nil
}
