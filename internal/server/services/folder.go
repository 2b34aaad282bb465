package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mpetrov/inkpad/internal/common"
	"github.com/mpetrov/inkpad/internal/dbx"
	"github.com/mpetrov/inkpad/internal/server/models"
	"github.com/mpetrov/inkpad/internal/server/repositories/repomanager"
)

// FolderService implements folder CRUD. Deleting a folder detaches the
// folder reference on dependent notes; it never deletes the notes.
type FolderService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewFolderService(db *sql.DB, m repomanager.RepositoryManager) *FolderService {
	return &FolderService{db: db, repomanager: m}
}

func (s *FolderService) List(ctx context.Context, userID string) ([]*models.Folder, error) {
	result, err := s.repomanager.Folders(s.db).SelectForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error selecting folders: %w", err)
	}
	return result, nil
}

func (s *FolderService) Create(ctx context.Context, userID string, folder *models.Folder) (*models.Folder, error) {
	folder.UserID = userID
	folder.Name = strings.TrimSpace(folder.Name)
	if folder.Name == "" {
		return nil, fmt.Errorf("%w: folder name is required", common.ErrorValidation)
	}

	created, err := s.repomanager.Folders(s.db).Insert(ctx, folder)
	if err != nil {
		return nil, fmt.Errorf("error creating folder: %w", err)
	}
	return created, nil
}

func (s *FolderService) Update(ctx context.Context, userID, id string, patch *models.FolderPatch) (*models.Folder, error) {
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: folder name is required", common.ErrorValidation)
		}
		patch.Name = &trimmed
	}

	updated, err := s.repomanager.Folders(s.db).Patch(ctx, userID, id, patch)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a folder and nulls the folder reference on the user's
// dependent notes in the same transaction.
func (s *FolderService) Delete(ctx context.Context, userID, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Notes(tx).DetachFolder(ctx, userID, id); err != nil {
			return err
		}
		return s.repomanager.Folders(tx).Delete(ctx, userID, id)
	})
}
