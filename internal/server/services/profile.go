package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mpetrov/inkpad/internal/common"
	"github.com/mpetrov/inkpad/internal/server/models"
	"github.com/mpetrov/inkpad/internal/server/repositories/repomanager"
)

// ProfileService reads and writes the per-user settings record.
type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager) *ProfileService {
	return &ProfileService{db: db, repomanager: m}
}

// Get returns the user's profile, creating a default row on first access
// if none exists yet.
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	repo := s.repomanager.Profiles(s.db)

	profile, err := repo.Get(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error loading profile: %w", err)
	}

	if _, err := repo.Upsert(ctx, defaultProfile(userID)); err != nil {
		return nil, fmt.Errorf("error creating default profile: %w", err)
	}
	return repo.Get(ctx, userID)
}

// Save writes all editable fields in one request. The theme must be one
// of light/dark/system; the autosave interval is clamped to its bounds.
func (s *ProfileService) Save(ctx context.Context, userID string, profile *models.Profile) (*models.Profile, error) {
	if !common.ValidTheme(profile.Theme) {
		return nil, fmt.Errorf("%w: unknown theme %q", common.ErrorValidation, profile.Theme)
	}
	profile.UserID = userID
	profile.AutosaveInterval = common.ClampAutosaveSeconds(profile.AutosaveInterval)

	saved, err := s.repomanager.Profiles(s.db).Upsert(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("error saving profile: %w", err)
	}

	return s.decorate(ctx, saved)
}

// decorate fills the username from the users table when the upsert path
// could not produce it.
func (s *ProfileService) decorate(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if profile.UserName != "" {
		return profile, nil
	}
	user, err := s.repomanager.Users(s.db).GetByID(ctx, profile.UserID)
	if err != nil {
		return nil, fmt.Errorf("error resolving username: %w", err)
	}
	profile.UserName = user.UserName
	return profile, nil
}
