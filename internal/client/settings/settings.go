// Package settings drives the profile panel: loading the user's
// profile, saving all editable fields in one request, and applying the
// theme through an injected hook.
package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/mpetrov/inkpad/internal/client/models"
	"github.com/mpetrov/inkpad/internal/client/remote"
	"github.com/mpetrov/inkpad/internal/common"
)

// ApplyThemeFunc is called with the confirmed theme after a successful
// save, so the UI can switch immediately.
type ApplyThemeFunc func(theme string)

// ProfileCache persists the last confirmed profile locally. The cache
// package implements it; a nil cache disables persistence.
type ProfileCache interface {
	SaveProfile(ctx context.Context, userName string, profile *models.Profile) error
	LoadProfile(ctx context.Context, userName string) (*models.Profile, error)
}

type Manager struct {
	remote     remote.Client
	cache      ProfileCache
	userName   string
	applyTheme ApplyThemeFunc
	profile    *models.Profile
}

func NewManager(client remote.Client, cache ProfileCache, userName string, applyTheme ApplyThemeFunc) *Manager {
	if applyTheme == nil {
		applyTheme = func(string) {}
	}
	return &Manager{remote: client, cache: cache, userName: userName, applyTheme: applyTheme}
}

// Load fetches the profile from the server. The server creates the
// default profile lazily, so a fresh account still gets a result. When
// the server is unreachable the last cached profile is returned instead.
func (m *Manager) Load(ctx context.Context) (*models.Profile, error) {
	profile, err := m.remote.GetProfile(ctx)
	if err != nil {
		if m.cache != nil && errors.Is(err, remote.ErrUnavailable) {
			if cached, cacheErr := m.cache.LoadProfile(ctx, m.userName); cacheErr == nil {
				m.profile = cached
				return cached, nil
			}
		}
		return nil, fmt.Errorf("error loading profile: %w", err)
	}
	m.profile = profile
	m.cacheProfile(ctx, profile)
	return profile, nil
}

// cacheProfile persists the confirmed profile best-effort.
func (m *Manager) cacheProfile(ctx context.Context, profile *models.Profile) {
	if m.cache == nil {
		return
	}
	_ = m.cache.SaveProfile(ctx, m.userName, profile)
}

// Profile returns the last loaded or saved profile, if any.
func (m *Manager) Profile() *models.Profile {
	return m.profile
}

// Save validates locally, writes every editable field in one request,
// and applies the confirmed theme.
func (m *Manager) Save(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if !common.ValidTheme(profile.Theme) {
		return nil, fmt.Errorf("%w: unknown theme %q", common.ErrorValidation, profile.Theme)
	}
	profile.AutosaveInterval = common.ClampAutosaveSeconds(profile.AutosaveInterval)

	saved, err := m.remote.SaveProfile(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("error saving profile: %w", err)
	}

	m.profile = saved
	m.cacheProfile(ctx, saved)
	m.applyTheme(saved.Theme)
	return saved, nil
}

// SignOut invalidates the session on the server and clears the loaded
// profile. The local snapshot cache is left intact.
func (m *Manager) SignOut(ctx context.Context) error {
	m.profile = nil
	return m.remote.Logout(ctx)
}
