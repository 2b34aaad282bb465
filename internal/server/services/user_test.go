package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpetrov/inkpad/internal/common"
	"github.com/mpetrov/inkpad/internal/server/config"
)

func newUserService(t *testing.T, m *fakeRepoManager) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                    "test-secret",
		AccessTokenValidityDuration:  time.Minute,
		RefreshTokenValidityDuration: time.Hour,
	}
	return NewUserService(setupTxDB(t), m, cfg)
}

func TestRegister_CreatesUserProfileAndTokens(t *testing.T) {
	m := newFakeRepoManager()
	svc := newUserService(t, m)

	user, pair, err := svc.Register(context.Background(), "alice", "password123")
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotEmpty(t, user.ID)
	require.NotNil(t, pair)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	// Registration owns the default-profile side effect.
	profile, err := m.profiles.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, common.ThemeSystem, profile.Theme)
	assert.Equal(t, common.AutosaveDefaultSeconds, profile.AutosaveInterval)
}

func TestRegister_Validation(t *testing.T) {
	m := newFakeRepoManager()
	svc := newUserService(t, m)

	_, _, err := svc.Register(context.Background(), "ab", "password123")
	require.ErrorIs(t, err, common.ErrorValidation)

	_, _, err = svc.Register(context.Background(), "alice", "short")
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	m := newFakeRepoManager()
	svc := newUserService(t, m)

	_, _, err := svc.Register(context.Background(), "alice", "password123")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "alice", "password456")
	require.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestLogin_GoodAndBadCredentials(t *testing.T) {
	m := newFakeRepoManager()
	svc := newUserService(t, m)

	_, _, err := svc.Register(context.Background(), "alice", "password123")
	require.NoError(t, err)

	pair, err := svc.Login(context.Background(), "alice", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)

	_, err = svc.Login(context.Background(), "alice", "wrongpassword")
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = svc.Login(context.Background(), "nobody", "password123")
	require.ErrorIs(t, err, common.ErrorUnauthorized,
		"unknown user must be indistinguishable from bad password")
}

func TestRefreshToken_RotatesToken(t *testing.T) {
	m := newFakeRepoManager()
	svc := newUserService(t, m)

	_, pair, err := svc.Register(context.Background(), "alice", "password123")
	require.NoError(t, err)

	fresh, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, fresh.RefreshToken)

	// The old token is gone after rotation.
	_, err = svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestRefreshToken_Expired(t *testing.T) {
	m := newFakeRepoManager()
	svc := newUserService(t, m)

	_, pair, err := svc.Register(context.Background(), "alice", "password123")
	require.NoError(t, err)

	m.refreshTokens.tokens[pair.RefreshToken].Expires = time.Now().Add(-time.Minute)

	_, err = svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.ErrorIs(t, err, common.ErrRefreshTokenExpired)
}

func TestVerifyAccessToken(t *testing.T) {
	m := newFakeRepoManager()
	svc := newUserService(t, m)

	user, pair, err := svc.Register(context.Background(), "alice", "password123")
	require.NoError(t, err)

	userID, err := svc.VerifyAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)

	_, err = svc.VerifyAccessToken("garbage")
	require.Error(t, err)
}

func TestLogout_RevokesToken(t *testing.T) {
	m := newFakeRepoManager()
	svc := newUserService(t, m)

	_, pair, err := svc.Register(context.Background(), "alice", "password123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), pair.RefreshToken))

	_, err = svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}
