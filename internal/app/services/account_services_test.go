package services

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/diasporahub/internal/app/models"
	"github.com/yigit/diasporahub/internal/app/models/dto"
	"github.com/yigit/diasporahub/internal/pkg/apperrors"
	"github.com/yigit/diasporahub/internal/pkg/auth"
	"github.com/yigit/diasporahub/internal/pkg/filestorage"
)

const onePixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

type fakeRemoteProfiles struct {
	mu       sync.Mutex
	profiles map[string]models.RemoteProfile
	fail     error
}

func newFakeRemoteProfiles() *fakeRemoteProfiles {
	return &fakeRemoteProfiles{profiles: map[string]models.RemoteProfile{}}
}

func (f *fakeRemoteProfiles) Get(_ context.Context, userID string) (*models.RemoteProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	return &p, nil
}

func (f *fakeRemoteProfiles) Upsert(_ context.Context, p *models.RemoteProfile) (*models.RemoteProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	for id, other := range f.profiles {
		if id != p.UserID && p.Handle != nil && other.Handle != nil && *p.Handle == *other.Handle {
			return nil, apperrors.ErrHandleTaken
		}
	}
	saved := *p
	saved.UpdatedAt = time.Now().UTC()
	f.profiles[p.UserID] = saved
	return &saved, nil
}

func TestProfileServiceWithoutBackend(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(newTestRepos(t).ProfileRepository, nil, nil, zerolog.Nop())

	p, err := svc.Update(ctx, &dto.UpdateProfileRequest{DisplayName: " Ama ", Interests: []string{"Jazz", "jazz", " ", "Football"}})
	require.NoError(t, err)
	assert.Equal(t, "Ama", p.DisplayName)
	assert.Equal(t, []string{"Jazz", "Football"}, p.Interests)

	_, err = svc.GetRemote(ctx, "u1")
	assert.ErrorIs(t, err, apperrors.ErrBackendUnavailable)
	_, err = svc.Sync(ctx, "u1")
	assert.ErrorIs(t, err, apperrors.ErrBackendUnavailable)
}

func TestProfileServiceUpsertRemote(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemoteProfiles()
	svc := NewProfileService(newTestRepos(t).ProfileRepository, remote, nil, zerolog.Nop())

	saved, err := svc.UpsertRemote(ctx, "u1", &dto.RemoteProfileRequest{DisplayName: "Ama", Handle: "Ama_K", FirstName: " "})
	require.NoError(t, err)
	require.NotNil(t, saved.Handle)
	assert.Equal(t, "ama_k", *saved.Handle)
	assert.Nil(t, saved.FirstName)

	_, err = svc.UpsertRemote(ctx, "u2", &dto.RemoteProfileRequest{DisplayName: "Other", Handle: "ama_k"})
	assert.ErrorIs(t, err, apperrors.ErrHandleTaken)

	_, err = svc.UpsertRemote(ctx, "u3", &dto.RemoteProfileRequest{DisplayName: "  "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	_, err = remote.Get(ctx, "u3")
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
}

func TestProfileServiceSyncStoresAvatar(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	remote := newFakeRemoteProfiles()
	storage, err := filestorage.NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)
	svc := NewProfileService(repos.ProfileRepository, remote, storage, zerolog.Nop())

	_, err = svc.Update(ctx, &dto.UpdateProfileRequest{
		DisplayName:   "Ama",
		Interests:     []string{"Jazz"},
		AvatarDataURL: "data:image/png;base64," + onePixelPNG,
	})
	require.NoError(t, err)

	synced, err := svc.Sync(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ama", synced.DisplayName)
	assert.Equal(t, []string{"Jazz"}, synced.Interests)
	require.NotNil(t, synced.AvatarURL)
	assert.Regexp(t, `^http://localhost:8080/uploads/avatars/[0-9a-f-]{36}\.png$`, *synced.AvatarURL)

	_, err = os.Stat(storage.GetFullPath(*synced.AvatarURL))
	assert.NoError(t, err)

	local, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,"+onePixelPNG, local.AvatarDataURL)
}

func TestProfileServiceSyncReplacesAvatar(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	storage, err := filestorage.NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)
	svc := NewProfileService(repos.ProfileRepository, newFakeRemoteProfiles(), storage, zerolog.Nop())

	_, err = svc.Update(ctx, &dto.UpdateProfileRequest{DisplayName: "Ama", AvatarDataURL: "data:image/png;base64," + onePixelPNG})
	require.NoError(t, err)

	first, err := svc.Sync(ctx, "u1")
	require.NoError(t, err)
	second, err := svc.Sync(ctx, "u1")
	require.NoError(t, err)
	require.NotEqual(t, *first.AvatarURL, *second.AvatarURL)

	_, err = os.Stat(storage.GetFullPath(*first.AvatarURL))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(storage.GetFullPath(*second.AvatarURL))
	assert.NoError(t, err)
}

func TestProfileServiceSyncFailureRemovesAvatar(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	remote := newFakeRemoteProfiles()
	remote.fail = assert.AnError
	storage, err := filestorage.NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)
	svc := NewProfileService(repos.ProfileRepository, remote, storage, zerolog.Nop())

	_, err = svc.Update(ctx, &dto.UpdateProfileRequest{DisplayName: "Ama", AvatarDataURL: "data:image/png;base64," + onePixelPNG})
	require.NoError(t, err)

	_, err = svc.Sync(ctx, "u1")
	require.ErrorIs(t, err, assert.AnError)

	entries, err := os.ReadDir(filepath.Dir(storage.GetFullPath("uploads/avatars/x.png")))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

type fakeUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[string]*models.User{}}
}

func (f *fakeUsers) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, apperrors.ErrResourceNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	out := *u
	return &out, nil
}

type fakeTokens struct {
	mu     sync.Mutex
	tokens map[string]*models.AuthToken
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{tokens: map[string]*models.AuthToken{}}
}

func (f *fakeTokens) Create(_ context.Context, token *models.AuthToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tokens[token.Token]; ok {
		return apperrors.ErrTokenInvalid
	}
	stored := *token
	f.tokens[token.Token] = &stored
	return nil
}

func (f *fakeTokens) Consume(_ context.Context, value string, kind models.TokenKind) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tok, ok := f.tokens[value]
	switch {
	case !ok || tok.Kind != kind:
		return "", apperrors.ErrTokenNotFound
	case tok.Revoked:
		return "", apperrors.ErrTokenRevoked
	case time.Now().After(tok.ExpiresAt):
		return "", apperrors.ErrTokenExpired
	}
	tok.Revoked = true
	return tok.UserID, nil
}

func (f *fakeTokens) Revoke(_ context.Context, value string, kind models.TokenKind) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	tok, ok := f.tokens[value]
	switch {
	case !ok || tok.Kind != kind:
		return apperrors.ErrTokenNotFound
	case tok.Revoked:
		return apperrors.ErrTokenRevoked
	}
	tok.Revoked = true
	return nil
}

func newTestAuthService() (*AuthService, *auth.JWTService) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		ExchangeCodeExp: 5 * time.Minute,
		TokenIssuer:     "diasporahub.test",
	})
	return NewAuthService(newFakeUsers(), newFakeTokens(), jwtService, zerolog.Nop()), jwtService
}

func TestAuthSignUpAndSignIn(t *testing.T) {
	ctx := context.Background()
	svc, jwtService := newTestAuthService()

	signedUp, err := svc.SignUp(ctx, &dto.SignUpRequest{Email: "Ama@Example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "ama@example.com", signedUp.User.Email)
	assert.Equal(t, "Bearer", signedUp.Token.TokenType)
	assert.NotEmpty(t, signedUp.Token.RefreshToken)

	claims, err := jwtService.ValidateToken(signedUp.Token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, signedUp.User.ID, claims.UserID)

	_, err = svc.SignUp(ctx, &dto.SignUpRequest{Email: "ama@example.com", Password: "password123"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	_, err = svc.SignIn(ctx, &dto.SignInRequest{Email: "ama@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = svc.SignIn(ctx, &dto.SignInRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	signedIn, err := svc.SignIn(ctx, &dto.SignInRequest{Email: " AMA@example.com ", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, signedUp.User.ID, signedIn.User.ID)

	me, err := svc.Me(ctx, signedIn.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "ama@example.com", me.Email)
}

func TestAuthRefreshRotatesToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService()

	session, err := svc.SignUp(ctx, &dto.SignUpRequest{Email: "kojo@example.com", Password: "password123"})
	require.NoError(t, err)

	rotated, err := svc.Refresh(ctx, session.Token.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, session.Token.RefreshToken, rotated.Token.RefreshToken)

	_, err = svc.Refresh(ctx, session.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	require.NoError(t, svc.SignOut(ctx, rotated.Token.RefreshToken))
	_, err = svc.Refresh(ctx, rotated.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	assert.ErrorIs(t, svc.SignOut(ctx, "unknown"), apperrors.ErrTokenNotFound)
}

func TestAuthRedirectCodeIsSingleUse(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService()

	_, err := svc.SignUp(ctx, &dto.SignUpRequest{Email: "efua@example.com", Password: "password123"})
	require.NoError(t, err)

	code, err := svc.SignInWithRedirect(ctx, &dto.SignInRequest{Email: "efua@example.com", Password: "password123", Redirect: true})
	require.NoError(t, err)
	assert.Equal(t, int64(300), code.ExpiresIn)

	_, err = svc.Refresh(ctx, code.Code)
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)

	session, err := svc.ExchangeCode(ctx, code.Code)
	require.NoError(t, err)
	assert.Equal(t, "efua@example.com", session.User.Email)

	_, err = svc.ExchangeCode(ctx, code.Code)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestAuthSignOutOnlyRevokesLiveRefreshTokens(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService()

	session, err := svc.SignUp(ctx, &dto.SignUpRequest{Email: "kojo@example.com", Password: "password123"})
	require.NoError(t, err)
	code, err := svc.SignInWithRedirect(ctx, &dto.SignInRequest{Email: "kojo@example.com", Password: "password123", Redirect: true})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.SignOut(ctx, code.Code), apperrors.ErrTokenNotFound)
	_, err = svc.ExchangeCode(ctx, code.Code)
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx, session.Token.RefreshToken))
	assert.ErrorIs(t, svc.SignOut(ctx, session.Token.RefreshToken), apperrors.ErrTokenRevoked)
}
