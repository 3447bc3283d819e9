package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/diasporahub/internal/app/models"
	"github.com/yigit/diasporahub/internal/app/models/dto"
	"github.com/yigit/diasporahub/internal/app/repositories"
	"github.com/yigit/diasporahub/internal/pkg/apperrors"
	"github.com/yigit/diasporahub/internal/pkg/filestorage"
	"github.com/yigit/diasporahub/internal/pkg/helpers"
)

const avatarSubPath = "avatars"

type remoteProfileStore interface {
	Get(ctx context.Context, userID string) (*models.RemoteProfile, error)
	Upsert(ctx context.Context, p *models.RemoteProfile) (*models.RemoteProfile, error)
}

// ProfileService defines the interface for local and remote profile operations
type ProfileService interface {
	Get(ctx context.Context) (models.Profile, error)
	Update(ctx context.Context, req *dto.UpdateProfileRequest) (models.Profile, error)

	GetRemote(ctx context.Context, userID string) (*models.RemoteProfile, error)
	UpsertRemote(ctx context.Context, userID string, req *dto.RemoteProfileRequest) (*models.RemoteProfile, error)
	Sync(ctx context.Context, userID string) (*models.RemoteProfile, error)
}

type profileServiceImpl struct {
	profileRepo *repositories.ProfileRepository
	remote      remoteProfileStore
	fileStorage filestorage.FileStorage
	logger      zerolog.Logger
}

// NewProfileService creates a new ProfileService. remote is nil when the
// hosted backend is disabled.
func NewProfileService(
	profileRepo *repositories.ProfileRepository,
	remote remoteProfileStore,
	fileStorage filestorage.FileStorage,
	logger zerolog.Logger,
) ProfileService {
	return &profileServiceImpl{
		profileRepo: profileRepo,
		remote:      remote,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

func (s *profileServiceImpl) Get(ctx context.Context) (models.Profile, error) {
	return s.profileRepo.Get(ctx)
}

// Update replaces the on-device profile
func (s *profileServiceImpl) Update(ctx context.Context, req *dto.UpdateProfileRequest) (models.Profile, error) {
	profile, err := s.profileRepo.Save(ctx, models.Profile{
		DisplayName:   strings.TrimSpace(req.DisplayName),
		Bio:           strings.TrimSpace(req.Bio),
		Interests:     cleanInterests(req.Interests),
		AvatarDataURL: req.AvatarDataURL,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to save profile")
		return models.Profile{}, fmt.Errorf("error saving profile: %w", err)
	}
	return profile, nil
}

func (s *profileServiceImpl) GetRemote(ctx context.Context, userID string) (*models.RemoteProfile, error) {
	if s.remote == nil {
		return nil, apperrors.ErrBackendUnavailable
	}
	return s.remote.Get(ctx, userID)
}

// UpsertRemote writes the backend profile row of userID
func (s *profileServiceImpl) UpsertRemote(ctx context.Context, userID string, req *dto.RemoteProfileRequest) (*models.RemoteProfile, error) {
	if s.remote == nil {
		return nil, apperrors.ErrBackendUnavailable
	}

	displayName, err := requireText("displayName", req.DisplayName)
	if err != nil {
		return nil, err
	}

	handle := strings.ToLower(strings.TrimSpace(req.Handle))
	saved, err := s.remote.Upsert(ctx, &models.RemoteProfile{
		UserID:             userID,
		DisplayName:        displayName,
		AvatarURL:          helpers.NilIfBlank(req.AvatarURL),
		FirstName:          helpers.NilIfBlank(req.FirstName),
		LastName:           helpers.NilIfBlank(req.LastName),
		Handle:             helpers.NilIfBlank(handle),
		Interests:          cleanInterests(req.Interests),
		OnboardingComplete: req.OnboardingComplete,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("userID", userID).Msg("Failed to upsert remote profile")
		return nil, err
	}
	return saved, nil
}

// Sync pushes the on-device profile to the backend. A data URL avatar is
// stored as a file and its URL is written instead. The local profile is
// never modified.
func (s *profileServiceImpl) Sync(ctx context.Context, userID string) (*models.RemoteProfile, error) {
	if s.remote == nil {
		return nil, apperrors.ErrBackendUnavailable
	}

	local, err := s.profileRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading local profile: %w", err)
	}

	next := &models.RemoteProfile{UserID: userID}
	var previousAvatar string
	existing, err := s.remote.Get(ctx, userID)
	switch {
	case err == nil:
		*next = *existing
		previousAvatar = helpers.Deref(existing.AvatarURL)
	case errors.Is(err, apperrors.ErrProfileNotFound):
	default:
		s.logger.Error().Err(err).Str("userID", userID).Msg("Failed to read remote profile for sync")
		return nil, err
	}

	next.UserID = userID
	if name := strings.TrimSpace(local.DisplayName); name != "" {
		next.DisplayName = name
	}
	next.Interests = cleanInterests(local.Interests)

	var storedAvatar string
	if local.AvatarDataURL != "" {
		if s.fileStorage == nil {
			return nil, apperrors.ErrBackendUnavailable
		}
		storedAvatar, err = s.fileStorage.SaveDataURL(local.AvatarDataURL, avatarSubPath)
		if err != nil {
			s.logger.Error().Err(err).Str("userID", userID).Msg("Failed to store avatar")
			return nil, err
		}
		next.AvatarURL = &storedAvatar
	}

	saved, err := s.remote.Upsert(ctx, next)
	if err != nil {
		s.logger.Error().Err(err).Str("userID", userID).Msg("Failed to sync profile")
		if storedAvatar != "" {
			_ = s.fileStorage.DeleteFile(storedAvatar)
		}
		return nil, err
	}

	// Only files this service stored itself are removed
	if storedAvatar != "" && previousAvatar != "" && previousAvatar != storedAvatar &&
		path.Dir(previousAvatar) == path.Dir(storedAvatar) {
		if err := s.fileStorage.DeleteFile(previousAvatar); err != nil {
			s.logger.Warn().Err(err).Str("userID", userID).Msg("Failed to remove replaced avatar")
		}
	}

	s.logger.Info().Str("userID", userID).Msg("Profile synced")
	return saved, nil
}

func cleanInterests(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, i := range in {
		i = strings.TrimSpace(i)
		key := strings.ToLower(i)
		if i == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, i)
	}
	return out
}
