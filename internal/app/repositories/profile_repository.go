package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/yigit/diasporahub/internal/app/models"
	"github.com/yigit/diasporahub/internal/pkg/kvstore"
	"github.com/yigit/diasporahub/internal/pkg/logger"
)

const profileKey = "profile"

// ProfileRepository stores the on-device profile as a single record
type ProfileRepository struct {
	kv  *kvstore.Store
	now func() time.Time
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(kv *kvstore.Store) *ProfileRepository {
	return &ProfileRepository{kv: kv, now: time.Now}
}

// Get returns the stored profile, or an empty one when none is readable
func (r *ProfileRepository) Get(ctx context.Context) (models.Profile, error) {
	var p models.Profile
	err := r.kv.GetJSON(ctx, profileKey, &p)
	var decodeErr *kvstore.DecodeError
	switch {
	case err == nil:
	case errors.Is(err, kvstore.ErrNotFound):
		p = models.Profile{}
	case errors.As(err, &decodeErr):
		logger.Warn().Err(err).Msg("Stored profile is corrupt, using an empty profile")
		p = models.Profile{}
	default:
		return models.Profile{}, err
	}
	if p.Interests == nil {
		p.Interests = []string{}
	}
	return p, nil
}

// Save replaces the stored profile
func (r *ProfileRepository) Save(ctx context.Context, p models.Profile) (models.Profile, error) {
	if p.Interests == nil {
		p.Interests = []string{}
	}
	p.UpdatedAt = r.now().UTC()
	if err := r.kv.PutJSON(ctx, profileKey, p); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}
