package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/diasporahub/internal/app/models"
	"github.com/yigit/diasporahub/internal/pkg/apperrors"
	"github.com/yigit/diasporahub/internal/pkg/dberrors"
	"github.com/yigit/diasporahub/internal/pkg/logger"
)

var profileColumns = []string{
	"user_id", "display_name", "avatar_url", "first_name", "last_name",
	"handle", "interests", "onboarding_complete", "updated_at",
}

// RemoteProfileRepository reads and writes the backend 'profiles' table
type RemoteProfileRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRemoteProfileRepository creates a new RemoteProfileRepository
func NewRemoteProfileRepository(db *pgxpool.Pool) *RemoteProfileRepository {
	return &RemoteProfileRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Get returns the profile row for userID
func (r *RemoteProfileRepository) Get(ctx context.Context, userID string) (*models.RemoteProfile, error) {
	sql, args, err := r.sb.Select(profileColumns...).
		From("profiles").
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get profile query: %w", err)
	}

	p, err := scanProfile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}
	return p, nil
}

// Upsert inserts or replaces the profile row and returns the stored values
func (r *RemoteProfileRepository) Upsert(ctx context.Context, p *models.RemoteProfile) (*models.RemoteProfile, error) {
	if p.Interests == nil {
		p.Interests = []string{}
	}
	sql, args, err := r.sb.Insert("profiles").
		Columns(profileColumns...).
		Values(p.UserID, p.DisplayName, p.AvatarURL, p.FirstName, p.LastName,
			p.Handle, p.Interests, p.OnboardingComplete, time.Now().UTC()).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			avatar_url = EXCLUDED.avatar_url,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			handle = EXCLUDED.handle,
			interests = EXCLUDED.interests,
			onboarding_complete = EXCLUDED.onboarding_complete,
			updated_at = EXCLUDED.updated_at
			RETURNING user_id, display_name, avatar_url, first_name, last_name,
			handle, interests, onboarding_complete, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build upsert profile query: %w", err)
	}

	saved, err := scanProfile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "profiles_handle_key") {
			return nil, apperrors.ErrHandleTaken
		}
		logger.Error().Err(err).Str("userID", p.UserID).Msg("Error upserting profile")
		return nil, fmt.Errorf("error saving profile: %w", err)
	}
	return saved, nil
}

func scanProfile(row pgx.Row) (*models.RemoteProfile, error) {
	p := &models.RemoteProfile{}
	err := row.Scan(&p.UserID, &p.DisplayName, &p.AvatarURL, &p.FirstName, &p.LastName,
		&p.Handle, &p.Interests, &p.OnboardingComplete, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if p.Interests == nil {
		p.Interests = []string{}
	}
	return p, nil
}
