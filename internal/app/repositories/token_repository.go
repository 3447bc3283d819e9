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

// TokenRepository stores refresh tokens and one-time exchange codes
type TokenRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create stores a new token of the given kind
func (r *TokenRepository) Create(ctx context.Context, token *models.AuthToken) error {
	sql, args, err := r.sb.Insert("auth_tokens").
		Columns("token", "user_id", "kind", "expires_at", "revoked").
		Values(token.Token, token.UserID, token.Kind, token.ExpiresAt, false).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create token query: %w", err)
	}

	if _, err = r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "auth_tokens_pkey") {
			logger.Warn().Str("kind", string(token.Kind)).Msg("Attempted to create duplicate token")
			return apperrors.ErrTokenInvalid
		}
		logger.Error().Err(err).Str("userID", token.UserID).Msg("Error executing create token query")
		return fmt.Errorf("error creating token: %w", err)
	}
	return nil
}

// Get returns a usable token of the given kind.
// Revoked and expired tokens are reported as such.
func (r *TokenRepository) Get(ctx context.Context, value string, kind models.TokenKind) (*models.AuthToken, error) {
	sql, args, err := r.sb.Select("token", "user_id", "kind", "expires_at", "revoked").
		From("auth_tokens").
		Where(squirrel.Eq{"token": value, "kind": kind}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get token query: %w", err)
	}

	t := &models.AuthToken{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&t.Token, &t.UserID, &t.Kind, &t.ExpiresAt, &t.Revoked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenNotFound
		}
		return nil, fmt.Errorf("error retrieving token: %w", err)
	}

	if t.Revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if t.ExpiresAt.Before(time.Now()) {
		return nil, apperrors.ErrTokenExpired
	}
	return t, nil
}

// Consume revokes a token and returns its owner in one statement,
// so an exchange code or refresh token can be used once
func (r *TokenRepository) Consume(ctx context.Context, value string, kind models.TokenKind) (string, error) {
	sql, args, err := r.sb.Update("auth_tokens").
		Set("revoked", true).
		Where(squirrel.Eq{"token": value, "kind": kind, "revoked": false}).
		Where(squirrel.Gt{"expires_at": time.Now()}).
		Suffix("RETURNING user_id").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build consume token query: %w", err)
	}

	var userID string
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// distinguish missing, revoked and expired for the caller
			if _, gerr := r.Get(ctx, value, kind); gerr != nil {
				return "", gerr
			}
			return "", apperrors.ErrTokenInvalid
		}
		return "", fmt.Errorf("error consuming token: %w", err)
	}
	return userID, nil
}

// Revoke marks a live token of the given kind revoked. Tokens of another
// kind are not touched; an already revoked token reports ErrTokenRevoked.
func (r *TokenRepository) Revoke(ctx context.Context, value string, kind models.TokenKind) error {
	sql, args, err := r.revokeQuery(value, kind)
	if err != nil {
		return fmt.Errorf("failed to build revoke token query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing revoke token query")
		return fmt.Errorf("error revoking token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, gerr := r.Get(ctx, value, kind); gerr != nil {
			return gerr
		}
		return apperrors.ErrTokenInvalid
	}
	return nil
}

func (r *TokenRepository) revokeQuery(value string, kind models.TokenKind) (string, []interface{}, error) {
	return r.sb.Update("auth_tokens").
		Set("revoked", true).
		Where(squirrel.Eq{"token": value, "kind": kind, "revoked": false}).
		ToSql()
}

// DeleteExpired removes tokens past their expiry
func (r *TokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Delete("auth_tokens").
		Where(squirrel.Lt{"expires_at": time.Now()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete expired tokens query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error deleting expired tokens: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
