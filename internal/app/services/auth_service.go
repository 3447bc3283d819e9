package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/diasporahub/internal/app/models"
	"github.com/yigit/diasporahub/internal/app/models/dto"
	"github.com/yigit/diasporahub/internal/pkg/apperrors"
	"github.com/yigit/diasporahub/internal/pkg/auth"
)

type userStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type tokenStore interface {
	Create(ctx context.Context, token *models.AuthToken) error
	Consume(ctx context.Context, value string, kind models.TokenKind) (string, error)
	Revoke(ctx context.Context, value string, kind models.TokenKind) error
}

// AuthService handles backend account operations
type AuthService struct {
	userRepo   userStore
	tokenRepo  tokenStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo userStore,
	tokenRepo tokenStore,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// SignUp creates an account and opens a session for it
func (s *AuthService) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.AuthResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, err
		}
		s.logger.Error().Err(err).Msg("Failed to create user")
		return nil, fmt.Errorf("user creation error: %w", err)
	}

	s.logger.Info().Str("userID", user.ID).Msg("User signed up")
	return s.generateAuthResponse(ctx, user)
}

// SignIn checks credentials and opens a session
func (s *AuthService) SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.AuthResponse, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return s.generateAuthResponse(ctx, user)
}

// SignInWithRedirect checks credentials and returns a one-time code the
// app trades for a session once it is back in control
func (s *AuthService) SignInWithRedirect(ctx context.Context, req *dto.SignInRequest) (*dto.ExchangeCodeResponse, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	code := &models.AuthToken{
		Token:     auth.NewOpaqueToken(),
		UserID:    user.ID,
		Kind:      models.TokenKindExchange,
		ExpiresAt: s.jwtService.ExchangeCodeExpiry(),
	}
	if err := s.tokenRepo.Create(ctx, code); err != nil {
		s.logger.Error().Err(err).Str("userID", user.ID).Msg("Failed to store exchange code")
		return nil, fmt.Errorf("error creating exchange code: %w", err)
	}

	return &dto.ExchangeCodeResponse{
		Code:      code.Token,
		ExpiresIn: int64(s.jwtService.ExchangeCodeLifetime()),
	}, nil
}

// ExchangeCode trades a one-time code for a session
func (s *AuthService) ExchangeCode(ctx context.Context, code string) (*dto.AuthResponse, error) {
	userID, err := s.tokenRepo.Consume(ctx, code, models.TokenKindExchange)
	if err != nil {
		if !isTokenError(err) {
			s.logger.Error().Err(err).Msg("Failed to consume exchange code")
		}
		return nil, err
	}
	return s.sessionFor(ctx, userID)
}

// Refresh rotates a refresh token. The old token cannot be used again.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	userID, err := s.tokenRepo.Consume(ctx, refreshToken, models.TokenKindRefresh)
	if err != nil {
		if !isTokenError(err) {
			s.logger.Error().Err(err).Msg("Failed to consume refresh token")
		}
		return nil, err
	}
	return s.sessionFor(ctx, userID)
}

// SignOut revokes a refresh token
func (s *AuthService) SignOut(ctx context.Context, refreshToken string) error {
	if err := s.tokenRepo.Revoke(ctx, refreshToken, models.TokenKindRefresh); err != nil {
		if isTokenError(err) {
			return err
		}
		s.logger.Error().Err(err).Msg("Failed to revoke refresh token")
		return fmt.Errorf("error signing out: %w", err)
	}
	return nil
}

// Me returns the account behind a session
func (s *AuthService) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *AuthService) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) sessionFor(ctx context.Context, userID string) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}
	return s.generateAuthResponse(ctx, user)
}

// generateAuthResponse issues an access token and stores a fresh refresh token
func (s *AuthService) generateAuthResponse(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	accessToken, expiresIn, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	refresh := &models.AuthToken{
		Token:     auth.NewOpaqueToken(),
		UserID:    user.ID,
		Kind:      models.TokenKindRefresh,
		ExpiresAt: s.jwtService.RefreshTokenExpiry(),
	}
	if err := s.tokenRepo.Create(ctx, refresh); err != nil {
		s.logger.Error().Err(err).Str("userID", user.ID).Msg("Failed to store refresh token")
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken:           accessToken,
			TokenType:             "Bearer",
			ExpiresIn:             int64(expiresIn),
			RefreshToken:          refresh.Token,
			RefreshTokenExpiresIn: int64(s.jwtService.RefreshTokenLifetime()),
		},
		User: *toUserResponse(user),
	}, nil
}

func toUserResponse(user *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// isTokenError reports the expected outcomes of presenting a bad token
func isTokenError(err error) bool {
	return apperrors.Is(err, apperrors.ErrTokenNotFound,
		apperrors.ErrTokenRevoked, apperrors.ErrTokenExpired, apperrors.ErrTokenInvalid)
}
