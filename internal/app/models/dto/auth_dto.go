package dto

import "time"

// SignUpRequest creates a backend account
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// SignInRequest represents login credentials. Redirect asks for a one-time
// exchange code instead of a session, for flows that leave the app.
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Redirect bool   `json:"redirect"`
}

// ExchangeCodeRequest trades a one-time code for a session
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required,uuid"`
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int64  `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn,omitempty"`
}

// UserResponse represents basic account information
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse represents a successful session
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}

// ExchangeCodeResponse is returned by sign-in with redirect
type ExchangeCodeResponse struct {
	Code      string `json:"code"`
	ExpiresIn int64  `json:"expiresIn"`
}
