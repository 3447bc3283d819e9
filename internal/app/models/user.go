package models

import (
	"time"
)

// User defines the backend account based on the 'users' table
type User struct {
	ID           string    `json:"id" db:"id" example:"6f1c1f5e-3a57-4a8e-9a7e-0d3f2c7f9a10"`
	Email        string    `json:"email" db:"email" example:"ama@example.com"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// TokenKind separates long-lived refresh tokens from one-time redirect codes
type TokenKind string

const (
	TokenKindRefresh  TokenKind = "refresh"
	TokenKindExchange TokenKind = "exchange"
)

// AuthToken is a row of the 'auth_tokens' table
type AuthToken struct {
	Token     string    `db:"token"`
	UserID    string    `db:"user_id"`
	Kind      TokenKind `db:"kind"`
	ExpiresAt time.Time `db:"expires_at"`
	Revoked   bool      `db:"revoked"`
}
