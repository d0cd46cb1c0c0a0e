package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenManager generates and validates access/refresh tokens.
type TokenManager interface {
	GenerateAccessToken(userID uuid.UUID) (string, error)
	GenerateRefreshToken(userID uuid.UUID) (token string, jti string, err error)
	ParseAccessToken(token string) (uuid.UUID, error)
	ParseRefreshToken(token string) (userID uuid.UUID, jti string, err error)
	// RefreshTTL is the lifetime of issued refresh tokens.
	RefreshTTL() time.Duration
}

// TokenPair is returned by login and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
