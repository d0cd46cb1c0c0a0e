package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/defo-server/internal/apierrors"
	"github.com/dtroode/defo-server/internal/logger"
	"github.com/dtroode/defo-server/internal/model"
)

// TokenService provides high-level operations for issuing, refreshing,
// and revoking tokens. It composes the TokenManager and RefreshTokenStore.
type TokenService struct {
	manager model.TokenManager
	store   model.RefreshTokenStore
	logger  *logger.Logger
	now     func() time.Time
}

func NewTokenService(manager model.TokenManager, store model.RefreshTokenStore, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, store: store, logger: logger, now: time.Now}
}

func (s *TokenService) Issue(ctx context.Context, userID uuid.UUID) (model.TokenPair, error) {
	access, err := s.manager.GenerateAccessToken(userID)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to issue access token: %w", err)
	}

	refresh, err := s.persistRefresh(ctx, userID, nil)
	if err != nil {
		return model.TokenPair{}, err
	}

	return model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh rotates a refresh token: the presented one is revoked and a new
// pair is issued. Any problem with the presented token is Unauthorized.
func (s *TokenService) Refresh(ctx context.Context, presentedRefresh string) (model.TokenPair, error) {
	userID, jti, err := s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		s.logger.Info("Token service: rejected refresh token", "error", err.Error())
		return model.TokenPair{}, apierrors.NewErrInvalidAuthorizationToken()
	}

	rt, err := s.store.GetByJTI(ctx, jti)
	if errors.Is(err, model.ErrNotFound) {
		s.logger.Info("Token service: unknown refresh token", "jti", jti)
		return model.TokenPair{}, apierrors.NewErrInvalidAuthorizationToken()
	}
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to get refresh token: %w", err)
	}

	if err := validateRecord(rt, hashRefresh(presentedRefresh), s.now()); err != nil {
		s.logger.Info("Token service: refresh token not usable",
			"jti", jti,
			"error", err.Error())
		return model.TokenPair{}, apierrors.NewErrInvalidAuthorizationToken()
	}

	if err := s.store.RevokeByJTI(ctx, jti); err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to revoke old refresh token: %w", err)
	}

	access, err := s.manager.GenerateAccessToken(userID)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to issue access token: %w", err)
	}

	rotatedFrom := rt.JTI
	refresh, err := s.persistRefresh(ctx, userID, &rotatedFrom)
	if err != nil {
		return model.TokenPair{}, err
	}

	s.logger.Debug("Token service: refresh token rotated",
		"user_id", userID,
		"rotated_from", rotatedFrom)

	return model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *TokenService) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.store.RevokeAllByUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	return nil
}

// GetUserID validates an access token and returns its subject.
func (s *TokenService) GetUserID(token string) (uuid.UUID, error) {
	userID, err := s.manager.ParseAccessToken(token)
	if err != nil {
		return uuid.Nil, apierrors.NewErrInvalidAuthorizationToken()
	}
	return userID, nil
}

func (s *TokenService) persistRefresh(ctx context.Context, userID uuid.UUID, rotatedFrom *string) (string, error) {
	refresh, jti, err := s.manager.GenerateRefreshToken(userID)
	if err != nil {
		return "", fmt.Errorf("failed to issue refresh token: %w", err)
	}

	// ExpiresAt mirrors the JWT expiry so revocation queries and cleanup can
	// work without parsing tokens.
	now := s.now()
	rt := model.RefreshToken{
		ID:             uuid.New(),
		JTI:            jti,
		UserID:         userID,
		TokenHash:      hashRefresh(refresh),
		IssuedAt:       now,
		ExpiresAt:      now.Add(s.manager.RefreshTTL()),
		RotatedFromJTI: rotatedFrom,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.Create(ctx, rt); err != nil {
		return "", fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return refresh, nil
}

func hashRefresh(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}

func validateRecord(rt model.RefreshToken, presentedHash []byte, now time.Time) error {
	if rt.RevokedAt != nil {
		return model.ErrTokenRevoked
	}
	if now.After(rt.ExpiresAt) {
		return model.ErrTokenExpired
	}
	if subtle.ConstantTimeCompare(rt.TokenHash, presentedHash) != 1 {
		return model.ErrTokenMismatch
	}
	return nil
}
