package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/defo-server/internal/apierrors"
	"github.com/dtroode/defo-server/internal/logger"
	"github.com/dtroode/defo-server/internal/model"
	"github.com/dtroode/defo-server/internal/validation"
)

// RegisterParams is the input of Auth.Register.
type RegisterParams struct {
	Email    string
	Password string
	FullName string
}

type Auth struct {
	userStore    model.UserStore
	tokenService *TokenService
	logger       *logger.Logger
	hashCost     int
}

func NewAuth(
	userStore model.UserStore,
	refreshTokenStore model.RefreshTokenStore,
	tokenManager model.TokenManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		tokenService: NewTokenService(tokenManager, refreshTokenStore, logger),
		logger:       logger,
		hashCost:     bcrypt.DefaultCost,
	}
}

func (a *Auth) Register(ctx context.Context, params RegisterParams) (model.User, error) {
	email := normalizeEmail(params.Email)

	a.logger.Debug("Auth service: starting user registration",
		"email", email)

	if err := validation.ValidateEmail(email); err != nil {
		return model.User{}, apierrors.NewErrInvalidInput(err.Error())
	}
	if err := validation.ValidatePassword(params.Password); err != nil {
		return model.User{}, apierrors.NewErrInvalidInput(err.Error())
	}
	if err := validation.ValidateFullName(params.FullName); err != nil {
		return model.User{}, apierrors.NewErrInvalidInput(err.Error())
	}

	_, err := a.userStore.GetByEmail(ctx, email)
	if err == nil {
		a.logger.Info("Auth service: user already exists",
			"email", email)
		return model.User{}, apierrors.NewErrEmailIsTaken(email)
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), a.hashCost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(params.FullName),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	// Lost a race with a concurrent registration of the same email.
	if errors.Is(err, model.ErrAlreadyExists) {
		return model.User{}, apierrors.NewErrEmailIsTaken(email)
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"email", email,
		"user_id", user.ID)

	return user, nil
}

// Login checks credentials and issues a token pair. Unknown email and wrong
// password are indistinguishable to the caller.
func (a *Auth) Login(ctx context.Context, email, password string) (model.TokenPair, error) {
	email = normalizeEmail(email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: login for unknown email",
			"email", email)
		return model.TokenPair{}, apierrors.NewErrInvalidCredentials()
	}
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		a.logger.Info("Auth service: wrong password",
			"user_id", user.ID)
		return model.TokenPair{}, apierrors.NewErrInvalidCredentials()
	}

	pair, err := a.tokenService.Issue(ctx, user.ID)
	if err != nil {
		a.logger.Error("Auth service: failed to issue tokens",
			"user_id", user.ID,
			"error", err.Error())
		return model.TokenPair{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: login completed",
		"user_id", user.ID)

	return pair, nil
}

func (a *Auth) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	return a.tokenService.Refresh(ctx, refreshToken)
}

// Logout revokes every refresh token of the user. Access tokens stay valid
// until they expire.
func (a *Auth) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := a.tokenService.RevokeAllForUser(ctx, userID); err != nil {
		a.logger.Error("Auth service: failed to revoke tokens",
			"user_id", userID,
			"error", err.Error())
		return err
	}
	return nil
}

// Authenticate resolves an access token to the user ID it was issued for.
func (a *Auth) Authenticate(accessToken string) (uuid.UUID, error) {
	return a.tokenService.GetUserID(accessToken)
}

func (a *Auth) Me(ctx context.Context, userID uuid.UUID) (model.User, error) {
	user, err := a.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apierrors.NewErrUserNotFound(userID.String())
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
