package handler

import (
	"context"
	"errors"
	"mime"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/defo-server/internal/api/http/response"
	"github.com/dtroode/defo-server/internal/apierrors"
	"github.com/dtroode/defo-server/internal/logger"
	"github.com/dtroode/defo-server/internal/model"
	"github.com/dtroode/defo-server/internal/service"
)

// AuthService defines account and session operations.
type AuthService interface {
	Register(ctx context.Context, params service.RegisterParams) (model.User, error)
	Login(ctx context.Context, email, password string) (model.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	Me(ctx context.Context, userID uuid.UUID) (model.User, error)
}

// Auth handles the /auth endpoints.
type Auth struct {
	authService    AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{authService: authService, contextManager: contextManager, logger: logger}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	user, err := h.authService.Register(r.Context(), service.RegisterParams{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusCreated, struct {
		Message string       `json:"message"`
		User    userResponse `json:"user"`
	}{Message: "User created successfully", User: newUserResponse(user)})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login accepts an OAuth2 password form (username, password) or a JSON
// body with email and password.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var email, password string

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(maxJSONBody); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			response.Error(w, h.logger, apierrors.NewErrInvalidInputCause("invalid form", err))
			return
		}
		email, password = r.PostFormValue("username"), r.PostFormValue("password")
	default:
		var req loginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			response.Error(w, h.logger, err)
			return
		}
		email, password = req.Email, req.Password
	}

	if email == "" || password == "" {
		response.Error(w, h.logger, apierrors.NewErrInvalidInput("email and password are required"))
		return
	}

	pair, err := h.authService.Login(r.Context(), email, password)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, newTokenResponse(pair))
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, h.logger, err)
		return
	}
	if req.RefreshToken == "" {
		response.Error(w, h.logger, apierrors.NewErrInvalidInput("refresh_token is required"))
		return
	}

	pair, err := h.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, newTokenResponse(pair))
}

func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(h.contextManager, r)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	if err := h.authService.Logout(r.Context(), userID); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.Message(w, "Logged out successfully")
}

func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(h.contextManager, r)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	user, err := h.authService.Me(r.Context(), userID)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, newUserResponse(user))
}
