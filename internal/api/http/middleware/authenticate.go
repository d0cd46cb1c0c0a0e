package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/defo-server/internal/api/http/response"
	"github.com/dtroode/defo-server/internal/apierrors"
	"github.com/dtroode/defo-server/internal/logger"
	"github.com/dtroode/defo-server/internal/model"
)

// Authenticator resolves user ID from access tokens.
type Authenticator interface {
	Authenticate(accessToken string) (uuid.UUID, error)
}

// Authenticate validates bearer tokens and injects user ID into context.
type Authenticate struct {
	authenticator  Authenticator
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(authenticator Authenticator, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{authenticator: authenticator, contextManager: contextManager, logger: logger}
}

// Handle rejects requests without a valid bearer token with 401.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := m.authenticateUser(r)
		if err != nil {
			m.logger.Debug("HTTP: request not authenticated",
				"path", r.URL.Path,
				"error", err.Error())
			response.Error(w, m.logger, err)
			return
		}

		ctx := m.contextManager.SetUserIDToContext(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Authenticate) authenticateUser(r *http.Request) (uuid.UUID, error) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return uuid.Nil, apierrors.NewErrMissingAuthorizationToken()
	}

	userID, err := m.authenticator.Authenticate(strings.TrimSpace(token))
	if err != nil || userID == uuid.Nil {
		return uuid.Nil, apierrors.NewErrInvalidAuthorizationToken()
	}

	return userID, nil
}
