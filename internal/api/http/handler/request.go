package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/defo-server/internal/apierrors"
	"github.com/dtroode/defo-server/internal/model"
)

const maxJSONBody = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apierrors.NewErrInvalidInput("request body is required")
		}
		return apierrors.NewErrInvalidInputCause("invalid request body", err)
	}
	return nil
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, apierrors.NewErrInvalidInput(fmt.Sprintf("invalid %s", name))
	}
	return id, nil
}

// currentUser returns the ID the authentication middleware put in the
// request context.
func currentUser(cm model.ContextManager, r *http.Request) (uuid.UUID, error) {
	userID, ok := cm.GetUserIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, apierrors.NewErrMissingAuthorizationToken()
	}
	return userID, nil
}
