package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dtroode/defo-server/internal/apierrors"
	"github.com/dtroode/defo-server/internal/testutil"
)

func TestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "not found",
			err:        apierrors.NewErrDatasetFileNotFound(),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"detail":"dataset file not found"}`,
		},
		{
			name:       "forbidden",
			err:        apierrors.NewErrForbidden("only project owner can delete project"),
			wantStatus: http.StatusForbidden,
			wantBody:   `{"detail":"only project owner can delete project"}`,
		},
		{
			name:       "invalid input with cause",
			err:        apierrors.NewErrInvalidInputCause("error processing file", errors.New("bad quote")),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"detail":"error processing file: bad quote"}`,
		},
		{
			name:       "conflict",
			err:        apierrors.NewErrEmailIsTaken("a@b.io"),
			wantStatus: http.StatusConflict,
			wantBody:   `{"detail":"email a@b.io is already registered"}`,
		},
		{
			name:       "wrapped not found",
			err:        errors.Join(errors.New("ctx"), apierrors.NewErrProjectNotFound(uuid.Nil)),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "internal hidden",
			err:        errors.New("pq: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"detail":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, testutil.MakeNoopLogger(), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestError_UnauthorizedChallenge(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, testutil.MakeNoopLogger(), apierrors.NewErrInvalidCredentials())

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
}

func TestMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	Message(rec, "ok")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"ok"}`, rec.Body.String())
}
