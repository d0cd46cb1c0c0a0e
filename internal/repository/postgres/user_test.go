package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/defo-server/internal/model"
)

func newMockDB(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	id := uuid.New()

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		want    model.User
		wantErr error
	}{
		{
			name: "found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
					WithArgs("ann@example.com").
					WillReturnRows(pgxmock.NewRows([]string{"id", "email", "password_hash", "full_name", "created_at", "updated_at"}).
						AddRow(id, "ann@example.com", "hash", "Ann", now, now))
			},
			want: model.User{ID: id, Email: "ann@example.com", PasswordHash: "hash", FullName: "Ann", CreatedAt: now, UpdatedAt: now},
		},
		{
			name: "not found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
					WithArgs("ann@example.com").
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: model.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockDB(t)
			tt.setup(mock)

			got, err := NewUserRepository(mock).GetByEmail(ctx, "ann@example.com")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	mock := newMockDB(t)
	user := model.User{ID: uuid.New(), Email: "ann@example.com", PasswordHash: "hash", CreatedAt: time.Now(), UpdatedAt: time.Now()}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.ID, user.Email, user.PasswordHash, user.FullName, user.CreatedAt, user.UpdatedAt).
		WillReturnError(&pgconn.PgError{Code: codeUniqueViolation})

	_, err := NewUserRepository(mock).Create(context.Background(), user)
	assert.ErrorIs(t, err, model.ErrAlreadyExists)
}
