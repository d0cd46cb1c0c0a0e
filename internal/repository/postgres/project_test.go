package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/defo-server/internal/model"
)

var projectRowColumns = []string{"id", "name", "description", "owner_id", "status", "tags", "created_at", "updated_at"}

func TestProjectRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	owner := uuid.New()
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		mock := newMockDB(t)
		mock.ExpectQuery("SELECT (.+) FROM projects p WHERE p.id = \\$1").
			WithArgs(id).
			WillReturnRows(pgxmock.NewRows(projectRowColumns).
				AddRow(id, "Sales", nil, owner, "active", nil, now, now))

		got, err := NewProjectRepository(mock).GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, owner, got.OwnerID)
		assert.Equal(t, model.ProjectStatusActive, got.Status)
		assert.Nil(t, got.Description)
	})

	t.Run("not found", func(t *testing.T) {
		mock := newMockDB(t)
		mock.ExpectQuery("SELECT (.+) FROM projects p WHERE p.id = \\$1").
			WithArgs(id).
			WillReturnError(pgx.ErrNoRows)

		_, err := NewProjectRepository(mock).GetByID(ctx, id)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestProjectRepository_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	tests := []struct {
		name    string
		result  func(*pgxmock.ExpectedExec)
		wantErr error
	}{
		{
			name:   "deleted",
			result: func(e *pgxmock.ExpectedExec) { e.WillReturnResult(pgxmock.NewResult("DELETE", 1)) },
		},
		{
			name:    "missing row",
			result:  func(e *pgxmock.ExpectedExec) { e.WillReturnResult(pgxmock.NewResult("DELETE", 0)) },
			wantErr: model.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockDB(t)
			tt.result(mock.ExpectExec("DELETE FROM projects WHERE id = \\$1").WithArgs(id))

			err := NewProjectRepository(mock).Delete(ctx, id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestProjectRepository_ListAccessible(t *testing.T) {
	ctx := context.Background()
	user := uuid.New()
	now := time.Now()
	params := model.ListProjectsParams{UserID: user, Status: model.ProjectStatusActive, Offset: 0, Limit: 10}

	owned := uuid.New()
	shared := uuid.New()

	mock := newMockDB(t)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM projects p").
		WithArgs(user, "active").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("(?s)SELECT (.+) FROM projects p (.+) ORDER BY p.created_at DESC, p.id\\s+OFFSET \\$3 LIMIT \\$4").
		WithArgs(user, "active", 0, 10).
		WillReturnRows(pgxmock.NewRows(projectRowColumns).
			AddRow(shared, "Shared", nil, uuid.New(), "active", nil, now, now).
			AddRow(owned, "Owned", nil, user, "active", nil, now.Add(-time.Hour), now))

	projects, total, err := NewProjectRepository(mock).ListAccessible(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, projects, 2)
	assert.Equal(t, shared, projects[0].ID)
	assert.Equal(t, owned, projects[1].ID)
}

func TestProjectRepository_ListAccessible_CountFails(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("connection reset"))

	_, _, err := NewProjectRepository(mock).ListAccessible(context.Background(), model.ListProjectsParams{
		UserID: uuid.New(), Status: model.ProjectStatusActive, Limit: 10,
	})
	assert.Error(t, err)
}
