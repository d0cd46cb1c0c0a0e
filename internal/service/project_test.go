package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/defo-server/internal/access"
	"github.com/dtroode/defo-server/internal/apierrors"
	"github.com/dtroode/defo-server/internal/mocks"
	"github.com/dtroode/defo-server/internal/model"
	"github.com/dtroode/defo-server/internal/testutil"
)

type projectDeps struct {
	projects *mocks.ProjectStore
	datasets *mocks.DatasetStore
	grants   *mocks.PermissionStore
	storage  *mocks.Storage
}

func newTestProject(t *testing.T) (*Project, projectDeps) {
	t.Helper()
	deps := projectDeps{
		projects: mocks.NewProjectStore(t),
		datasets: mocks.NewDatasetStore(t),
		grants:   mocks.NewPermissionStore(t),
		storage:  mocks.NewStorage(t),
	}
	svc := NewProject(deps.projects, deps.datasets, deps.storage, access.NewGate(deps.grants), testutil.MakeNoopLogger())
	return svc, deps
}

func TestProject_Create(t *testing.T) {
	ctx := context.Background()
	svc, deps := newTestProject(t)
	owner := uuid.New()
	desc := "quarterly"

	deps.projects.On("Create", ctx, mock.MatchedBy(func(p model.Project) bool {
		return p.Name == "Sales" && p.OwnerID == owner && p.Status == model.ProjectStatusActive &&
			p.Description != nil && *p.Description == desc && !p.CreatedAt.IsZero()
	})).Return(echo[model.Project], nil).Once()

	p, err := svc.Create(ctx, model.CreateProjectParams{OwnerID: owner, Name: "  Sales ", Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Sales", p.Name)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
}

func TestProject_Create_NameRequired(t *testing.T) {
	svc, _ := newTestProject(t)

	_, err := svc.Create(context.Background(), model.CreateProjectParams{OwnerID: uuid.New(), Name: "  "})
	assert.Equal(t, apierrors.CodeInvalidInput, apierrors.CodeOf(err))
}

func TestProject_Get(t *testing.T) {
	ctx := context.Background()
	owner, stranger, guest := uuid.New(), uuid.New(), uuid.New()
	project := ownedProject(owner)

	tests := []struct {
		name     string
		userID   uuid.UUID
		setup    func(deps projectDeps)
		wantCode apierrors.Code
		wantErr  bool
	}{
		{
			name:   "owner",
			userID: owner,
			setup: func(deps projectDeps) {
				deps.projects.On("GetByID", ctx, project.ID).Return(project, nil).Once()
			},
		},
		{
			name:   "grantee",
			userID: guest,
			setup: func(deps projectDeps) {
				deps.projects.On("GetByID", ctx, project.ID).Return(project, nil).Once()
				deps.grants.On("Get", ctx, project.ID, guest).
					Return(model.Permission{UserID: guest, ProjectID: project.ID}, nil).Once()
			},
		},
		{
			name:   "no grant",
			userID: stranger,
			setup: func(deps projectDeps) {
				deps.projects.On("GetByID", ctx, project.ID).Return(project, nil).Once()
				deps.grants.On("Get", ctx, project.ID, stranger).Return(model.Permission{}, model.ErrNotFound).Once()
			},
			wantErr:  true,
			wantCode: apierrors.CodeForbidden,
		},
		{
			name:   "missing project wins over missing grant",
			userID: stranger,
			setup: func(deps projectDeps) {
				deps.projects.On("GetByID", ctx, project.ID).Return(model.Project{}, model.ErrNotFound).Once()
			},
			wantErr:  true,
			wantCode: apierrors.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := newTestProject(t)
			tt.setup(deps)

			got, err := svc.Get(ctx, tt.userID, project.ID)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, apierrors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, project, got)
		})
	}
}

func TestProject_Update(t *testing.T) {
	ctx := context.Background()
	svc, deps := newTestProject(t)
	editor := uuid.New()
	project := ownedProject(uuid.New())
	before := time.Now().Add(-time.Hour)
	project.UpdatedAt = before

	name := "Renamed"
	status := model.ProjectStatusArchived

	deps.projects.On("GetByID", ctx, project.ID).Return(project, nil).Once()
	deps.grants.On("Get", ctx, project.ID, editor).
		Return(model.Permission{UserID: editor, ProjectID: project.ID, CanEdit: true}, nil).Once()
	deps.projects.On("Update", ctx, mock.MatchedBy(func(p model.Project) bool {
		return p.Name == name && p.Status == status && p.UpdatedAt.After(before)
	})).Return(echo[model.Project], nil).Once()

	got, err := svc.Update(ctx, editor, project.ID, model.ProjectPatch{Name: &name, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
	assert.Equal(t, status, got.Status)
	assert.Nil(t, got.Description)
}

func TestProject_Update_Rejected(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	project := ownedProject(owner)
	viewer := uuid.New()
	bad := model.ProjectStatus("frozen")
	blank := " "

	tests := []struct {
		name     string
		userID   uuid.UUID
		patch    model.ProjectPatch
		grant    *model.Permission
		wantCode apierrors.Code
	}{
		{
			name:     "grant without edit",
			userID:   viewer,
			grant:    &model.Permission{UserID: viewer, ProjectID: project.ID, CanDelete: true, CanShare: true},
			wantCode: apierrors.CodeForbidden,
		},
		{name: "invalid status", userID: owner, patch: model.ProjectPatch{Status: &bad}, wantCode: apierrors.CodeInvalidInput},
		{name: "blank name", userID: owner, patch: model.ProjectPatch{Name: &blank}, wantCode: apierrors.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := newTestProject(t)
			deps.projects.On("GetByID", ctx, project.ID).Return(project, nil).Once()
			if tt.grant != nil {
				deps.grants.On("Get", ctx, project.ID, tt.userID).Return(*tt.grant, nil).Once()
			}

			_, err := svc.Update(ctx, tt.userID, project.ID, tt.patch)
			assert.Equal(t, tt.wantCode, apierrors.CodeOf(err))
		})
	}
}

func TestProject_Delete(t *testing.T) {
	ctx := context.Background()
	svc, deps := newTestProject(t)
	owner := uuid.New()
	project := ownedProject(owner)
	datasets := []model.Dataset{
		{ID: uuid.New(), ProjectID: project.ID, FilePath: project.ID.String() + "/a.csv"},
		{ID: uuid.New(), ProjectID: project.ID, FilePath: project.ID.String() + "/b.xlsx"},
	}

	deps.projects.On("GetByID", ctx, project.ID).Return(project, nil).Once()
	deps.datasets.On("ListByProject", ctx, project.ID).Return(datasets, nil).Once()
	deps.projects.On("Delete", ctx, project.ID).Return(nil).Once()
	deps.storage.On("Delete", ctx, datasets[0].FilePath).Return(assert.AnError).Once()
	deps.storage.On("Delete", ctx, datasets[1].FilePath).Return(nil).Once()

	require.NoError(t, svc.Delete(ctx, owner, project.ID))
}

func TestProject_Delete_OwnerOnly(t *testing.T) {
	ctx := context.Background()
	svc, deps := newTestProject(t)
	project := ownedProject(uuid.New())

	deps.projects.On("GetByID", ctx, project.ID).Return(project, nil).Once()

	err := svc.Delete(ctx, uuid.New(), project.ID)
	require.Error(t, err)
	assert.Equal(t, apierrors.CodeForbidden, apierrors.CodeOf(err))
	assert.Equal(t, "only project owner can delete project", err.Error())
}

func TestProject_List(t *testing.T) {
	ctx := context.Background()
	svc, deps := newTestProject(t)
	userID := uuid.New()
	projects := []model.Project{ownedProject(userID)}

	deps.projects.On("ListAccessible", ctx, model.ListProjectsParams{
		UserID: userID, Status: model.ProjectStatusActive, Offset: 20, Limit: 10,
	}).Return(projects, 21, nil).Once()

	page, err := svc.List(ctx, userID, 20, 10)
	require.NoError(t, err)
	assert.Equal(t, model.ProjectPage{Projects: projects, Total: 21, Offset: 20, Limit: 10}, page)
}

func TestProject_List_InvalidPaging(t *testing.T) {
	tests := []struct {
		name          string
		offset, limit int
	}{
		{name: "negative offset", offset: -1, limit: 10},
		{name: "zero limit", offset: 0, limit: 0},
		{name: "limit above max", offset: 0, limit: MaxPageLimit + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestProject(t)
			_, err := svc.List(context.Background(), uuid.New(), tt.offset, tt.limit)
			assert.Equal(t, apierrors.CodeInvalidInput, apierrors.CodeOf(err))
		})
	}
}
