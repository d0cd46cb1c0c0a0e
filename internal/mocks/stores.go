package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/defo-server/internal/model"
)

// UserStore is a mock of model.UserStore.
type UserStore struct {
	mock.Mock
}

func NewUserStore(t testingT) *UserStore {
	m := &UserStore{}
	register(t, &m.Mock)
	return m
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	if fn, ok := args.Get(0).(func(context.Context, model.User) model.User); ok {
		return fn(ctx, user), args.Error(1)
	}
	return args.Get(0).(model.User), args.Error(1)
}

// ProjectStore is a mock of model.ProjectStore.
type ProjectStore struct {
	mock.Mock
}

func NewProjectStore(t testingT) *ProjectStore {
	m := &ProjectStore{}
	register(t, &m.Mock)
	return m
}

func (m *ProjectStore) Create(ctx context.Context, project model.Project) (model.Project, error) {
	args := m.Called(ctx, project)
	if fn, ok := args.Get(0).(func(context.Context, model.Project) model.Project); ok {
		return fn(ctx, project), args.Error(1)
	}
	return args.Get(0).(model.Project), args.Error(1)
}

func (m *ProjectStore) GetByID(ctx context.Context, id uuid.UUID) (model.Project, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Project), args.Error(1)
}

func (m *ProjectStore) Update(ctx context.Context, project model.Project) (model.Project, error) {
	args := m.Called(ctx, project)
	if fn, ok := args.Get(0).(func(context.Context, model.Project) model.Project); ok {
		return fn(ctx, project), args.Error(1)
	}
	return args.Get(0).(model.Project), args.Error(1)
}

func (m *ProjectStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProjectStore) ListAccessible(ctx context.Context, params model.ListProjectsParams) ([]model.Project, int, error) {
	args := m.Called(ctx, params)
	var projects []model.Project
	if v := args.Get(0); v != nil {
		projects = v.([]model.Project)
	}
	return projects, args.Int(1), args.Error(2)
}

// DatasetStore is a mock of model.DatasetStore.
type DatasetStore struct {
	mock.Mock
}

func NewDatasetStore(t testingT) *DatasetStore {
	m := &DatasetStore{}
	register(t, &m.Mock)
	return m
}

func (m *DatasetStore) Create(ctx context.Context, dataset model.Dataset) (model.Dataset, error) {
	args := m.Called(ctx, dataset)
	if fn, ok := args.Get(0).(func(context.Context, model.Dataset) model.Dataset); ok {
		return fn(ctx, dataset), args.Error(1)
	}
	return args.Get(0).(model.Dataset), args.Error(1)
}

func (m *DatasetStore) GetByID(ctx context.Context, id uuid.UUID) (model.Dataset, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Dataset), args.Error(1)
}

func (m *DatasetStore) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Dataset, error) {
	args := m.Called(ctx, projectID)
	var datasets []model.Dataset
	if v := args.Get(0); v != nil {
		datasets = v.([]model.Dataset)
	}
	return datasets, args.Error(1)
}

func (m *DatasetStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// PermissionStore is a mock of model.PermissionStore.
type PermissionStore struct {
	mock.Mock
}

func NewPermissionStore(t testingT) *PermissionStore {
	m := &PermissionStore{}
	register(t, &m.Mock)
	return m
}

func (m *PermissionStore) Get(ctx context.Context, projectID, userID uuid.UUID) (model.Permission, error) {
	args := m.Called(ctx, projectID, userID)
	return args.Get(0).(model.Permission), args.Error(1)
}

func (m *PermissionStore) Upsert(ctx context.Context, permission model.Permission) (model.Permission, error) {
	args := m.Called(ctx, permission)
	if fn, ok := args.Get(0).(func(context.Context, model.Permission) model.Permission); ok {
		return fn(ctx, permission), args.Error(1)
	}
	return args.Get(0).(model.Permission), args.Error(1)
}

func (m *PermissionStore) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Permission, error) {
	args := m.Called(ctx, projectID)
	var grants []model.Permission
	if v := args.Get(0); v != nil {
		grants = v.([]model.Permission)
	}
	return grants, args.Error(1)
}

func (m *PermissionStore) Delete(ctx context.Context, projectID, userID uuid.UUID) error {
	args := m.Called(ctx, projectID, userID)
	return args.Error(0)
}

// RefreshTokenStore is a mock of model.RefreshTokenStore.
type RefreshTokenStore struct {
	mock.Mock
}

func NewRefreshTokenStore(t testingT) *RefreshTokenStore {
	m := &RefreshTokenStore{}
	register(t, &m.Mock)
	return m
}

func (m *RefreshTokenStore) Create(ctx context.Context, token model.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *RefreshTokenStore) GetByJTI(ctx context.Context, jti string) (model.RefreshToken, error) {
	args := m.Called(ctx, jti)
	return args.Get(0).(model.RefreshToken), args.Error(1)
}

func (m *RefreshTokenStore) RevokeByJTI(ctx context.Context, jti string) error {
	args := m.Called(ctx, jti)
	return args.Error(0)
}

func (m *RefreshTokenStore) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
