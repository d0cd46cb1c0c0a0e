package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpcontext "github.com/dtroode/defo-server/internal/api/http/context"
	"github.com/dtroode/defo-server/internal/model"
	"github.com/dtroode/defo-server/internal/service"
)

// authed builds a request carrying userID in its context and the given
// path values.
func authed(t *testing.T, method, target string, body io.Reader, userID uuid.UUID, path map[string]string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(method, target, body)
	if userID != uuid.Nil {
		r = r.WithContext(httpcontext.NewManager().SetUserIDToContext(r.Context(), userID))
	}
	for k, v := range path {
		r.SetPathValue(k, v)
	}
	return r
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

type authServiceMock struct{ mock.Mock }

func newAuthServiceMock(t *testing.T) *authServiceMock {
	m := &authServiceMock{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *authServiceMock) Register(ctx context.Context, params service.RegisterParams) (model.User, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *authServiceMock) Login(ctx context.Context, email, password string) (model.TokenPair, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(model.TokenPair), args.Error(1)
}

func (m *authServiceMock) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(model.TokenPair), args.Error(1)
}

func (m *authServiceMock) Logout(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *authServiceMock) Me(ctx context.Context, userID uuid.UUID) (model.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.User), args.Error(1)
}

type projectServiceMock struct{ mock.Mock }

func newProjectServiceMock(t *testing.T) *projectServiceMock {
	m := &projectServiceMock{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *projectServiceMock) Create(ctx context.Context, params model.CreateProjectParams) (model.Project, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Project), args.Error(1)
}

func (m *projectServiceMock) Get(ctx context.Context, userID, projectID uuid.UUID) (model.Project, error) {
	args := m.Called(ctx, userID, projectID)
	return args.Get(0).(model.Project), args.Error(1)
}

func (m *projectServiceMock) Update(ctx context.Context, userID, projectID uuid.UUID, patch model.ProjectPatch) (model.Project, error) {
	args := m.Called(ctx, userID, projectID, patch)
	return args.Get(0).(model.Project), args.Error(1)
}

func (m *projectServiceMock) Delete(ctx context.Context, userID, projectID uuid.UUID) error {
	return m.Called(ctx, userID, projectID).Error(0)
}

func (m *projectServiceMock) List(ctx context.Context, userID uuid.UUID, offset, limit int) (model.ProjectPage, error) {
	args := m.Called(ctx, userID, offset, limit)
	return args.Get(0).(model.ProjectPage), args.Error(1)
}

type permissionServiceMock struct{ mock.Mock }

func newPermissionServiceMock(t *testing.T) *permissionServiceMock {
	m := &permissionServiceMock{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *permissionServiceMock) Share(ctx context.Context, params model.ShareProjectParams) (model.Permission, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Permission), args.Error(1)
}

func (m *permissionServiceMock) Revoke(ctx context.Context, userID, projectID, targetID uuid.UUID) error {
	return m.Called(ctx, userID, projectID, targetID).Error(0)
}

func (m *permissionServiceMock) List(ctx context.Context, userID, projectID uuid.UUID) ([]model.Permission, error) {
	args := m.Called(ctx, userID, projectID)
	grants, _ := args.Get(0).([]model.Permission)
	return grants, args.Error(1)
}

type datasetServiceMock struct{ mock.Mock }

func newDatasetServiceMock(t *testing.T) *datasetServiceMock {
	m := &datasetServiceMock{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *datasetServiceMock) Upload(ctx context.Context, params model.UploadDatasetParams, file io.Reader) (model.DatasetInfo, error) {
	content, err := io.ReadAll(file)
	if err != nil {
		return model.DatasetInfo{}, err
	}
	args := m.Called(ctx, params, string(content))
	return args.Get(0).(model.DatasetInfo), args.Error(1)
}

func (m *datasetServiceMock) List(ctx context.Context, userID, projectID uuid.UUID) ([]model.DatasetInfo, error) {
	args := m.Called(ctx, userID, projectID)
	infos, _ := args.Get(0).([]model.DatasetInfo)
	return infos, args.Error(1)
}

func (m *datasetServiceMock) Delete(ctx context.Context, userID, datasetID uuid.UUID) error {
	return m.Called(ctx, userID, datasetID).Error(0)
}

type analysisServiceMock struct{ mock.Mock }

func newAnalysisServiceMock(t *testing.T) *analysisServiceMock {
	m := &analysisServiceMock{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *analysisServiceMock) Preview(ctx context.Context, userID, datasetID uuid.UUID) (model.DatasetPreview, error) {
	args := m.Called(ctx, userID, datasetID)
	return args.Get(0).(model.DatasetPreview), args.Error(1)
}

func (m *analysisServiceMock) Analyze(ctx context.Context, userID, datasetID uuid.UUID) (model.DatasetAnalysis, error) {
	args := m.Called(ctx, userID, datasetID)
	return args.Get(0).(model.DatasetAnalysis), args.Error(1)
}

type pingerMock struct{ err error }

func (p pingerMock) Ping(context.Context) error { return p.err }
