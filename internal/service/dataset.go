package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/defo-server/internal/access"
	"github.com/dtroode/defo-server/internal/apierrors"
	"github.com/dtroode/defo-server/internal/logger"
	"github.com/dtroode/defo-server/internal/model"
	"github.com/dtroode/defo-server/internal/tabular"
	"github.com/dtroode/defo-server/internal/validation"
)

const minColumns = 2

// Dataset ingests uploaded files and manages the dataset rows of a project.
type Dataset struct {
	projectGuard
	datasets    model.DatasetStore
	storage     model.Storage
	maxFileSize int64
	logger      *logger.Logger
	now         func() time.Time
}

func NewDataset(
	projects model.ProjectStore,
	datasets model.DatasetStore,
	storage model.Storage,
	gate *access.Gate,
	maxFileSize int64,
	logger *logger.Logger,
) *Dataset {
	return &Dataset{
		projectGuard: projectGuard{projects: projects, gate: gate},
		datasets:     datasets,
		storage:      storage,
		maxFileSize:  maxFileSize,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Upload stores the file, checks that it parses into a usable table and
// records it. Nothing is left behind in storage when the upload is rejected
// after the bytes were written.
func (s *Dataset) Upload(ctx context.Context, params model.UploadDatasetParams, file io.Reader) (model.DatasetInfo, error) {
	if _, err := s.require(ctx, params.ProjectID, params.UserID, access.ActionUpload); err != nil {
		return model.DatasetInfo{}, err
	}

	kind, err := model.FileKindFromName(params.FileName)
	if err != nil {
		return model.DatasetInfo{}, apierrors.NewErrUnsupportedFileType(model.AllowedExtensions)
	}
	if err := validation.ValidateDatasetName(params.Name); err != nil {
		return model.DatasetInfo{}, apierrors.NewErrInvalidInput(err.Error())
	}
	name := strings.TrimSpace(params.Name)

	data, err := io.ReadAll(io.LimitReader(file, s.maxFileSize+1))
	if err != nil {
		return model.DatasetInfo{}, apierrors.NewErrInvalidInputCause("error processing file", err)
	}
	if int64(len(data)) > s.maxFileSize {
		return model.DatasetInfo{}, apierrors.NewErrInvalidInput(
			fmt.Sprintf("file too large (max %d bytes)", s.maxFileSize))
	}

	key := fmt.Sprintf("%s/%s%s", params.ProjectID, uuid.New(), kind.Ext())
	if err := s.storage.Upload(ctx, key, bytes.NewReader(data)); err != nil {
		s.logger.Error("Dataset service: failed to store file",
			"project_id", params.ProjectID,
			"key", key,
			"error", err.Error())
		s.discard(ctx, key)
		return model.DatasetInfo{}, apierrors.NewErrInvalidInputCause("error processing file", err)
	}

	dataset, err := s.ingest(ctx, params, name, key, kind, data)
	if err != nil {
		s.discard(ctx, key)
		var apiErr *apierrors.APIError
		if errors.As(err, &apiErr) && apiErr.Code == apierrors.CodeInvalidInput {
			return model.DatasetInfo{}, err
		}
		return model.DatasetInfo{}, apierrors.NewErrInvalidInputCause("error processing file", err)
	}

	s.logger.Info("Dataset service: dataset uploaded",
		"dataset_id", dataset.ID,
		"project_id", dataset.ProjectID,
		"rows", dataset.RowCount,
		"columns", dataset.ColumnCount)

	return dataset.Info(), nil
}

func (s *Dataset) ingest(
	ctx context.Context,
	params model.UploadDatasetParams,
	name, key string,
	kind model.FileKind,
	data []byte,
) (model.Dataset, error) {
	frame, err := tabular.Parse(data, tabular.Format(kind))
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to parse file: %w", err)
	}
	if frame.NumRows() == 0 {
		return model.Dataset{}, apierrors.NewErrInvalidInput("file is empty")
	}
	if frame.NumColumns() < minColumns {
		return model.Dataset{}, apierrors.NewErrInvalidInput("file must have at least 2 columns")
	}

	dataset, err := s.datasets.Create(ctx, model.Dataset{
		ID:          uuid.New(),
		ProjectID:   params.ProjectID,
		Name:        name,
		FilePath:    key,
		FileSize:    int64(len(data)),
		FileKind:    kind,
		RowCount:    frame.NumRows(),
		ColumnCount: frame.NumColumns(),
		UploadedAt:  s.now(),
	})
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to create dataset: %w", err)
	}
	return dataset, nil
}

// discard removes a blob written by a failed upload. Failures are logged
// and never replace the error that caused the rollback.
func (s *Dataset) discard(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Warn("Dataset service: failed to remove rejected file",
			"key", key,
			"error", err.Error())
	}
}

func (s *Dataset) List(ctx context.Context, userID, projectID uuid.UUID) ([]model.DatasetInfo, error) {
	if _, err := s.require(ctx, projectID, userID, access.ActionView); err != nil {
		return nil, err
	}

	datasets, err := s.datasets.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}

	infos := make([]model.DatasetInfo, 0, len(datasets))
	for _, d := range datasets {
		infos = append(infos, d.Info())
	}
	return infos, nil
}

// Delete removes the dataset file and then its row. A file that cannot be
// removed is logged and does not block the row deletion.
func (s *Dataset) Delete(ctx context.Context, userID, datasetID uuid.UUID) error {
	dataset, err := s.load(ctx, userID, datasetID, access.ActionDelete)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, dataset.FilePath); err != nil {
		s.logger.Warn("Dataset service: failed to delete file",
			"dataset_id", datasetID,
			"error", err.Error())
	}

	err = s.datasets.Delete(ctx, datasetID)
	if errors.Is(err, model.ErrNotFound) {
		return apierrors.NewErrDatasetNotFound(datasetID)
	}
	if err != nil {
		return fmt.Errorf("failed to delete dataset: %w", err)
	}

	s.logger.Info("Dataset service: dataset deleted",
		"dataset_id", datasetID,
		"project_id", dataset.ProjectID)

	return nil
}

func (s *Dataset) load(ctx context.Context, userID, datasetID uuid.UUID, action access.Action) (model.Dataset, error) {
	return loadDataset(ctx, s.datasets, s.projectGuard, userID, datasetID, action)
}

// loadDataset resolves the dataset and then checks action on its project.
func loadDataset(
	ctx context.Context,
	datasets model.DatasetStore,
	guard projectGuard,
	userID, datasetID uuid.UUID,
	action access.Action,
) (model.Dataset, error) {
	dataset, err := datasets.GetByID(ctx, datasetID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Dataset{}, apierrors.NewErrDatasetNotFound(datasetID)
	}
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to get dataset: %w", err)
	}

	if _, err := guard.require(ctx, dataset.ProjectID, userID, action); err != nil {
		return model.Dataset{}, err
	}
	return dataset, nil
}
