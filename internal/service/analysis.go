package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/dtroode/defo-server/internal/access"
	"github.com/dtroode/defo-server/internal/apierrors"
	"github.com/dtroode/defo-server/internal/logger"
	"github.com/dtroode/defo-server/internal/model"
	"github.com/dtroode/defo-server/internal/tabular"
)

// Analysis reads stored datasets back for preview and profiling. Every call
// re-reads the file; nothing is cached.
type Analysis struct {
	projectGuard
	datasets model.DatasetStore
	storage  model.Storage
	logger   *logger.Logger
}

func NewAnalysis(
	projects model.ProjectStore,
	datasets model.DatasetStore,
	storage model.Storage,
	gate *access.Gate,
	logger *logger.Logger,
) *Analysis {
	return &Analysis{
		projectGuard: projectGuard{projects: projects, gate: gate},
		datasets:     datasets,
		storage:      storage,
		logger:       logger,
	}
}

func (s *Analysis) Preview(ctx context.Context, userID, datasetID uuid.UUID) (model.DatasetPreview, error) {
	frame, err := s.frame(ctx, userID, datasetID)
	if err != nil {
		return model.DatasetPreview{}, err
	}

	return model.DatasetPreview{
		DatasetID:    datasetID,
		Columns:      frame.Names(),
		Rows:         frame.Head(model.PreviewRows),
		TotalRows:    frame.NumRows(),
		TotalColumns: frame.NumColumns(),
	}, nil
}

func (s *Analysis) Analyze(ctx context.Context, userID, datasetID uuid.UUID) (model.DatasetAnalysis, error) {
	frame, err := s.frame(ctx, userID, datasetID)
	if err != nil {
		return model.DatasetAnalysis{}, err
	}

	result := model.DatasetAnalysis{
		DatasetID:    datasetID,
		Columns:      frame.Names(),
		Statistics:   tabular.Describe(frame),
		TotalRows:    frame.NumRows(),
		TotalColumns: frame.NumColumns(),
	}
	if ts, ok := tabular.ExtractTimeSeries(frame); ok {
		result.TimeSeries = ts
	}

	s.logger.Debug("Analysis service: dataset analyzed",
		"dataset_id", datasetID,
		"time_series", result.TimeSeries != nil)

	return result, nil
}

func (s *Analysis) frame(ctx context.Context, userID, datasetID uuid.UUID) (*tabular.Frame, error) {
	dataset, err := loadDataset(ctx, s.datasets, s.projectGuard, userID, datasetID, access.ActionView)
	if err != nil {
		return nil, err
	}

	rc, err := s.storage.Download(ctx, dataset.FilePath)
	if errors.Is(err, model.ErrBlobNotFound) {
		s.logger.Warn("Analysis service: dataset file is missing",
			"dataset_id", datasetID,
			"key", dataset.FilePath)
		return nil, apierrors.NewErrDatasetFileNotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to download dataset file: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, apierrors.NewErrInvalidInputCause("error reading file", err)
	}

	frame, err := tabular.Parse(data, tabular.Format(dataset.FileKind))
	if err != nil {
		return nil, apierrors.NewErrInvalidInputCause("error reading file", err)
	}
	return frame, nil
}
