package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/defo-server/internal/api/http/response"
	"github.com/dtroode/defo-server/internal/apierrors"
	"github.com/dtroode/defo-server/internal/logger"
	"github.com/dtroode/defo-server/internal/model"
)

// DatasetService defines dataset ingestion and management operations.
type DatasetService interface {
	Upload(ctx context.Context, params model.UploadDatasetParams, file io.Reader) (model.DatasetInfo, error)
	List(ctx context.Context, userID, projectID uuid.UUID) ([]model.DatasetInfo, error)
	Delete(ctx context.Context, userID, datasetID uuid.UUID) error
}

// AnalysisService defines read-back operations on stored datasets.
type AnalysisService interface {
	Preview(ctx context.Context, userID, datasetID uuid.UUID) (model.DatasetPreview, error)
	Analyze(ctx context.Context, userID, datasetID uuid.UUID) (model.DatasetAnalysis, error)
}

// multipartOverhead is the room left for form fields and part headers on
// top of the file size limit.
const multipartOverhead = 1 << 20

// Dataset handles dataset upload, listing, preview, analysis and deletion.
type Dataset struct {
	datasetService  DatasetService
	analysisService AnalysisService
	contextManager  model.ContextManager
	maxFileSize     int64
	logger          *logger.Logger
}

func NewDataset(
	datasetService DatasetService,
	analysisService AnalysisService,
	contextManager model.ContextManager,
	maxFileSize int64,
	logger *logger.Logger,
) *Dataset {
	return &Dataset{
		datasetService:  datasetService,
		analysisService: analysisService,
		contextManager:  contextManager,
		maxFileSize:     maxFileSize,
		logger:          logger,
	}
}

// Upload reads a multipart form with a "file" part and a "name" field.
func (h *Dataset) Upload(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(h.contextManager, r)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}
	projectID, err := pathID(r, "id")
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	limit := h.maxFileSize + multipartOverhead
	tooLarge := apierrors.NewErrInvalidInput(fmt.Sprintf("file too large (max %d bytes)", h.maxFileSize))
	if r.ContentLength > limit {
		response.Error(w, h.logger, tooLarge)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(multipartOverhead); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.Error(w, h.logger, tooLarge)
			return
		}
		response.Error(w, h.logger, apierrors.NewErrInvalidInputCause("invalid multipart form", err))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, h.logger, apierrors.NewErrInvalidInput("file is required"))
		return
	}
	defer file.Close()

	info, err := h.datasetService.Upload(r.Context(), model.UploadDatasetParams{
		UserID:    userID,
		ProjectID: projectID,
		FileName:  header.Filename,
		Name:      r.FormValue("name"),
	}, file)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, newDatasetResponse(info))
}

func (h *Dataset) List(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(h.contextManager, r)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}
	projectID, err := pathID(r, "id")
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	infos, err := h.datasetService.List(r.Context(), userID, projectID)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	resp := datasetListResponse{Datasets: make([]datasetResponse, 0, len(infos))}
	for _, info := range infos {
		resp.Datasets = append(resp.Datasets, newDatasetResponse(info))
	}
	response.JSON(w, http.StatusOK, resp)
}

func (h *Dataset) Preview(w http.ResponseWriter, r *http.Request) {
	userID, datasetID, err := h.target(r)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	preview, err := h.analysisService.Preview(r.Context(), userID, datasetID)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, newPreviewResponse(preview))
}

func (h *Dataset) Analysis(w http.ResponseWriter, r *http.Request) {
	userID, datasetID, err := h.target(r)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	analysis, err := h.analysisService.Analyze(r.Context(), userID, datasetID)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, newAnalysisResponse(analysis))
}

func (h *Dataset) Delete(w http.ResponseWriter, r *http.Request) {
	userID, datasetID, err := h.target(r)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	if err := h.datasetService.Delete(r.Context(), userID, datasetID); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.Message(w, "Dataset deleted successfully")
}

func (h *Dataset) target(r *http.Request) (uuid.UUID, uuid.UUID, error) {
	userID, err := currentUser(h.contextManager, r)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	datasetID, err := pathID(r, "id")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return userID, datasetID, nil
}
