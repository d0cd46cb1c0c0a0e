package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/dtroode/defo-server/internal/api/http/response"
	"github.com/dtroode/defo-server/internal/apierrors"
	"github.com/dtroode/defo-server/internal/logger"
	"github.com/dtroode/defo-server/internal/model"
	"github.com/dtroode/defo-server/internal/service"
)

// ProjectService defines project operations.
type ProjectService interface {
	Create(ctx context.Context, params model.CreateProjectParams) (model.Project, error)
	Get(ctx context.Context, userID, projectID uuid.UUID) (model.Project, error)
	Update(ctx context.Context, userID, projectID uuid.UUID, patch model.ProjectPatch) (model.Project, error)
	Delete(ctx context.Context, userID, projectID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, offset, limit int) (model.ProjectPage, error)
}

// Project handles the /projects endpoints.
type Project struct {
	projectService ProjectService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewProject(projectService ProjectService, contextManager model.ContextManager, logger *logger.Logger) *Project {
	return &Project{projectService: projectService, contextManager: contextManager, logger: logger}
}

type createProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Tags        *string `json:"tags"`
}

func (h *Project) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(h.contextManager, r)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	var req createProjectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	project, err := h.projectService.Create(r.Context(), model.CreateProjectParams{
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusCreated, newProjectResponse(project))
}

func (h *Project) List(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(h.contextManager, r)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}
	limit, err := queryInt(r, "limit", service.DefaultPageLimit)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	page, err := h.projectService.List(r.Context(), userID, skip, limit)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	resp := projectListResponse{
		Projects: make([]projectResponse, 0, len(page.Projects)),
		Total:    page.Total,
		Skip:     page.Offset,
		Limit:    page.Limit,
	}
	for _, p := range page.Projects {
		resp.Projects = append(resp.Projects, newProjectResponse(p))
	}
	response.JSON(w, http.StatusOK, resp)
}

func (h *Project) Get(w http.ResponseWriter, r *http.Request) {
	userID, projectID, err := h.target(r)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	project, err := h.projectService.Get(r.Context(), userID, projectID)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, newProjectResponse(project))
}

type updateProjectRequest struct {
	Name        *string              `json:"name"`
	Description *string              `json:"description"`
	Status      *model.ProjectStatus `json:"status"`
	Tags        *string              `json:"tags"`
}

func (h *Project) Update(w http.ResponseWriter, r *http.Request) {
	userID, projectID, err := h.target(r)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	var req updateProjectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	project, err := h.projectService.Update(r.Context(), userID, projectID, model.ProjectPatch{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Tags:        req.Tags,
	})
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, newProjectResponse(project))
}

func (h *Project) Delete(w http.ResponseWriter, r *http.Request) {
	userID, projectID, err := h.target(r)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	if err := h.projectService.Delete(r.Context(), userID, projectID); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.Message(w, "Project deleted successfully")
}

func (h *Project) target(r *http.Request) (uuid.UUID, uuid.UUID, error) {
	userID, err := currentUser(h.contextManager, r)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	projectID, err := pathID(r, "id")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return userID, projectID, nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierrors.NewErrInvalidInput(name + " must be an integer")
	}
	return v, nil
}
