package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/defo-server/internal/access"
	"github.com/dtroode/defo-server/internal/apierrors"
	"github.com/dtroode/defo-server/internal/logger"
	"github.com/dtroode/defo-server/internal/model"
	"github.com/dtroode/defo-server/internal/validation"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

type Project struct {
	projectGuard
	datasets model.DatasetStore
	storage  model.Storage
	logger   *logger.Logger
	now      func() time.Time
}

func NewProject(
	projects model.ProjectStore,
	datasets model.DatasetStore,
	storage model.Storage,
	gate *access.Gate,
	logger *logger.Logger,
) *Project {
	return &Project{
		projectGuard: projectGuard{projects: projects, gate: gate},
		datasets:     datasets,
		storage:      storage,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *Project) Create(ctx context.Context, params model.CreateProjectParams) (model.Project, error) {
	if err := validation.ValidateProjectName(params.Name); err != nil {
		return model.Project{}, apierrors.NewErrInvalidInput(err.Error())
	}

	now := s.now()
	project, err := s.projects.Create(ctx, model.Project{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(params.Name),
		Description: params.Description,
		OwnerID:     params.OwnerID,
		Status:      model.ProjectStatusActive,
		Tags:        params.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if errors.Is(err, model.ErrNotFound) {
		return model.Project{}, apierrors.NewErrUserNotFound(params.OwnerID.String())
	}
	if err != nil {
		s.logger.Error("Project service: failed to create project",
			"owner_id", params.OwnerID,
			"error", err.Error())
		return model.Project{}, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("Project service: project created",
		"project_id", project.ID,
		"owner_id", project.OwnerID)

	return project, nil
}

func (s *Project) Get(ctx context.Context, userID, projectID uuid.UUID) (model.Project, error) {
	return s.require(ctx, projectID, userID, access.ActionView)
}

// Update applies patch. Each present field is validated on its own.
func (s *Project) Update(ctx context.Context, userID, projectID uuid.UUID, patch model.ProjectPatch) (model.Project, error) {
	project, err := s.require(ctx, projectID, userID, access.ActionEdit)
	if err != nil {
		return model.Project{}, err
	}

	if patch.Name != nil {
		if err := validation.ValidateProjectName(*patch.Name); err != nil {
			return model.Project{}, apierrors.NewErrInvalidInput(err.Error())
		}
		name := strings.TrimSpace(*patch.Name)
		patch.Name = &name
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return model.Project{}, apierrors.NewErrInvalidInput(
			fmt.Sprintf("invalid status %q", *patch.Status))
	}
	if patch.Empty() {
		return project, nil
	}

	patch.Apply(&project)
	project.UpdatedAt = s.now()

	updated, err := s.projects.Update(ctx, project)
	if errors.Is(err, model.ErrNotFound) {
		return model.Project{}, apierrors.NewErrProjectNotFound(projectID)
	}
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to update project: %w", err)
	}

	s.logger.Debug("Project service: project updated",
		"project_id", projectID,
		"user_id", userID)

	return updated, nil
}

// Delete removes the project, its datasets and its grants. Only the owner
// may delete a project; grants never confer this right.
func (s *Project) Delete(ctx context.Context, userID, projectID uuid.UUID) error {
	project, err := s.projects.GetByID(ctx, projectID)
	if errors.Is(err, model.ErrNotFound) {
		return apierrors.NewErrProjectNotFound(projectID)
	}
	if err != nil {
		return fmt.Errorf("failed to get project: %w", err)
	}
	if project.OwnerID != userID {
		return apierrors.NewErrForbidden("only project owner can delete project")
	}

	datasets, err := s.datasets.ListByProject(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to list datasets: %w", err)
	}

	err = s.projects.Delete(ctx, projectID)
	if errors.Is(err, model.ErrNotFound) {
		return apierrors.NewErrProjectNotFound(projectID)
	}
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	for _, d := range datasets {
		if err := s.storage.Delete(ctx, d.FilePath); err != nil {
			s.logger.Warn("Project service: failed to delete dataset blob",
				"project_id", projectID,
				"dataset_id", d.ID,
				"error", err.Error())
		}
	}

	s.logger.Info("Project service: project deleted",
		"project_id", projectID,
		"datasets", len(datasets))

	return nil
}

// List returns one page of the active projects the user owns or was granted.
func (s *Project) List(ctx context.Context, userID uuid.UUID, offset, limit int) (model.ProjectPage, error) {
	if offset < 0 {
		return model.ProjectPage{}, apierrors.NewErrInvalidInput("skip must be non-negative")
	}
	if limit < 1 || limit > MaxPageLimit {
		return model.ProjectPage{}, apierrors.NewErrInvalidInput(
			fmt.Sprintf("limit must be between 1 and %d", MaxPageLimit))
	}

	projects, total, err := s.projects.ListAccessible(ctx, model.ListProjectsParams{
		UserID: userID,
		Status: model.ProjectStatusActive,
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		return model.ProjectPage{}, fmt.Errorf("failed to list projects: %w", err)
	}

	return model.ProjectPage{
		Projects: projects,
		Total:    total,
		Offset:   offset,
		Limit:    limit,
	}, nil
}
