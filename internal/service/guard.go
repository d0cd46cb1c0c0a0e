package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/defo-server/internal/access"
	"github.com/dtroode/defo-server/internal/apierrors"
	"github.com/dtroode/defo-server/internal/model"
)

// projectGuard resolves a project and checks the caller's capability on it.
// Existence is always checked first, so a missing project is NotFound even
// for callers who could never see it.
type projectGuard struct {
	projects model.ProjectStore
	gate     *access.Gate
}

func (g projectGuard) require(ctx context.Context, projectID, userID uuid.UUID, action access.Action) (model.Project, error) {
	project, err := g.projects.GetByID(ctx, projectID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Project{}, apierrors.NewErrProjectNotFound(projectID)
	}
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to get project: %w", err)
	}

	ok, err := g.gate.Allowed(ctx, project, userID, action)
	if err != nil {
		return model.Project{}, err
	}
	if !ok {
		return model.Project{}, apierrors.NewErrForbidden(forbiddenMessage(action))
	}

	return project, nil
}

func forbiddenMessage(action access.Action) string {
	switch action {
	case access.ActionView:
		return "not enough permissions to view this project"
	case access.ActionUpload:
		return "not enough permissions to upload to this project"
	default:
		return fmt.Sprintf("not enough permissions to %s in this project", action)
	}
}
