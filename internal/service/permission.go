package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/defo-server/internal/access"
	"github.com/dtroode/defo-server/internal/apierrors"
	"github.com/dtroode/defo-server/internal/logger"
	"github.com/dtroode/defo-server/internal/model"
)

// Permission manages per-user grants on projects.
type Permission struct {
	projectGuard
	users  model.UserStore
	grants model.PermissionStore
	logger *logger.Logger
}

func NewPermission(
	projects model.ProjectStore,
	users model.UserStore,
	grants model.PermissionStore,
	gate *access.Gate,
	logger *logger.Logger,
) *Permission {
	return &Permission{
		projectGuard: projectGuard{projects: projects, gate: gate},
		users:        users,
		grants:       grants,
		logger:       logger,
	}
}

// Share grants the user with params.Email access to the project, replacing
// any grant that user already holds.
func (s *Permission) Share(ctx context.Context, params model.ShareProjectParams) (model.Permission, error) {
	project, err := s.require(ctx, params.ProjectID, params.UserID, access.ActionShare)
	if err != nil {
		return model.Permission{}, err
	}

	email := normalizeEmail(params.Email)
	target, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.Permission{}, apierrors.NewErrUserNotFound(email)
	}
	if err != nil {
		return model.Permission{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	if target.ID == project.OwnerID {
		return model.Permission{}, apierrors.NewErrInvalidInput("cannot share project with its owner")
	}
	if params.UserID != project.OwnerID {
		if err := s.checkDelegation(ctx, project, params, target.ID); err != nil {
			return model.Permission{}, err
		}
	}

	grant, err := s.grants.Upsert(ctx, model.Permission{
		ID:        uuid.New(),
		UserID:    target.ID,
		ProjectID: project.ID,
		CanEdit:   params.CanEdit,
		CanDelete: params.CanDelete,
		CanShare:  params.CanShare,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("Permission service: failed to save grant",
			"project_id", project.ID,
			"target_id", target.ID,
			"error", err.Error())
		return model.Permission{}, fmt.Errorf("failed to save permission: %w", err)
	}

	s.logger.Info("Permission service: project shared",
		"project_id", project.ID,
		"by", params.UserID,
		"target_id", target.ID)

	return grant, nil
}

// checkDelegation limits what a non-owner sharer may hand out: never a change
// to their own grant, and never a flag their own grant lacks.
func (s *Permission) checkDelegation(ctx context.Context, project model.Project, params model.ShareProjectParams, targetID uuid.UUID) error {
	if targetID == params.UserID {
		return apierrors.NewErrForbidden("cannot change your own permissions")
	}

	own, err := s.grants.Get(ctx, project.ID, params.UserID)
	if errors.Is(err, model.ErrNotFound) {
		return apierrors.NewErrForbidden(forbiddenMessage(access.ActionShare))
	}
	if err != nil {
		return fmt.Errorf("failed to get permission: %w", err)
	}

	if (params.CanEdit && !own.CanEdit) || (params.CanDelete && !own.CanDelete) || (params.CanShare && !own.CanShare) {
		s.logger.Warn("Permission service: delegation exceeds own grant",
			"project_id", project.ID,
			"by", params.UserID,
			"target_id", targetID)
		return apierrors.NewErrForbidden("cannot grant permissions you do not hold")
	}
	return nil
}

func (s *Permission) Revoke(ctx context.Context, userID, projectID, targetID uuid.UUID) error {
	if _, err := s.require(ctx, projectID, userID, access.ActionShare); err != nil {
		return err
	}

	err := s.grants.Delete(ctx, projectID, targetID)
	if errors.Is(err, model.ErrNotFound) {
		return apierrors.NewErrGrantNotFound(targetID)
	}
	if err != nil {
		return fmt.Errorf("failed to delete permission: %w", err)
	}

	s.logger.Info("Permission service: grant revoked",
		"project_id", projectID,
		"by", userID,
		"target_id", targetID)

	return nil
}

func (s *Permission) List(ctx context.Context, userID, projectID uuid.UUID) ([]model.Permission, error) {
	if _, err := s.require(ctx, projectID, userID, access.ActionView); err != nil {
		return nil, err
	}

	grants, err := s.grants.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	return grants, nil
}
