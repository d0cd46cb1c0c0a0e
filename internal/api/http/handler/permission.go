package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/defo-server/internal/api/http/response"
	"github.com/dtroode/defo-server/internal/logger"
	"github.com/dtroode/defo-server/internal/model"
)

// PermissionService defines project sharing operations.
type PermissionService interface {
	Share(ctx context.Context, params model.ShareProjectParams) (model.Permission, error)
	Revoke(ctx context.Context, userID, projectID, targetID uuid.UUID) error
	List(ctx context.Context, userID, projectID uuid.UUID) ([]model.Permission, error)
}

// Permission handles /projects/{id}/permissions.
type Permission struct {
	permissionService PermissionService
	contextManager    model.ContextManager
	logger            *logger.Logger
}

func NewPermission(permissionService PermissionService, contextManager model.ContextManager, logger *logger.Logger) *Permission {
	return &Permission{permissionService: permissionService, contextManager: contextManager, logger: logger}
}

type shareRequest struct {
	Email     string `json:"email"`
	CanEdit   bool   `json:"can_edit"`
	CanDelete bool   `json:"can_delete"`
	CanShare  bool   `json:"can_share"`
}

func (h *Permission) Share(w http.ResponseWriter, r *http.Request) {
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

	var req shareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	grant, err := h.permissionService.Share(r.Context(), model.ShareProjectParams{
		UserID:    userID,
		ProjectID: projectID,
		Email:     req.Email,
		CanEdit:   req.CanEdit,
		CanDelete: req.CanDelete,
		CanShare:  req.CanShare,
	})
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, newPermissionResponse(grant))
}

func (h *Permission) List(w http.ResponseWriter, r *http.Request) {
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

	grants, err := h.permissionService.List(r.Context(), userID, projectID)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	out := make([]permissionResponse, 0, len(grants))
	for _, g := range grants {
		out = append(out, newPermissionResponse(g))
	}
	response.JSON(w, http.StatusOK, struct {
		Permissions []permissionResponse `json:"permissions"`
	}{Permissions: out})
}

func (h *Permission) Revoke(w http.ResponseWriter, r *http.Request) {
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
	targetID, err := pathID(r, "uid")
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	if err := h.permissionService.Revoke(r.Context(), userID, projectID, targetID); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.Message(w, "Permission revoked successfully")
}
