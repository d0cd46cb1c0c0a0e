// Package access decides which project operations a user may perform.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/defo-server/internal/model"
)

// Action describes the kind of operation a user wants to perform on a project.
type Action string

const (
	ActionView   Action = "view"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
	ActionShare  Action = "share"
	ActionUpload Action = "upload"
)

// Can reports whether userID may perform action on project. grant is the
// user's permission on the project, or nil when there is none.
//
// The owner may do anything. Any grant allows view and upload; edit, delete
// and share need the matching flag.
func Can(project model.Project, userID uuid.UUID, grant *model.Permission, action Action) bool {
	if project.OwnerID == userID {
		return true
	}
	if grant == nil || grant.UserID != userID || grant.ProjectID != project.ID {
		return false
	}

	switch action {
	case ActionView, ActionUpload:
		return true
	case ActionEdit:
		return grant.CanEdit
	case ActionDelete:
		return grant.CanDelete
	case ActionShare:
		return grant.CanShare
	default:
		return false
	}
}

// Gate looks up grants and applies Can.
type Gate struct {
	grants model.PermissionStore
}

func NewGate(grants model.PermissionStore) *Gate {
	return &Gate{grants: grants}
}

// Allowed reports whether userID may perform action on project. A denial is
// not an error; errors come only from the grant lookup.
func (g *Gate) Allowed(ctx context.Context, project model.Project, userID uuid.UUID, action Action) (bool, error) {
	if project.OwnerID == userID {
		return true, nil
	}

	grant, err := g.grants.Get(ctx, project.ID, userID)
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get permission: %w", err)
	}

	return Can(project, userID, &grant, action), nil
}
