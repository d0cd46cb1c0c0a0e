package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PermissionStore defines persistence operations for project grants.
// There is at most one grant per (project, user) pair.
type PermissionStore interface {
	Get(ctx context.Context, projectID, userID uuid.UUID) (Permission, error)
	// Upsert creates the grant or overwrites the flags of the existing one.
	Upsert(ctx context.Context, permission Permission) (Permission, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]Permission, error)
	Delete(ctx context.Context, projectID, userID uuid.UUID) error
}

// Permission grants a non-owner user access to a project.
// Holding any grant implies view and upload rights.
type Permission struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProjectID uuid.UUID
	CanEdit   bool
	CanDelete bool
	CanShare  bool
	CreatedAt time.Time
}

// ShareProjectParams describes a grant request addressed by the grantee's email.
type ShareProjectParams struct {
	UserID    uuid.UUID
	ProjectID uuid.UUID
	Email     string
	CanEdit   bool
	CanDelete bool
	CanShare  bool
}
