package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProjectStore defines persistence operations for projects.
type ProjectStore interface {
	Create(ctx context.Context, project Project) (Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (Project, error)
	Update(ctx context.Context, project Project) (Project, error)
	// Delete removes the project together with its datasets and grants.
	Delete(ctx context.Context, id uuid.UUID) error
	// ListAccessible returns projects the user owns or holds a grant on,
	// filtered by status, newest first, and the total size of that set.
	ListAccessible(ctx context.Context, params ListProjectsParams) ([]Project, int, error)
}

type ProjectStatus string

const (
	ProjectStatusActive   ProjectStatus = "active"
	ProjectStatusArchived ProjectStatus = "archived"
	ProjectStatusDeleted  ProjectStatus = "deleted"
)

// Valid reports whether s is one of the known statuses.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusArchived, ProjectStatusDeleted:
		return true
	}
	return false
}

// Project is a named container of datasets owned by a single user.
type Project struct {
	ID          uuid.UUID
	Name        string
	Description *string
	OwnerID     uuid.UUID
	Status      ProjectStatus
	Tags        *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateProjectParams holds the caller-supplied fields of a new project.
type CreateProjectParams struct {
	OwnerID     uuid.UUID
	Name        string
	Description *string
	Tags        *string
}

// ProjectPatch is a partial update. Nil fields are left unchanged.
type ProjectPatch struct {
	Name        *string
	Description *string
	Status      *ProjectStatus
	Tags        *string
}

// Empty reports whether the patch changes nothing.
func (p ProjectPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Status == nil && p.Tags == nil
}

// Apply copies the present fields of the patch onto project.
func (p ProjectPatch) Apply(project *Project) {
	if p.Name != nil {
		project.Name = *p.Name
	}
	if p.Description != nil {
		project.Description = p.Description
	}
	if p.Status != nil {
		project.Status = *p.Status
	}
	if p.Tags != nil {
		project.Tags = p.Tags
	}
}

type ListProjectsParams struct {
	UserID uuid.UUID
	Status ProjectStatus
	Offset int
	Limit  int
}

// ProjectPage is one page of a project listing.
type ProjectPage struct {
	Projects []Project
	Total    int
	Offset   int
	Limit    int
}
