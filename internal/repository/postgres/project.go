package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/defo-server/internal/model"
)

var _ model.ProjectStore = (*ProjectRepository)(nil)

const projectColumns = `p.id, p.name, p.description, p.owner_id, p.status, p.tags, p.created_at, p.updated_at`

// accessibleProjects matches projects owned by $1 or shared with $1
// through a grant, with status $2.
const accessibleProjects = `FROM projects p
	WHERE p.status = $2
	  AND (p.owner_id = $1 OR EXISTS (
		SELECT 1 FROM project_permissions pp WHERE pp.project_id = p.id AND pp.user_id = $1
	  ))`

type ProjectRepository struct {
	db DB
}

func NewProjectRepository(db DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project model.Project) (model.Project, error) {
	query := `INSERT INTO projects AS p (id, name, description, owner_id, status, tags, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING ` + projectColumns

	saved, err := scanProject(r.db.QueryRow(ctx, query,
		project.ID, project.Name, project.Description, project.OwnerID, string(project.Status),
		project.Tags, project.CreatedAt, project.UpdatedAt,
	))
	if err != nil {
		if hasCode(err, codeForeignKeyViolation) {
			return model.Project{}, model.ErrNotFound
		}
		return model.Project{}, fmt.Errorf("failed to create project: %w", err)
	}

	return saved, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects p WHERE p.id = $1`

	project, err := scanProject(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Project{}, model.ErrNotFound
		}
		return model.Project{}, fmt.Errorf("failed to get project by id: %w", err)
	}

	return project, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project model.Project) (model.Project, error) {
	query := `UPDATE projects AS p
			  SET name = $2, description = $3, status = $4, tags = $5, updated_at = $6
			  WHERE p.id = $1
			  RETURNING ` + projectColumns

	saved, err := scanProject(r.db.QueryRow(ctx, query,
		project.ID, project.Name, project.Description, string(project.Status), project.Tags, project.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Project{}, model.ErrNotFound
		}
		return model.Project{}, fmt.Errorf("failed to update project: %w", err)
	}

	return saved, nil
}

// Delete removes the project. Datasets and grants go with it through
// ON DELETE CASCADE.
func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) ListAccessible(ctx context.Context, params model.ListProjectsParams) ([]model.Project, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) ` + accessibleProjects
	if err := r.db.QueryRow(ctx, countQuery, params.UserID, string(params.Status)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	query := `SELECT ` + projectColumns + ` ` + accessibleProjects + `
			  ORDER BY p.created_at DESC, p.id
			  OFFSET $3 LIMIT $4`

	rows, err := r.db.Query(ctx, query, params.UserID, string(params.Status), params.Offset, params.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]model.Project, 0, params.Limit)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate projects: %w", err)
	}

	return projects, total, nil
}

func scanProject(row rowScanner) (model.Project, error) {
	var (
		project model.Project
		status  string
	)
	err := row.Scan(
		&project.ID, &project.Name, &project.Description, &project.OwnerID, &status,
		&project.Tags, &project.CreatedAt, &project.UpdatedAt,
	)
	project.Status = model.ProjectStatus(status)
	return project, err
}
