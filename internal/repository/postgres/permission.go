package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/defo-server/internal/model"
)

var _ model.PermissionStore = (*PermissionRepository)(nil)

const permissionColumns = `id, user_id, project_id, can_edit, can_delete, can_share, created_at`

type PermissionRepository struct {
	db DB
}

func NewPermissionRepository(db DB) *PermissionRepository {
	return &PermissionRepository{db: db}
}

func (r *PermissionRepository) Get(ctx context.Context, projectID, userID uuid.UUID) (model.Permission, error) {
	query := `SELECT ` + permissionColumns + ` FROM project_permissions WHERE project_id = $1 AND user_id = $2`

	grant, err := scanPermission(r.db.QueryRow(ctx, query, projectID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Permission{}, model.ErrNotFound
		}
		return model.Permission{}, fmt.Errorf("failed to get permission: %w", err)
	}

	return grant, nil
}

// Upsert inserts the grant or, when the user already has one on the
// project, overwrites its flags and keeps its ID.
func (r *PermissionRepository) Upsert(ctx context.Context, grant model.Permission) (model.Permission, error) {
	query := `INSERT INTO project_permissions (` + permissionColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  ON CONFLICT (project_id, user_id) DO UPDATE
			  SET can_edit = EXCLUDED.can_edit,
			      can_delete = EXCLUDED.can_delete,
			      can_share = EXCLUDED.can_share
			  RETURNING ` + permissionColumns

	saved, err := scanPermission(r.db.QueryRow(ctx, query,
		grant.ID, grant.UserID, grant.ProjectID, grant.CanEdit, grant.CanDelete, grant.CanShare, grant.CreatedAt,
	))
	if err != nil {
		if hasCode(err, codeForeignKeyViolation) {
			return model.Permission{}, model.ErrNotFound
		}
		return model.Permission{}, fmt.Errorf("failed to upsert permission: %w", err)
	}

	return saved, nil
}

func (r *PermissionRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Permission, error) {
	query := `SELECT ` + permissionColumns + ` FROM project_permissions WHERE project_id = $1 ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	defer rows.Close()

	var grants []model.Permission
	for rows.Next() {
		grant, err := scanPermission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan permission: %w", err)
		}
		grants = append(grants, grant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate permissions: %w", err)
	}

	return grants, nil
}

func (r *PermissionRepository) Delete(ctx context.Context, projectID, userID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM project_permissions WHERE project_id = $1 AND user_id = $2`, projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete permission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func scanPermission(row rowScanner) (model.Permission, error) {
	var grant model.Permission
	err := row.Scan(
		&grant.ID, &grant.UserID, &grant.ProjectID, &grant.CanEdit, &grant.CanDelete, &grant.CanShare, &grant.CreatedAt,
	)
	return grant, err
}
