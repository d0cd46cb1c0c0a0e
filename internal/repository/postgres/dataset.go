package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/defo-server/internal/model"
)

var _ model.DatasetStore = (*DatasetRepository)(nil)

const datasetColumns = `id, project_id, name, file_path, file_size, file_type, row_count, column_count, uploaded_at`

type DatasetRepository struct {
	db DB
}

func NewDatasetRepository(db DB) *DatasetRepository {
	return &DatasetRepository{db: db}
}

// Create inserts dataset. A missing project yields model.ErrNotFound.
func (r *DatasetRepository) Create(ctx context.Context, dataset model.Dataset) (model.Dataset, error) {
	query := `INSERT INTO datasets (` + datasetColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING ` + datasetColumns

	saved, err := scanDataset(r.db.QueryRow(ctx, query,
		dataset.ID, dataset.ProjectID, dataset.Name, dataset.FilePath, dataset.FileSize,
		string(dataset.FileKind), dataset.RowCount, dataset.ColumnCount, dataset.UploadedAt,
	))
	if err != nil {
		if hasCode(err, codeForeignKeyViolation) {
			return model.Dataset{}, model.ErrNotFound
		}
		return model.Dataset{}, fmt.Errorf("failed to create dataset: %w", err)
	}

	return saved, nil
}

func (r *DatasetRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Dataset, error) {
	query := `SELECT ` + datasetColumns + ` FROM datasets WHERE id = $1`

	dataset, err := scanDataset(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Dataset{}, model.ErrNotFound
		}
		return model.Dataset{}, fmt.Errorf("failed to get dataset by id: %w", err)
	}

	return dataset, nil
}

func (r *DatasetRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Dataset, error) {
	query := `SELECT ` + datasetColumns + ` FROM datasets WHERE project_id = $1 ORDER BY uploaded_at, id`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}
	defer rows.Close()

	var datasets []model.Dataset
	for rows.Next() {
		dataset, err := scanDataset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dataset: %w", err)
		}
		datasets = append(datasets, dataset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate datasets: %w", err)
	}

	return datasets, nil
}

func (r *DatasetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM datasets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete dataset: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func scanDataset(row rowScanner) (model.Dataset, error) {
	var (
		dataset model.Dataset
		kind    string
	)
	err := row.Scan(
		&dataset.ID, &dataset.ProjectID, &dataset.Name, &dataset.FilePath, &dataset.FileSize,
		&kind, &dataset.RowCount, &dataset.ColumnCount, &dataset.UploadedAt,
	)
	dataset.FileKind = model.FileKind(kind)
	return dataset, err
}
