package model

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DatasetStore defines persistence operations for datasets.
type DatasetStore interface {
	Create(ctx context.Context, dataset Dataset) (Dataset, error)
	GetByID(ctx context.Context, id uuid.UUID) (Dataset, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]Dataset, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type FileKind string

const (
	FileKindCSV  FileKind = "csv"
	FileKindXLSX FileKind = "xlsx"
	FileKindXLS  FileKind = "xls"
)

// AllowedExtensions lists accepted upload extensions in display order.
var AllowedExtensions = []string{".csv", ".xlsx", ".xls"}

// FileKindFromName derives the file kind from the extension of name.
// The comparison is case-insensitive.
func FileKindFromName(name string) (FileKind, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".csv":
		return FileKindCSV, nil
	case ".xlsx":
		return FileKindXLSX, nil
	case ".xls":
		return FileKindXLS, nil
	}
	return "", fmt.Errorf("unsupported extension %q", ext)
}

// Ext returns the canonical extension of the kind, including the dot.
func (k FileKind) Ext() string {
	return "." + string(k)
}

// Dataset is an uploaded tabular file attached to a project.
// FilePath is the blob key and never leaves the service layer.
type Dataset struct {
	ID          uuid.UUID
	ProjectID   uuid.UUID
	Name        string
	FilePath    string
	FileSize    int64
	FileKind    FileKind
	RowCount    int
	ColumnCount int
	UploadedAt  time.Time
}

// DatasetInfo is the public projection of a Dataset.
type DatasetInfo struct {
	ID          uuid.UUID
	ProjectID   uuid.UUID
	Name        string
	FileSize    int64
	FileKind    FileKind
	RowCount    int
	ColumnCount int
	UploadedAt  time.Time
}

func (d Dataset) Info() DatasetInfo {
	return DatasetInfo{
		ID:          d.ID,
		ProjectID:   d.ProjectID,
		Name:        d.Name,
		FileSize:    d.FileSize,
		FileKind:    d.FileKind,
		RowCount:    d.RowCount,
		ColumnCount: d.ColumnCount,
		UploadedAt:  d.UploadedAt,
	}
}

// UploadDatasetParams describes one upload request.
type UploadDatasetParams struct {
	UserID    uuid.UUID
	ProjectID uuid.UUID
	FileName  string
	Name      string
}
