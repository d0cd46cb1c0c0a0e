package model

import (
	"github.com/google/uuid"

	"github.com/dtroode/defo-server/internal/tabular"
)

// PreviewRows is the fixed number of leading rows returned by a preview.
const PreviewRows = 5

// DatasetPreview is the head of a dataset with its dimensions.
type DatasetPreview struct {
	DatasetID    uuid.UUID
	Columns      []string
	Rows         []tabular.Record
	TotalRows    int
	TotalColumns int
}

// DatasetAnalysis is the per-column profile of a dataset. TimeSeries is nil
// when the dataset has no usable date column.
type DatasetAnalysis struct {
	DatasetID    uuid.UUID
	Columns      []string
	Statistics   []tabular.ColumnStats
	TimeSeries   *tabular.TimeSeries
	TotalRows    int
	TotalColumns int
}
