package handler

import (
	"bytes"
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/defo-server/internal/model"
	"github.com/dtroode/defo-server/internal/tabular"
)

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

func newTokenResponse(pair model.TokenPair) tokenResponse {
	return tokenResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken, TokenType: "bearer"}
}

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserResponse(u model.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, FullName: u.FullName, CreatedAt: u.CreatedAt}
}

type projectResponse struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	Description *string             `json:"description"`
	Tags        *string             `json:"tags"`
	OwnerID     uuid.UUID           `json:"owner_id"`
	Status      model.ProjectStatus `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func newProjectResponse(p model.Project) projectResponse {
	return projectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Tags:        p.Tags,
		OwnerID:     p.OwnerID,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type projectListResponse struct {
	Projects []projectResponse `json:"projects"`
	Total    int               `json:"total"`
	Skip     int               `json:"skip"`
	Limit    int               `json:"limit"`
}

type permissionResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ProjectID uuid.UUID `json:"project_id"`
	CanEdit   bool      `json:"can_edit"`
	CanDelete bool      `json:"can_delete"`
	CanShare  bool      `json:"can_share"`
	CreatedAt time.Time `json:"created_at"`
}

func newPermissionResponse(p model.Permission) permissionResponse {
	return permissionResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		ProjectID: p.ProjectID,
		CanEdit:   p.CanEdit,
		CanDelete: p.CanDelete,
		CanShare:  p.CanShare,
		CreatedAt: p.CreatedAt,
	}
}

type datasetResponse struct {
	ID          uuid.UUID      `json:"id"`
	ProjectID   uuid.UUID      `json:"project_id"`
	Name        string         `json:"name"`
	FileSize    int64          `json:"file_size"`
	FileType    model.FileKind `json:"file_type"`
	RowCount    int            `json:"row_count"`
	ColumnCount int            `json:"column_count"`
	UploadedAt  time.Time      `json:"uploaded_at"`
}

func newDatasetResponse(d model.DatasetInfo) datasetResponse {
	return datasetResponse{
		ID:          d.ID,
		ProjectID:   d.ProjectID,
		Name:        d.Name,
		FileSize:    d.FileSize,
		FileType:    d.FileKind,
		RowCount:    d.RowCount,
		ColumnCount: d.ColumnCount,
		UploadedAt:  d.UploadedAt,
	}
}

type datasetListResponse struct {
	Datasets []datasetResponse `json:"datasets"`
}

type previewResponse struct {
	Columns      []string        `json:"columns"`
	Preview      []orderedObject `json:"preview"`
	TotalRows    int             `json:"total_rows"`
	TotalColumns int             `json:"total_columns"`
}

func newPreviewResponse(p model.DatasetPreview) previewResponse {
	return previewResponse{
		Columns:      p.Columns,
		Preview:      jsonRecords(p.Columns, p.Rows),
		TotalRows:    p.TotalRows,
		TotalColumns: p.TotalColumns,
	}
}

type analysisResponse struct {
	DatasetID      uuid.UUID       `json:"dataset_id"`
	Columns        []string        `json:"columns"`
	Statistics     orderedObject   `json:"statistics"`
	TimeSeriesData []orderedObject `json:"time_series_data"`
	TotalRows      int             `json:"total_rows"`
	TotalColumns   int             `json:"total_columns"`
}

type numericStatsResponse struct {
	Min   *float64 `json:"min"`
	Max   *float64 `json:"max"`
	Mean  *float64 `json:"mean"`
	Std   *float64 `json:"std"`
	Count int      `json:"count"`
}

type categoricalStatsResponse struct {
	UniqueCount int           `json:"unique_count"`
	MostCommon  orderedObject `json:"most_common"`
}

func newAnalysisResponse(a model.DatasetAnalysis) analysisResponse {
	stats := make(orderedObject, 0, len(a.Statistics))
	for _, cs := range a.Statistics {
		var v any
		switch {
		case cs.Numeric != nil:
			v = numericStatsResponse{
				Min:   finite(cs.Numeric.Min),
				Max:   finite(cs.Numeric.Max),
				Mean:  finite(cs.Numeric.Mean),
				Std:   finite(cs.Numeric.Std),
				Count: cs.Numeric.Count,
			}
		case cs.Categorical != nil:
			common := make(orderedObject, 0, len(cs.Categorical.MostCommon))
			for _, vc := range cs.Categorical.MostCommon {
				common = append(common, objectField{Key: vc.Value, Value: vc.Count})
			}
			v = categoricalStatsResponse{UniqueCount: cs.Categorical.UniqueCount, MostCommon: common}
		}
		stats = append(stats, objectField{Key: cs.Name, Value: v})
	}

	resp := analysisResponse{
		DatasetID:    a.DatasetID,
		Columns:      a.Columns,
		Statistics:   stats,
		TotalRows:    a.TotalRows,
		TotalColumns: a.TotalColumns,
	}
	if a.TimeSeries != nil {
		resp.TimeSeriesData = jsonRecords(a.Columns, a.TimeSeries.Rows)
	}
	return resp
}

// jsonRecords emits rows as objects in column order, replacing values JSON
// cannot carry (NaN, ±Inf) with null.
func jsonRecords(columns []string, rows []tabular.Record) []orderedObject {
	out := make([]orderedObject, len(rows))
	for i, row := range rows {
		rec := make(orderedObject, 0, len(columns))
		for _, name := range columns {
			v := row[name]
			if f, ok := v.(float64); ok {
				if p := finite(f); p == nil {
					v = nil
				}
			}
			rec = append(rec, objectField{Key: name, Value: v})
		}
		out[i] = rec
	}
	return out
}

func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

type objectField struct {
	Key   string
	Value any
}

// orderedObject is a JSON object that keeps its keys in insertion order.
type orderedObject []objectField

func (o orderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
