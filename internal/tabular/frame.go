// Package tabular reads CSV and Excel files into an in-memory column store
// and derives previews, per-column statistics and a time-ordered view.
package tabular

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Format identifies the on-disk layout of a tabular file.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
)

// ErrNoColumns is returned when a file has no header row at all.
var ErrNoColumns = errors.New("no columns to parse from file")

// Kind is the inferred type of a column.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int64"
	case KindFloat:
		return "float64"
	default:
		return "object"
	}
}

// Numeric reports whether values of the kind are numbers.
func (k Kind) Numeric() bool {
	return k == KindInt || k == KindFloat
}

// Record maps column names to typed cell values. Missing cells are nil.
type Record map[string]any

// Column holds the raw text of one column plus its inferred kind.
type Column struct {
	Name string
	Kind Kind

	raw  []string
	null []bool
}

// Len returns the number of cells, missing ones included.
func (c *Column) Len() int {
	return len(c.raw)
}

// IsNull reports whether cell i is missing.
func (c *Column) IsNull(i int) bool {
	return c.null[i]
}

// Raw returns the text of cell i as read from the file.
func (c *Column) Raw(i int) string {
	return c.raw[i]
}

// Value returns cell i converted to the column kind, or nil when missing.
func (c *Column) Value(i int) any {
	if c.null[i] {
		return nil
	}
	s := strings.TrimSpace(c.raw[i])
	switch c.Kind {
	case KindInt:
		v, _ := strconv.ParseInt(s, 10, 64)
		return v
	case KindFloat:
		v, _ := parseFloat(s)
		return v
	default:
		return c.raw[i]
	}
}

// Floats returns the non-missing values of a numeric column.
func (c *Column) Floats() []float64 {
	out := make([]float64, 0, len(c.raw))
	for i := range c.raw {
		if c.null[i] {
			continue
		}
		v, err := parseFloat(strings.TrimSpace(c.raw[i]))
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// NonNullCount returns the number of present cells.
func (c *Column) NonNullCount() int {
	n := 0
	for _, isNull := range c.null {
		if !isNull {
			n++
		}
	}
	return n
}

// Frame is a rectangular table with uniquely named columns.
type Frame struct {
	columns []*Column
	rows    int
}

// NumRows returns the number of data rows, header excluded.
func (f *Frame) NumRows() int {
	return f.rows
}

func (f *Frame) NumColumns() int {
	return len(f.columns)
}

// Names returns the column names in file order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.columns))
	for i, c := range f.columns {
		names[i] = c.Name
	}
	return names
}

func (f *Frame) Columns() []*Column {
	return f.columns
}

// Column returns the column with the given name.
func (f *Frame) Column(name string) (*Column, bool) {
	for _, c := range f.columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Record returns row i as a name to value map.
func (f *Frame) Record(i int) Record {
	rec := make(Record, len(f.columns))
	for _, c := range f.columns {
		rec[c.Name] = c.Value(i)
	}
	return rec
}

// Head returns up to n leading rows in file order.
func (f *Frame) Head(n int) []Record {
	if n > f.rows {
		n = f.rows
	}
	if n < 0 {
		n = 0
	}
	out := make([]Record, n)
	for i := 0; i < n; i++ {
		out[i] = f.Record(i)
	}
	return out
}

// newFrame builds a frame from a header and data rows. Rows shorter than the
// header are padded with missing cells; rows longer than the header widen it
// with generated names.
func newFrame(header []string, rows [][]string) (*Frame, error) {
	if len(header) == 0 {
		return nil, ErrNoColumns
	}

	width := len(header)
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	names := uniqueNames(header, width)
	columns := make([]*Column, width)
	for j := range columns {
		columns[j] = &Column{
			Name: names[j],
			raw:  make([]string, len(rows)),
			null: make([]bool, len(rows)),
		}
	}

	for i, row := range rows {
		for j, col := range columns {
			if j >= len(row) {
				col.null[i] = true
				continue
			}
			col.raw[i] = row[j]
			col.null[i] = isNA(row[j])
		}
	}

	for _, col := range columns {
		col.Kind = inferKind(col)
	}

	return &Frame{columns: columns, rows: len(rows)}, nil
}

// uniqueNames fills blank headers with "Unnamed: <index>" and suffixes
// repeated names with ".<n>".
func uniqueNames(header []string, width int) []string {
	names := make([]string, width)
	seen := make(map[string]int, width)
	for j := 0; j < width; j++ {
		name := ""
		if j < len(header) {
			name = strings.TrimSpace(header[j])
		}
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", j)
		}

		candidate := name
		if n, dup := seen[name]; dup {
			for {
				n++
				candidate = fmt.Sprintf("%s.%d", name, n)
				if _, taken := seen[candidate]; !taken {
					break
				}
			}
			seen[name] = n
		}
		if _, ok := seen[candidate]; !ok {
			seen[candidate] = 0
		}
		names[j] = candidate
	}
	return names
}

func trimTrailingEmpty(row []string) []string {
	end := len(row)
	for end > 0 && strings.TrimSpace(row[end-1]) == "" {
		end--
	}
	return row[:end]
}

func isBlankRow(row []string) bool {
	return len(trimTrailingEmpty(row)) == 0
}
