package tabular

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TopValues is the number of most frequent values reported per categorical column.
const TopValues = 5

// NumericStats summarizes a numeric column. Std is the sample standard
// deviation and is zero when fewer than two values are present.
type NumericStats struct {
	Min   float64
	Max   float64
	Mean  float64
	Std   float64
	Count int
}

// ValueCount is one entry of a frequency table.
type ValueCount struct {
	Value string
	Count int
}

// CategoricalStats summarizes a non-numeric column.
type CategoricalStats struct {
	UniqueCount int
	MostCommon  []ValueCount
}

// ColumnStats holds exactly one of Numeric or Categorical.
type ColumnStats struct {
	Name        string
	Numeric     *NumericStats
	Categorical *CategoricalStats
}

// Describe computes statistics for every column in file order.
func Describe(f *Frame) []ColumnStats {
	out := make([]ColumnStats, 0, f.NumColumns())
	for _, c := range f.Columns() {
		cs := ColumnStats{Name: c.Name}
		if c.Kind.Numeric() {
			cs.Numeric = numericStats(c)
		} else {
			cs.Categorical = categoricalStats(c)
		}
		out = append(out, cs)
	}
	return out
}

func numericStats(c *Column) *NumericStats {
	values := c.Floats()
	if len(values) == 0 {
		return &NumericStats{}
	}

	s := &NumericStats{
		Min:   floats.Min(values),
		Max:   floats.Max(values),
		Mean:  stat.Mean(values, nil),
		Count: len(values),
	}
	if len(values) > 1 {
		s.Std = stat.StdDev(values, nil)
	}
	return s
}

// categoricalStats counts distinct present values. Ties in the top list keep
// the order in which values first appear.
func categoricalStats(c *Column) *CategoricalStats {
	counts := make(map[string]int)
	var order []string
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			continue
		}
		v := c.Raw(i)
		if _, ok := counts[v]; !ok {
			order = append(order, v)
		}
		counts[v]++
	}

	top := make([]ValueCount, 0, TopValues)
	for _, v := range order {
		vc := ValueCount{Value: v, Count: counts[v]}
		pos := len(top)
		for pos > 0 && top[pos-1].Count < vc.Count {
			pos--
		}
		if pos >= TopValues {
			continue
		}
		top = append(top, ValueCount{})
		copy(top[pos+1:], top[pos:])
		top[pos] = vc
		if len(top) > TopValues {
			top = top[:TopValues]
		}
	}

	return &CategoricalStats{
		UniqueCount: len(order),
		MostCommon:  top,
	}
}
