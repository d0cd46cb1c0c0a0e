package tabular

import (
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// TimeSeries is the full table ordered by a date-like column.
type TimeSeries struct {
	Column string
	Rows   []Record
}

// DateColumn returns the first column whose name mentions a date or time.
func DateColumn(f *Frame) (*Column, bool) {
	for _, c := range f.Columns() {
		name := strings.ToLower(c.Name)
		if strings.Contains(name, "date") || strings.Contains(name, "time") {
			return c, true
		}
	}
	return nil, false
}

// ExtractTimeSeries sorts all rows ascending by the date column, with
// missing timestamps last. It reports false when there is no date column or
// any present value in it cannot be read as a timestamp.
func ExtractTimeSeries(f *Frame) (*TimeSeries, bool) {
	col, ok := DateColumn(f)
	if !ok {
		return nil, false
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	stamps := make([]*time.Time, col.Len())
	for i := 0; i < col.Len(); i++ {
		if col.IsNull(i) {
			continue
		}
		ts, err := parseTimestamp(strings.TrimSpace(col.Raw(i)), today)
		if err != nil {
			return nil, false
		}
		stamps[i] = &ts
	}

	order := make([]int, f.NumRows())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ta, tb := stamps[order[a]], stamps[order[b]]
		switch {
		case ta == nil:
			return false
		case tb == nil:
			return true
		default:
			return ta.Before(*tb)
		}
	})

	rows := make([]Record, len(order))
	for k, i := range order {
		rec := f.Record(i)
		if stamps[i] != nil {
			rec[col.Name] = *stamps[i]
		} else {
			rec[col.Name] = nil
		}
		rows[k] = rec
	}

	return &TimeSeries{Column: col.Name, Rows: rows}, true
}

// clockLayouts are the bare time-of-day forms accepted besides dates.
var clockLayouts = []string{"15:04", "15:04:05", "15:04:05.999999999", "3:04PM", "3:04 PM", "3:04:05 PM"}

// parseTimestamp reads s as a date or date-time. A bare time of day is
// placed on day.
func parseTimestamp(s string, day time.Time) (time.Time, error) {
	for _, layout := range clockLayouts {
		clock, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Date(day.Year(), day.Month(), day.Day(),
			clock.Hour(), clock.Minute(), clock.Second(), clock.Nanosecond(), time.UTC), nil
	}
	return dateparse.ParseIn(s, time.UTC)
}
