package tabular

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTimeSeries_SortsAscending(t *testing.T) {
	input := "Order Date,amount\n" +
		"2024-01-05,5\n" +
		"2024-01-02,2\n" +
		"2024-01-09,9\n" +
		"2024-01-01,1\n" +
		"2024-01-07,7\n" +
		"2024-01-03,3\n" +
		"2024-01-10,10\n" +
		"2024-01-04,4\n" +
		"2024-01-08,8\n" +
		"2024-01-06,6\n"
	f, err := Parse([]byte(input), FormatCSV)
	require.NoError(t, err)

	ts, ok := ExtractTimeSeries(f)
	require.True(t, ok)
	assert.Equal(t, "Order Date", ts.Column)
	require.Len(t, ts.Rows, 10)

	for i, rec := range ts.Rows {
		assert.Equal(t, int64(i+1), rec["amount"])
		stamp, isTime := rec["Order Date"].(time.Time)
		require.True(t, isTime)
		if i > 0 {
			prev := ts.Rows[i-1]["Order Date"].(time.Time)
			assert.False(t, stamp.Before(prev))
		}
	}
}

func TestExtractTimeSeries_MissingStampsSortLast(t *testing.T) {
	input := "timestamp,v\n2024-03-02,b\n,x\n2024-03-01,a\n"
	f, err := Parse([]byte(input), FormatCSV)
	require.NoError(t, err)

	ts, ok := ExtractTimeSeries(f)
	require.True(t, ok)
	require.Len(t, ts.Rows, 3)
	assert.Equal(t, "a", ts.Rows[0]["v"])
	assert.Equal(t, "b", ts.Rows[1]["v"])
	assert.Equal(t, "x", ts.Rows[2]["v"])
	assert.Nil(t, ts.Rows[2]["timestamp"])
}

func TestExtractTimeSeries_Absent(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "no date column", input: "a,b\n1,2\n"},
		{name: "unparseable value", input: "created_date,b\n2024-01-01,1\nsoon,2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.input), FormatCSV)
			require.NoError(t, err)

			ts, ok := ExtractTimeSeries(f)
			assert.False(t, ok)
			assert.Nil(t, ts)
		})
	}
}

func TestDateColumn_FirstMatchWins(t *testing.T) {
	f, err := Parse([]byte("id,UpdateTime,birth_date\n1,2024-01-01,2024-01-01\n"), FormatCSV)
	require.NoError(t, err)

	col, ok := DateColumn(f)
	require.True(t, ok)
	assert.Equal(t, "UpdateTime", col.Name)
}

func TestExtractTimeSeries_TimeOfDay(t *testing.T) {
	f, err := Parse([]byte("time,visitors\n11:45,2\n10:30,1\n23:05:10,3\n"), FormatCSV)
	require.NoError(t, err)

	ts, ok := ExtractTimeSeries(f)
	require.True(t, ok)
	require.Len(t, ts.Rows, 3)

	want := []struct{ hour, minute, second int }{{10, 30, 0}, {11, 45, 0}, {23, 5, 10}}
	for i, w := range want {
		stamp, isTime := ts.Rows[i]["time"].(time.Time)
		require.True(t, isTime)
		assert.Equal(t, w.hour, stamp.Hour())
		assert.Equal(t, w.minute, stamp.Minute())
		assert.Equal(t, w.second, stamp.Second())
		assert.Equal(t, int64(i+1), ts.Rows[i]["visitors"])
	}
}

func TestParseTimestamp(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2024-01-02", want: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{in: "10:30", want: time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)},
		{in: "7:15 PM", want: time.Date(2024, 3, 1, 19, 15, 0, 0, time.UTC)},
		{in: "not a time", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseTimestamp(tt.in, day)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}
