package aggregator

import (
	"testing"
	"time"

	v1 "github.com/muhammadchandra19/chart-data/internal/domain/bar/v1"
	"github.com/muhammadchandra19/chart-data/pkg/timeframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min, sec int) int64 {
	return time.Date(2024, 3, 1, hour, min, sec, 0, time.UTC).UnixMilli()
}

func TestMerge(t *testing.T) {
	testCases := []struct {
		name     string
		existing v1.Bar
		incoming v1.Bar
		expected v1.Bar
	}{
		{
			name:     "incoming extends both extremes",
			existing: v1.Bar{Date: 1000, Open: 10, High: 12, Low: 9, Close: 11, Volume: 5},
			incoming: v1.Bar{Date: 1500, Open: 11, High: 14, Low: 8, Close: 13, Volume: 2},
			expected: v1.Bar{Date: 1000, Open: 10, High: 14, Low: 8, Close: 13, Volume: 7},
		},
		{
			name:     "incoming inside the range",
			existing: v1.Bar{Date: 1000, Open: 10, High: 12, Low: 9, Close: 11, Volume: 5},
			incoming: v1.Bar{Date: 1200, Open: 11, High: 11, Low: 10, Close: 10.5, Volume: 0},
			expected: v1.Bar{Date: 1000, Open: 10, High: 12, Low: 9, Close: 10.5, Volume: 5},
		},
		{
			name:     "date is never taken from incoming",
			existing: v1.Bar{Date: 60_000, Open: 1, High: 1, Low: 1, Close: 1, Volume: 1},
			incoming: v1.Bar{Date: 10, Open: 2, High: 2, Low: 2, Close: 2, Volume: 1},
			expected: v1.Bar{Date: 60_000, Open: 1, High: 2, Low: 1, Close: 2, Volume: 2},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			merged := Merge(tc.existing, tc.incoming)
			assert.Equal(t, tc.expected, merged)
			assert.Equal(t, min(tc.existing.Low, tc.incoming.Low), merged.Low)
			assert.Equal(t, max(tc.existing.High, tc.incoming.High), merged.High)
		})
	}
}

func TestOpenBucket(t *testing.T) {
	testCases := []struct {
		name     string
		tf       string
		date     int64
		expected int64
	}{
		{name: "minute rounds up", tf: "1m", date: at(10, 1, 10), expected: at(10, 2, 0)},
		{name: "minute multiple unchanged", tf: "1m", date: at(10, 2, 0), expected: at(10, 2, 0)},
		{name: "five minutes", tf: "5m", date: at(10, 2, 0), expected: at(10, 5, 0)},
		{name: "seconds", tf: "30s", date: at(10, 0, 1), expected: at(10, 0, 30)},
		{name: "hour", tf: "1h", date: at(10, 0, 1), expected: at(11, 0, 0)},
		{name: "day keeps the tick time", tf: "1d", date: at(0, 0, 1), expected: at(0, 0, 1)},
		{name: "week keeps the tick time", tf: "1w", date: at(13, 7, 2), expected: at(13, 7, 2)},
		{name: "month keeps the tick time", tf: "1mo", date: at(9, 30, 0), expected: at(9, 30, 0)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			incoming := v1.Bar{Date: tc.date, Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 3}
			opened, err := OpenBucket(incoming, timeframe.MustParse(tc.tf))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, opened.Date)

			incoming.Date = tc.expected
			assert.Equal(t, incoming, opened)
		})
	}

	t.Run("unknown unit", func(t *testing.T) {
		_, err := OpenBucket(v1.Bar{}, timeframe.Timeframe{Unit: timeframe.UnitUndefined, Magnitude: 1})
		assert.ErrorIs(t, err, timeframe.ErrUnsupportedUnit)
	})
}
