package bar

import (
	"context"
	"errors"
	"testing"
	"time"

	v1 "github.com/muhammadchandra19/chart-data/internal/domain/bar/v1"
	"github.com/muhammadchandra19/chart-data/pkg/questdb/mock"
	"github.com/muhammadchandra19/chart-data/pkg/timeframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var chicago = time.FixedZone("America/Chicago", -6*60*60)

type barRow struct {
	ts                             time.Time
	open, high, low, close, volume float64
}

func expectBarRows(ctrl *gomock.Controller, rows []barRow, scanErr error) *mock.MockRows {
	mockRows := mock.NewMockRows(ctrl)
	calls := make([]any, 0, len(rows)*2+1)
	for _, row := range rows {
		row := row
		calls = append(calls,
			mockRows.EXPECT().Next().Return(true),
			mockRows.EXPECT().Scan(gomock.Any()).DoAndReturn(func(dest ...any) error {
				if scanErr != nil {
					return scanErr
				}
				*dest[0].(*time.Time) = row.ts
				*dest[1].(*float64) = row.open
				*dest[2].(*float64) = row.high
				*dest[3].(*float64) = row.low
				*dest[4].(*float64) = row.close
				*dest[5].(*float64) = row.volume
				return nil
			}),
		)
		if scanErr != nil {
			break
		}
	}
	if scanErr == nil {
		calls = append(calls, mockRows.EXPECT().Next().Return(false))
		mockRows.EXPECT().Err().Return(nil)
	}
	gomock.InOrder(calls...)
	mockRows.EXPECT().Close()
	return mockRows
}

func TestRepository_GetBars(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		filter   BarFilter
		mockFn   func(ctrl *gomock.Controller, client *mock.MockQuestDBClient)
		assertFn func(t *testing.T, bars v1.List, err error)
	}{
		{
			name:   "minute buckets are labelled with their end",
			filter: BarFilter{SymbolIndex: 2, Timeframe: timeframe.MustParse("1m"), From: from, To: to},
			mockFn: func(ctrl *gomock.Controller, client *mock.MockQuestDBClient) {
				rows := expectBarRows(ctrl, []barRow{
					{ts: time.Date(2024, 3, 1, 10, 1, 0, 0, time.UTC), open: 2, high: 3, low: 1.5, close: 2.5, volume: 7},
					{ts: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), open: 1, high: 2, low: 0.5, close: 2, volume: 3},
				}, nil)
				client.EXPECT().Query(gomock.Any(), gomock.Any(), int32(2), from, to).Return(rows, nil)
			},
			assertFn: func(t *testing.T, bars v1.List, err error) {
				require.NoError(t, err)
				assert.Equal(t, v1.List{
					{Date: time.Date(2024, 3, 1, 10, 1, 0, 0, time.UTC).UnixMilli(), Open: 1, High: 2, Low: 0.5, Close: 2, Volume: 3},
					{Date: time.Date(2024, 3, 1, 10, 2, 0, 0, time.UTC).UnixMilli(), Open: 2, High: 3, Low: 1.5, Close: 2.5, Volume: 7},
				}, bars)
			},
		},
		{
			name:   "day buckets are local midnight",
			filter: BarFilter{SymbolIndex: 2, Timeframe: timeframe.MustParse("1d"), From: from, To: to},
			mockFn: func(ctrl *gomock.Controller, client *mock.MockQuestDBClient) {
				rows := expectBarRows(ctrl, []barRow{
					{ts: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), open: 1, high: 2, low: 0.5, close: 1.5, volume: 100},
				}, nil)
				client.EXPECT().Query(gomock.Any(), gomock.Any(), int32(2), from, to).Return(rows, nil)
			},
			assertFn: func(t *testing.T, bars v1.List, err error) {
				require.NoError(t, err)
				require.Len(t, bars, 1)
				assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, chicago).UnixMilli(), bars[0].Date)
			},
		},
		{
			name:   "no rows",
			filter: BarFilter{SymbolIndex: 2, Timeframe: timeframe.MustParse("5m"), From: from, To: to},
			mockFn: func(ctrl *gomock.Controller, client *mock.MockQuestDBClient) {
				client.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).Return(expectBarRows(ctrl, nil, nil), nil)
			},
			assertFn: func(t *testing.T, bars v1.List, err error) {
				require.NoError(t, err)
				assert.Empty(t, bars)
			},
		},
		{
			name:   "query fails",
			filter: BarFilter{SymbolIndex: 2, Timeframe: timeframe.MustParse("5m"), From: from, To: to},
			mockFn: func(ctrl *gomock.Controller, client *mock.MockQuestDBClient) {
				client.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))
			},
			assertFn: func(t *testing.T, bars v1.List, err error) {
				assert.ErrorContains(t, err, "failed to query bars")
				assert.Nil(t, bars)
			},
		},
		{
			name:   "scan fails",
			filter: BarFilter{SymbolIndex: 2, Timeframe: timeframe.MustParse("5m"), From: from, To: to},
			mockFn: func(ctrl *gomock.Controller, client *mock.MockQuestDBClient) {
				rows := expectBarRows(ctrl, []barRow{{}}, errors.New("bad column"))
				client.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).Return(rows, nil)
			},
			assertFn: func(t *testing.T, bars v1.List, err error) {
				assert.ErrorContains(t, err, "failed to scan bar")
			},
		},
		{
			name:   "unknown unit is rejected before querying",
			filter: BarFilter{SymbolIndex: 2, Timeframe: timeframe.Timeframe{Unit: timeframe.UnitUndefined, Magnitude: 1}},
			mockFn: func(ctrl *gomock.Controller, client *mock.MockQuestDBClient) {},
			assertFn: func(t *testing.T, bars v1.List, err error) {
				assert.ErrorIs(t, err, timeframe.ErrUnsupportedUnit)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := mock.NewMockQuestDBClient(ctrl)
			tc.mockFn(ctrl, client)

			repo := NewRepository(client, "", chicago)
			bars, err := repo.GetBars(context.Background(), tc.filter)
			tc.assertFn(t, bars, err)
		})
	}
}

func TestRepository_barsQuery(t *testing.T) {
	repo := NewRepository(nil, "ohlcv_1s", chicago)

	testCases := []struct {
		name     string
		filter   BarFilter
		contains []string
	}{
		{
			name:   "fixed units floor the shifted timestamp",
			filter: BarFilter{Timeframe: timeframe.MustParse("15m")},
			contains: []string{
				"timestamp_floor('15m', dateadd('s', -1, ts))",
				"GROUP BY bucket",
				"LIMIT 5000",
			},
		},
		{
			name:     "weeks sample by day",
			filter:   BarFilter{Timeframe: timeframe.MustParse("1w"), Limit: 100},
			contains: []string{"SAMPLE BY 1d ALIGN TO CALENDAR TIME ZONE 'America/Chicago'", "LIMIT 100"},
		},
		{
			name:     "months ignore the magnitude",
			filter:   BarFilter{Timeframe: timeframe.MustParse("3mo")},
			contains: []string{"SAMPLE BY 1M ALIGN TO CALENDAR"},
		},
		{
			name:   "regular trading hours",
			filter: BarFilter{Timeframe: timeframe.MustParse("1h"), Session: &DefaultSession},
			contains: []string{
				"hour(to_timezone(ts, 'America/Chicago')) * 3600",
				"> 30600 AND",
				"<= 54900",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			query, args, err := repo.barsQuery(tc.filter)
			require.NoError(t, err)
			assert.Len(t, args, 3)
			for _, fragment := range tc.contains {
				assert.Contains(t, query, fragment)
			}
		})
	}

	query, _, err := repo.barsQuery(BarFilter{Timeframe: timeframe.MustParse("1d")})
	require.NoError(t, err)
	assert.NotContains(t, query, "to_timezone")
}

func TestRepository_GetLastPrices(t *testing.T) {
	at := time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := mock.NewMockQuestDBClient(ctrl)
		mockRows := mock.NewMockRows(ctrl)
		prices := []struct {
			symbol int32
			price  float64
		}{{1, 101.5}, {4, 17.25}}

		i := 0
		mockRows.EXPECT().Next().DoAndReturn(func() bool { return i < len(prices) }).Times(3)
		mockRows.EXPECT().Scan(gomock.Any()).DoAndReturn(func(dest ...any) error {
			*dest[0].(*int32) = prices[i].symbol
			*dest[1].(*float64) = prices[i].price
			i++
			return nil
		}).Times(2)
		mockRows.EXPECT().Err().Return(nil)
		mockRows.EXPECT().Close()
		client.EXPECT().Query(gomock.Any(), "SELECT symbol_index, close FROM ohlcv_1s WHERE ts <= $1 LATEST ON ts PARTITION BY symbol_index", at).Return(mockRows, nil)

		repo := NewRepository(client, "", chicago)
		got, err := repo.GetLastPrices(context.Background(), at)
		require.NoError(t, err)
		assert.Equal(t, map[uint]float64{1: 101.5, 4: 17.25}, got)
	})

	t.Run("rows error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := mock.NewMockQuestDBClient(ctrl)
		mockRows := mock.NewMockRows(ctrl)
		mockRows.EXPECT().Next().Return(false)
		mockRows.EXPECT().Err().Return(errors.New("stream closed"))
		mockRows.EXPECT().Close()
		client.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).Return(mockRows, nil)

		repo := NewRepository(client, "", chicago)
		_, err := repo.GetLastPrices(context.Background(), at)
		assert.ErrorContains(t, err, "stream closed")
	})
}

func TestRepository_GetSymbolDateRanges(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	first := time.Date(2020, 1, 2, 14, 30, 0, 0, time.UTC)
	last := time.Date(2024, 3, 1, 21, 0, 0, 0, time.UTC)

	client := mock.NewMockQuestDBClient(ctrl)
	mockRows := mock.NewMockRows(ctrl)
	gomock.InOrder(
		mockRows.EXPECT().Next().Return(true),
		mockRows.EXPECT().Scan(gomock.Any()).DoAndReturn(func(dest ...any) error {
			*dest[0].(*int32) = 3
			*dest[1].(*time.Time) = first
			*dest[2].(*time.Time) = last
			return nil
		}),
		mockRows.EXPECT().Next().Return(false),
	)
	mockRows.EXPECT().Err().Return(nil)
	mockRows.EXPECT().Close()
	client.EXPECT().Query(gomock.Any(), "SELECT symbol_index, min(ts), max(ts) FROM ohlcv_1s GROUP BY symbol_index ORDER BY symbol_index").Return(mockRows, nil)

	repo := NewRepository(client, "", chicago)
	ranges, err := repo.GetSymbolDateRanges(context.Background())
	require.NoError(t, err)
	require.Len(t, ranges, 1)
	assert.Equal(t, uint(3), ranges[0].SymbolIndex)
	assert.True(t, first.Equal(ranges[0].FirstDate))
	assert.True(t, last.Equal(ranges[0].LastDate))
	assert.Equal(t, chicago, ranges[0].LastDate.Location())
}

func TestRepository_StoreBars(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock.NewMockQuestDBClient(ctrl)
	date := time.Date(2024, 3, 1, 10, 0, 1, 0, time.UTC)
	client.EXPECT().Exec(gomock.Any(),
		"INSERT INTO ohlcv_1s (ts, symbol_index, open, high, low, close, volume) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		date, int32(5), 1.0, 2.0, 0.5, 1.5, 10.0,
	).Return(nil)

	repo := NewRepository(client, "", chicago)
	inserted, err := repo.StoreBars(context.Background(), 5, v1.List{
		{Date: date.UnixMilli(), Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), inserted)
}

func TestParseSession(t *testing.T) {
	s, err := ParseSession("08:30-15:15")
	require.NoError(t, err)
	assert.Equal(t, DefaultSession, s)
	assert.Equal(t, "08:30-15:15", s.String())

	for _, input := range []string{"", "15:15-08:30", "8:30", "00:00-25:00"} {
		_, err := ParseSession(input)
		assert.Error(t, err, input)
	}
}
