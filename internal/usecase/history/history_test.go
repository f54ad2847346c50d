package history

import (
	"context"
	"errors"
	"testing"
	"time"

	barMock "github.com/muhammadchandra19/chart-data/internal/domain/bar/mock"
	v1 "github.com/muhammadchandra19/chart-data/internal/domain/bar/v1"
	barRepo "github.com/muhammadchandra19/chart-data/internal/infrastructure/questdb/bar"
	repoMock "github.com/muhammadchandra19/chart-data/internal/infrastructure/questdb/bar/mock"
	pkgErrors "github.com/muhammadchandra19/chart-data/pkg/errors"
	mockLogger "github.com/muhammadchandra19/chart-data/pkg/logger/mock"
	"github.com/muhammadchandra19/chart-data/pkg/timeframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var chicago = time.FixedZone("CST", -6*60*60)

func TestUsecase_Load(t *testing.T) {
	end := time.Date(2024, 3, 8, 15, 15, 0, 0, chicago)
	now := time.Date(2024, 3, 9, 12, 0, 0, 0, chicago)
	bars := v1.List{
		{Date: end.Add(-time.Minute).UnixMilli(), Open: 10, High: 11, Low: 9, Close: 10.5, Volume: 3},
		{Date: end.UnixMilli(), Open: 10.5, High: 12, Low: 10, Close: 11, Volume: 5},
	}
	lastPrices := map[uint]float64{1: 11, 2: 4200}
	custom := barRepo.Session{Start: 9 * time.Hour, End: 16 * time.Hour}

	testCases := []struct {
		name     string
		req      v1.FetchRequest
		mockFn   func(repo *repoMock.MockBarRepository, ranges *barMock.MockRangeProvider)
		assertFn func(t *testing.T, resp v1.FetchResponse, err error)
	}{
		{
			name: "explicit end date",
			req: v1.FetchRequest{
				SymbolIndex: 1,
				Timeframe:   timeframe.MustParse("1m"),
				Window:      timeframe.Window{Days: 2},
				EndDate:     end.UnixMilli(),
			},
			mockFn: func(repo *repoMock.MockBarRepository, ranges *barMock.MockRangeProvider) {
				repo.EXPECT().GetBars(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, filter barRepo.BarFilter) (v1.List, error) {
						assert.Equal(t, uint(1), filter.SymbolIndex)
						assert.True(t, filter.To.Equal(end))
						assert.True(t, filter.From.Equal(end.AddDate(0, 0, -4)))
						assert.Nil(t, filter.Session)
						return bars, nil
					})
				repo.EXPECT().GetLastPrices(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, at time.Time) (map[uint]float64, error) {
						assert.True(t, at.Equal(end))
						return lastPrices, nil
					})
			},
			assertFn: func(t *testing.T, resp v1.FetchResponse, err error) {
				require.NoError(t, err)
				assert.Equal(t, bars, resp.Bars)
				assert.Equal(t, lastPrices, resp.LastPrices)
			},
		},
		{
			name: "missing end date resolves to the last stored bar",
			req: v1.FetchRequest{
				SymbolIndex: 1,
				Timeframe:   timeframe.MustParse("5m"),
				Window:      timeframe.Window{Days: 5},
			},
			mockFn: func(repo *repoMock.MockBarRepository, ranges *barMock.MockRangeProvider) {
				ranges.EXPECT().Range(gomock.Any(), uint(1)).Return(v1.SymbolDateRange{
					SymbolIndex: 1,
					FirstDate:   end.AddDate(-1, 0, 0),
					LastDate:    end,
				}, nil)
				repo.EXPECT().GetBars(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, filter barRepo.BarFilter) (v1.List, error) {
						assert.True(t, filter.To.Equal(end))
						assert.True(t, filter.From.Equal(end.AddDate(0, 0, -7)))
						return bars, nil
					})
				repo.EXPECT().GetLastPrices(gomock.Any(), gomock.Any()).Return(lastPrices, nil)
			},
			assertFn: func(t *testing.T, resp v1.FetchResponse, err error) {
				require.NoError(t, err)
				assert.Len(t, resp.Bars, 2)
			},
		},
		{
			name: "unknown symbol range falls back to now",
			req: v1.FetchRequest{
				SymbolIndex: 7,
				Timeframe:   timeframe.MustParse("1h"),
				Window:      timeframe.Window{Days: 20},
			},
			mockFn: func(repo *repoMock.MockBarRepository, ranges *barMock.MockRangeProvider) {
				ranges.EXPECT().Range(gomock.Any(), uint(7)).Return(v1.SymbolDateRange{},
					pkgErrors.TracerFromError(pkgErrors.NewErrorDetails("no data", pkgErrors.SymbolRangeNotFoundError, "symbol_index")))
				repo.EXPECT().GetBars(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, filter barRepo.BarFilter) (v1.List, error) {
						assert.True(t, filter.To.Equal(now))
						return nil, nil
					})
				repo.EXPECT().GetLastPrices(gomock.Any(), gomock.Any()).Return(map[uint]float64{}, nil)
			},
			assertFn: func(t *testing.T, resp v1.FetchResponse, err error) {
				require.NoError(t, err)
				assert.Empty(t, resp.Bars)
			},
		},
		{
			name: "range lookup failure",
			req: v1.FetchRequest{
				SymbolIndex: 7,
				Timeframe:   timeframe.MustParse("1h"),
				Window:      timeframe.Window{Days: 20},
			},
			mockFn: func(repo *repoMock.MockBarRepository, ranges *barMock.MockRangeProvider) {
				ranges.EXPECT().Range(gomock.Any(), uint(7)).Return(v1.SymbolDateRange{}, errors.New("connection reset"))
			},
			assertFn: func(t *testing.T, resp v1.FetchResponse, err error) {
				assert.EqualError(t, err, "connection reset")
			},
		},
		{
			name: "regular trading hours use the symbol session",
			req: v1.FetchRequest{
				SymbolIndex: 2,
				Timeframe:   timeframe.MustParse("15m"),
				Window:      timeframe.Window{Days: 10},
				EndDate:     end.UnixMilli(),
				RTH:         true,
			},
			mockFn: func(repo *repoMock.MockBarRepository, ranges *barMock.MockRangeProvider) {
				repo.EXPECT().GetBars(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, filter barRepo.BarFilter) (v1.List, error) {
						require.NotNil(t, filter.Session)
						assert.Equal(t, custom, *filter.Session)
						return bars, nil
					})
				repo.EXPECT().GetLastPrices(gomock.Any(), gomock.Any()).Return(lastPrices, nil)
			},
			assertFn: func(t *testing.T, resp v1.FetchResponse, err error) {
				require.NoError(t, err)
			},
		},
		{
			name: "regular trading hours default session",
			req: v1.FetchRequest{
				SymbolIndex: 1,
				Timeframe:   timeframe.MustParse("15m"),
				Window:      timeframe.Window{Days: 10},
				EndDate:     end.UnixMilli(),
				RTH:         true,
			},
			mockFn: func(repo *repoMock.MockBarRepository, ranges *barMock.MockRangeProvider) {
				repo.EXPECT().GetBars(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, filter barRepo.BarFilter) (v1.List, error) {
						require.NotNil(t, filter.Session)
						assert.Equal(t, barRepo.DefaultSession, *filter.Session)
						return bars, nil
					})
				repo.EXPECT().GetLastPrices(gomock.Any(), gomock.Any()).Return(lastPrices, nil)
			},
			assertFn: func(t *testing.T, resp v1.FetchResponse, err error) {
				require.NoError(t, err)
			},
		},
		{
			name: "weeks are folded from daily rows",
			req: v1.FetchRequest{
				SymbolIndex: 1,
				Timeframe:   timeframe.MustParse("1w"),
				Window:      timeframe.Window{Days: 756},
				EndDate:     end.UnixMilli(),
			},
			mockFn: func(repo *repoMock.MockBarRepository, ranges *barMock.MockRangeProvider) {
				day := func(d int, price float64) v1.Bar {
					return v1.Bar{
						Date: time.Date(2024, 3, d, 15, 15, 0, 0, chicago).UnixMilli(),
						Open: price, High: price + 1, Low: price - 1, Close: price, Volume: 1,
					}
				}
				repo.EXPECT().GetBars(gomock.Any(), gomock.Any()).Return(v1.List{
					day(4, 10), day(5, 11), day(8, 12), day(11, 13),
				}, nil)
				repo.EXPECT().GetLastPrices(gomock.Any(), gomock.Any()).Return(lastPrices, nil)
			},
			assertFn: func(t *testing.T, resp v1.FetchResponse, err error) {
				require.NoError(t, err)
				require.Len(t, resp.Bars, 2)
				assert.Equal(t, 10.0, resp.Bars[0].Open)
				assert.Equal(t, 13.0, resp.Bars[0].High)
				assert.Equal(t, 9.0, resp.Bars[0].Low)
				assert.Equal(t, 12.0, resp.Bars[0].Close)
				assert.Equal(t, 3.0, resp.Bars[0].Volume)
				assert.Equal(t, 13.0, resp.Bars[1].Close)
			},
		},
		{
			name: "bar query failure",
			req: v1.FetchRequest{
				SymbolIndex: 1,
				Timeframe:   timeframe.MustParse("1m"),
				Window:      timeframe.Window{Days: 2},
				EndDate:     end.UnixMilli(),
			},
			mockFn: func(repo *repoMock.MockBarRepository, ranges *barMock.MockRangeProvider) {
				repo.EXPECT().GetBars(gomock.Any(), gomock.Any()).Return(nil, errors.New("table does not exist"))
				repo.EXPECT().GetLastPrices(gomock.Any(), gomock.Any()).Return(lastPrices, nil).AnyTimes()
			},
			assertFn: func(t *testing.T, resp v1.FetchResponse, err error) {
				assert.EqualError(t, err, "table does not exist")
				assert.Empty(t, resp.Bars)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := repoMock.NewMockBarRepository(ctrl)
			ranges := barMock.NewMockRangeProvider(ctrl)
			log := mockLogger.NewMockInterface(ctrl)
			log.EXPECT().DebugContext(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

			tc.mockFn(repo, ranges)

			uc := NewUsecase(repo, ranges, timeframe.NewClassifier(chicago), barRepo.SessionSet{
				Default:  barRepo.DefaultSession,
				BySymbol: map[uint]barRepo.Session{2: custom},
			}, log)
			uc.now = func() time.Time { return now }

			resp, err := uc.Load(context.Background(), tc.req)
			tc.assertFn(t, resp, err)
		})
	}
}
