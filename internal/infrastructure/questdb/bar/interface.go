package bar

import (
	"context"
	"time"

	v1 "github.com/muhammadchandra19/chart-data/internal/domain/bar/v1"
)

//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock

// BarRepository reads OHLCV history sampled from one-second source rows.
type BarRepository interface {
	GetBars(ctx context.Context, filter BarFilter) (v1.List, error)
	GetLastPrices(ctx context.Context, at time.Time) (map[uint]float64, error)
	GetSymbolDateRanges(ctx context.Context) ([]v1.SymbolDateRange, error)
	StoreBars(ctx context.Context, symbolIndex uint, bars v1.List) (int64, error)
}
