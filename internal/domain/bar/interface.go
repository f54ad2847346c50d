package bar

import (
	"context"

	v1 "github.com/muhammadchandra19/chart-data/internal/domain/bar/v1"
)

//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=mock

// Usecase is the chart context: one bar sequence and its meta, fed by history and live ticks.
type Usecase interface {
	Load(ctx context.Context, meta v1.Meta) (bool, error)
	Reset(ctx context.Context, meta v1.Meta, bars v1.List) error
	AppendTick(ctx context.Context, tick v1.Tick) error
	Snapshot() v1.Snapshot
	LastPrices() map[uint]float64
	Close()
}

// Loader fetches pre-aggregated historical bars.
type Loader interface {
	Load(ctx context.Context, req v1.FetchRequest) (v1.FetchResponse, error)
}

// Listener receives chart output. Implementations must not block.
type Listener interface {
	OnSnapshot(ctx context.Context, snapshot v1.Snapshot)
	OnLastPrice(ctx context.Context, symbolIndex uint, price float64)
}

// RangeProvider resolves the stored date range of a symbol.
type RangeProvider interface {
	Range(ctx context.Context, symbolIndex uint) (v1.SymbolDateRange, error)
	Ranges(ctx context.Context) ([]v1.SymbolDateRange, error)
}
