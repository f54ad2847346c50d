package chart

import (
	"context"
	"maps"
	"sync"

	"github.com/muhammadchandra19/chart-data/internal/domain/bar"
	v1 "github.com/muhammadchandra19/chart-data/internal/domain/bar/v1"
	"github.com/muhammadchandra19/chart-data/internal/usecase/aggregator"
	"github.com/muhammadchandra19/chart-data/pkg/errors"
	"github.com/muhammadchandra19/chart-data/pkg/logger"
	"github.com/muhammadchandra19/chart-data/pkg/timeframe"
	"github.com/muhammadchandra19/chart-data/pkg/util"
)

var _ bar.Usecase = (*Usecase)(nil)

// Usecase is one chart context. It owns the bar series and meta of the active chart and the
// last traded price per symbol.
//
// Every load bumps a generation. A fetch started under an older generation is cancelled and
// its result dropped, so at most one fetch commits per generation.
type Usecase struct {
	loader     bar.Loader
	listener   bar.Listener
	classifier timeframe.Classifier
	logger     logger.Interface

	mu         sync.Mutex
	meta       v1.Meta
	series     *aggregator.Series
	generation uint64
	cancel     context.CancelFunc
	loading    bool
	lastPrices map[uint]float64
}

// NewUsecase creates a chart context with an empty series.
func NewUsecase(loader bar.Loader, listener bar.Listener, classifier timeframe.Classifier, logger logger.Interface) *Usecase {
	return &Usecase{
		loader:     loader,
		listener:   listener,
		classifier: classifier,
		logger:     logger,
		lastPrices: make(map[uint]float64),
	}
}

// Load replaces the chart with meta and fetches its history. It blocks until the fetch
// completes and reports whether the result was committed. A fetch failure commits an empty
// series; only an unusable meta returns an error.
func (u *Usecase) Load(ctx context.Context, meta v1.Meta) (bool, error) {
	if err := validateMeta(meta); err != nil {
		return false, err
	}
	if util.GetRequestID(ctx) == "" {
		ctx = util.WithRequestID(ctx, "")
	}

	fetchCtx, gen := u.begin(ctx, meta)
	req := v1.NewFetchRequest(meta)

	u.logger.InfoContext(ctx, "loading chart history",
		logger.NewField("symbol_index", meta.SymbolIndex),
		logger.NewField("timeframe", meta.Timeframe.String()),
		logger.NewField("window", req.Window.String()),
		logger.NewField("generation", gen),
	)

	resp, err := u.loader.Load(fetchCtx, req)
	return u.commit(ctx, gen, meta, resp, err), nil
}

// begin supersedes the current generation and marks the chart as loading.
func (u *Usecase) begin(ctx context.Context, meta v1.Meta) (context.Context, uint64) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.cancel != nil {
		u.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	u.cancel = cancel
	u.generation++
	u.meta = meta
	u.series = aggregator.NewSeries(meta.Timeframe, u.classifier, nil)
	u.loading = true
	u.notifySnapshot(ctx)

	return fetchCtx, u.generation
}

func (u *Usecase) commit(ctx context.Context, gen uint64, meta v1.Meta, resp v1.FetchResponse, fetchErr error) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	if gen != u.generation {
		u.logger.DebugContext(ctx, "discarding superseded chart history",
			logger.NewField("generation", gen),
			logger.NewField("current_generation", u.generation),
		)
		return false
	}
	if u.cancel != nil {
		u.cancel()
		u.cancel = nil
	}
	u.loading = false

	if fetchErr != nil {
		u.logger.ErrorContext(ctx, errors.TracerFromError(fetchErr),
			logger.NewField("symbol_index", meta.SymbolIndex),
			logger.NewField("timeframe", meta.Timeframe.String()),
		)
		u.series = aggregator.NewSeries(meta.Timeframe, u.classifier, nil)
		u.notifySnapshot(ctx)
		return true
	}

	u.series = aggregator.NewSeries(meta.Timeframe, u.classifier, resp.Bars)
	if last, ok := resp.Bars.Last(); ok {
		u.meta.EndDate = last.Date
	}
	if resp.LastPrices != nil {
		u.lastPrices = maps.Clone(resp.LastPrices)
		for symbol, price := range u.lastPrices {
			u.listener.OnLastPrice(ctx, symbol, price)
		}
	}
	u.notifySnapshot(ctx)

	u.logger.InfoContext(ctx, "chart history committed",
		logger.NewField("symbol_index", meta.SymbolIndex),
		logger.NewField("timeframe", meta.Timeframe.String()),
		logger.NewField("bars", len(resp.Bars)),
		logger.NewField("generation", gen),
	)
	return true
}

// Reset adopts meta and bars directly, superseding any fetch in flight.
func (u *Usecase) Reset(ctx context.Context, meta v1.Meta, bars v1.List) error {
	if err := validateMeta(meta); err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if u.cancel != nil {
		u.cancel()
		u.cancel = nil
	}
	u.generation++
	u.meta = meta
	u.series = aggregator.NewSeries(meta.Timeframe, u.classifier, bars)
	u.loading = false
	u.notifySnapshot(ctx)
	return nil
}

// AppendTick records the tick close as the symbol's last price and, when the tick belongs to
// the active symbol, aggregates it into the series. Ticks are ignored while history loads.
func (u *Usecase) AppendTick(ctx context.Context, tick v1.Tick) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.lastPrices[tick.SymbolIndex] = tick.Close
	u.listener.OnLastPrice(ctx, tick.SymbolIndex, tick.Close)

	if u.series == nil || u.loading || tick.SymbolIndex != u.meta.SymbolIndex {
		return nil
	}

	outcome, err := u.series.Append(tick.Bar())
	if err != nil {
		return errors.TracerFromError(errors.NewErrorDetailsWithObject(err.Error(), errors.ChartAggregationError, "timeframe", tick))
	}

	if outcome == aggregator.Opened {
		u.logger.DebugContext(ctx, "opened bar",
			logger.NewField("symbol_index", tick.SymbolIndex),
			logger.NewField("timeframe", u.meta.Timeframe.String()),
			logger.NewField("bars", u.series.Len()),
		)
	}
	u.notifySnapshot(ctx)
	return nil
}

// Snapshot returns the current chart state.
func (u *Usecase) Snapshot() v1.Snapshot {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.snapshot()
}

// Meta returns the meta of the active chart.
func (u *Usecase) Meta() v1.Meta {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.meta
}

// LastPrices returns a copy of the last traded price per symbol.
func (u *Usecase) LastPrices() map[uint]float64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return maps.Clone(u.lastPrices)
}

// Close cancels the fetch in flight, if any.
func (u *Usecase) Close() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.cancel != nil {
		u.cancel()
		u.cancel = nil
	}
}

func (u *Usecase) snapshot() v1.Snapshot {
	s := v1.Snapshot{
		Generation: u.generation,
		Meta:       u.meta,
		Loading:    u.loading,
	}
	if u.series == nil {
		return s
	}
	s.Closed = u.series.Closed()
	if open, ok := u.series.Open(); ok {
		s.Open = &open
	}
	return s
}

func (u *Usecase) notifySnapshot(ctx context.Context) {
	u.listener.OnSnapshot(ctx, u.snapshot())
}

func validateMeta(meta v1.Meta) error {
	if !meta.Timeframe.Unit.Valid() || meta.Timeframe.Magnitude < 1 {
		return errors.TracerFromError(errors.NewErrorDetailsWithObject(
			"invalid chart timeframe: "+meta.Timeframe.String(), errors.ChartInvalidMetaError, "timeframe", meta))
	}
	return nil
}
