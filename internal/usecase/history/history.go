package history

import (
	"context"
	"time"

	"github.com/muhammadchandra19/chart-data/internal/domain/bar"
	v1 "github.com/muhammadchandra19/chart-data/internal/domain/bar/v1"
	barRepo "github.com/muhammadchandra19/chart-data/internal/infrastructure/questdb/bar"
	"github.com/muhammadchandra19/chart-data/internal/usecase/aggregator"
	"github.com/muhammadchandra19/chart-data/pkg/errors"
	"github.com/muhammadchandra19/chart-data/pkg/logger"
	"github.com/muhammadchandra19/chart-data/pkg/timeframe"
	"golang.org/x/sync/errgroup"
)

// windowPadDays widens every window so weekends and holidays do not leave it short.
const windowPadDays = 2

var _ bar.Loader = (*Usecase)(nil)

// Usecase is the historical loader backed by the bar repository.
type Usecase struct {
	barRepository barRepo.BarRepository
	ranges        bar.RangeProvider
	classifier    timeframe.Classifier
	sessions      barRepo.SessionSet
	logger        logger.Interface
	now           func() time.Time
}

// NewUsecase creates a new history usecase.
func NewUsecase(
	barRepository barRepo.BarRepository,
	ranges bar.RangeProvider,
	classifier timeframe.Classifier,
	sessions barRepo.SessionSet,
	logger logger.Interface,
) *Usecase {
	return &Usecase{
		barRepository: barRepository,
		ranges:        ranges,
		classifier:    classifier,
		sessions:      sessions,
		logger:        logger,
		now:           time.Now,
	}
}

// Load fetches the bars of req together with the last price of every symbol at the end date.
// A zero end date loads up to the last stored bar of the symbol.
func (u *Usecase) Load(ctx context.Context, req v1.FetchRequest) (v1.FetchResponse, error) {
	end, err := u.endDate(ctx, req)
	if err != nil {
		return v1.FetchResponse{}, errors.TracerFromError(err)
	}

	filter := barRepo.BarFilter{
		SymbolIndex: req.SymbolIndex,
		Timeframe:   req.Timeframe,
		From:        req.Window.Start(end).AddDate(0, 0, -windowPadDays),
		To:          end,
	}
	if req.RTH {
		session := u.sessions.For(req.SymbolIndex)
		filter.Session = &session
	}

	var (
		bars       v1.List
		lastPrices map[uint]float64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bars, err = u.barRepository.GetBars(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		lastPrices, err = u.barRepository.GetLastPrices(gctx, end)
		return err
	})
	if err := g.Wait(); err != nil {
		return v1.FetchResponse{}, errors.TracerFromError(err)
	}

	if req.Timeframe.Unit == timeframe.Week {
		bars, err = aggregator.Fold(bars, req.Timeframe, u.classifier)
		if err != nil {
			return v1.FetchResponse{}, errors.TracerFromError(err)
		}
	}

	u.logger.DebugContext(ctx, "history loaded",
		logger.NewField("symbol_index", req.SymbolIndex),
		logger.NewField("timeframe", req.Timeframe.String()),
		logger.NewField("from", filter.From),
		logger.NewField("to", filter.To),
		logger.NewField("bars", len(bars)),
	)

	return v1.FetchResponse{Bars: bars, LastPrices: lastPrices}, nil
}

func (u *Usecase) endDate(ctx context.Context, req v1.FetchRequest) (time.Time, error) {
	if req.EndDate != 0 {
		return time.UnixMilli(req.EndDate).In(u.classifier.Location()), nil
	}

	dateRange, err := u.ranges.Range(ctx, req.SymbolIndex)
	if err != nil {
		if errors.ErrorCodeEquals(err, errors.SymbolRangeNotFoundError) {
			return u.now().In(u.classifier.Location()), nil
		}
		return time.Time{}, err
	}
	return dateRange.LastDate, nil
}
