package barrange

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/muhammadchandra19/chart-data/internal/domain/bar"
	v1 "github.com/muhammadchandra19/chart-data/internal/domain/bar/v1"
	barRepo "github.com/muhammadchandra19/chart-data/internal/infrastructure/questdb/bar"
	"github.com/muhammadchandra19/chart-data/pkg/errors"
	"github.com/muhammadchandra19/chart-data/pkg/logger"
	"github.com/robfig/cron/v3"
)

// DefaultSchedule refreshes the cached ranges once an hour.
const DefaultSchedule = "@every 1h"

var _ bar.RangeProvider = (*Usecase)(nil)

// Usecase caches the stored date range of every symbol and refreshes it on a cron schedule.
type Usecase struct {
	barRepository barRepo.BarRepository
	logger        logger.Interface
	cron          *cron.Cron

	mu     sync.RWMutex
	ranges map[uint]v1.SymbolDateRange
	loaded bool
}

// NewUsecase creates a new bar range usecase.
func NewUsecase(barRepository barRepo.BarRepository, logger logger.Interface) *Usecase {
	return &Usecase{
		barRepository: barRepository,
		logger:        logger,
		cron:          cron.New(),
		ranges:        make(map[uint]v1.SymbolDateRange),
	}
}

// Refresh reloads every range from the repository.
func (u *Usecase) Refresh(ctx context.Context) error {
	ranges, err := u.barRepository.GetSymbolDateRanges(ctx)
	if err != nil {
		return errors.TracerFromError(err)
	}

	next := make(map[uint]v1.SymbolDateRange, len(ranges))
	for _, r := range ranges {
		next[r.SymbolIndex] = r
	}

	u.mu.Lock()
	u.ranges = next
	u.loaded = true
	u.mu.Unlock()

	u.logger.InfoContext(ctx, "symbol date ranges refreshed", logger.NewField("symbols", len(next)))
	return nil
}

// Range returns the range of symbolIndex, loading the cache on first use.
func (u *Usecase) Range(ctx context.Context, symbolIndex uint) (v1.SymbolDateRange, error) {
	if err := u.ensureLoaded(ctx); err != nil {
		return v1.SymbolDateRange{}, err
	}

	u.mu.RLock()
	r, ok := u.ranges[symbolIndex]
	u.mu.RUnlock()
	if !ok {
		return v1.SymbolDateRange{}, errors.TracerFromError(errors.NewErrorDetails(
			fmt.Sprintf("no stored bars for symbol %d", symbolIndex),
			errors.SymbolRangeNotFoundError,
			"symbol_index",
		))
	}
	return r, nil
}

// Ranges returns every cached range ordered by symbol index.
func (u *Usecase) Ranges(ctx context.Context) ([]v1.SymbolDateRange, error) {
	if err := u.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	u.mu.RLock()
	out := make([]v1.SymbolDateRange, 0, len(u.ranges))
	for _, r := range u.ranges {
		out = append(out, r)
	}
	u.mu.RUnlock()

	slices.SortFunc(out, func(a, b v1.SymbolDateRange) int {
		return int(a.SymbolIndex) - int(b.SymbolIndex)
	})
	return out, nil
}

func (u *Usecase) ensureLoaded(ctx context.Context) error {
	u.mu.RLock()
	loaded := u.loaded
	u.mu.RUnlock()
	if loaded {
		return nil
	}
	return u.Refresh(ctx)
}

// Start registers the refresh job on schedule and starts the scheduler.
func (u *Usecase) Start(ctx context.Context, schedule string) error {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	if _, err := u.cron.AddFunc(schedule, func() {
		if err := u.Refresh(ctx); err != nil {
			u.logger.ErrorContext(ctx, err, logger.NewField("job", "bar_range_refresh"))
		}
	}); err != nil {
		return errors.Wrap(err, "register bar range refresh")
	}

	u.cron.Start()
	u.logger.InfoContext(ctx, "bar range scheduler started", logger.NewField("schedule", schedule))
	return nil
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (u *Usecase) Stop() {
	<-u.cron.Stop().Done()
	u.logger.Info("bar range scheduler stopped")
}
