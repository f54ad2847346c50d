package bar

import (
	"context"
	"fmt"
	"slices"
	"time"

	v1 "github.com/muhammadchandra19/chart-data/internal/domain/bar/v1"
	"github.com/muhammadchandra19/chart-data/pkg/questdb"
	"github.com/muhammadchandra19/chart-data/pkg/timeframe"
)

// DefaultTable holds one-second OHLCV rows stamped at the end of each second.
const DefaultTable = "ohlcv_1s"

var columns = []string{"ts", "symbol_index", "open", "high", "low", "close", "volume"}

// Repository represents the repository for bar history.
type Repository struct {
	client questdb.QuestDBClient
	table  string
	loc    *time.Location
}

var _ BarRepository = (*Repository)(nil)

// NewRepository creates a new bar repository. Calendar buckets and sessions are evaluated in loc.
func NewRepository(client questdb.QuestDBClient, table string, loc *time.Location) *Repository {
	if table == "" {
		table = DefaultTable
	}
	if loc == nil {
		loc = time.Local
	}
	return &Repository{client: client, table: table, loc: loc}
}

// GetBars returns the sampled bars of filter in ascending date order.
//
// Second, minute and hour bars are labelled with the end of their bucket, so a bar dated 10:01
// holds rows stamped in (10:00, 10:01]. Day and month bars are labelled with local midnight of
// their first day. Weeks are sampled by day; callers fold them.
func (r *Repository) GetBars(ctx context.Context, filter BarFilter) (v1.List, error) {
	query, args, err := r.barsQuery(filter)
	if err != nil {
		return nil, err
	}

	rows, err := r.client.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bars: %w", err)
	}
	defer rows.Close()

	width, _ := filter.Timeframe.DurationMillis()
	var bars v1.List
	for rows.Next() {
		var (
			ts  time.Time
			bar v1.Bar
		)
		if err := rows.Scan(&ts, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume); err != nil {
			return nil, fmt.Errorf("failed to scan bar: %w", err)
		}
		if filter.Timeframe.IsFixed() {
			bar.Date = ts.UnixMilli() + width
		} else {
			bar.Date = r.wallClock(ts).UnixMilli()
		}
		bars = append(bars, bar)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bar rows: %w", err)
	}

	slices.Reverse(bars)
	return bars, nil
}

func (r *Repository) barsQuery(filter BarFilter) (string, []any, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	args := []any{int32(filter.SymbolIndex), filter.From.UTC(), filter.To.UTC()}
	where := "symbol_index = $1 AND ts > $2 AND ts <= $3" + r.sessionClause(filter.Session)

	switch filter.Timeframe.Unit {
	case timeframe.Second, timeframe.Minute, timeframe.Hour:
		// rows are end-stamped: shift back one second so (start, end] lands in one bucket
		query := fmt.Sprintf(`SELECT timestamp_floor('%s', dateadd('s', -1, ts)) AS bucket,
	first(open), max(high), min(low), last(close), sum(volume)
FROM %s
WHERE %s
GROUP BY bucket
ORDER BY bucket DESC
LIMIT %d`, filter.Timeframe, r.table, where, limit)
		return query, args, nil
	case timeframe.Day, timeframe.Week, timeframe.Month:
		query := fmt.Sprintf(`SELECT ts, first(open), max(high), min(low), last(close), sum(volume)
FROM %s
WHERE %s
SAMPLE BY %s ALIGN TO CALENDAR TIME ZONE '%s'
ORDER BY ts DESC
LIMIT %d`, r.table, where, sampleUnit(filter.Timeframe), r.loc, limit)
		return query, args, nil
	default:
		return "", nil, fmt.Errorf("%w: %d", timeframe.ErrUnsupportedUnit, filter.Timeframe.Unit)
	}
}

// sampleUnit maps calendar timeframes to QuestDB SAMPLE BY units. Weeks are sampled by day and
// months ignore the magnitude.
func sampleUnit(tf timeframe.Timeframe) string {
	switch tf.Unit {
	case timeframe.Month:
		return "1M"
	default:
		return "1d"
	}
}

func (r *Repository) sessionClause(session *Session) string {
	if session == nil {
		return ""
	}
	local := fmt.Sprintf("to_timezone(ts, '%s')", r.loc)
	secondOfDay := fmt.Sprintf("(hour(%[1]s) * 3600 + minute(%[1]s) * 60 + second(%[1]s))", local)
	return fmt.Sprintf(" AND %s > %d AND %s <= %d",
		secondOfDay, int64(session.Start/time.Second), secondOfDay, int64(session.End/time.Second))
}

// wallClock reads the local wall time QuestDB returns for calendar samples as an instant in loc.
func (r *Repository) wallClock(ts time.Time) time.Time {
	ts = ts.UTC()
	return time.Date(ts.Year(), ts.Month(), ts.Day(), ts.Hour(), ts.Minute(), ts.Second(), ts.Nanosecond(), r.loc)
}

// GetLastPrices returns the latest close at or before at for every symbol.
func (r *Repository) GetLastPrices(ctx context.Context, at time.Time) (map[uint]float64, error) {
	query := fmt.Sprintf(`SELECT symbol_index, close FROM %s WHERE ts <= $1 LATEST ON ts PARTITION BY symbol_index`, r.table)

	rows, err := r.client.Query(ctx, query, at.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query last prices: %w", err)
	}
	defer rows.Close()

	prices := make(map[uint]float64)
	for rows.Next() {
		var (
			symbolIndex int32
			price       float64
		)
		if err := rows.Scan(&symbolIndex, &price); err != nil {
			return nil, fmt.Errorf("failed to scan last price: %w", err)
		}
		prices[uint(symbolIndex)] = price
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating last price rows: %w", err)
	}

	return prices, nil
}

// GetSymbolDateRanges returns the first and last row time of every symbol.
func (r *Repository) GetSymbolDateRanges(ctx context.Context) ([]v1.SymbolDateRange, error) {
	query := fmt.Sprintf(`SELECT symbol_index, min(ts), max(ts) FROM %s GROUP BY symbol_index ORDER BY symbol_index`, r.table)

	rows, err := r.client.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query symbol date ranges: %w", err)
	}
	defer rows.Close()

	var ranges []v1.SymbolDateRange
	for rows.Next() {
		var (
			symbolIndex int32
			first, last time.Time
		)
		if err := rows.Scan(&symbolIndex, &first, &last); err != nil {
			return nil, fmt.Errorf("failed to scan symbol date range: %w", err)
		}
		ranges = append(ranges, v1.SymbolDateRange{
			SymbolIndex: uint(symbolIndex),
			FirstDate:   first.In(r.loc),
			LastDate:    last.In(r.loc),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating symbol date range rows: %w", err)
	}

	return ranges, nil
}

// StoreBars writes one-second bars for symbolIndex. Each bar date is its end-of-second stamp.
func (r *Repository) StoreBars(ctx context.Context, symbolIndex uint, bars v1.List) (int64, error) {
	rows := make([][]any, 0, len(bars))
	for _, b := range bars {
		rows = append(rows, []any{
			time.UnixMilli(b.Date).UTC(),
			int32(symbolIndex),
			b.Open,
			b.High,
			b.Low,
			b.Close,
			b.Volume,
		})
	}

	inserted, err := questdb.InsertRows(ctx, r.client, r.table, columns, rows, questdb.DefaultInsertChunk)
	if err != nil {
		return inserted, fmt.Errorf("failed to store bars: %w", err)
	}
	return inserted, nil
}
