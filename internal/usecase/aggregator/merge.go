package aggregator

import (
	"fmt"

	v1 "github.com/muhammadchandra19/chart-data/internal/domain/bar/v1"
	"github.com/muhammadchandra19/chart-data/pkg/timeframe"
)

// Merge folds incoming into existing. Both must belong to the same bucket.
func Merge(existing, incoming v1.Bar) v1.Bar {
	merged := existing
	if incoming.High > merged.High {
		merged.High = incoming.High
	}
	if incoming.Low < merged.Low {
		merged.Low = incoming.Low
	}
	merged.Close = incoming.Close
	merged.Volume += incoming.Volume
	return merged
}

// OpenBucket starts a new bar from incoming.
//
// Second, minute and hour bars are dated at the end-aligned multiple of the bucket width
// (the tick time rounded up). Day, week and month bars keep the incoming date.
func OpenBucket(incoming v1.Bar, tf timeframe.Timeframe) (v1.Bar, error) {
	switch tf.Unit {
	case timeframe.Second, timeframe.Minute, timeframe.Hour:
		width, err := tf.DurationMillis()
		if err != nil {
			return v1.Bar{}, err
		}
		opened := incoming
		opened.Date = timeframe.RoundUp(incoming.Date, width)
		return opened, nil
	case timeframe.Day, timeframe.Week, timeframe.Month:
		return incoming, nil
	default:
		return v1.Bar{}, fmt.Errorf("%w: %d", timeframe.ErrUnsupportedUnit, tf.Unit)
	}
}
