package aggregator

import (
	v1 "github.com/muhammadchandra19/chart-data/internal/domain/bar/v1"
	"github.com/muhammadchandra19/chart-data/pkg/timeframe"
)

// Outcome tells what Append did with a tick.
type Outcome uint8

const (
	// Seeded means the tick became the first bar of an empty series.
	Seeded Outcome = iota + 1
	// Merged means the tick was folded into the open bar.
	Merged
	// Opened means the open bar was closed and a new bucket started.
	Opened
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case Seeded:
		return "seeded"
	case Merged:
		return "merged"
	case Opened:
		return "opened"
	default:
		return "none"
	}
}

// Series is the bar sequence of one timeframe. Closed bars are never modified once a newer
// bucket opens; only the open slot changes.
type Series struct {
	tf         timeframe.Timeframe
	classifier timeframe.Classifier
	closed     v1.List
	open       *v1.Bar
}

// NewSeries creates a series continuing bars. The last bar becomes the open bucket.
func NewSeries(tf timeframe.Timeframe, classifier timeframe.Classifier, bars v1.List) *Series {
	s := &Series{tf: tf, classifier: classifier}
	if len(bars) == 0 {
		return s
	}

	s.closed = make(v1.List, len(bars)-1, len(bars))
	copy(s.closed, bars[:len(bars)-1])
	last := bars[len(bars)-1]
	s.open = &last
	return s
}

// Timeframe returns the bucket granularity of the series.
func (s *Series) Timeframe() timeframe.Timeframe {
	return s.tf
}

// Append applies one tick. An empty series is seeded with the tick as is. Otherwise the tick
// is merged into the open bar when both share a bucket, or opens a new bucket.
// On error the series is left untouched.
func (s *Series) Append(tick v1.Bar) (Outcome, error) {
	if s.open == nil {
		seed := tick
		s.open = &seed
		return Seeded, nil
	}

	same, err := s.classifier.SameBucket(s.open.Date, tick.Date, s.tf)
	if err != nil {
		return 0, err
	}
	if same {
		merged := Merge(*s.open, tick)
		s.open = &merged
		return Merged, nil
	}

	opened, err := OpenBucket(tick, s.tf)
	if err != nil {
		return 0, err
	}
	s.closed = append(s.closed, *s.open)
	s.open = &opened
	return Opened, nil
}

// Open returns the bar of the current bucket.
func (s *Series) Open() (v1.Bar, bool) {
	if s.open == nil {
		return v1.Bar{}, false
	}
	return *s.open, true
}

// Closed returns the closed prefix. The slice is capped so appends by the caller never reach
// the series storage; its elements must be treated as read-only.
func (s *Series) Closed() v1.List {
	return s.closed[:len(s.closed):len(s.closed)]
}

// Bars returns a copy of the whole sequence, open bar last.
func (s *Series) Bars() v1.List {
	bars := make(v1.List, 0, s.Len())
	bars = append(bars, s.closed...)
	if s.open != nil {
		bars = append(bars, *s.open)
	}
	return bars
}

// Len returns the number of bars including the open one.
func (s *Series) Len() int {
	if s.open == nil {
		return len(s.closed)
	}
	return len(s.closed) + 1
}

// Fold aggregates bars into tf, for example daily bars into weeks.
func Fold(bars v1.List, tf timeframe.Timeframe, classifier timeframe.Classifier) (v1.List, error) {
	s := NewSeries(tf, classifier, nil)
	for _, b := range bars {
		if _, err := s.Append(b); err != nil {
			return nil, err
		}
	}
	return s.Bars(), nil
}
