package timeframe

import (
	"fmt"
	"time"
)

// Classifier decides bucket membership. Calendar units are evaluated in its location.
type Classifier struct {
	loc *time.Location
}

// NewClassifier creates a Classifier for loc. A nil location means time.Local.
func NewClassifier(loc *time.Location) Classifier {
	if loc == nil {
		loc = time.Local
	}
	return Classifier{loc: loc}
}

// Location returns the time zone used for calendar units.
func (c Classifier) Location() *time.Location {
	if c.loc == nil {
		return time.Local
	}
	return c.loc
}

// SameBucket reports whether t1 and t2 (ms since epoch) fall in the same bucket of tf.
//
// Second, minute and hour buckets are epoch-aligned: two instants share a bucket when
// ceil(t/width) is equal. Days compare the local date, weeks compare the date of the
// Monday starting each week and months compare year and month.
//
// Week and month buckets ignore the magnitude, so "2mo" groups like "1mo".
func (c Classifier) SameBucket(t1, t2 int64, tf Timeframe) (bool, error) {
	switch tf.Unit {
	case Second, Minute, Hour:
		width, err := tf.DurationMillis()
		if err != nil {
			return false, err
		}
		return BucketIndex(t1, width) == BucketIndex(t2, width), nil
	case Day:
		return sameDate(c.local(t1), c.local(t2)), nil
	case Week:
		return sameDate(weekStart(c.local(t1)), weekStart(c.local(t2))), nil
	case Month:
		y1, m1, _ := c.local(t1).Date()
		y2, m2, _ := c.local(t2).Date()
		return y1 == y2 && m1 == m2, nil
	default:
		return false, fmt.Errorf("%w: %d", ErrUnsupportedUnit, tf.Unit)
	}
}

func (c Classifier) local(ms int64) time.Time {
	return time.UnixMilli(ms).In(c.Location())
}

// BucketIndex returns ceil(t/width). width must be positive.
func BucketIndex(t, width int64) int64 {
	q := t / width
	if t%width != 0 && t > 0 {
		q++
	}
	return q
}

// RoundUp rounds t up to the next multiple of width. Multiples are returned unchanged and a
// non-positive width is a no-op.
func RoundUp(t, width int64) int64 {
	if width <= 0 {
		return t
	}
	return BucketIndex(t, width) * width
}

func sameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// weekStart returns midnight of the Monday on or before t. Sunday belongs to the previous week.
func weekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	offset := (int(t.Weekday()) + 6) % 7
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}
