package timeframe

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrUnsupportedUnit is returned when a timeframe uses an unknown unit code.
	ErrUnsupportedUnit = errors.New("unsupported timeframe unit")
	// ErrInvalidMagnitude is returned when a timeframe has no leading count or a count below one.
	ErrInvalidMagnitude = errors.New("invalid timeframe magnitude")
	// ErrNotFixedDuration is returned when a fixed duration is requested for a calendar unit.
	ErrNotFixedDuration = errors.New("timeframe unit has no fixed duration")
)

// Unit is the granularity of a timeframe.
type Unit uint8

const (
	// UnitUndefined is the zero value and is never produced by Parse.
	UnitUndefined Unit = iota
	// Second groups by epoch-aligned seconds.
	Second
	// Minute groups by epoch-aligned minutes.
	Minute
	// Hour groups by epoch-aligned hours.
	Hour
	// Day groups by local calendar date.
	Day
	// Week groups by Monday-start calendar week.
	Week
	// Month groups by calendar month.
	Month
)

// unitCodes is ordered longest code first so "mo" wins over "m".
var unitCodes = []struct {
	code string
	unit Unit
}{
	{"mo", Month},
	{"s", Second},
	{"m", Minute},
	{"h", Hour},
	{"d", Day},
	{"w", Week},
}

var unitMillis = map[Unit]int64{
	Second: int64(time.Second / time.Millisecond),
	Minute: int64(time.Minute / time.Millisecond),
	Hour:   int64(time.Hour / time.Millisecond),
}

// Code returns the textual code of the unit.
func (u Unit) Code() string {
	for _, c := range unitCodes {
		if c.unit == u {
			return c.code
		}
	}
	return ""
}

// String implements fmt.Stringer.
func (u Unit) String() string {
	switch u {
	case Second:
		return "second"
	case Minute:
		return "minute"
	case Hour:
		return "hour"
	case Day:
		return "day"
	case Week:
		return "week"
	case Month:
		return "month"
	default:
		return "undefined"
	}
}

// Valid reports whether u is one of the six recognised units.
func (u Unit) Valid() bool {
	return u >= Second && u <= Month
}

// IsFixed reports whether the unit has a constant width in milliseconds.
func (u Unit) IsFixed() bool {
	_, ok := unitMillis[u]
	return ok
}

// Timeframe is a unit plus a magnitude, e.g. 5 minutes or 1 month.
type Timeframe struct {
	Unit      Unit
	Magnitude int
}

// Parse parses descriptors like "30s", "5m", "1h", "1d", "1w" or "2mo".
func Parse(text string) (Timeframe, error) {
	digits := 0
	for digits < len(text) && text[digits] >= '0' && text[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return Timeframe{}, fmt.Errorf("%w: %q", ErrInvalidMagnitude, text)
	}

	magnitude, err := strconv.Atoi(text[:digits])
	if err != nil || magnitude < 1 {
		return Timeframe{}, fmt.Errorf("%w: %q", ErrInvalidMagnitude, text)
	}

	code := text[digits:]
	for _, c := range unitCodes {
		if code != c.code {
			continue
		}
		// the bucket width in milliseconds must fit in an int64
		if unit, ok := unitMillis[c.unit]; ok && int64(magnitude) > math.MaxInt64/unit {
			return Timeframe{}, fmt.Errorf("%w: %q", ErrInvalidMagnitude, text)
		}
		return Timeframe{Unit: c.unit, Magnitude: magnitude}, nil
	}

	return Timeframe{}, fmt.Errorf("%w: %q", ErrUnsupportedUnit, text)
}

// MustParse is like Parse but panics on error. Use it for constants only.
func MustParse(text string) Timeframe {
	tf, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return tf
}

// String returns the textual descriptor, the only serialized form of a timeframe.
func (tf Timeframe) String() string {
	if !tf.Unit.Valid() {
		return ""
	}
	return strconv.Itoa(tf.Magnitude) + tf.Unit.Code()
}

// IsZero reports whether tf is the zero value.
func (tf Timeframe) IsZero() bool {
	return tf.Unit == UnitUndefined && tf.Magnitude == 0
}

// IsFixed reports whether the bucket width is a constant number of milliseconds.
func (tf Timeframe) IsFixed() bool {
	return tf.Unit.IsFixed()
}

// DurationMillis returns the bucket width for second, minute and hour timeframes.
// Calendar units fail with ErrNotFixedDuration; compare them with a Classifier instead.
func (tf Timeframe) DurationMillis() (int64, error) {
	if !tf.Unit.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedUnit, tf.Unit)
	}
	unit, ok := unitMillis[tf.Unit]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotFixedDuration, tf)
	}
	if tf.Magnitude < 1 || int64(tf.Magnitude) > math.MaxInt64/unit {
		return 0, fmt.Errorf("%w: %d", ErrInvalidMagnitude, tf.Magnitude)
	}
	return unit * int64(tf.Magnitude), nil
}

// Duration is DurationMillis as a time.Duration.
func (tf Timeframe) Duration() (time.Duration, error) {
	ms, err := tf.DurationMillis()
	if err != nil {
		return 0, err
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// MarshalText implements encoding.TextMarshaler.
func (tf Timeframe) MarshalText() ([]byte, error) {
	return []byte(tf.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (tf *Timeframe) UnmarshalText(text []byte) error {
	parsed, err := Parse(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*tf = parsed
	return nil
}
