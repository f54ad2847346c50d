package timeframe

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Window is the look-back length of a historical request, counted in days.
type Window struct {
	Days int
}

// ParseWindow parses windows like "252d".
func ParseWindow(text string) (Window, error) {
	if !strings.HasSuffix(text, "d") {
		return Window{}, fmt.Errorf("invalid window %q: expected <days>d", text)
	}
	days, err := strconv.Atoi(strings.TrimSuffix(text, "d"))
	if err != nil || days < 1 {
		return Window{}, fmt.Errorf("invalid window %q: expected <days>d", text)
	}
	return Window{Days: days}, nil
}

// String implements fmt.Stringer.
func (w Window) String() string {
	return strconv.Itoa(w.Days) + "d"
}

// Start returns the instant w days before end, following local calendar days.
func (w Window) Start(end time.Time) time.Time {
	return end.AddDate(0, 0, -w.Days)
}

// defaultWindows holds the look-back used for the chart timeframes a client offers.
var defaultWindows = map[string]Window{
	"1s":  {Days: 1},
	"30s": {Days: 1},
	"1m":  {Days: 2},
	"5m":  {Days: 5},
	"15m": {Days: 10},
	"1h":  {Days: 20},
	"1d":  {Days: 252},
	"1w":  {Days: 756},
	"1mo": {Days: 2520},
}

var unitWindows = map[Unit]Window{
	Second: {Days: 1},
	Minute: {Days: 5},
	Hour:   {Days: 20},
	Day:    {Days: 252},
	Week:   {Days: 756},
	Month:  {Days: 2520},
}

// DefaultWindow returns the historical window requested for tf.
func DefaultWindow(tf Timeframe) Window {
	if w, ok := defaultWindows[tf.String()]; ok {
		return w
	}
	return unitWindows[tf.Unit]
}

// Timeframes returns the timeframes offered to chart clients, shortest first.
func Timeframes() []Timeframe {
	return []Timeframe{
		{Second, 1}, {Second, 30}, {Minute, 1}, {Minute, 5}, {Minute, 15},
		{Hour, 1}, {Day, 1}, {Week, 1}, {Month, 1},
	}
}
