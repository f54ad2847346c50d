package timeframe

import (
	"fmt"
	"time"
)

// Config holds timeframe-related configuration
type Config struct {
	Enabled  []Timeframe `env:"ENABLED_TIMEFRAMES" envSeparator:"," envDefault:"1s,30s,1m,5m,15m,1h,1d,1w,1mo"`
	Default  Timeframe   `env:"DEFAULT_TIMEFRAME" envDefault:"5m"`
	TimeZone string      `env:"TIME_ZONE" envDefault:"America/Chicago"`
}

// Location loads the configured time zone used for calendar buckets.
func (c Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone in config: %s: %w", c.TimeZone, err)
	}
	return loc, nil
}

// Classifier builds a Classifier for the configured time zone.
func (c Config) Classifier() (Classifier, error) {
	loc, err := c.Location()
	if err != nil {
		return Classifier{}, err
	}
	return NewClassifier(loc), nil
}

// IsEnabled checks if a timeframe may be requested by chart clients
func (c Config) IsEnabled(tf Timeframe) bool {
	for _, enabled := range c.Enabled {
		if enabled == tf {
			return true
		}
	}
	return false
}
