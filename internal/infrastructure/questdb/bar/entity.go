package bar

import (
	"fmt"
	"time"

	"github.com/muhammadchandra19/chart-data/pkg/timeframe"
)

// BarFilter selects and samples source rows.
type BarFilter struct {
	SymbolIndex uint
	Timeframe   timeframe.Timeframe
	// From is exclusive and To inclusive, matching end-stamped source rows.
	From    time.Time
	To      time.Time
	Session *Session
	// Limit keeps the most recent buckets only. Zero means DefaultLimit.
	Limit int
}

// Session is a trading session given as offsets from local midnight. Rows stamped in
// (Start, End] are kept.
type Session struct {
	Start time.Duration
	End   time.Duration
}

// DefaultSession is the regular trading hours session, 08:30 to 15:15.
var DefaultSession = Session{Start: 8*time.Hour + 30*time.Minute, End: 15*time.Hour + 15*time.Minute}

// ParseSession parses "08:30-15:15".
func ParseSession(text string) (Session, error) {
	var sh, sm, eh, em int
	if _, err := fmt.Sscanf(text, "%d:%d-%d:%d", &sh, &sm, &eh, &em); err != nil {
		return Session{}, fmt.Errorf("invalid session %q: %w", text, err)
	}
	s := Session{
		Start: time.Duration(sh)*time.Hour + time.Duration(sm)*time.Minute,
		End:   time.Duration(eh)*time.Hour + time.Duration(em)*time.Minute,
	}
	if s.Start < 0 || s.End > 24*time.Hour || s.Start >= s.End {
		return Session{}, fmt.Errorf("invalid session %q: start must precede end within one day", text)
	}
	return s, nil
}

// String implements fmt.Stringer.
func (s Session) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d",
		int(s.Start.Hours()), int(s.Start.Minutes())%60,
		int(s.End.Hours()), int(s.End.Minutes())%60)
}

// SessionSet is a default session with per-symbol overrides.
type SessionSet struct {
	Default  Session
	BySymbol map[uint]Session
}

// For returns the session of symbolIndex.
func (s SessionSet) For(symbolIndex uint) Session {
	if session, ok := s.BySymbol[symbolIndex]; ok {
		return session
	}
	return s.Default
}

// DefaultLimit caps the number of buckets returned by GetBars.
const DefaultLimit = 5000
