package v1

import (
	"fmt"
	"time"

	"github.com/muhammadchandra19/chart-data/pkg/timeframe"
)

// Bar is one OHLCV candle. Date is the bucket start in milliseconds since epoch.
type Bar struct {
	Date   int64   `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// Time returns the bucket start as a time.Time.
func (b Bar) Time() time.Time {
	return time.UnixMilli(b.Date)
}

// List is an ordered sequence of bars.
type List []Bar

// Last returns the last bar of the list.
func (l List) Last() (Bar, bool) {
	if len(l) == 0 {
		return Bar{}, false
	}
	return l[len(l)-1], true
}

// Tick is a single price update for one symbol. Raw trades have Open = High = Low = Close.
type Tick struct {
	SymbolIndex uint    `json:"symbolIndex"`
	Timestamp   int64   `json:"timestamp"`
	Open        float64 `json:"open"`
	High        float64 `json:"high"`
	Low         float64 `json:"low"`
	Close       float64 `json:"close"`
	Volume      float64 `json:"volume"`
}

// Bar converts the tick into a bar dated at the tick timestamp.
func (t Tick) Bar() Bar {
	return Bar{
		Date:   t.Timestamp,
		Open:   t.Open,
		High:   t.High,
		Low:    t.Low,
		Close:  t.Close,
		Volume: t.Volume,
	}
}

// Validate checks the OHLC ordering and the volume sign.
func (t Tick) Validate() error {
	if t.Low > t.Open || t.Low > t.Close {
		return fmt.Errorf("tick low %v above open %v or close %v", t.Low, t.Open, t.Close)
	}
	if t.High < t.Open || t.High < t.Close {
		return fmt.Errorf("tick high %v below open %v or close %v", t.High, t.Open, t.Close)
	}
	if t.Volume < 0 {
		return fmt.Errorf("tick volume %v is negative", t.Volume)
	}
	return nil
}

// Meta describes what a bar sequence holds.
type Meta struct {
	SymbolIndex uint                `json:"symbolIndex"`
	Timeframe   timeframe.Timeframe `json:"timeframe"`
	// EndDate is the last bar date in ms. Zero asks for the most recent data.
	EndDate int64 `json:"endDate"`
	RTH     bool  `json:"rth"`
}

// Snapshot is the chart state published after every mutation. Closed bars are shared
// with the aggregator and must not be modified.
type Snapshot struct {
	Generation uint64 `json:"generation"`
	Meta       Meta   `json:"meta"`
	Closed     List   `json:"closed"`
	Open       *Bar   `json:"open,omitempty"`
	Loading    bool   `json:"loading"`
}

// Bars returns a fresh copy of the whole sequence, open bar last.
func (s Snapshot) Bars() List {
	bars := make(List, 0, s.Len())
	bars = append(bars, s.Closed...)
	if s.Open != nil {
		bars = append(bars, *s.Open)
	}
	return bars
}

// Len returns the number of bars including the open one.
func (s Snapshot) Len() int {
	if s.Open != nil {
		return len(s.Closed) + 1
	}
	return len(s.Closed)
}

// FetchRequest asks the historical loader for bars.
type FetchRequest struct {
	SymbolIndex uint
	Timeframe   timeframe.Timeframe
	Window      timeframe.Window
	EndDate     int64
	RTH         bool
}

// NewFetchRequest builds the request for meta using the default window of its timeframe.
func NewFetchRequest(meta Meta) FetchRequest {
	return FetchRequest{
		SymbolIndex: meta.SymbolIndex,
		Timeframe:   meta.Timeframe,
		Window:      timeframe.DefaultWindow(meta.Timeframe),
		EndDate:     meta.EndDate,
		RTH:         meta.RTH,
	}
}

// FetchResponse is the historical loader answer.
type FetchResponse struct {
	Bars       List
	LastPrices map[uint]float64
}

// SymbolDateRange is the first and last bar date stored for a symbol.
type SymbolDateRange struct {
	SymbolIndex uint      `json:"symbolIndex"`
	FirstDate   time.Time `json:"firstDate"`
	LastDate    time.Time `json:"lastDate"`
}
