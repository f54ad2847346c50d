package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/muhammadchandra19/chart-data/internal/domain/bar"
	v1 "github.com/muhammadchandra19/chart-data/internal/domain/bar/v1"
	"github.com/muhammadchandra19/chart-data/pkg/errors"
	"github.com/muhammadchandra19/chart-data/pkg/logger"
	"github.com/muhammadchandra19/chart-data/pkg/redis"
	"github.com/muhammadchandra19/chart-data/pkg/util"
)

const (
	// DefaultBufferSize is the number of pending events kept before new ones are dropped.
	DefaultBufferSize = 1024

	lastPricesKey = "last_prices"
)

var _ bar.Listener = (*Publisher)(nil)

// Update is the compact message published on every chart mutation.
type Update struct {
	Generation uint64  `json:"generation"`
	Meta       v1.Meta `json:"meta"`
	Loading    bool    `json:"loading"`
	Count      int     `json:"count"`
	LastClosed *v1.Bar `json:"lastClosed,omitempty"`
	Open       *v1.Bar `json:"open,omitempty"`
}

// NewUpdate builds the update message of s.
func NewUpdate(s v1.Snapshot) Update {
	u := Update{
		Generation: s.Generation,
		Meta:       s.Meta,
		Loading:    s.Loading,
		Count:      s.Len(),
		Open:       s.Open,
	}
	if last, ok := s.Closed.Last(); ok {
		u.LastClosed = &last
	}
	return u
}

type event struct {
	requestID string
	eventID   string
	snapshot  *v1.Snapshot
	symbol    uint
	price     float64
}

type storedState struct {
	generation uint64
	loading    bool
	closed     int
}

// Publisher forwards chart output to Redis from its own goroutine. The listener callbacks
// only enqueue, so a slow Redis never stalls the chart.
type Publisher struct {
	client redis.Client
	logger logger.Interface
	ttl    time.Duration

	events  chan event
	dropped atomic.Uint64

	// owned by Run
	stored *storedState
}

// NewPublisher creates a new Publisher. A non-positive bufferSize means DefaultBufferSize.
func NewPublisher(client redis.Client, logger logger.Interface, bufferSize int, ttl time.Duration) *Publisher {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Publisher{
		client: client,
		logger: logger,
		ttl:    ttl,
		events: make(chan event, bufferSize),
	}
}

// OnSnapshot enqueues s for publishing.
func (p *Publisher) OnSnapshot(ctx context.Context, s v1.Snapshot) {
	p.enqueue(ctx, event{snapshot: &s})
}

// OnLastPrice enqueues a last price update.
func (p *Publisher) OnLastPrice(ctx context.Context, symbolIndex uint, price float64) {
	p.enqueue(ctx, event{symbol: symbolIndex, price: price})
}

// Dropped returns the number of events discarded because the buffer was full.
func (p *Publisher) Dropped() uint64 {
	return p.dropped.Load()
}

// enqueue never blocks. Only the ids of ctx travel with the event since ctx may be
// cancelled before Run gets to it.
func (p *Publisher) enqueue(ctx context.Context, ev event) {
	ev.requestID = util.GetRequestID(ctx)
	ev.eventID = util.GetEventID(ctx)
	select {
	case p.events <- ev:
	default:
		dropped := p.dropped.Add(1)
		p.logger.WarnContext(ctx, "publisher buffer full, event dropped", logger.NewField("dropped", dropped))
	}
}

// Run publishes queued events until ctx is done.
func (p *Publisher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-p.events:
			evCtx := ctx
			if ev.requestID != "" {
				evCtx = util.WithRequestID(evCtx, ev.requestID)
			}
			if ev.eventID != "" {
				evCtx = util.WithEventID(evCtx, ev.eventID)
			}

			var err error
			if ev.snapshot != nil {
				err = p.publishSnapshot(evCtx, *ev.snapshot)
			} else {
				err = p.publishLastPrice(evCtx, ev.symbol, ev.price)
			}
			if err != nil {
				p.logger.ErrorContext(evCtx, errors.TracerFromError(err))
			}
		}
	}
}

func (p *Publisher) publishSnapshot(ctx context.Context, s v1.Snapshot) error {
	state := storedState{generation: s.Generation, loading: s.Loading, closed: len(s.Closed)}
	if p.stored == nil || *p.stored != state {
		payload, err := json.Marshal(s)
		if err != nil {
			return err
		}
		if err := p.client.Set(ctx, SnapshotKey(s.Meta), payload, p.ttl); err != nil {
			return err
		}
		p.stored = &state
	}

	payload, err := json.Marshal(NewUpdate(s))
	if err != nil {
		return err
	}
	_, err = p.client.Publish(ctx, UpdatesChannel(s.Meta), payload)
	return err
}

func (p *Publisher) publishLastPrice(ctx context.Context, symbol uint, price float64) error {
	_, err := p.client.HSet(ctx, lastPricesKey, map[string]any{
		strconv.FormatUint(uint64(symbol), 10): price,
	})
	return err
}

// SnapshotKey is the key holding the full snapshot of the chart described by meta.
func SnapshotKey(meta v1.Meta) string {
	return fmt.Sprintf("snapshot:%d:%s", meta.SymbolIndex, meta.Timeframe)
}

// UpdatesChannel is the channel carrying Update messages of the chart described by meta.
func UpdatesChannel(meta v1.Meta) string {
	return fmt.Sprintf("updates:%d:%s", meta.SymbolIndex, meta.Timeframe)
}
