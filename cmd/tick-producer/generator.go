package main

import (
	"math"
	"math/rand/v2"
	"time"

	v1 "github.com/muhammadchandra19/chart-data/internal/domain/bar/v1"
)

// generator produces a random walk of trades for one symbol.
type generator struct {
	rnd    *rand.Rand
	symbol uint
	price  float64
	// step is the largest relative move between two trades.
	step float64
	tick float64
}

func newGenerator(seed uint64, symbol uint, basePrice, step, tickSize float64) *generator {
	return &generator{
		rnd:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		symbol: symbol,
		price:  basePrice,
		step:   step,
		tick:   tickSize,
	}
}

func (g *generator) roundToTick(price float64) float64 {
	if g.tick <= 0 {
		return price
	}
	return math.Max(g.tick, math.Round(price/g.tick)*g.tick)
}

// trade moves the price and returns a single trade at ts.
func (g *generator) trade(ts time.Time) v1.Tick {
	g.price = g.roundToTick(g.price * (1 + (g.rnd.Float64()*2-1)*g.step))
	volume := float64(1 + g.rnd.IntN(10))
	return v1.Tick{
		SymbolIndex: g.symbol,
		Timestamp:   ts.UnixMilli(),
		Open:        g.price,
		High:        g.price,
		Low:         g.price,
		Close:       g.price,
		Volume:      volume,
	}
}

// history builds one-second bars stamped at the end of each second in (from, to].
func (g *generator) history(from, to time.Time, tradesPerBar int) v1.List {
	var bars v1.List
	for end := from.Truncate(time.Second).Add(time.Second); !end.After(to); end = end.Add(time.Second) {
		var b v1.Bar
		for i := range tradesPerBar {
			t := g.trade(end)
			if i == 0 {
				b = t.Bar()
				continue
			}
			b.High = max(b.High, t.High)
			b.Low = min(b.Low, t.Low)
			b.Close = t.Close
			b.Volume += t.Volume
		}
		b.Date = end.UnixMilli()
		bars = append(bars, b)
	}
	return bars
}
