package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os/signal"
	"strconv"
	"syscall"
	"time"
	_ "time/tzdata"

	barRepo "github.com/muhammadchandra19/chart-data/internal/infrastructure/questdb/bar"
	"github.com/muhammadchandra19/chart-data/pkg/config"
	"github.com/muhammadchandra19/chart-data/pkg/logger"
	"github.com/muhammadchandra19/chart-data/pkg/questdb"
	"github.com/segmentio/kafka-go"
)

func main() {
	var (
		symbol      = flag.Uint("symbol", 1, "Symbol index of the generated ticks")
		count       = flag.Int("count", 1000, "Number of ticks to send, 0 sends until interrupted")
		delay       = flag.Duration("delay", 250*time.Millisecond, "Delay between ticks")
		basePrice   = flag.Float64("base-price", 3945.5, "Starting price")
		step        = flag.Float64("step", 0.0005, "Largest relative move between two trades")
		tickSize    = flag.Float64("tick-size", 0.25, "Price increment")
		seed        = flag.Uint64("seed", uint64(time.Now().UnixNano()), "Random seed")
		historyDays = flag.Int("history-days", 0, "Days of one-second bars to store in QuestDB before streaming")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	l, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer l.Sync()

	gen := newGenerator(*seed, *symbol, *basePrice, *step, *tickSize)

	if *historyDays > 0 {
		if err := storeHistory(ctx, cfg, l, gen, *historyDays); err != nil {
			l.Error(err, logger.NewField("action", "store_history"))
			return
		}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.TickKafka.Brokers...),
		Topic:        cfg.TickKafka.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	defer writer.Close()

	l.Info("sending ticks",
		logger.NewField("brokers", cfg.TickKafka.Brokers),
		logger.NewField("topic", cfg.TickKafka.Topic),
		logger.NewField("symbol_index", *symbol),
	)

	key := []byte(strconv.FormatUint(uint64(*symbol), 10))
	sent := 0
	for *count == 0 || sent < *count {
		tick := gen.trade(time.Now())
		value, err := json.Marshal(tick)
		if err != nil {
			l.Error(err, logger.NewField("action", "marshal_tick"))
			return
		}

		if err := writer.WriteMessages(ctx, kafka.Message{Key: key, Value: value, Time: time.Now()}); err != nil {
			if ctx.Err() != nil {
				break
			}
			l.Error(err, logger.NewField("action", "write_tick"))
			continue
		}
		sent++

		if sent%100 == 0 {
			l.Info("ticks sent", logger.NewField("sent", sent), logger.NewField("price", tick.Close))
		}

		select {
		case <-ctx.Done():
		case <-time.After(*delay):
		}
		if ctx.Err() != nil {
			break
		}
	}

	l.Info("tick producer stopped", logger.NewField("sent", sent))
}

func storeHistory(ctx context.Context, cfg *config.Config, l logger.Interface, gen *generator, days int) error {
	client, err := questdb.NewClient(ctx, cfg.QuestDB)
	if err != nil {
		return err
	}
	defer client.Close()

	loc, err := cfg.Chart.Timeframe.Location()
	if err != nil {
		return err
	}
	repo := barRepo.NewRepository(client, cfg.Chart.BarTable, loc)

	to := time.Now().Truncate(time.Second)
	for day := days; day > 0; day-- {
		from := to.AddDate(0, 0, -day)
		bars := gen.history(from, from.AddDate(0, 0, 1), 3)
		inserted, err := repo.StoreBars(ctx, gen.symbol, bars)
		if err != nil {
			return err
		}
		l.Info("history stored", logger.NewField("from", from), logger.NewField("bars", inserted))
	}
	return nil
}
