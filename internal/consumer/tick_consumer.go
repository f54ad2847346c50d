package consumer

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/muhammadchandra19/chart-data/internal/domain/bar"
	v1 "github.com/muhammadchandra19/chart-data/internal/domain/bar/v1"
	"github.com/muhammadchandra19/chart-data/pkg/config"
	"github.com/muhammadchandra19/chart-data/pkg/errors"
	"github.com/muhammadchandra19/chart-data/pkg/logger"
	"github.com/muhammadchandra19/chart-data/pkg/util"
	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=tick_consumer.go -destination=mock/tick_consumer_mock.go -package=mock

// MessageReader is the part of *kafka.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// retryDelay is the pause after a failed fetch.
const retryDelay = time.Second

// TickConsumer feeds live ticks from the tick topic into the chart.
type TickConsumer struct {
	reader MessageReader
	chart  bar.Usecase
	logger logger.Interface
	commit bool
}

// NewTickConsumer creates a TickConsumer reading the configured topic.
func NewTickConsumer(cfg config.TickKafkaConfig, chart bar.Usecase, logger logger.Interface) *TickConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		GroupID:     cfg.ConsumerGroup,
		MinBytes:    cfg.MinBytes,
		MaxBytes:    cfg.MaxBytes,
		StartOffset: kafka.LastOffset,
	})
	return NewTickConsumerWithReader(reader, chart, logger, cfg.ConsumerGroup != "")
}

// NewTickConsumerWithReader creates a TickConsumer on top of reader. Offsets are committed
// only when commit is set, since kafka-go rejects commits outside a consumer group.
func NewTickConsumerWithReader(reader MessageReader, chart bar.Usecase, logger logger.Interface, commit bool) *TickConsumer {
	return &TickConsumer{
		reader: reader,
		chart:  chart,
		logger: logger,
		commit: commit,
	}
}

// Run consumes ticks until ctx is done. A bad message is logged and skipped.
func (c *TickConsumer) Run(ctx context.Context) error {
	c.logger.InfoContext(ctx, "starting tick consumer",
		logger.NewField("action", "tick_consumer_start"),
	)

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.InfoContext(ctx, "tick consumer stopped")
				return nil
			}
			c.logger.ErrorContext(ctx, errors.TracerFromError(err), logger.NewField("action", "fetch_tick_message"))

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(retryDelay):
			}
			continue
		}

		msgCtx := util.WithEventID(ctx, messageID(msg))
		if err := c.process(msgCtx, msg); err != nil {
			c.logger.ErrorContext(msgCtx, err,
				logger.NewField("action", "process_tick_message"),
				logger.NewField("offset", msg.Offset),
			)
		}

		if c.commit {
			if err := c.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
				c.logger.ErrorContext(msgCtx, errors.TracerFromError(err), logger.NewField("action", "commit_tick_message"))
			}
		}
	}
}

func (c *TickConsumer) process(ctx context.Context, msg kafka.Message) error {
	tick, err := DecodeTick(msg.Value)
	if err != nil {
		return errors.TracerFromError(err)
	}
	return c.chart.AppendTick(ctx, tick)
}

// DecodeTick parses and validates a tick message.
func DecodeTick(value []byte) (v1.Tick, error) {
	var tick v1.Tick
	if err := json.Unmarshal(value, &tick); err != nil {
		return v1.Tick{}, errors.NewErrorDetails(err.Error(), errors.TickDecodeError, "value")
	}
	if err := tick.Validate(); err != nil {
		return v1.Tick{}, errors.NewErrorDetailsWithObject(err.Error(), errors.TickInvalidError, "value", tick)
	}
	return tick, nil
}

// Close closes the underlying reader.
func (c *TickConsumer) Close() error {
	return c.reader.Close()
}

func messageID(msg kafka.Message) string {
	return msg.Topic + "/" + strconv.Itoa(msg.Partition) + "/" + strconv.FormatInt(msg.Offset, 10)
}
