package consumer

import (
	"context"
	"errors"
	"testing"

	"github.com/muhammadchandra19/chart-data/internal/consumer/mock"
	barMock "github.com/muhammadchandra19/chart-data/internal/domain/bar/mock"
	v1 "github.com/muhammadchandra19/chart-data/internal/domain/bar/v1"
	pkgErrors "github.com/muhammadchandra19/chart-data/pkg/errors"
	"github.com/muhammadchandra19/chart-data/pkg/logger"
	mockLogger "github.com/muhammadchandra19/chart-data/pkg/logger/mock"
	"github.com/muhammadchandra19/chart-data/pkg/util"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func message(offset int64, value string) kafka.Message {
	return kafka.Message{Topic: "ticks", Partition: 0, Offset: offset, Value: []byte(value)}
}

func TestDecodeTick(t *testing.T) {
	testCases := []struct {
		name     string
		value    string
		expected v1.Tick
		code     pkgErrors.ErrorCode
	}{
		{
			name:     "trade",
			value:    `{"symbolIndex":3,"timestamp":1709287245000,"open":10,"high":10,"low":10,"close":10,"volume":2}`,
			expected: v1.Tick{SymbolIndex: 3, Timestamp: 1709287245000, Open: 10, High: 10, Low: 10, Close: 10, Volume: 2},
		},
		{
			name:  "malformed json",
			value: `{"symbolIndex":`,
			code:  pkgErrors.TickDecodeError,
		},
		{
			name:  "high below close",
			value: `{"symbolIndex":3,"timestamp":1,"open":10,"high":9,"low":8,"close":10,"volume":2}`,
			code:  pkgErrors.TickInvalidError,
		},
		{
			name:  "negative volume",
			value: `{"symbolIndex":3,"timestamp":1,"open":10,"high":10,"low":10,"close":10,"volume":-1}`,
			code:  pkgErrors.TickInvalidError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tick, err := DecodeTick([]byte(tc.value))
			if tc.code != "" {
				assert.True(t, pkgErrors.ErrorCodeEquals(err, tc.code), err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, tick)
		})
	}
}

func TestTickConsumer_Run(t *testing.T) {
	good := `{"symbolIndex":3,"timestamp":1709287245000,"open":10,"high":10,"low":10,"close":10,"volume":2}`

	testCases := []struct {
		name   string
		commit bool
		mockFn func(ctx context.Context, cancel context.CancelFunc, reader *mock.MockMessageReader, chart *barMock.MockUsecase, log *mockLogger.MockInterface)
	}{
		{
			name:   "ticks are appended and committed",
			commit: true,
			mockFn: func(ctx context.Context, cancel context.CancelFunc, reader *mock.MockMessageReader, chart *barMock.MockUsecase, log *mockLogger.MockInterface) {
				msg := message(7, good)
				gomock.InOrder(
					reader.EXPECT().FetchMessage(gomock.Any()).Return(msg, nil),
					chart.EXPECT().AppendTick(gomock.Any(), v1.Tick{
						SymbolIndex: 3, Timestamp: 1709287245000, Open: 10, High: 10, Low: 10, Close: 10, Volume: 2,
					}).DoAndReturn(func(ctx context.Context, _ v1.Tick) error {
						assert.Equal(t, "ticks/0/7", util.GetEventID(ctx))
						return nil
					}),
					reader.EXPECT().CommitMessages(gomock.Any(), msg).Return(nil),
					reader.EXPECT().FetchMessage(gomock.Any()).DoAndReturn(func(context.Context) (kafka.Message, error) {
						cancel()
						return kafka.Message{}, context.Canceled
					}),
				)
			},
		},
		{
			name: "bad messages are skipped",
			mockFn: func(ctx context.Context, cancel context.CancelFunc, reader *mock.MockMessageReader, chart *barMock.MockUsecase, log *mockLogger.MockInterface) {
				gomock.InOrder(
					reader.EXPECT().FetchMessage(gomock.Any()).Return(message(1, `not json`), nil),
					reader.EXPECT().FetchMessage(gomock.Any()).Return(message(2, good), nil),
					reader.EXPECT().FetchMessage(gomock.Any()).DoAndReturn(func(context.Context) (kafka.Message, error) {
						cancel()
						return kafka.Message{}, context.Canceled
					}),
				)
				chart.EXPECT().AppendTick(gomock.Any(), gomock.Any()).Return(nil).Times(1)
				log.EXPECT().ErrorContext(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)
			},
		},
		{
			name: "aggregation errors are logged",
			mockFn: func(ctx context.Context, cancel context.CancelFunc, reader *mock.MockMessageReader, chart *barMock.MockUsecase, log *mockLogger.MockInterface) {
				gomock.InOrder(
					reader.EXPECT().FetchMessage(gomock.Any()).Return(message(1, good), nil),
					reader.EXPECT().FetchMessage(gomock.Any()).DoAndReturn(func(context.Context) (kafka.Message, error) {
						cancel()
						return kafka.Message{}, context.Canceled
					}),
				)
				chart.EXPECT().AppendTick(gomock.Any(), gomock.Any()).Return(errors.New("unsupported timeframe unit"))
				log.EXPECT().ErrorContext(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)
			},
		},
		{
			name: "stops while waiting to retry a failed fetch",
			mockFn: func(ctx context.Context, cancel context.CancelFunc, reader *mock.MockMessageReader, chart *barMock.MockUsecase, log *mockLogger.MockInterface) {
				reader.EXPECT().FetchMessage(gomock.Any()).Return(kafka.Message{}, errors.New("broker not available"))
				log.EXPECT().ErrorContext(gomock.Any(), gomock.Any(), gomock.Any()).Do(func(context.Context, error, ...logger.Field) {
					cancel()
				})
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			reader := mock.NewMockMessageReader(ctrl)
			chart := barMock.NewMockUsecase(ctrl)
			log := mockLogger.NewMockInterface(ctrl)
			log.EXPECT().InfoContext(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			tc.mockFn(ctx, cancel, reader, chart, log)

			c := NewTickConsumerWithReader(reader, chart, log, tc.commit)
			assert.NoError(t, c.Run(ctx))
		})
	}
}
