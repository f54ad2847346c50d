package logger

import (
	"context"
	"errors"
	"testing"

	chartErrors "github.com/muhammadchandra19/chart-data/pkg/errors"
	"github.com/muhammadchandra19/chart-data/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(level zapcore.Level) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return &Logger{logger: zap.New(core)}, logs
}

func TestLogger_ContextIDs(t *testing.T) {
	testCases := []struct {
		name     string
		ctx      context.Context
		expected map[string]any
	}{
		{
			name:     "request id only",
			ctx:      util.WithRequestID(context.Background(), "req-1"),
			expected: map[string]any{"request_id": "req-1", "symbol": int64(3)},
		},
		{
			name:     "consumed message",
			ctx:      util.WithEventID(util.WithRequestID(context.Background(), "req-2"), "ticks/0/42"),
			expected: map[string]any{"request_id": "req-2", "event_id": "ticks/0/42", "symbol": int64(3)},
		},
		{
			name:     "empty context",
			ctx:      context.Background(),
			expected: map[string]any{"request_id": "", "symbol": int64(3)},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l, logs := newObserved(zapcore.DebugLevel)

			l.InfoContext(tc.ctx, "tick applied", NewField("symbol", 3))

			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, "tick applied", entry.Message)
			assert.Equal(t, tc.expected, entry.ContextMap())
		})
	}
}

func TestLogger_Error(t *testing.T) {
	l, logs := newObserved(zapcore.DebugLevel)

	l.Error(errors.New("plain"))
	l.Error(chartErrors.TracerFromError(errors.New("traced")), NewField("table", "ohlcv_1s"))

	require.Equal(t, 2, logs.Len())
	plain, traced := logs.All()[0], logs.All()[1]

	assert.Equal(t, zapcore.ErrorLevel, plain.Level)
	assert.Equal(t, "plain", plain.Message)
	assert.Empty(t, plain.Stack)

	assert.Equal(t, "traced", traced.Message)
	assert.Contains(t, traced.Stack, "TestLogger_Error")
	assert.Equal(t, map[string]any{"table": "ohlcv_1s"}, traced.ContextMap())
}

func TestLogger_LevelAndWith(t *testing.T) {
	l, logs := newObserved(zapcore.WarnLevel)

	child := l.With(NewField("service", "chart-data"))
	child.Debug("dropped")
	child.Info("dropped")
	child.Warn("kept")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, map[string]any{"service": "chart-data"}, logs.All()[0].ContextMap())
}

func TestLevel_GetZapLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, Level("debug").getZapLevel())
	assert.Equal(t, zapcore.ErrorLevel, Level("error").getZapLevel())
	assert.Equal(t, zapcore.InfoLevel, Level("verbose").getZapLevel())
}

func TestNew(t *testing.T) {
	l, err := New(Config{Level: "debug", Encoding: "console", OutputPaths: []string{"stderr"}})
	require.NoError(t, err)
	assert.NotNil(t, l.GetZap())

	_, err = New(Config{Level: "info", Encoding: "yaml"})
	assert.Error(t, err)
}
