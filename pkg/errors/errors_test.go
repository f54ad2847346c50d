package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodeEquals(t *testing.T) {
	notFound := NewErrorDetails("symbol 3 has no bars", SymbolRangeNotFoundError, "symbol_index")

	testCases := []struct {
		name     string
		err      error
		code     ErrorCode
		expected bool
	}{
		{name: "same code", err: notFound, code: SymbolRangeNotFoundError, expected: true},
		{name: "other code", err: notFound, code: TickInvalidError, expected: false},
		{name: "traced", err: TracerFromError(notFound), code: SymbolRangeNotFoundError, expected: true},
		{name: "wrapped", err: fmt.Errorf("load: %w", notFound), code: SymbolRangeNotFoundError, expected: true},
		{name: "plain error", err: stderrors.New("boom"), code: SymbolRangeNotFoundError, expected: false},
		{name: "nil", err: nil, code: SymbolRangeNotFoundError, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ErrorCodeEquals(tc.err, tc.code))
		})
	}
}

func TestTracerFromError(t *testing.T) {
	cause := stderrors.New("connection reset")

	tracer := TracerFromError(cause)
	assert.Equal(t, "connection reset", tracer.Error())
	assert.ErrorIs(t, tracer, cause)
	assert.NotEmpty(t, tracer.StackTrace())

	again := TracerFromError(tracer)
	assert.Equal(t, tracer.StackTrace(), again.StackTrace())
}

func TestWrap(t *testing.T) {
	cause := NewErrorDetails("dial tcp: refused", RedisConnectionError, "connect")

	err := Wrap(cause, "init redis")
	assert.Equal(t, "init redis: dial tcp: refused", err.Error())
	assert.True(t, ErrorCodeEquals(err, RedisConnectionError))
	assert.NotEmpty(t, err.StackTrace())
}

func TestBaseError(t *testing.T) {
	base := NewBaseError()
	assert.False(t, base.HasDetails())

	base.AddErrorDetails(
		NewErrorDetails("must be positive", ConfigInvalidError, "CHART_LISTENER_BUFFER_SIZE"),
		NewErrorDetailsWithObject("unknown zone", ConfigInvalidError, "CHART_TIME_ZONE", "Mars/Olympus"),
	)

	require.True(t, base.HasDetails())
	assert.Len(t, base.GetDetails(), 2)
	assert.True(t, base.IsAnyCodeEqual(ConfigInvalidError))
	assert.False(t, base.IsAnyCodeEqual(TickDecodeError))
	assert.Equal(t, "Error on\n"+
		"code: config_invalid_error; error: must be positive; field: CHART_LISTENER_BUFFER_SIZE; object: \n"+
		"code: config_invalid_error; error: unknown zone; field: CHART_TIME_ZONE; object: string",
		base.Error())
}
