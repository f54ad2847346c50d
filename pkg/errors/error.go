package errors

import (
	"bytes"
	"reflect"
	"strings"
)

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// ConfigInvalidError represents an invalid configuration value.
	ConfigInvalidError ErrorCode = "config_invalid_error"

	// ChartInvalidMetaError represents a chart request with an unusable meta.
	ChartInvalidMetaError ErrorCode = "chart_invalid_meta_error"
	// ChartAggregationError represents a tick the aggregator could not apply.
	ChartAggregationError ErrorCode = "chart_aggregation_error"
	// SymbolRangeNotFoundError represents a symbol without stored bars.
	SymbolRangeNotFoundError ErrorCode = "symbol_range_not_found_error"

	// TickDecodeError represents a tick message that is not valid JSON.
	TickDecodeError ErrorCode = "tick_decode_error"
	// TickInvalidError represents a tick breaking the OHLC ordering.
	TickInvalidError ErrorCode = "tick_invalid_error"

	// RedisConfigError represents an error when the Redis configuration is invalid or nil.
	RedisConfigError ErrorCode = "redis_config_error"
	// RedisConnectionError represents an error when connecting to Redis.
	RedisConnectionError ErrorCode = "redis_connection_error"
	// RedisDisconnectionError represents an error when disconnecting from Redis.
	RedisDisconnectionError ErrorCode = "redis_disconnection_error"
	// RedisPingError represents an error when pinging Redis.
	RedisPingError ErrorCode = "redis_pinging_error"
	// RedisSetError represents an error when setting a value in Redis.
	RedisSetError ErrorCode = "redis_set_error"
	// RedisHSetError represents an error when setting fields in a hash in Redis.
	RedisHSetError ErrorCode = "redis_hset_error"
	// RedisPublishError represents an error when publishing messages to channels in Redis.
	RedisPublishError ErrorCode = "redis_publish_error"
)

// String implements fmt.Stringer.
func (c ErrorCode) String() string {
	return string(c)
}

// BaseError is an `error` type containing an array of ErrorDetails.
type BaseError struct {
	details []*ErrorDetails
}

// NewBaseError create BaseError with ErrorDetails
func NewBaseError(details ...*ErrorDetails) *BaseError {
	return &BaseError{details: details}
}

// AddErrorDetails add more ErrorDetails to BaseError
func (b *BaseError) AddErrorDetails(errors ...*ErrorDetails) {
	b.details = append(b.details, errors...)
}

// GetDetails get array ErrorDetails on BaseError
func (b *BaseError) GetDetails() []*ErrorDetails {
	return b.details
}

// HasDetails reports whether any ErrorDetails were collected.
func (b *BaseError) HasDetails() bool {
	return len(b.details) > 0
}

// Error implement error interface
func (b *BaseError) Error() string {
	buff := bytes.NewBufferString("")

	buff.WriteString("Error on\n")
	for _, err := range b.details {
		buff.WriteString("code: ")
		buff.WriteString(err.Code)
		buff.WriteString("; error: ")
		buff.WriteString(err.Error())
		buff.WriteString("; field: ")
		buff.WriteString(err.Field)
		buff.WriteString("; object: ")
		if err.Object != nil {
			buff.WriteString(reflect.TypeOf(err.Object).String())
		}
		buff.WriteString("\n")
	}

	return strings.TrimSpace(buff.String())
}

// IsAnyCodeEqual check if any ErrorDetails code is equal with given code
func (b *BaseError) IsAnyCodeEqual(code ErrorCode) bool {
	for _, d := range b.GetDetails() {
		if d.Code == code.String() {
			return true
		}
	}
	return false
}
