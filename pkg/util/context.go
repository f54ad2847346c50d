package util

import (
	"context"

	"github.com/google/uuid"
)

type key string

const (
	requestIDKey = key("x-request-id")
	eventIDKey   = key("event-id")
)

// NewID returns a uuid-v4 string used as request or event id.
func NewID() string {
	return uuid.NewString()
}

// WithRequestID returns a context with request id.
// It will generate a new request id if the provided id is empty.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = NewID()
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID returns request id from context
// will return empty string if not present
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithEventID returns a context with event id
func WithEventID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, eventIDKey, id)
}

// GetEventID returns event id from context
// will return empty string if not present
func GetEventID(ctx context.Context) string {
	id, _ := ctx.Value(eventIDKey).(string)
	return id
}
