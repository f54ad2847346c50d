package redis

import (
	"context"
	"time"
)

// Client defines the interface for a Redis client.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=redis_mock
type Client interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	Ping(ctx context.Context) error
	Reconnect(ctx context.Context) bool

	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	HSet(ctx context.Context, key string, values map[string]any) (int64, error)

	Publish(ctx context.Context, channel string, message any) (int64, error)
}
