package redis

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/muhammadchandra19/chart-data/pkg/errors"
	"github.com/muhammadchandra19/chart-data/pkg/logger"
	"github.com/redis/go-redis/v9"
)

type client struct {
	logger logger.Interface
	config *Config
	rdb    redis.UniversalClient
}

// NewClient creates a new Redis client with the provided logger and configuration.
func NewClient(logger logger.Interface, config *Config) Client {
	return &client{
		logger: logger,
		config: config,
	}
}

func configError(message, field string) error {
	return errors.NewErrorDetails(message, errors.RedisConfigError, field)
}

func (c *client) Connect(ctx context.Context) error {
	if c.config == nil {
		return configError("Redis config is nil", "connect")
	}
	if err := c.config.Validate(); err != nil {
		return err
	}

	switch c.config.Mode {
	case Standalone:
		c.rdb = redis.NewClient(&redis.Options{
			Addr:            c.config.Addrs[0],
			Username:        c.config.Username,
			Password:        c.config.Password,
			DB:              c.config.DB,
			MaxRetries:      c.config.MaxRetries,
			MinRetryBackoff: c.config.MinRetryBackoff,
			MaxRetryBackoff: c.config.MaxRetryBackoff,
			DialTimeout:     c.config.ConnectTimeout,
			ReadTimeout:     c.config.ConnectTimeout,
			WriteTimeout:    c.config.ConnectTimeout,
			PoolSize:        c.config.PoolSize,
			MinIdleConns:    c.config.MinIdleConns,
			MaxIdleConns:    c.config.MaxIdleConns,
			ConnMaxLifetime: c.config.ConnMaxLifetime,
			ConnMaxIdleTime: c.config.ConnMaxIdleTime,
			PoolTimeout:     c.config.PoolTimeout,
		})
	case Cluster:
		c.rdb = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:           c.config.Addrs,
			Username:        c.config.Username,
			Password:        c.config.Password,
			MaxRetries:      c.config.MaxRetries,
			MinRetryBackoff: c.config.MinRetryBackoff,
			MaxRetryBackoff: c.config.MaxRetryBackoff,
			DialTimeout:     c.config.ConnectTimeout,
			ReadTimeout:     c.config.ConnectTimeout,
			WriteTimeout:    c.config.ConnectTimeout,
			PoolSize:        c.config.PoolSize,
			MinIdleConns:    c.config.MinIdleConns,
			MaxIdleConns:    c.config.MaxIdleConns,
			ConnMaxLifetime: c.config.ConnMaxLifetime,
			ConnMaxIdleTime: c.config.ConnMaxIdleTime,
			PoolTimeout:     c.config.PoolTimeout,
		})
	}

	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return errors.NewErrorDetails("Failed to connect to Redis: "+err.Error(), errors.RedisConnectionError, "connect")
	}
	return nil
}

// Reconnect retries Connect with exponential backoff and jitter. It reports whether a
// connection was established.
func (c *client) Reconnect(ctx context.Context) bool {
	baseDelay := c.config.MinRetryBackoff
	maxDelay := c.config.MaxRetryBackoff

	for i := range c.config.ReconnectMaxRetries {
		backoff := min(baseDelay*time.Duration(math.Pow(2, float64(i))), maxDelay)
		totalDelay := backoff + time.Duration(rand.IntN(1000))*time.Millisecond

		c.logger.Info("Reconnecting to Redis",
			logger.NewField("attempt", i+1),
			logger.NewField("delay", totalDelay),
		)

		select {
		case <-ctx.Done():
			c.logger.Info("Reconnect cancelled", logger.NewField("reason", ctx.Err()))
			return false
		case <-time.After(totalDelay):
			connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			err := c.Connect(connectCtx)
			cancel()
			if err == nil {
				c.logger.Info("Reconnected to Redis successfully", logger.NewField("attempt", i+1))
				return true
			}
			c.logger.Error(errors.TracerFromError(err), logger.NewField("attempt", i+1))
		}
	}

	return false
}

func (c *client) Disconnect(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	if err := c.rdb.Close(); err != nil {
		return errors.NewErrorDetails("Failed to close Redis client", errors.RedisDisconnectionError, "disconnect")
	}
	return nil
}

func (c *client) Ping(ctx context.Context) error {
	if c.rdb == nil {
		return errors.NewErrorDetails("Redis client is not connected", errors.RedisPingError, "ping")
	}
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return errors.NewErrorDetails("Failed to ping Redis", errors.RedisPingError, "ping")
	}
	return nil
}

func (c *client) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	if err := c.rdb.Set(ctx, c.config.PrefixKey+key, value, expiration).Err(); err != nil {
		return errors.NewErrorDetails("Failed to set value in Redis", errors.RedisSetError, "set")
	}
	return nil
}

func (c *client) HSet(ctx context.Context, key string, values map[string]any) (int64, error) {
	affected, err := c.rdb.HSet(ctx, c.config.PrefixKey+key, values).Result()
	if err != nil {
		return 0, errors.NewErrorDetails("Failed to set fields in hash in Redis", errors.RedisHSetError, "hset")
	}
	return affected, nil
}

// Publish sends message on channel and returns the number of receivers. Zero receivers is
// not an error.
func (c *client) Publish(ctx context.Context, channel string, message any) (int64, error) {
	published, err := c.rdb.Publish(ctx, c.config.PrefixKey+channel, message).Result()
	if err != nil {
		return 0, errors.NewErrorDetails("Failed to publish message to Redis", errors.RedisPublishError, "publish")
	}
	return published, nil
}
