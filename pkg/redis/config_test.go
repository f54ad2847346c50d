package redis

import (
	"testing"
	"time"

	"github.com/muhammadchandra19/chart-data/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{name: "defaults are valid"},
		{name: "no address", mutate: func(c *Config) { c.Addrs = nil }, field: "addrs"},
		{name: "unknown mode", mutate: func(c *Config) { c.Mode = "sentinel" }, field: "mode"},
		{name: "zero connect timeout", mutate: func(c *Config) { c.ConnectTimeout = 0 }, field: "connect_timeout"},
		{name: "zero pool size", mutate: func(c *Config) { c.PoolSize = 0 }, field: "pool_size"},
		{name: "negative idle connections", mutate: func(c *Config) { c.MaxIdleConns = -1 }, field: "max_idle_conns"},
		{name: "zero pool timeout", mutate: func(c *Config) { c.PoolTimeout = 0 }, field: "pool_timeout"},
		{name: "negative retries", mutate: func(c *Config) { c.MaxRetries = -1 }, field: "max_retries"},
		{name: "negative backoff", mutate: func(c *Config) { c.MaxRetryBackoff = -time.Second }, field: "retry_backoff"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if tc.mutate != nil {
				tc.mutate(cfg)
			}

			err := cfg.Validate()
			if tc.field == "" {
				assert.NoError(t, err)
				return
			}

			var details *errors.ErrorDetails
			assert.ErrorAs(t, err, &details)
			assert.Equal(t, tc.field, details.Field)
			assert.True(t, errors.ErrorCodeEquals(err, errors.RedisConfigError))
		})
	}
}

func TestClient_ConnectRejectsNilConfig(t *testing.T) {
	err := NewClient(nil, nil).Connect(t.Context())
	assert.True(t, errors.ErrorCodeEquals(err, errors.RedisConfigError))
}
