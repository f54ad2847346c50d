package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	barRepo "github.com/muhammadchandra19/chart-data/internal/infrastructure/questdb/bar"
	"github.com/muhammadchandra19/chart-data/pkg/errors"
	"github.com/muhammadchandra19/chart-data/pkg/logger"
	"github.com/muhammadchandra19/chart-data/pkg/questdb"
	"github.com/muhammadchandra19/chart-data/pkg/redis"
	"github.com/muhammadchandra19/chart-data/pkg/timeframe"
)

// Config represents the application configuration.
type Config struct {
	App       AppConfig       `envPrefix:"APP_"`
	Logger    logger.Config   `envPrefix:"LOG_"`
	Chart     ChartConfig     `envPrefix:"CHART_"`
	QuestDB   questdb.Config  `envPrefix:"QUESTDB_"`
	Redis     redis.Config    `envPrefix:"REDIS_"`
	TickKafka TickKafkaConfig `envPrefix:"TICK_KAFKA_"`
	BarRange  BarRangeConfig  `envPrefix:"BAR_RANGE_"`
}

// AppConfig represents the application configuration.
type AppConfig struct {
	Name        string `env:"NAME" envDefault:"chart-data"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	GRPCPort    int    `env:"GRPC_PORT" envDefault:"8880"`
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8881"`

	HealthCheckInterval time.Duration `env:"HEALTH_CHECK_INTERVAL" envDefault:"10s"`
}

// ChartConfig describes the chart opened at startup.
type ChartConfig struct {
	Timeframe timeframe.Config

	SymbolIndex uint `env:"SYMBOL_INDEX" envDefault:"1"`
	RTH         bool `env:"RTH" envDefault:"false"`
	// EndDate in ms since epoch. Zero follows the most recent data.
	EndDate int64 `env:"END_DATE" envDefault:"0"`

	Session  string            `env:"SESSION" envDefault:"08:30-15:15"`
	Sessions map[string]string `env:"SESSIONS" envSeparator:"," envKeyValSeparator:"="`

	ListenerBufferSize int    `env:"LISTENER_BUFFER_SIZE" envDefault:"1024"`
	BarTable           string `env:"BAR_TABLE" envDefault:"ohlcv_1s"`
}

// TickKafkaConfig represents the Kafka configuration of the live tick topic.
type TickKafkaConfig struct {
	Brokers       []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic         string   `env:"TOPIC" envDefault:"ticks"`
	ConsumerGroup string   `env:"CONSUMER_GROUP" envDefault:"chart-data"`
	MinBytes      int      `env:"MIN_BYTES" envDefault:"1"`
	MaxBytes      int      `env:"MAX_BYTES" envDefault:"10000000"`
}

// BarRangeConfig controls the symbol date range cache.
type BarRangeConfig struct {
	Schedule string `env:"SCHEDULE" envDefault:"@every 1h"`
}

// Load loads the configuration from the environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	baseErr := errors.NewBaseError()

	if c.App.HealthCheckInterval <= 0 {
		baseErr.AddErrorDetails(errors.NewErrorDetails("health check interval must be positive", errors.ConfigInvalidError, "APP_HEALTH_CHECK_INTERVAL"))
	}
	if c.Chart.Timeframe.Default.IsZero() {
		baseErr.AddErrorDetails(errors.NewErrorDetails("default timeframe is required", errors.ConfigInvalidError, "CHART_DEFAULT_TIMEFRAME"))
	} else if !c.Chart.Timeframe.IsEnabled(c.Chart.Timeframe.Default) {
		baseErr.AddErrorDetails(errors.NewErrorDetails(
			fmt.Sprintf("default timeframe %s is not enabled", c.Chart.Timeframe.Default),
			errors.ConfigInvalidError, "CHART_DEFAULT_TIMEFRAME"))
	}
	if _, err := c.Chart.Timeframe.Location(); err != nil {
		baseErr.AddErrorDetails(errors.NewErrorDetails(err.Error(), errors.ConfigInvalidError, "CHART_TIME_ZONE"))
	}
	if _, err := c.Chart.SessionSet(); err != nil {
		baseErr.AddErrorDetails(errors.NewErrorDetails(err.Error(), errors.ConfigInvalidError, "CHART_SESSIONS"))
	}
	if c.Chart.ListenerBufferSize <= 0 {
		baseErr.AddErrorDetails(errors.NewErrorDetails("listener buffer size must be positive", errors.ConfigInvalidError, "CHART_LISTENER_BUFFER_SIZE"))
	}
	if len(c.TickKafka.Brokers) == 0 || c.TickKafka.Topic == "" {
		baseErr.AddErrorDetails(errors.NewErrorDetails("tick kafka brokers and topic are required", errors.ConfigInvalidError, "TICK_KAFKA_TOPIC"))
	}
	if err := c.Redis.Validate(); err != nil {
		baseErr.AddErrorDetails(errors.NewErrorDetails(err.Error(), errors.ConfigInvalidError, "REDIS"))
	}

	if baseErr.HasDetails() {
		return baseErr
	}
	return nil
}

// SessionSet parses the session settings.
func (c ChartConfig) SessionSet() (barRepo.SessionSet, error) {
	def, err := barRepo.ParseSession(c.Session)
	if err != nil {
		return barRepo.SessionSet{}, err
	}

	set := barRepo.SessionSet{Default: def, BySymbol: make(map[uint]barRepo.Session, len(c.Sessions))}
	for key, value := range c.Sessions {
		symbol, err := strconv.ParseUint(key, 10, 0)
		if err != nil {
			return barRepo.SessionSet{}, fmt.Errorf("invalid session symbol %q: %w", key, err)
		}
		session, err := barRepo.ParseSession(value)
		if err != nil {
			return barRepo.SessionSet{}, err
		}
		set.BySymbol[uint(symbol)] = session
	}
	return set, nil
}
