package bootstrap

import (
	"github.com/muhammadchandra19/chart-data/internal/consumer"
	"github.com/muhammadchandra19/chart-data/internal/infrastructure/redis/publisher"
	"github.com/muhammadchandra19/chart-data/pkg/config"
	"github.com/muhammadchandra19/chart-data/pkg/logger"
	"github.com/muhammadchandra19/chart-data/pkg/questdb"
	"github.com/muhammadchandra19/chart-data/pkg/redis"
	"github.com/muhammadchandra19/chart-data/pkg/timeframe"
)

// Bootstrap is the bootstrap for the chart data service.
type Bootstrap struct {
	Usecase    Usecase
	Logger     logger.Interface
	Repository Repository
	Publisher  *publisher.Publisher
	Consumer   *consumer.TickConsumer

	Config     config.Config
	Classifier timeframe.Classifier

	QuestDB questdb.QuestDBClient
	Redis   redis.Client
}

// BootstrapConfig is the config for the bootstrap.
type BootstrapConfig struct {
	Config  config.Config
	QuestDB questdb.QuestDBClient
	Redis   redis.Client
	Logger  logger.Interface
}

// Init initializes the bootstrap.
func (b *Bootstrap) Init(cfg BootstrapConfig) (Bootstrap, error) {
	b.Config = cfg.Config
	b.QuestDB = cfg.QuestDB
	b.Redis = cfg.Redis
	b.Logger = cfg.Logger

	classifier, err := b.Config.Chart.Timeframe.Classifier()
	if err != nil {
		return Bootstrap{}, err
	}
	b.Classifier = classifier

	b.registerRepository()
	b.Publisher = publisher.NewPublisher(b.Redis, b.Logger, b.Config.Chart.ListenerBufferSize, b.Config.Redis.SnapshotTTL)
	if err := b.registerUsecase(); err != nil {
		return Bootstrap{}, err
	}
	b.Consumer = consumer.NewTickConsumer(b.Config.TickKafka, b.Usecase.Chart, b.Logger)

	return *b, nil
}
