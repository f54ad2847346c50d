package chart

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/muhammadchandra19/chart-data/internal/bootstrap"
	v1 "github.com/muhammadchandra19/chart-data/internal/domain/bar/v1"
	"github.com/muhammadchandra19/chart-data/internal/httpapi"
	"github.com/muhammadchandra19/chart-data/pkg/config"
	"github.com/muhammadchandra19/chart-data/pkg/errors"
	"github.com/muhammadchandra19/chart-data/pkg/grpclib/health"
	"github.com/muhammadchandra19/chart-data/pkg/httplib/healthcheck"
	"github.com/muhammadchandra19/chart-data/pkg/logger"
	"github.com/muhammadchandra19/chart-data/pkg/questdb"
	"github.com/muhammadchandra19/chart-data/pkg/redis"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health service name reported by the gRPC server.
const ServiceName = "chartdata.v1.Chart"

// App is the chart data service: one chart context fed by QuestDB history and the tick
// topic, publishing to Redis. gRPC carries the health protocol, HTTP the chart endpoints.
type App struct {
	Config config.Config
	logger logger.Interface

	bootstrap  bootstrap.Bootstrap
	server     *grpc.Server
	health     *health.Server
	httpServer *http.Server

	db    *questdb.Client
	redis redis.Client
}

// InitApp connects the stores and wires the service.
func InitApp(ctx context.Context, cfg config.Config) (*App, error) {
	base, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, err
	}
	log := base.With(logger.NewField("service", cfg.App.Name))

	app := &App{
		Config: cfg,
		logger: log,
		server: grpc.NewServer(),
		health: health.NewServer(log),
	}

	if err := app.initDB(ctx); err != nil {
		return nil, err
	}
	if err := app.initRedis(ctx); err != nil {
		app.db.Close()
		return nil, err
	}

	b := &bootstrap.Bootstrap{}
	app.bootstrap, err = b.Init(bootstrap.BootstrapConfig{
		Config:  cfg,
		QuestDB: app.db,
		Redis:   app.redis,
		Logger:  log,
	})
	if err != nil {
		app.close(ctx)
		return nil, err
	}

	app.health.Register(app.server)
	if cfg.App.Environment == "development" {
		reflection.Register(app.server)
	}

	gin.SetMode(gin.ReleaseMode)
	chartHTTP := httpapi.NewChartHTTP(
		app.bootstrap.Usecase.Chart,
		app.bootstrap.Usecase.BarRange,
		cfg.Chart.Timeframe,
		log,
	)
	app.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.HTTPPort),
		Handler:           healthcheck.New(app.dependencies(), 0).Handler(chartHTTP.Routes()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return app, nil
}

func (a *App) dependencies() map[string]healthcheck.Checker {
	return map[string]healthcheck.Checker{
		"questdb": a.db,
		"redis":   a.redis,
	}
}

// ping checks every dependency once.
func (a *App) ping(ctx context.Context) error {
	if err := a.db.Ping(ctx); err != nil {
		return errors.Wrap(err, "ping questdb")
	}
	if err := a.redis.Ping(ctx); err != nil {
		return errors.Wrap(err, "ping redis")
	}
	return nil
}

func (a *App) initDB(ctx context.Context) error {
	client, err := questdb.NewClient(ctx, a.Config.QuestDB)
	if err != nil {
		return errors.Wrap(err, "init questdb")
	}
	a.db = client
	return nil
}

func (a *App) initRedis(ctx context.Context) error {
	client := redis.NewClient(a.logger, &a.Config.Redis)
	if err := client.Connect(ctx); err != nil {
		if !client.Reconnect(ctx) {
			return errors.Wrap(err, "init redis")
		}
	}
	a.redis = client
	return nil
}

// DefaultMeta is the chart opened at startup.
func (a *App) DefaultMeta() v1.Meta {
	return v1.Meta{
		SymbolIndex: a.Config.Chart.SymbolIndex,
		Timeframe:   a.Config.Chart.Timeframe.Default,
		EndDate:     a.Config.Chart.EndDate,
		RTH:         a.Config.Chart.RTH,
	}
}

// Run serves until ctx is done or a component fails.
func (a *App) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", a.Config.App.GRPCPort))
	if err != nil {
		return errors.Wrap(err, "listen grpc")
	}

	if err := a.bootstrap.Usecase.BarRange.Start(ctx, a.Config.BarRange.Schedule); err != nil {
		return err
	}
	defer a.bootstrap.Usecase.BarRange.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.bootstrap.Publisher.Run(gctx)
	})
	g.Go(func() error {
		meta := a.DefaultMeta()
		if _, err := a.bootstrap.Usecase.Chart.Load(gctx, meta); err != nil {
			return err
		}
		a.health.InitService(ServiceName)
		return a.bootstrap.Consumer.Run(gctx)
	})
	g.Go(func() error {
		a.health.Watch(gctx, ServiceName, a.Config.App.HealthCheckInterval, a.ping)
		return nil
	})
	g.Go(func() error {
		a.logger.InfoContext(gctx, "grpc server listening", logger.NewField("addr", lis.Addr().String()))
		return a.server.Serve(lis)
	})
	g.Go(func() error {
		a.logger.InfoContext(gctx, "http server listening", logger.NewField("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "serve http")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.health.Shutdown()
		a.server.GracefulStop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Stop releases every connection.
func (a *App) Stop(ctx context.Context) {
	a.bootstrap.Usecase.Chart.Close()
	if err := a.bootstrap.Consumer.Close(); err != nil {
		a.logger.ErrorContext(ctx, errors.TracerFromError(err))
	}
	a.close(ctx)
	_ = a.logger.Sync()
}

func (a *App) close(ctx context.Context) {
	if err := a.redis.Disconnect(ctx); err != nil {
		a.logger.ErrorContext(ctx, errors.TracerFromError(err))
	}
	a.db.Close()
}
