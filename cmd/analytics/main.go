package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"skillpulse/internal/analytics"
	"skillpulse/internal/cache"
	"skillpulse/internal/cache/redis"
	"skillpulse/internal/config"
	"skillpulse/internal/database"
	"skillpulse/internal/events"
	"skillpulse/internal/pipeline"
	"skillpulse/internal/processor"
	"skillpulse/internal/storage"
	"skillpulse/internal/telemetry"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return zap.NewProduction()
}

func newNATSConnection(cfg *config.Config) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Timeout(cfg.NATSConnTimeout),
		nats.Name("analytics-service"),
		nats.RetryOnFailedConnect(true),
	}
	return nats.Connect(cfg.NATSURL, opts...)
}

func newClickHouseConnection(cfg *config.Config, logger *zap.Logger) (clickhouse.Conn, error) {
	db, err := database.New(context.Background(), cfg, logger)
	if err != nil {
		return nil, err
	}
	return db.Conn(), nil
}

func newSnapshotCache(cfg *config.Config) cache.Cache {
	return redis.New(cache.Options{
		RedisURL:      cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
		DefaultTTL:    cfg.SnapshotCacheTTL,
	})
}

func newEngine(cfg *config.Config) *analytics.Engine {
	return analytics.NewEngine(analytics.Config{
		MonthsAhead:         cfg.ForecastMonthsAhead,
		MovingAverageWindow: cfg.MovingAverageWindow,
		TopForecastSkills:   cfg.TopForecastSkills,
		HeatmapTopSkills:    cfg.HeatmapTopSkills,
	})
}

func newPostingProcessor(logger *zap.Logger, store *storage.PostingStore) *processor.PostingProcessor {
	return processor.NewPostingProcessor(logger, store)
}

func newRunner(logger *zap.Logger, postings *storage.PostingStore, snapshots *storage.SnapshotStore, snapshotCache cache.Cache, engine *analytics.Engine, cfg *config.Config) *pipeline.Runner {
	return pipeline.NewRunner(logger, postings, snapshots, snapshotCache, engine, cfg)
}

func newTracer() trace.Tracer {
	return telemetry.GetTracer("skillpulse/analytics")
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			newLogger,
			newNATSConnection,
			newClickHouseConnection,
			newSnapshotCache,
			newEngine,
			storage.NewPostingStore,
			storage.NewSnapshotStore,
			newPostingProcessor,
			newRunner,
			events.NewHandler,
			newTracer,
		),
		fx.Invoke(
			func(handler *events.Handler, lc fx.Lifecycle) error {
				return handler.RegisterSubscriptions(lc)
			},
			func(runner *pipeline.Runner, logger *zap.Logger, lc fx.Lifecycle) {
				runCtx, cancel := context.WithCancel(context.Background())
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						go func() {
							if err := runner.Start(runCtx); err != nil && runCtx.Err() == nil {
								logger.Error("snapshot runner failed", zap.Error(err))
							}
						}()
						return nil
					},
					OnStop: func(ctx context.Context) error {
						cancel()
						runner.Stop()
						return nil
					},
				})
			},
		),
	)

	startCtx := context.Background()
	if err := app.Start(startCtx); err != nil {
		log.Fatal(err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	stopCtx := context.Background()
	if err := app.Stop(stopCtx); err != nil {
		log.Fatal(err)
	}
}
