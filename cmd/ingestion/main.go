package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"skillpulse/internal/config"
	"skillpulse/internal/ingestion"
	"skillpulse/internal/messaging"
	"skillpulse/internal/scheduler"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			log.Printf("failed to sync logger: %v", err)
		}
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	logger.Info("starting ingestion service",
		zap.String("job_board_url", cfg.JobBoardBaseURL),
		zap.Strings("cities", cfg.SearchCities),
		zap.Int("roles", len(cfg.SearchRoles)),
		zap.Duration("polling_interval", cfg.PollingInterval))

	client := ingestion.NewJobBoardClient(logger, cfg)

	publisher, err := messaging.NewPublisher(logger, cfg)
	if err != nil {
		logger.Fatal("failed to create NATS publisher", zap.Error(err))
	}
	defer publisher.Close()

	ingestScheduler := scheduler.NewIngestScheduler(client, publisher, logger, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := ingestScheduler.Start(ctx); err != nil && ctx.Err() == nil {
			logger.Error("ingest scheduler failed", zap.Error(err))
		}
	}()

	logger.Info("ingestion service started successfully")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	ingestScheduler.Stop()
	logger.Info("shutdown complete")
}
