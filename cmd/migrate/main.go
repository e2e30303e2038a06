package main

import (
	"context"
	"log"

	"skillpulse/internal/config"
	"skillpulse/internal/database"
	"skillpulse/internal/database/schema"
	"skillpulse/internal/database/schema/migrations"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to ClickHouse", zap.Error(err))
	}
	defer db.Close()

	migrator := schema.NewMigrator(db.Conn(), logger)
	if err := migrator.Migrate(ctx,
		migrations.CreatePostingsTable,
		migrations.CreateSnapshotsTable,
	); err != nil {
		logger.Fatal("Migration failed", zap.Error(err))
	}

	logger.Info("All migrations completed successfully")
}
