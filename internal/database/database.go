package database

import (
	"context"
	"fmt"
	"time"

	"skillpulse/internal/config"
	"skillpulse/internal/telemetry"

	"github.com/ClickHouse/clickhouse-go/v2"
	"go.uber.org/zap"
)

// Database wraps the ClickHouse connection shared by the posting and
// snapshot stores.
type Database struct {
	conn   clickhouse.Conn
	logger *zap.Logger
}

// New opens and pings a native-protocol connection using the ClickHouse
// settings from the service config. The DSN may carry query parameters;
// only the host part is dialed.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Database, error) {
	ctx, span := telemetry.GetTracer("skillpulse/database").Start(ctx, "database.New")
	defer span.End()

	host := hostFromDSN(cfg.ClickHouseDSN)
	span.SetAttributes(
		telemetry.String("db.host", host),
		telemetry.String("db.name", cfg.ClickHouseDatabase),
	)

	conn, err := clickhouse.Open(&clickhouse.Options{
		Protocol: clickhouse.Native,
		Addr:     []string{host},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		Auth: clickhouse.Auth{
			Database: cfg.ClickHouseDatabase,
			Username: cfg.ClickHouseUsername,
			Password: cfg.ClickHousePassword,
		},
		DialTimeout:     30 * time.Second,
		MaxOpenConns:    cfg.ClickHouseMaxOpenConns,
		MaxIdleConns:    cfg.ClickHouseMaxIdleConns,
		ConnMaxLifetime: cfg.ClickHouseConnMaxLife,
	})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("open clickhouse connection: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("ping clickhouse: %w", err)
	}

	logger.Info("connected to clickhouse",
		zap.String("host", host),
		zap.String("database", cfg.ClickHouseDatabase))

	return &Database{
		conn:   conn,
		logger: logger,
	}, nil
}

func (db *Database) Close() error {
	return db.conn.Close()
}

func (db *Database) Conn() clickhouse.Conn {
	return db.conn
}

func hostFromDSN(dsn string) string {
	for i := 0; i < len(dsn); i++ {
		if dsn[i] == '?' {
			return dsn[:i]
		}
	}
	return dsn
}
