package schema

import (
	"context"
	"fmt"
	"time"

	"skillpulse/internal/telemetry"

	"github.com/ClickHouse/clickhouse-go/v2"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Migration pairs the forward and rollback DDL for one schema version.
type Migration struct {
	Version     int
	Description string
	Up          string
	Down        string
}

// Migrator applies versioned DDL against ClickHouse, recording applied
// versions in the schema_migrations table so reruns are no-ops.
type Migrator struct {
	conn   clickhouse.Conn
	logger *zap.Logger
	tracer trace.Tracer
}

func NewMigrator(conn clickhouse.Conn, logger *zap.Logger) *Migrator {
	return &Migrator{
		conn:   conn,
		logger: logger,
		tracer: telemetry.GetTracer("skillpulse/schema"),
	}
}

// Migrate applies every pending migration in the order given, skipping
// versions already recorded.
func (m *Migrator) Migrate(ctx context.Context, pending ...Migration) error {
	ctx, span := m.tracer.Start(ctx, "Migrator.Migrate")
	defer span.End()

	if err := m.ensureMigrationsTable(ctx); err != nil {
		span.RecordError(err)
		return err
	}

	applied, err := m.appliedVersions(ctx)
	if err != nil {
		span.RecordError(err)
		return err
	}
	span.SetAttributes(
		telemetry.Int("migrations.pending", len(pending)),
		telemetry.Int("migrations.applied", len(applied)),
	)

	for _, migration := range pending {
		if appliedAt, ok := applied[migration.Version]; ok {
			m.logger.Info("migration already applied",
				zap.Int("version", migration.Version),
				zap.String("description", migration.Description),
				zap.Time("applied_at", appliedAt))
			continue
		}
		if err := m.Apply(ctx, migration); err != nil {
			span.RecordError(err)
			return err
		}
	}

	return nil
}

// Apply runs one migration's forward DDL and records it.
func (m *Migrator) Apply(ctx context.Context, migration Migration) error {
	if err := m.conn.Exec(ctx, migration.Up); err != nil {
		return fmt.Errorf("apply migration %d (%s): %w", migration.Version, migration.Description, err)
	}

	if err := m.conn.Exec(ctx, `
		INSERT INTO schema_migrations (version, description, applied_at)
		VALUES (?, ?, now())
	`, migration.Version, migration.Description); err != nil {
		return fmt.Errorf("record migration %d: %w", migration.Version, err)
	}

	m.logger.Info("applied migration",
		zap.Int("version", migration.Version),
		zap.String("description", migration.Description))
	return nil
}

// Rollback runs one migration's reverse DDL and removes its record.
func (m *Migrator) Rollback(ctx context.Context, migration Migration) error {
	if err := m.conn.Exec(ctx, migration.Down); err != nil {
		return fmt.Errorf("rollback migration %d (%s): %w", migration.Version, migration.Description, err)
	}

	if err := m.conn.Exec(ctx, "DELETE FROM schema_migrations WHERE version = ?", migration.Version); err != nil {
		return fmt.Errorf("remove migration record %d: %w", migration.Version, err)
	}

	m.logger.Info("rolled back migration",
		zap.Int("version", migration.Version),
		zap.String("description", migration.Description))
	return nil
}

func (m *Migrator) ensureMigrationsTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version Int32,
			description String,
			applied_at DateTime,
			PRIMARY KEY (version)
		) ENGINE = MergeTree()
	`

	if err := m.conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}
	return nil
}

func (m *Migrator) appliedVersions(ctx context.Context) (map[int]time.Time, error) {
	rows, err := m.conn.Query(ctx, "SELECT version, applied_at FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("query schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]time.Time)
	for rows.Next() {
		var version int32
		var appliedAt time.Time
		if err := rows.Scan(&version, &appliedAt); err != nil {
			return nil, fmt.Errorf("scan migration row: %w", err)
		}
		applied[int(version)] = appliedAt
	}

	return applied, nil
}
