package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"skillpulse/internal/analytics"
	"skillpulse/internal/telemetry"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// SnapshotStore keeps a history of analytics snapshots, one row per run,
// with the full result serialized into the payload column.
type SnapshotStore struct {
	conn   clickhouse.Conn
	logger *zap.Logger
	tracer trace.Tracer
}

func NewSnapshotStore(conn clickhouse.Conn, logger *zap.Logger) *SnapshotStore {
	return &SnapshotStore{
		conn:   conn,
		logger: logger,
		tracer: telemetry.GetTracer("skillpulse/storage"),
	}
}

func (s *SnapshotStore) Insert(ctx context.Context, snapshot *analytics.Snapshot) error {
	ctx, span := s.tracer.Start(ctx, "SnapshotStore.Insert")
	defer span.End()

	payload, err := json.Marshal(snapshot)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	query := `
		INSERT INTO snapshots (
			id, generated_at, forecast_count, city_count, payload
		) VALUES (
			?, ?, ?, ?, ?
		)
	`

	if err := s.conn.Exec(ctx, query,
		uuid.New().String(),
		snapshot.GeneratedAt,
		uint32(len(snapshot.Forecasts)),
		uint32(len(snapshot.Heatmap.Cities)),
		string(payload),
	); err != nil {
		span.RecordError(err)
		return fmt.Errorf("insert snapshot: %w", err)
	}

	return nil
}
