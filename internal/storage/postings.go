package storage

import (
	"context"
	"fmt"

	"skillpulse/internal/models"
	"skillpulse/internal/telemetry"

	"github.com/ClickHouse/clickhouse-go/v2"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// PostingStore persists processed postings in ClickHouse. The table uses a
// ReplacingMergeTree keyed on the deterministic posting ID, so re-ingesting
// the same listing upserts rather than duplicates.
type PostingStore struct {
	conn   clickhouse.Conn
	logger *zap.Logger
	tracer trace.Tracer
}

func NewPostingStore(conn clickhouse.Conn, logger *zap.Logger) *PostingStore {
	return &PostingStore{
		conn:   conn,
		logger: logger,
		tracer: telemetry.GetTracer("skillpulse/storage"),
	}
}

func (s *PostingStore) Insert(ctx context.Context, posting *models.Posting) error {
	ctx, span := s.tracer.Start(ctx, "PostingStore.Insert")
	defer span.End()

	query := `
		INSERT INTO postings (
			id, title, company, location, date_posted, job_url,
			searched_city, searched_role, skills, fetched_at
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		)
	`

	if err := s.conn.Exec(ctx, query,
		posting.ID,
		posting.Title,
		posting.Company,
		posting.Location,
		posting.DatePosted,
		posting.JobURL,
		posting.SearchedCity,
		posting.SearchedRole,
		posting.Skills,
		posting.FetchedAt,
	); err != nil {
		span.RecordError(err)
		return fmt.Errorf("insert posting: %w", err)
	}

	return nil
}

// LoadAll reads the full posting set for an analytics run. The returned
// slice is the run's immutable input; callers never share it across runs.
func (s *PostingStore) LoadAll(ctx context.Context) ([]models.Posting, error) {
	ctx, span := s.tracer.Start(ctx, "PostingStore.LoadAll")
	defer span.End()

	query := `
		SELECT id, title, company, location, date_posted, job_url,
		       searched_city, searched_role, skills, fetched_at
		FROM postings FINAL
		ORDER BY fetched_at
	`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query postings: %w", err)
	}
	defer rows.Close()

	var postings []models.Posting
	for rows.Next() {
		var p models.Posting
		if err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Company,
			&p.Location,
			&p.DatePosted,
			&p.JobURL,
			&p.SearchedCity,
			&p.SearchedRole,
			&p.Skills,
			&p.FetchedAt,
		); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("scan posting row: %w", err)
		}
		postings = append(postings, p)
	}

	span.SetAttributes(telemetry.Int("postings.count", len(postings)))
	return postings, nil
}
